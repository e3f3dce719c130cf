package bootstrap

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	conversationinadapter "pitchperfect/internal/modules/conversation/adapter/in"
	conversationdomain "pitchperfect/internal/modules/conversation/domain"
	conversationservice "pitchperfect/internal/modules/conversation/service"
	conversationusecase "pitchperfect/internal/modules/conversation/usecase"
	gatewayoutadapter "pitchperfect/internal/modules/gateway/adapter/out"
	gatewaydomain "pitchperfect/internal/modules/gateway/domain"
	gatewayservice "pitchperfect/internal/modules/gateway/service"
	gatewayusecase "pitchperfect/internal/modules/gateway/usecase"
	promptinadapter "pitchperfect/internal/modules/prompt/adapter/in"
	promptoutadapter "pitchperfect/internal/modules/prompt/adapter/out"
	promptservice "pitchperfect/internal/modules/prompt/service"
	promptusecase "pitchperfect/internal/modules/prompt/usecase"
	sessioninadapter "pitchperfect/internal/modules/session/adapter/in"
	sessionoutadapter "pitchperfect/internal/modules/session/adapter/out"
	sessionservice "pitchperfect/internal/modules/session/service"
	sessionusecase "pitchperfect/internal/modules/session/usecase"
	strategyinadapter "pitchperfect/internal/modules/strategy/adapter/in"
	strategyoutadapter "pitchperfect/internal/modules/strategy/adapter/out"
	strategyservice "pitchperfect/internal/modules/strategy/service"
	strategyusecase "pitchperfect/internal/modules/strategy/usecase"
	"pitchperfect/internal/platform/clock"
	"pitchperfect/internal/platform/config"
	"pitchperfect/internal/platform/id"
	"pitchperfect/internal/platform/logging"
	uiapp "pitchperfect/internal/ui/app"
)

type App struct {
	PromptCLI       promptinadapter.CLIHandler
	ConversationCLI conversationinadapter.CLIHandler
	SessionCLI      sessioninadapter.CLIHandler
	StrategyCLI     strategyinadapter.CLIHandler

	Provider string
	index    *sessionoutadapter.SQLiteMeetingProjector
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	logger = logging.OrDefault(logger)
	clk := clock.SystemClock{}

	promptUC := promptusecase.NewInteractor(promptservice.NewPromptService(
		promptoutadapter.NewFilePromptStore(cfg.PromptsDir, cfg.CustomersDir),
		logger,
	))

	completer, model, err := gatewayoutadapter.NewCompleter(cfg.Provider, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("new completer: %w", err)
	}
	table, err := modelTable(model, cfg.Models)
	if err != nil {
		return nil, err
	}
	gatewayUC := gatewayusecase.NewInteractor(gatewayservice.NewGatewayService(completer, table, cfg.LLMTimeout, logger))

	index, err := sessionoutadapter.NewSQLiteMeetingProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new meeting projector: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		clk,
		sessionoutadapter.NewFileMeetingStore(cfg.MeetingsDir, logger),
		sessionoutadapter.NewFileTextStore(cfg.ResponseEvaluationsDir),
		sessionoutadapter.NewFileTextStore(cfg.MeetingEvaluationsDir),
		index,
		logger,
	))

	policy, err := conversationdomain.ParseReportPolicy(cfg.ReportPolicy)
	if err != nil {
		_ = index.Close()
		return nil, err
	}
	conversationUC := conversationusecase.NewInteractor(conversationservice.NewEngine(
		promptUC,
		gatewayUC,
		sessionUC,
		id.MeetingToken{Clock: clk},
		policy,
		logger,
	))

	strategyUC := strategyusecase.NewInteractor(strategyservice.NewStrategyService(
		promptUC,
		gatewayUC,
		sessionUC,
		strategyoutadapter.NewVaultStrategyStore(cfg.StrategiesDir),
		clk,
		logger,
	))

	return &App{
		PromptCLI:       promptinadapter.NewCLIHandler(promptUC),
		ConversationCLI: conversationinadapter.NewCLIHandler(conversationUC),
		SessionCLI:      sessioninadapter.NewCLIHandler(sessionUC),
		StrategyCLI:     strategyinadapter.NewCLIHandler(strategyUC),
		Provider:        cfg.Provider,
		index:           index,
	}, nil
}

// Close releases the meeting index.
func (a *App) Close() error {
	if a == nil || a.index == nil {
		return nil
	}
	return a.index.Close()
}

func modelTable(model string, overrides map[string]config.ModelOverride) (gatewaydomain.Table, error) {
	table := gatewaydomain.DefaultTable(model)
	for purpose, o := range overrides {
		next, err := table.WithOverride(gatewaydomain.Purpose(purpose), o.Model, o.Temperature, o.MaxTokens)
		if err != nil {
			return nil, fmt.Errorf("model override %q: %w", purpose, err)
		}
		table = next
	}
	return table, nil
}

func RunTUI(workspacePath string, app *App) error {
	model := uiapp.NewModel(workspacePath, app.PromptCLI, app.ConversationCLI, app.SessionCLI, app.StrategyCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
