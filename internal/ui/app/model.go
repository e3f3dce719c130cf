package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	conversationdto "pitchperfect/internal/modules/conversation/dto"
	promptdto "pitchperfect/internal/modules/prompt/dto"
	sessiondto "pitchperfect/internal/modules/session/dto"
	strategydto "pitchperfect/internal/modules/strategy/dto"
	"pitchperfect/internal/ui/components"
	"pitchperfect/internal/ui/theme"
	meetingview "pitchperfect/internal/ui/views/meeting"
	meetingsview "pitchperfect/internal/ui/views/meetings"
	profilesview "pitchperfect/internal/ui/views/profiles"
	reportsview "pitchperfect/internal/ui/views/reports"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type promptPort interface {
	ListProfiles(ctx context.Context) ([]promptdto.ProfileOutput, error)
	ReadPrompt(ctx context.Context, namespace, name string) (promptdto.ReadOutput, error)
}

type conversationPort interface {
	Start(ctx context.Context, profile string) (conversationdto.SessionOutput, error)
	Submit(ctx context.Context, text string) (conversationdto.TurnOutput, error)
	Resume(ctx context.Context, filename string) (conversationdto.SessionOutput, error)
	Reset(ctx context.Context) (conversationdto.ResetOutput, error)
}

type sessionPort interface {
	ListMeetings(ctx context.Context) ([]sessiondto.MeetingSummaryOutput, error)
	ShowMeeting(ctx context.Context, filename string) (sessiondto.MeetingOutput, error)
	ListReports(ctx context.Context) ([]sessiondto.ReportSummaryOutput, error)
	ShowReport(ctx context.Context, filename string) (sessiondto.ReportOutput, error)
	Reindex(ctx context.Context) (sessiondto.ReindexOutput, error)
}

type strategyPort interface {
	Create(ctx context.Context, profile string, force bool) (strategydto.StrategyOutput, error)
	Show(ctx context.Context, profile string) (strategydto.StrategyOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCustomers tabID = iota
	tabMeeting
	tabMeetings
	tabReports
	tabCount
)

var tabLabels = [tabCount]string{
	"Customers", "Meeting", "Meetings", "Reports",
}

// ─── async messages ───────────────────────────────────────────────────────────

type meetingOpenedMsg struct {
	out conversationdto.SessionOutput
	err error
}

type meetingResetMsg struct {
	out conversationdto.ResetOutput
	err error
}

type strategyLoadedMsg struct {
	out     strategydto.StrategyOutput
	created bool
	err     error
}

type reindexedMsg struct {
	out sessiondto.ReindexOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Blur    key.Binding
	Reload  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":/ctrl+p", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start / resume / send")),
		Blur:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload list")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Blur},
		{k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the active
// meeting banner, the global help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	workspacePath string

	conversation conversationPort
	session      sessionPort
	strategy     strategyPort

	profView     profilesview.Model
	meetView     meetingview.Model
	meetingsView meetingsview.Model
	reportsView  reportsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	active    conversationdto.SessionOutput
	hasActive bool
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	workspacePath string,
	prompt promptPort,
	conversation conversationPort,
	session sessionPort,
	strategy strategyPort,
) Model {
	return Model{
		workspacePath: workspacePath,
		conversation:  conversation,
		session:       session,
		strategy:      strategy,
		profView:      profilesview.New(prompt),
		meetView:      meetingview.New(conversation),
		meetingsView:  meetingsview.New(session),
		reportsView:   reportsview.New(session),
		activeTab:     tabCustomers,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.profView.Init(),
		m.meetingsView.Init(),
		m.reportsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// View-owned results go to their view whichever tab is showing.
	case profilesview.ProfilesLoadedMsg, profilesview.PersonaLoadedMsg:
		var cmd tea.Cmd
		m.profView, cmd = m.profView.Update(msg)
		return m, cmd

	case meetingsview.MeetingsLoadedMsg, meetingsview.MeetingLoadedMsg:
		var cmd tea.Cmd
		m.meetingsView, cmd = m.meetingsView.Update(msg)
		return m, cmd

	case reportsview.ReportsLoadedMsg, reportsview.ReportLoadedMsg:
		var cmd tea.Cmd
		m.reportsView, cmd = m.reportsView.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var pCmd, mCmd tea.Cmd
		m.profView, pCmd = m.profView.Update(msg)
		m.meetView, mCmd = m.meetView.Update(msg)
		return m, tea.Batch(pCmd, mCmd)

	case meetingview.TurnDoneMsg:
		if msg.Err != nil {
			m.status = "turn failed: " + msg.Err.Error()
		} else {
			m.active = msg.Out.Session
			m.status = turnStatus(msg.Out)
			cmds = append(cmds, m.meetingsView.Reload())
			if msg.Out.Files.Report != "" {
				cmds = append(cmds, m.reportsView.Reload())
			}
		}
		var cmd tea.Cmd
		m.meetView, cmd = m.meetView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case meetingOpenedMsg:
		if msg.err != nil {
			m.status = "meeting failed: " + msg.err.Error()
			return m, nil
		}
		m.active = msg.out
		m.hasActive = true
		m.activeTab = tabMeeting
		m.status = withNotices("meeting with "+msg.out.Profile, msg.out.Notices)
		return m, tea.Batch(m.meetView.Load(msg.out), m.meetingsView.Reload())

	case meetingResetMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = false
		m.active = conversationdto.SessionOutput{}
		m.meetView.Clear()
		status := "meeting closed"
		if msg.out.SavedFilename != "" {
			status = "meeting saved: " + msg.out.SavedFilename
		}
		m.status = withNotices(status, msg.out.Notices)
		return m, m.meetingsView.Reload()

	case strategyLoadedMsg:
		if msg.err != nil {
			m.status = "strategy: " + msg.err.Error()
			return m, nil
		}
		m.activeTab = tabCustomers
		m.profView.SetPreview("Strategy for "+msg.out.Profile, msg.out.Content)
		if msg.created {
			m.status = fmt.Sprintf("strategy written: %s (%d meetings, %d reports)", msg.out.Path, msg.out.Meetings, msg.out.Reports)
		} else {
			m.status = "strategy: " + msg.out.Path
		}
		return m, nil

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("reindexed %d meetings", msg.out.Meetings)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// While the vendor types, only a few keys stay global.
		if m.activeTab == tabMeeting && m.meetView.Typing() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "tab":
				m.activeTab = (m.activeTab + 1) % tabCount
				return m, nil
			case "shift+tab":
				m.activeTab = (m.activeTab + tabCount - 1) % tabCount
				return m, nil
			case "ctrl+p":
				return m, m.palette.Open()
			case "esc":
				m.meetView.Blur()
				return m, nil
			}
			break
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":", "ctrl+p":
			return m, m.palette.Open()
		case "r":
			switch m.activeTab {
			case tabCustomers:
				return m, m.profView.Reload()
			case tabMeetings:
				return m, m.meetingsView.Reload()
			case tabReports:
				return m, m.reportsView.Reload()
			}
		case "enter":
			switch m.activeTab {
			case tabCustomers:
				if name, ok := m.profView.SelectedProfile(); ok {
					return m, m.startMeetingCmd(name)
				}
				return m, nil
			case tabMeetings:
				if filename, ok := m.meetingsView.SelectedFilename(); ok {
					return m, m.resumeMeetingCmd(filename)
				}
				return m, nil
			case tabMeeting:
				return m, m.meetView.Focus()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabCustomers:
		m.profView, tabCmd = m.profView.Update(msg)
	case tabMeeting:
		m.meetView, tabCmd = m.meetView.Update(msg)
	case tabMeetings:
		m.meetingsView, tabCmd = m.meetingsView.Update(msg)
	case tabReports:
		m.reportsView, tabCmd = m.reportsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabCustomers:
		return m.profView.View()
	case tabMeeting:
		return m.meetView.View()
	case tabMeetings:
		return m.meetingsView.View()
	case tabReports:
		return m.reportsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "pitch  " + strings.Join(parts, sep) + "  " + theme.Muted.Render(m.workspacePath)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		banner := "● " + m.active.Profile
		if m.active.Ended {
			banner = "○ " + m.active.Profile + " (ended)"
		}
		left = theme.Hot.Render(banner) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  ctrl+p:palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	args := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))
	selected, _ := m.profView.SelectedProfile()

	switch parts[0] {
	case "meeting:new":
		profile := args
		if profile == "" {
			profile = selected
		}
		if profile == "" {
			m.status = "usage: meeting:new <profile>"
			return m, nil
		}
		return m, m.startMeetingCmd(profile)

	case "meeting:resume":
		filename := args
		if filename == "" {
			filename, _ = m.meetingsView.SelectedFilename()
		}
		if filename == "" {
			m.status = "usage: meeting:resume <file>"
			return m, nil
		}
		return m, m.resumeMeetingCmd(filename)

	case "meeting:reset":
		if m.meetView.Busy() {
			m.status = "wait for the customer to answer"
			return m, nil
		}
		return m, m.resetMeetingCmd()

	case "meeting:report", "reports:open":
		m.activeTab = tabReports
		return m, m.reportsView.Reload()

	case "strategy:create":
		if selected == "" {
			m.status = "no customer selected"
			return m, nil
		}
		force := args == "--force"
		m.status = "generating strategy for " + selected + "…"
		return m, m.createStrategyCmd(selected, force)

	case "strategy:show":
		if selected == "" {
			m.status = "no customer selected"
			return m, nil
		}
		return m, m.showStrategyCmd(selected)

	case "reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabCustomers:
		return m.profView.Filtering()
	case tabMeetings:
		return m.meetingsView.Filtering()
	case tabReports:
		return m.reportsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.profView, _ = m.profView.Update(sz)
	m.meetView, _ = m.meetView.Update(sz)
	m.meetingsView, _ = m.meetingsView.Update(sz)
	m.reportsView, _ = m.reportsView.Update(sz)
}

func turnStatus(out conversationdto.TurnOutput) string {
	status := "customer replied"
	if out.Ended {
		status = "meeting ended"
		if out.Files.Report != "" {
			status += ": report " + out.Files.Report
		}
	}
	return withNotices(status, out.Notices)
}

func withNotices(status string, notices []string) string {
	if len(notices) == 0 {
		return status
	}
	return status + " (" + strings.Join(notices, "; ") + ")"
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startMeetingCmd(profile string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.conversation.Start(context.Background(), profile)
		return meetingOpenedMsg{out: out, err: err}
	}
}

func (m Model) resumeMeetingCmd(filename string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.conversation.Resume(context.Background(), filename)
		return meetingOpenedMsg{out: out, err: err}
	}
}

func (m Model) resetMeetingCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.conversation.Reset(context.Background())
		return meetingResetMsg{out: out, err: err}
	}
}

func (m Model) createStrategyCmd(profile string, force bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.strategy.Create(context.Background(), profile, force)
		return strategyLoadedMsg{out: out, created: true, err: err}
	}
}

func (m Model) showStrategyCmd(profile string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.strategy.Show(context.Background(), profile)
		return strategyLoadedMsg{out: out, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Reindex(context.Background())
		return reindexedMsg{out: out, err: err}
	}
}
