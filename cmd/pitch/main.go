package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pitchperfect/internal/bootstrap"
	"pitchperfect/internal/platform/config"
	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workspacePath string

	root := &cobra.Command{
		Use:           "pitch",
		Short:         "Rehearse sales pitches against simulated customers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&workspacePath, "workspace", ".", "workspace path")

	root.AddCommand(newTUICmd(&workspacePath))
	root.AddCommand(newProfilesCmd(&workspacePath))
	root.AddCommand(newMeetCmd(&workspacePath))
	root.AddCommand(newMeetingsCmd(&workspacePath))
	root.AddCommand(newReportsCmd(&workspacePath))
	root.AddCommand(newHistoryCmd(&workspacePath))
	root.AddCommand(newReindexCmd(&workspacePath))
	root.AddCommand(newStrategyCmd(&workspacePath))
	return root
}

func loadApp(workspacePath string) (*bootstrap.App, error) {
	cfg, err := config.Load(workspacePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(cfg.LogLevel, os.Stderr))
}

func newTUICmd(workspacePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the meeting room terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(*workspacePath)
			if err != nil {
				return err
			}
			// The TUI owns the terminal, so diagnostics go to a file.
			if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}
			logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()

			app, err := bootstrap.New(cfg, logging.New(cfg.LogLevel, logFile))
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(*workspacePath, app)
		},
	}
}

func newProfilesCmd(workspacePath *string) *cobra.Command {
	profiles := &cobra.Command{Use: "profiles", Short: "Customer profile commands"}

	profiles.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List customer profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.PromptCLI.ListProfiles(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no profiles")
				return nil
			}
			for _, p := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Name, p.DisplayName, p.Role)
			}
			return nil
		},
	})

	profiles.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a customer persona",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PromptCLI.ReadPrompt(context.Background(), "customers", args[0])
			if err != nil {
				return err
			}
			if !out.Found {
				return fmt.Errorf("%w: customer %q", apperrors.ErrPromptNotFound, args[0])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	})
	return profiles
}

func newMeetCmd(workspacePath *string) *cobra.Command {
	var profile string
	meet := &cobra.Command{
		Use:   "meet --profile <name>",
		Short: "Start a meeting and converse line by line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(profile) == "" {
				return fmt.Errorf("--profile is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			started, err := app.ConversationCLI.Start(ctx, profile)
			if err != nil {
				return err
			}
			return runMeeting(ctx, cmd, app, started)
		},
	}
	meet.Flags().StringVar(&profile, "profile", "", "customer profile name")
	return meet
}

func newMeetingsCmd(workspacePath *string) *cobra.Command {
	meetings := &cobra.Command{Use: "meetings", Short: "Stored meeting commands"}

	meetings.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored meetings, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.SessionCLI.ListMeetings(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no meetings")
				return nil
			}
			for _, m := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tturns=%d evaluations=%d\n", m.Filename, m.CustomerProfile, m.MeetingStart, m.Turns, m.Evaluations)
			}
			return nil
		},
	})

	meetings.AddCommand(&cobra.Command{
		Use:   "show <file>",
		Short: "Print a stored meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.ShowMeeting(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "customer: %s\nstarted: %s\nfile: %s\n\n", out.Record.CustomerProfile, out.Record.MeetingStart, out.Filename)
			for _, entry := range out.Record.Conversation {
				_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", entry.Timestamp, speaker(entry.Role), entry.Content)
			}
			for i, evaluation := range out.Record.VendorEvaluations {
				_, _ = fmt.Fprintf(w, "\n--- Evaluation #%d ---\n%s\n", i+1, evaluation)
			}
			return nil
		},
	})

	meetings.AddCommand(&cobra.Command{
		Use:   "resume <file>",
		Short: "Resume a stored meeting line by line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			resumed, err := app.ConversationCLI.Resume(ctx, args[0])
			if err != nil {
				return err
			}
			return runMeeting(ctx, cmd, app, resumed)
		},
	})
	return meetings
}

func newReportsCmd(workspacePath *string) *cobra.Command {
	reports := &cobra.Command{Use: "reports", Short: "Meeting evaluation report commands"}

	reports.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List meeting evaluation reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.SessionCLI.ListReports(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reports")
				return nil
			}
			for _, r := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Filename, r.Customer, r.Token)
			}
			return nil
		},
	})

	reports.AddCommand(&cobra.Command{
		Use:   "show <file>",
		Short: "Print a meeting evaluation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.ShowReport(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "customer: %s\n\n%s\n", out.Customer, out.Text)
			return nil
		},
	})
	return reports
}

func newHistoryCmd(workspacePath *string) *cobra.Command {
	var customer string
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "Query the meeting index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.SessionCLI.History(context.Background(), customer, limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no meetings indexed (run `pitch reindex` after copying meeting files)")
				return nil
			}
			for _, h := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tturns=%d evaluations=%d\n", h.MeetingStart, h.Customer, h.Filename, h.Turns, h.Evaluations)
			}
			return nil
		},
	}
	history.Flags().StringVar(&customer, "customer", "", "only meetings with this customer")
	history.Flags().IntVar(&limit, "limit", 20, "maximum number of meetings")
	return history
}

func newReindexCmd(workspacePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite meeting index from meeting files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d meetings\n", out.Meetings)
			return nil
		},
	}
}

func newStrategyCmd(workspacePath *string) *cobra.Command {
	strategy := &cobra.Command{Use: "strategy", Short: "Sales strategy commands"}

	var createProfile string
	var force bool
	create := &cobra.Command{
		Use:   "create --profile <name>",
		Short: "Generate a sales strategy from past meetings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(createProfile) == "" {
				return fmt.Errorf("--profile is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StrategyCLI.Create(context.Background(), createProfile, force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "strategy written: %s meetings=%d reports=%d model=%s\n", out.Path, out.Meetings, out.Reports, out.Model)
			return nil
		},
	}
	create.Flags().StringVar(&createProfile, "profile", "", "customer profile name")
	create.Flags().BoolVar(&force, "force", false, "overwrite an existing strategy")

	var showProfile string
	show := &cobra.Command{
		Use:   "show --profile <name>",
		Short: "Print the stored strategy for a customer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showProfile) == "" {
				return fmt.Errorf("--profile is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StrategyCLI.Show(context.Background(), showProfile)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}
	show.Flags().StringVar(&showProfile, "profile", "", "customer profile name")

	strategy.AddCommand(create, show)
	return strategy
}
