package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pitchperfect/internal/bootstrap"
	conversationdto "pitchperfect/internal/modules/conversation/dto"
	apperrors "pitchperfect/internal/platform/errors"
)

const replHelp = `type your pitch and press enter
  "freeze and report"  end the meeting and print the evaluation report
  /reset               save and leave the meeting
  /help                show this help`

// runMeeting drives the active meeting from stdin until it ends, the
// vendor resets, or input runs out. Leaving early saves the meeting.
func runMeeting(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, started conversationdto.SessionOutput) error {
	w := cmd.OutOrStdout()
	printNotices(cmd.ErrOrStderr(), started.Notices)
	_, _ = fmt.Fprintf(w, "meeting with %s (%s)\n%s\n\n", started.Profile, started.Token, replHelp)
	for _, m := range started.Messages {
		if m.Role == "system" {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", speaker(m.Role), m.Content)
	}
	if started.Ended {
		_, _ = fmt.Fprintln(w, "this meeting has ended")
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		_, _ = fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/help":
			_, _ = fmt.Fprintln(w, replHelp)
			continue
		case "/reset":
			return leaveMeeting(ctx, cmd, app)
		}

		out, err := app.ConversationCLI.Submit(ctx, line)
		if err != nil {
			if errors.Is(err, apperrors.ErrConversationEnded) || errors.Is(err, apperrors.ErrNoActiveSession) {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			continue
		}
		printNotices(cmd.ErrOrStderr(), out.Notices)
		if out.Evaluation != "" {
			_, _ = fmt.Fprintf(w, "\n[evaluation]\n%s\n\n", out.Evaluation)
		}
		if out.Ended {
			_, _ = fmt.Fprintf(w, "\n=== Meeting Evaluation Report ===\n%s\n", out.Report)
			printArtifacts(w, out.Files)
			return nil
		}
		_, _ = fmt.Fprintf(w, "customer: %s\n", out.Reply)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return leaveMeeting(ctx, cmd, app)
}

func leaveMeeting(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
	out, err := app.ConversationCLI.Reset(ctx)
	if err != nil {
		return err
	}
	printNotices(cmd.ErrOrStderr(), out.Notices)
	if out.SavedFilename != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nmeeting saved: %s\n", out.SavedFilename)
	}
	return nil
}

func printNotices(w io.Writer, notices []string) {
	for _, n := range notices {
		_, _ = fmt.Fprintf(w, "notice: %s\n", n)
	}
}

func printArtifacts(w io.Writer, files conversationdto.Artifacts) {
	for _, name := range []string{files.Meeting, files.Evaluations, files.Report} {
		if name != "" {
			_, _ = fmt.Fprintf(w, "saved: %s\n", name)
		}
	}
}

func speaker(role string) string {
	switch role {
	case "user":
		return "you"
	case "assistant":
		return "customer"
	default:
		return role
	}
}
