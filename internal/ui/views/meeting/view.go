package meeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	conversationdto "pitchperfect/internal/modules/conversation/dto"
	"pitchperfect/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Submit(ctx context.Context, text string) (conversationdto.TurnOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TurnDoneMsg carries the outcome of one submitted vendor message.
type TurnDoneMsg struct {
	Text string
	Out  conversationdto.TurnOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the meeting room: the transcript, the evaluation pane and the
// vendor's input line.
type Model struct {
	port        Port
	transcript  viewport.Model
	evaluations viewport.Model
	input       textinput.Model
	spinner     spinner.Model

	session conversationdto.SessionOutput
	// pending is the vendor message awaiting a reply. It is shown but not
	// part of the session until the turn completes.
	pending string
	report  string
	failure string
	waiting bool
	width   int
	height  int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "pitch to the customer…  (\"freeze and report\" ends the meeting)"
	ti.CharLimit = 4000
	ti.Prompt = "› "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:        port,
		transcript:  viewport.New(0, 0),
		evaluations: viewport.New(0, 0),
		input:       ti,
		spinner:     sp,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()

	case TurnDoneMsg:
		m.waiting = false
		m.pending = ""
		if msg.Err != nil {
			// The session did not change; give the text back for a retry.
			m.failure = msg.Err.Error()
			m.input.SetValue(msg.Text)
			m.input.CursorEnd()
			m.refresh()
			return m, m.input.Focus()
		}
		m.failure = ""
		m.session = msg.Out.Session
		if msg.Out.Ended {
			m.report = msg.Out.Report
			m.input.Blur()
		}
		m.refresh()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, m.submit()
		}
	}

	// Keys either type or scroll, never both.
	var cmd tea.Cmd
	if m.input.Focused() {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.transcript, cmd = m.transcript.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.session.Token == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No meeting. Pick a customer and press enter, or :meeting:new <profile>"))
	}

	chatW, evalW := m.columns()
	header := theme.Title.Render("Meeting with "+m.session.Profile) + "  " + theme.Muted.Render(m.session.Token)
	if m.session.Ended {
		header += "  " + theme.Hot.Render("ended")
	}

	var footer string
	switch {
	case m.waiting:
		footer = m.spinner.View() + theme.Muted.Render(" the customer is thinking…")
	case m.session.Ended:
		footer = theme.Muted.Render("meeting ended: :meeting:new or :meeting:resume to continue")
	default:
		footer = m.input.View()
	}
	if m.failure != "" {
		footer = theme.Error.Render("! "+m.failure) + "\n" + footer
	}

	chat := theme.PaneActive.Width(chatW - 2).Render(m.transcript.View())
	evals := theme.Pane.Width(evalW - 2).Render(m.evaluations.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, evals)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Load shows session and focuses the input unless the meeting has ended.
func (m *Model) Load(session conversationdto.SessionOutput) tea.Cmd {
	m.session = session
	m.pending = ""
	m.report = ""
	m.failure = ""
	m.waiting = false
	m.input.SetValue("")
	m.refresh()
	m.transcript.GotoBottom()
	if session.Ended {
		m.input.Blur()
		return nil
	}
	return m.input.Focus()
}

// Clear drops the displayed meeting.
func (m *Model) Clear() {
	*m = Model{
		port:        m.port,
		transcript:  m.transcript,
		evaluations: m.evaluations,
		input:       m.input,
		spinner:     m.spinner,
		width:       m.width,
		height:      m.height,
	}
	m.input.SetValue("")
	m.input.Blur()
	m.refresh()
}

// Typing reports whether key presses belong to the input line.
func (m Model) Typing() bool {
	return m.input.Focused()
}

// Focus returns keys to the input line of an open meeting.
func (m *Model) Focus() tea.Cmd {
	if m.session.Token == "" || m.session.Ended {
		return nil
	}
	return m.input.Focus()
}

func (m *Model) Blur() { m.input.Blur() }

// Busy reports whether a turn is in flight.
func (m Model) Busy() bool { return m.waiting }

// Report returns the meeting evaluation report shown after the meeting ended.
func (m Model) Report() string { return m.report }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting || m.session.Token == "" || m.session.Ended {
		return nil
	}
	m.pending = text
	m.failure = ""
	m.waiting = true
	m.input.SetValue("")
	m.refresh()
	m.transcript.GotoBottom()
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Submit(context.Background(), text)
		return TurnDoneMsg{Text: text, Out: out, Err: err}
	})
}

func (m Model) columns() (int, int) {
	evalW := m.width * 35 / 100
	return m.width - evalW, evalW
}

func (m *Model) resize() {
	chatW, evalW := m.columns()
	// header 1 line, footer up to 2 lines, pane borders 2 lines.
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	m.transcript.Width = chatW - 4
	m.transcript.Height = h
	m.evaluations.Width = evalW - 4
	m.evaluations.Height = h
	m.input.Width = m.width - 4
}

func (m *Model) refresh() {
	m.transcript.SetContent(m.renderTranscript())
	m.transcript.GotoBottom()
	m.evaluations.SetContent(m.renderEvaluations())
	m.evaluations.GotoBottom()
}

func (m Model) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(m.transcript.Width-2, 10))
	var sb strings.Builder
	for _, msg := range m.session.Messages {
		switch msg.Role {
		case "user":
			sb.WriteString(theme.Vendor.Render("You") + "\n" + wrap.Render(msg.Content) + "\n\n")
		case "assistant":
			sb.WriteString(theme.Customer.Render(m.session.Profile) + "\n" + wrap.Render(msg.Content) + "\n\n")
		}
	}
	if m.pending != "" {
		sb.WriteString(theme.Vendor.Render("You") + "\n" + wrap.Render(m.pending) + "\n\n")
	}
	if m.report != "" {
		sb.WriteString(theme.Hot.Render("Meeting Evaluation Report") + "\n\n" + wrap.Render(m.report) + "\n")
	}
	if sb.Len() == 0 {
		return theme.Muted.Render("Open with your first pitch.")
	}
	return sb.String()
}

func (m Model) renderEvaluations() string {
	if len(m.session.Evaluations) == 0 {
		return theme.Muted.Render("Evaluations of each message appear here.")
	}
	wrap := lipgloss.NewStyle().Width(max(m.evaluations.Width-2, 10))
	var sb strings.Builder
	for i, e := range m.session.Evaluations {
		sb.WriteString(theme.Title.Render(fmt.Sprintf("Evaluation #%d", i+1)) + "\n" + wrap.Render(e) + "\n\n")
	}
	return sb.String()
}
