package meetings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "pitchperfect/internal/modules/session/dto"
	"pitchperfect/internal/ui/theme"
)

type Port interface {
	ListMeetings(ctx context.Context) ([]sessiondto.MeetingSummaryOutput, error)
	ShowMeeting(ctx context.Context, filename string) (sessiondto.MeetingOutput, error)
}

type MeetingsLoadedMsg struct {
	Meetings []sessiondto.MeetingSummaryOutput
	Err      error
}

type MeetingLoadedMsg struct {
	Meeting sessiondto.MeetingOutput
	Err     error
}

type meetingItem struct {
	summary sessiondto.MeetingSummaryOutput
}

func (i meetingItem) Title() string { return i.summary.CustomerProfile }
func (i meetingItem) Description() string {
	return fmt.Sprintf("%s  %d turns  %d evaluations", i.summary.MeetingStart, i.summary.Turns, i.summary.Evaluations)
}
func (i meetingItem) FilterValue() string { return i.summary.CustomerProfile + " " + i.summary.MeetingStart }

// Model lists stored meetings and previews the selected transcript.
type Model struct {
	port    Port
	list    list.Model
	preview viewport.Model
	current sessiondto.MeetingOutput
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Meetings"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, preview: vp}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case MeetingsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Meetings: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Meetings"
		items := make([]list.Item, len(msg.Meetings))
		for i, s := range msg.Meetings {
			items[i] = meetingItem{summary: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Meetings) > 0 {
			cmds = append(cmds, m.loadMeetingCmd(msg.Meetings[0].Filename))
		} else {
			m.current = sessiondto.MeetingOutput{}
			m.preview.SetContent(m.renderTranscript())
		}

	case MeetingLoadedMsg:
		if msg.Err != nil {
			m.preview.SetContent(theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		m.current = msg.Meeting
		m.preview.SetContent(m.renderTranscript())
		m.preview.GotoTop()
	}

	var lCmd tea.Cmd
	prevIdx := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		if filename, ok := m.SelectedFilename(); ok {
			cmds = append(cmds, m.loadMeetingCmd(filename))
		}
	}

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload lists the meeting files again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.ListMeetings(context.Background())
		return MeetingsLoadedMsg{Meetings: items, Err: err}
	}
}

// SelectedFilename returns the meeting file under the cursor, if any.
func (m Model) SelectedFilename() (string, bool) {
	if item, ok := m.list.SelectedItem().(meetingItem); ok {
		return item.summary.Filename, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.preview.Width = m.width - listW - 4
	m.preview.Height = m.height - 4
	m.preview.SetContent(m.renderTranscript())
}

func (m Model) renderTranscript() string {
	r := m.current.Record
	if m.current.Filename == "" {
		return theme.Muted.Render("No meeting selected")
	}
	wrap := lipgloss.NewStyle().Width(max(m.preview.Width-2, 10))
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.CustomerProfile) + "  " + theme.Muted.Render(r.MeetingStart) + "\n\n")
	for _, entry := range r.Conversation {
		label := theme.Vendor.Render("You")
		if entry.Role == "assistant" {
			label = theme.Customer.Render("Customer")
		}
		sb.WriteString(label + "\n" + wrap.Render(entry.Content) + "\n\n")
	}
	if len(r.VendorEvaluations) > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d evaluations stored", len(r.VendorEvaluations))) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("enter: resume meeting"))
	return sb.String()
}

func (m Model) loadMeetingCmd(filename string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ShowMeeting(context.Background(), filename)
		return MeetingLoadedMsg{Meeting: out, Err: err}
	}
}
