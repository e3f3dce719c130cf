package reports

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "pitchperfect/internal/modules/session/dto"
	"pitchperfect/internal/ui/theme"
)

type Port interface {
	ListReports(ctx context.Context) ([]sessiondto.ReportSummaryOutput, error)
	ShowReport(ctx context.Context, filename string) (sessiondto.ReportOutput, error)
}

type ReportsLoadedMsg struct {
	Reports []sessiondto.ReportSummaryOutput
	Err     error
}

type ReportLoadedMsg struct {
	Report sessiondto.ReportOutput
	Err    error
}

type reportItem struct {
	summary sessiondto.ReportSummaryOutput
}

func (i reportItem) Title() string       { return i.summary.Customer }
func (i reportItem) Description() string { return i.summary.Token }
func (i reportItem) FilterValue() string { return i.summary.Customer }

// Model lists meeting evaluation reports and shows the selected one.
type Model struct {
	port   Port
	list   list.Model
	body   viewport.Model
	report sessiondto.ReportOutput
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Reports"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, list: l, body: vp}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 3 / 10
		m.list.SetSize(listW, m.height)
		m.body.Width = m.width - listW - 4
		m.body.Height = m.height - 4
		m.body.SetContent(m.render())

	case ReportsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Reports: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Reports"
		items := make([]list.Item, len(msg.Reports))
		for i, r := range msg.Reports {
			items[i] = reportItem{summary: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Reports) > 0 {
			cmds = append(cmds, m.loadReportCmd(msg.Reports[0].Filename))
		}

	case ReportLoadedMsg:
		if msg.Err != nil {
			m.body.SetContent(theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		m.report = msg.Report
		m.body.SetContent(m.render())
		m.body.GotoTop()
	}

	var lCmd tea.Cmd
	prevIdx := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		if item, ok := m.list.SelectedItem().(reportItem); ok {
			cmds = append(cmds, m.loadReportCmd(item.summary.Filename))
		}
	}

	var vCmd tea.Cmd
	m.body, vCmd = m.body.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 3 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	bodyPane := theme.Pane.Width(m.width - listW - 2).Height(m.height - 2).Render(m.body.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, bodyPane)
}

// Reload lists the report files again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.ListReports(context.Background())
		return ReportsLoadedMsg{Reports: items, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) render() string {
	if m.report.Filename == "" {
		return theme.Muted.Render("No report selected")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Meeting Evaluation: "+m.report.Customer) + "\n")
	sb.WriteString(theme.Muted.Render(m.report.Filename) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Width(max(m.body.Width-2, 10)).Render(m.report.Text))
	return sb.String()
}

func (m Model) loadReportCmd(filename string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ShowReport(context.Background(), filename)
		return ReportLoadedMsg{Report: out, Err: err}
	}
}
