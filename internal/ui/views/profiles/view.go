package profiles

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	promptdto "pitchperfect/internal/modules/prompt/dto"
	"pitchperfect/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListProfiles(ctx context.Context) ([]promptdto.ProfileOutput, error)
	ReadPrompt(ctx context.Context, namespace, name string) (promptdto.ReadOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ProfilesLoadedMsg struct {
	Profiles []promptdto.ProfileOutput
	Err      error
}

type PersonaLoadedMsg struct {
	Name string
	Text string
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type profileItem struct {
	profile promptdto.ProfileOutput
}

func (i profileItem) Title() string { return i.profile.Name }
func (i profileItem) Description() string {
	if i.profile.Role == "" {
		return i.profile.DisplayName
	}
	return i.profile.DisplayName + " · " + i.profile.Role
}
func (i profileItem) FilterValue() string { return i.profile.Name + " " + i.profile.DisplayName }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	// heading and body back the preview pane: a persona or a strategy.
	heading string
	body    string
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Customers"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ProfilesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Customers: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Profiles))
		for i, p := range msg.Profiles {
			items[i] = profileItem{profile: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Profiles) > 0 {
			cmds = append(cmds, m.loadPersonaCmd(msg.Profiles[0].Name))
		}

	case PersonaLoadedMsg:
		if selected, ok := m.SelectedProfile(); !ok || selected != msg.Name {
			return m, nil
		}
		if msg.Err != nil {
			m.SetPreview(msg.Name, theme.Error.Render(msg.Err.Error()))
		} else {
			m.SetPreview(msg.Name, msg.Text)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if name, ok := m.SelectedProfile(); ok {
				cmds = append(cmds, m.loadPersonaCmd(name))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading customers…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Width(detailW - 2).Height(m.height - 2).Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload lists the customer profiles again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.port.ListProfiles(context.Background())
		return ProfilesLoadedMsg{Profiles: profiles, Err: err}
	}
}

// SelectedProfile returns the profile under the cursor, if any.
func (m Model) SelectedProfile() (string, bool) {
	if item, ok := m.list.SelectedItem().(profileItem); ok {
		return item.profile.Name, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SetPreview replaces the preview pane, e.g. with a generated strategy.
func (m *Model) SetPreview(heading, body string) {
	m.heading = heading
	m.body = body
	m.preview.SetContent(m.renderPreview())
	m.preview.GotoTop()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.preview.SetContent(m.renderPreview())
}

func (m Model) renderPreview() string {
	if m.heading == "" {
		return theme.Muted.Render("Select a customer to see the persona")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.heading) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Width(max(m.preview.Width-2, 10)).Render(m.body))
	sb.WriteString("\n\n" + theme.Muted.Render("enter: start meeting  :strategy:create  :strategy:show"))
	return sb.String()
}

func (m Model) loadPersonaCmd(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ReadPrompt(context.Background(), "customers", name)
		return PersonaLoadedMsg{Name: name, Text: out.Text, Err: err}
	}
}
