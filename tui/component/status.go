package component

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clinassist/monitor"
	"clinassist/pubsub"
)

var (
	healthUpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	healthDownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// StatusModel shows the spinner, the current activity text, and the
// backend reachability reported by the health monitor.
type StatusModel struct {
	spinner spinner.Model
	running bool
	text    string
	health  string
	healthy bool
	probed  bool
	width   int
}

// NewStatusModel creates the status bar.
func NewStatusModel() StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Jump
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return StatusModel{
		spinner: s,
		text:    "Ready",
	}
}

// Init initializes the component; the spinner starts on demand.
func (m StatusModel) Init() tea.Cmd {
	return nil
}

// Update advances the spinner and absorbs health monitor notices.
func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[monitor.Notice]:
		m.probed = true
		m.healthy = msg.Payload.Reachable
		m.health = msg.Payload.Detail
		return m, nil
	}

	if m.running {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status bar.
func (m StatusModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 0)

	content := m.text
	if m.running {
		content = fmt.Sprintf("%s %s", m.spinner.View(), m.text)
	}

	if m.probed {
		badge := healthUpStyle.Render("● " + m.health)
		if !m.healthy {
			badge = healthDownStyle.Render("● " + m.health)
		}
		content = fmt.Sprintf("%s  %s", content, badge)
	}

	keys := hintStyle.Render("enter submit · tab domain · shift+tab graph type · ctrl+g graph · ctrl+y/ctrl+n feedback · esc quit")
	return style.Render(content + "\n" + keys)
}

// Start begins the working indicator with the given activity text.
func (m StatusModel) Start(text string) (StatusModel, tea.Cmd) {
	m.running = true
	m.text = text
	return m, m.spinner.Tick
}

// Stop ends the working indicator and shows the given text.
func (m *StatusModel) Stop(text string) {
	m.running = false
	m.text = text
}

// SetText sets the status text without touching the spinner.
func (m *StatusModel) SetText(text string) {
	m.text = text
}

// SetWidth sets the component width.
func (m *StatusModel) SetWidth(width int) {
	m.width = width
}

// IsRunning reports whether the spinner is active.
func (m StatusModel) IsRunning() bool {
	return m.running
}
