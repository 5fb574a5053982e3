package component

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ResultModel holds the scrollable answer pane. Rendering is delegated to
// the renderer package; this component only manages the viewport.
type ResultModel struct {
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewResultModel creates the answer pane with a welcome message.
func NewResultModel(welcome string) ResultModel {
	vp := viewport.New(30, 10)
	vp.SetContent(welcome)

	return ResultModel{
		viewport: vp,
		width:    30,
		height:   10,
		ready:    true,
	}
}

// Init initializes the component.
func (m ResultModel) Init() tea.Cmd {
	return nil
}

// Update handles scrolling.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	var cmd tea.Cmd

	if mouse, ok := msg.(tea.MouseMsg); ok {
		switch mouse.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			m.viewport.ScrollDown(3)
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the component.
func (m ResultModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.viewport.View()
}

// SetContent replaces the pane content and scrolls back to the top.
func (m *ResultModel) SetContent(content string) {
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// SetSize sets the component dimensions.
func (m *ResultModel) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.ready = true
}
