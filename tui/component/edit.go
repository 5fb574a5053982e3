package component

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitMsg is emitted when the user submits the question editor.
type SubmitMsg struct {
	Value string
}

// EditModel wraps the question editor. The text is kept after submission
// so it stays editable and the visualization lane can read the live value.
type EditModel struct {
	textarea textarea.Model
	width    int
}

// NewEditModel creates the question editor.
func NewEditModel() EditModel {
	ta := textarea.New()
	ta.Placeholder = "e.g., What are the symptoms of COVID-19?"
	ta.Focus()

	ta.Prompt = "> "
	ta.CharLimit = 500

	ta.SetWidth(30)
	ta.SetHeight(2)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	// Enter submits instead of inserting a newline
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return EditModel{
		textarea: ta,
		width:    30,
	}
}

// Init initializes the component.
func (m EditModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input. Enter emits SubmitMsg with the current value; the
// editor is deliberately not cleared so the question stays editable.
func (m EditModel) Update(msg tea.Msg) (EditModel, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := m.textarea.Value()
		return m, func() tea.Msg {
			return SubmitMsg{Value: value}
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the component.
func (m *EditModel) View() string {
	return m.textarea.View()
}

// Value returns the live editor text.
func (m *EditModel) Value() string {
	return m.textarea.Value()
}

// SetWidth sets the component width.
func (m *EditModel) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width)
}

// Height returns the component height.
func (m *EditModel) Height() int {
	return m.textarea.Height()
}
