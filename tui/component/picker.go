package component

import (
	"github.com/charmbracelet/lipgloss"
)

// Option is one selectable entry of a Picker.
type Option struct {
	ID   string
	Name string
}

// Picker is a horizontal single-choice selector cycled with one key. It
// holds a value and nothing else; the parent decides when to cycle it.
type Picker struct {
	label    string
	options  []Option
	selected int

	labelStyle  lipgloss.Style
	activeStyle lipgloss.Style
	idleStyle   lipgloss.Style
}

// NewPicker creates a picker over the given options, first selected.
func NewPicker(label string, options []Option) Picker {
	return Picker{
		label:       label,
		options:     options,
		labelStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true),
		activeStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63")).Padding(0, 1),
		idleStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	}
}

// Cycle advances the selection, wrapping around.
func (p *Picker) Cycle() {
	if len(p.options) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.options)
}

// Select moves the selection to the option with the given id, if present.
func (p *Picker) Select(id string) {
	for i, opt := range p.options {
		if opt.ID == id {
			p.selected = i
			return
		}
	}
}

// Selected returns the current option.
func (p Picker) Selected() Option {
	if len(p.options) == 0 {
		return Option{}
	}
	return p.options[p.selected]
}

// View renders the picker on one line.
func (p Picker) View() string {
	parts := make([]string, 0, len(p.options)+1)
	parts = append(parts, p.labelStyle.Render(p.label))
	for i, opt := range p.options {
		if i == p.selected {
			parts = append(parts, p.activeStyle.Render(opt.Name))
		} else {
			parts = append(parts, p.idleStyle.Render(opt.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
