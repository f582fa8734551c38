package ui

import tea "github.com/charmbracelet/bubbletea"

type Focusable interface {
	Focus() tea.Cmd
}

// AutoFocus gives its target keyboard focus once, no matter how often it is triggered.
type AutoFocus struct {
	target    Focusable
	triggered bool
}

func NewAutoFocus(target Focusable) *AutoFocus {
	return &AutoFocus{target: target}
}

func (a *AutoFocus) Trigger() tea.Cmd {
	if a == nil || a.triggered || a.target == nil {
		return nil
	}
	a.triggered = true
	return a.target.Focus()
}

func (a *AutoFocus) Triggered() bool {
	return a != nil && a.triggered
}
