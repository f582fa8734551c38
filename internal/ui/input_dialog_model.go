package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrPromptCanceled = errors.New("prompt canceled")

type DialogOptions struct {
	Title      string
	Label      string
	AcceptText string
	Initial    string
}

type dialogKeyMap struct {
	Accept    key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

func defaultDialogKeys() dialogKeyMap {
	return dialogKeyMap{
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type inputDialogModel struct {
	ctx      context.Context
	cancel   context.CancelFunc
	opts     DialogOptions
	dialog   *InputDialog
	input    textinput.Model
	spinner  spinner.Model
	keys     dialogKeyMap
	theme    Theme
	useColor bool
	item     Item
	err      error
}

func newInputDialogModel(ctx context.Context, request Request, opts DialogOptions, theme Theme, useColor bool) (*inputDialogModel, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type here"
	if useColor {
		ti.PlaceholderStyle = theme.Muted
	}
	if opts.Initial != "" {
		ti.SetValue(opts.Initial)
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	if useColor {
		sp.Style = theme.Accent
	}
	m := &inputDialogModel{
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		input:    ti,
		spinner:  sp,
		keys:     defaultDialogKeys(),
		theme:    theme,
		useColor: useColor,
	}
	buffer := NewTextBuffer()
	buffer.SetText(ti.Value())
	dialog, err := NewInputDialog(request, buffer, &m.input)
	if err != nil {
		cancel()
		return nil, err
	}
	m.dialog = dialog
	return m, nil
}

func (m *inputDialogModel) Init() tea.Cmd {
	return tea.Batch(m.dialog.Mount(), textinput.Blink)
}

func (m *inputDialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AcceptResultMsg:
		m.dialog.HandleAcceptResult(msg)
		if m.dialog.State() == DialogClosed {
			m.item = msg.Item
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.dialog.State() != DialogSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			// Abort any in-flight accept along with the dialog.
			m.cancel()
			m.dialog.Cancel()
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			if m.submitting() {
				return m, nil
			}
			m.dialog.Cancel()
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case key.Matches(msg, m.keys.Accept):
			if m.submitting() || !m.dialog.AcceptEnabled() {
				return m, nil
			}
			cmd := m.dialog.Accept(m.ctx)
			if cmd == nil {
				return m, nil
			}
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		if m.submitting() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.dialog.Buffer().SetText(m.input.Value())
	return m, cmd
}

// submitting covers both the dialog's own state and the host request's flag.
func (m *inputDialogModel) submitting() bool {
	return m.dialog.State() == DialogSubmitting || m.dialog.Request().InProgress()
}

func (m *inputDialogModel) View() string {
	if m.dialog.State().Terminal() {
		return ""
	}
	var b strings.Builder
	if title := strings.TrimSpace(m.opts.Title); title != "" {
		b.WriteString(m.style(title, m.theme.Header))
		b.WriteString("\n\n")
	}
	label := m.opts.Label
	if strings.TrimSpace(label) == "" {
		label = "Commit sha or ref:"
	}
	fmt.Fprintf(&b, "%s %s\n", promptLabel(m.theme, m.useColor, label), m.input.View())

	if failure := m.dialog.Failure(); failure != nil {
		b.WriteString("\n")
		b.WriteString(m.style(failure.Message, m.theme.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.buttons())
	if m.dialog.State() == DialogSubmitting {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}

	body := b.String()
	if m.useColor {
		return m.theme.Border.Render(body) + "\n"
	}
	return body + "\n"
}

func (m *inputDialogModel) buttons() string {
	acceptText := m.opts.AcceptText
	if strings.TrimSpace(acceptText) == "" {
		acceptText = "Open commit"
	}
	disabled := !m.dialog.AcceptEnabled() || m.dialog.State() == DialogSubmitting
	if !m.useColor {
		if disabled {
			return "[ Cancel ]  ( " + acceptText + " )"
		}
		return "[ Cancel ]  [ " + acceptText + " ]"
	}
	acceptStyle := m.theme.ButtonActive
	if disabled {
		acceptStyle = m.theme.Button
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.theme.Button.Render("Cancel"), " ", acceptStyle.Render(acceptText))
}

func (m *inputDialogModel) style(text string, style lipgloss.Style) string {
	if !m.useColor {
		return text
	}
	return style.Render(text)
}

func promptLabel(theme Theme, useColor bool, label string) string {
	if useColor {
		return theme.Accent.Render(label)
	}
	return label
}
