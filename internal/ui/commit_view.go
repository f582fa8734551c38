package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tasuku43/opencommit/internal/infra/debuglog"
)

// CommitDetail is the displayable form of an opened commit item.
type CommitDetail struct {
	URI         string
	SHA         string
	ShortSHA    string
	AuthorName  string
	AuthorEmail string
	AuthorDate  time.Time
	Subject     string
	Body        string
	Workdir     string
}

type ViewOptions struct {
	Markdown bool
	Width    int
}

// RenderCommitDetail writes a static rendering, used when stdout is not a terminal.
func RenderCommitDetail(w io.Writer, detail CommitDetail, opts ViewOptions, theme Theme, useColor bool) {
	r := NewRenderer(w, theme, useColor)
	r.Header(fmt.Sprintf("%s %s", detail.ShortSHA, detail.Subject))
	r.Blank()
	r.Section("Commit")
	r.KeyValue("sha", detail.SHA)
	r.KeyValue("author", formatAuthor(detail))
	r.KeyValue("date", formatDate(detail.AuthorDate))
	r.KeyValue("repository", detail.Workdir)
	if body := commitBody(detail, opts, useColor); body != "" {
		r.Blank()
		r.Section("Message")
		r.Block(body)
	}
}

func commitBody(detail CommitDetail, opts ViewOptions, color bool) string {
	body := strings.TrimSpace(detail.Body)
	if body == "" {
		return ""
	}
	if opts.Markdown {
		return renderMarkdown(body, opts.Width, color)
	}
	return body
}

func formatAuthor(detail CommitDetail) string {
	if detail.AuthorEmail == "" {
		return detail.AuthorName
	}
	return fmt.Sprintf("%s <%s>", detail.AuthorName, detail.AuthorEmail)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05 -0700")
}

type commitViewKeyMap struct {
	Copy key.Binding
	Quit key.Binding
}

type commitViewModel struct {
	detail   CommitDetail
	opts     ViewOptions
	keys     commitViewKeyMap
	theme    Theme
	useColor bool
	status   string
	statusOK bool
}

func newCommitViewModel(detail CommitDetail, opts ViewOptions, theme Theme, useColor bool) *commitViewModel {
	return &commitViewModel{
		detail: detail,
		opts:   opts,
		keys: commitViewKeyMap{
			Copy: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy sha")),
			Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		theme:    theme,
		useColor: useColor,
	}
}

func (m *commitViewModel) Init() tea.Cmd {
	return nil
}

func (m *commitViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		setWrapWidth(msg.Width)
		if msg.Width > 0 && msg.Width < m.opts.Width {
			m.opts.Width = msg.Width
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			method, err := copyTextToClipboard(m.detail.SHA)
			if err != nil {
				m.status = "copy failed: " + err.Error()
				m.statusOK = false
				return m, nil
			}
			debuglog.Logf(debuglog.NewTrace("view"), "copied sha via %s", method)
			m.status = "copied " + m.detail.ShortSHA
			m.statusOK = true
		}
	}
	return m, nil
}

func (m *commitViewModel) View() string {
	var b strings.Builder
	RenderCommitDetail(&b, m.detail, m.opts, m.theme, m.useColor)
	b.WriteString("\n")
	if m.status != "" {
		style := m.theme.Success
		if !m.statusOK {
			style = m.theme.Error
		}
		if m.useColor {
			b.WriteString(style.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}
	help := "y copy sha • q quit"
	if m.useColor {
		help = m.theme.Muted.Render(help)
	}
	b.WriteString(help)
	b.WriteString("\n")
	return b.String()
}
