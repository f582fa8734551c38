package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func testDetail() CommitDetail {
	return CommitDetail{
		URI:         "opencommit://commit-detail?workdir=%2Frepo&sha=HEAD",
		SHA:         "0123456789abcdef0123456789abcdef01234567",
		ShortSHA:    "01234567",
		AuthorName:  "Alice",
		AuthorEmail: "alice@example.com",
		AuthorDate:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Subject:     "Fix parser",
		Body:        "Handle empty input.",
		Workdir:     "/repo",
	}
}

func TestRenderCommitDetailPlain(t *testing.T) {
	var buf bytes.Buffer
	RenderCommitDetail(&buf, testDetail(), ViewOptions{Width: 80}, DefaultTheme(), false)
	out := buf.String()
	for _, want := range []string{
		"01234567 Fix parser",
		"sha: 0123456789abcdef0123456789abcdef01234567",
		"author: Alice <alice@example.com>",
		"date: 2024-03-01 12:00:00 +0000",
		"repository: /repo",
		"Handle empty input.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommitDetailOmitsEmptyBody(t *testing.T) {
	detail := testDetail()
	detail.Body = "\n"
	var buf bytes.Buffer
	RenderCommitDetail(&buf, detail, ViewOptions{}, DefaultTheme(), false)
	if strings.Contains(buf.String(), "Message") {
		t.Fatalf("unexpected message section:\n%s", buf.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := renderMarkdown("", 40, true); got != "" {
		t.Fatalf("renderMarkdown(empty) = %q", got)
	}
	got := renderMarkdown("# Title\n\nSome text", 40, false)
	if !strings.Contains(got, "Some text") || strings.Contains(got, "\x1b[") {
		t.Fatalf("renderMarkdown(plain) = %q", got)
	}
	if colored := renderMarkdown("Some text", 40, true); !strings.Contains(ansi.Strip(colored), "Some text") {
		t.Fatalf("renderMarkdown(color) = %q", colored)
	}
}

func TestCommitViewCopyAndQuit(t *testing.T) {
	var copied string
	swapClipboard(t, func(text string) error { copied = text; return nil }, func(string) error { return nil })

	m := newCommitViewModel(testDetail(), ViewOptions{Width: 80}, DefaultTheme(), false)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if copied != testDetail().SHA {
		t.Fatalf("copied = %q", copied)
	}
	if !strings.Contains(m.View(), "copied 01234567") {
		t.Fatalf("view missing status:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestCommitViewCopyFailure(t *testing.T) {
	swapClipboard(t, func(string) error { return errors.New("no xclip") }, func(string) error { return errors.New("no tty") })
	m := newCommitViewModel(testDetail(), ViewOptions{}, DefaultTheme(), false)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if !strings.Contains(m.View(), "copy failed") {
		t.Fatalf("view missing failure:\n%s", m.View())
	}
}
