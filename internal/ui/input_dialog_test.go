package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/tasuku43/opencommit/internal/infra/gitcmd"
)

type fakeItem struct {
	uri string
}

func (i fakeItem) URI() string   { return i.uri }
func (i fakeItem) Title() string { return i.uri }

type fakeRequest struct {
	ctx      context.Context
	texts    []string
	item     Item
	err      error
	canceled int
}

func (r *fakeRequest) Accept(ctx context.Context, text string) (Item, error) {
	r.ctx = ctx
	r.texts = append(r.texts, text)
	return r.item, r.err
}

func (r *fakeRequest) Cancel()          { r.canceled++ }
func (r *fakeRequest) InProgress() bool { return false }
func (r *fakeRequest) Err() error       { return r.err }

func newTestDialog(t *testing.T, req Request) (*InputDialog, *countingFocus) {
	t.Helper()
	focus := &countingFocus{}
	d, err := NewInputDialog(req, NewTextBuffer(), focus)
	if err != nil {
		t.Fatalf("NewInputDialog: %v", err)
	}
	t.Cleanup(d.Unmount)
	return d, focus
}

func TestNewInputDialogRequiresRequest(t *testing.T) {
	if _, err := NewInputDialog(nil, NewTextBuffer(), nil); !errors.Is(err, ErrNilRequest) {
		t.Fatalf("err = %v, want ErrNilRequest", err)
	}
}

func TestInputDialogAcceptEnabledTracksBuffer(t *testing.T) {
	d, _ := newTestDialog(t, &fakeRequest{})
	d.Mount()

	cases := []struct {
		text string
		want bool
	}{
		{text: "", want: false},
		{text: "H", want: true},
		{text: "HEAD", want: true},
		{text: " ", want: true},
		{text: "", want: false},
	}
	for _, tc := range cases {
		d.Buffer().SetText(tc.text)
		if got := d.AcceptEnabled(); got != tc.want {
			t.Fatalf("AcceptEnabled after %q = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestInputDialogRendersOnlyOnFlip(t *testing.T) {
	d, _ := newTestDialog(t, &fakeRequest{})
	d.Mount()

	for _, text := range []string{"a", "ab", "abc"} {
		d.Buffer().SetText(text)
	}
	if d.Renders() != 1 {
		t.Fatalf("Renders = %d, want 1", d.Renders())
	}
	d.Buffer().SetText("")
	if d.Renders() != 2 {
		t.Fatalf("Renders = %d, want 2", d.Renders())
	}
	if d.State() != DialogEditing {
		t.Fatalf("State = %s, want editing", d.State())
	}
}

func TestInputDialogAcceptEmptyIsNoop(t *testing.T) {
	req := &fakeRequest{}
	d, _ := newTestDialog(t, req)
	d.Mount()

	if cmd := d.Accept(context.Background()); cmd != nil {
		t.Fatalf("expected nil command for empty buffer")
	}
	if len(req.texts) != 0 {
		t.Fatalf("request called with %v", req.texts)
	}
	if d.State() != DialogEditing {
		t.Fatalf("State = %s, want editing", d.State())
	}
}

func TestInputDialogAcceptPassesExactText(t *testing.T) {
	req := &fakeRequest{item: fakeItem{uri: "opencommit://x"}}
	d, _ := newTestDialog(t, req)
	d.Mount()
	d.Buffer().SetText("  HEAD~1 ")

	cmd := d.Accept(context.Background())
	if cmd == nil {
		t.Fatalf("expected accept command")
	}
	if d.State() != DialogSubmitting {
		t.Fatalf("State = %s, want submitting", d.State())
	}
	if again := d.Accept(context.Background()); again != nil {
		t.Fatalf("second accept while submitting should be ignored")
	}

	msg, ok := cmd().(AcceptResultMsg)
	if !ok {
		t.Fatalf("expected AcceptResultMsg")
	}
	if len(req.texts) != 1 || req.texts[0] != "  HEAD~1 " {
		t.Fatalf("request texts = %q", req.texts)
	}

	d.HandleAcceptResult(msg)
	if d.State() != DialogClosed {
		t.Fatalf("State = %s, want closed", d.State())
	}
}

func TestInputDialogMountFocusesOnce(t *testing.T) {
	d, focus := newTestDialog(t, &fakeRequest{})
	d.Mount()
	d.Mount()
	if focus.calls != 1 {
		t.Fatalf("Focus calls = %d, want 1", focus.calls)
	}
	if !d.Focused() {
		t.Fatalf("expected Focused")
	}
}

func TestInputDialogUnmountReleasesSubscription(t *testing.T) {
	buf := NewTextBuffer()
	d, err := NewInputDialog(&fakeRequest{}, buf, nil)
	if err != nil {
		t.Fatalf("NewInputDialog: %v", err)
	}
	if buf.ListenerCount() != 1 {
		t.Fatalf("ListenerCount = %d, want 1", buf.ListenerCount())
	}

	d.Unmount()
	d.Unmount()
	if buf.ListenerCount() != 0 {
		t.Fatalf("ListenerCount after unmount = %d, want 0", buf.ListenerCount())
	}
	buf.SetText("HEAD")
	if d.AcceptEnabled() {
		t.Fatalf("unmounted dialog should not observe the buffer")
	}
}

func TestInputDialogFailureKeepsDialogOpen(t *testing.T) {
	gitErr := &gitcmd.Error{
		Kind:        gitcmd.KindGit,
		Code:        gitcmd.CodeUnknownRevision,
		Args:        []string{"log", "nope"},
		UserMessage: "There is no commit associated with that reference.",
	}
	req := &fakeRequest{err: gitErr}
	d, _ := newTestDialog(t, req)
	d.Mount()
	d.Buffer().SetText("nope")

	d.HandleAcceptResult(d.Accept(context.Background())().(AcceptResultMsg))

	if d.State() != DialogReady {
		t.Fatalf("State = %s, want ready", d.State())
	}
	failure := d.Failure()
	if failure == nil {
		t.Fatalf("expected failure")
	}
	if failure.Message != "There is no commit associated with that reference." {
		t.Fatalf("Message = %q", failure.Message)
	}
	if failure.Code != 128 {
		t.Fatalf("Code = %d, want 128", failure.Code)
	}
	if d.Buffer().Text() != "nope" || !d.AcceptEnabled() {
		t.Fatalf("buffer or enablement changed after failure")
	}

	req.err = nil
	req.item = fakeItem{uri: "opencommit://ok"}
	d.HandleAcceptResult(d.Accept(context.Background())().(AcceptResultMsg))
	if d.State() != DialogClosed || d.Failure() != nil {
		t.Fatalf("retry did not close: state=%s failure=%v", d.State(), d.Failure())
	}
	if len(req.texts) != 2 {
		t.Fatalf("request calls = %d, want 2", len(req.texts))
	}
}

func TestInputDialogCancel(t *testing.T) {
	req := &fakeRequest{}
	d, _ := newTestDialog(t, req)
	d.Mount()
	d.Buffer().SetText("HEAD")
	d.Cancel()

	if req.canceled != 1 {
		t.Fatalf("Cancel calls = %d, want 1", req.canceled)
	}
	if d.State() != DialogCancelled {
		t.Fatalf("State = %s, want cancelled", d.State())
	}
	if cmd := d.Accept(context.Background()); cmd != nil {
		t.Fatalf("accept after cancel should be ignored")
	}
}
