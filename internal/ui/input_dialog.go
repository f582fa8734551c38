package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type DialogState int

const (
	DialogCreated DialogState = iota
	// DialogEditing and DialogReady differ only in whether accept is enabled.
	DialogEditing
	DialogReady
	DialogSubmitting
	DialogCancelled
	DialogClosed
)

func (s DialogState) String() string {
	switch s {
	case DialogCreated:
		return "created"
	case DialogEditing:
		return "editing"
	case DialogReady:
		return "ready"
	case DialogSubmitting:
		return "submitting"
	case DialogCancelled:
		return "cancelled"
	case DialogClosed:
		return "closed"
	default:
		return "unknown"
	}
}

func (s DialogState) Terminal() bool {
	return s == DialogCancelled || s == DialogClosed
}

// AcceptResultMsg carries the outcome of Request.Accept back to the event loop.
type AcceptResultMsg struct {
	Item Item
	Err  error
}

// InputDialog tracks a single text field against a pending Request: it keeps
// accept enablement in sync with the buffer, focuses the field once, and
// forwards accept/cancel to the request.
type InputDialog struct {
	request       Request
	buffer        *TextBuffer
	sub           *Subscription
	autofocus     *AutoFocus
	acceptEnabled bool
	state         DialogState
	failure       *FailureDescriptor
	// renders counts displayed-state changes.
	renders int
}

// NewInputDialog subscribes to buffer changes; callers must pair it with Unmount.
func NewInputDialog(request Request, buffer *TextBuffer, focus Focusable) (*InputDialog, error) {
	if request == nil {
		return nil, ErrNilRequest
	}
	if buffer == nil {
		buffer = NewTextBuffer()
	}
	d := &InputDialog{
		request:   request,
		buffer:    buffer,
		autofocus: NewAutoFocus(focus),
		state:     DialogCreated,
	}
	d.acceptEnabled = !buffer.IsEmpty()
	d.sub = buffer.OnDidChange(d.OnTextChanged)
	return d, nil
}

func (d *InputDialog) Buffer() *TextBuffer {
	return d.buffer
}

func (d *InputDialog) Request() Request {
	return d.request
}

func (d *InputDialog) AcceptEnabled() bool {
	return d.acceptEnabled
}

func (d *InputDialog) State() DialogState {
	return d.state
}

func (d *InputDialog) Failure() *FailureDescriptor {
	return d.failure
}

func (d *InputDialog) Renders() int {
	return d.renders
}

func (d *InputDialog) Focused() bool {
	return d.autofocus.Triggered()
}

// OnTextChanged recomputes enablement and only touches displayed state when
// the value flips.
func (d *InputDialog) OnTextChanged() {
	enabled := !d.buffer.IsEmpty()
	if enabled == d.acceptEnabled {
		return
	}
	d.acceptEnabled = enabled
	d.renders++
	if d.state == DialogEditing || d.state == DialogReady {
		d.state = d.editingState()
	}
}

// Mount focuses the text field on the first call only.
func (d *InputDialog) Mount() tea.Cmd {
	if d.state == DialogCreated {
		d.state = d.editingState()
	}
	return d.autofocus.Trigger()
}

// Unmount releases the buffer subscription. Safe on every exit path and
// safe to repeat.
func (d *InputDialog) Unmount() {
	if d.sub != nil {
		d.sub.Dispose()
		d.sub = nil
	}
}

// Accept returns nil for an empty buffer. Otherwise it returns a command that
// passes the exact buffer text to the request and reports an AcceptResultMsg.
func (d *InputDialog) Accept(ctx context.Context) tea.Cmd {
	text := d.buffer.Text()
	if len(text) == 0 {
		return nil
	}
	if d.state == DialogSubmitting || d.state.Terminal() {
		return nil
	}
	d.state = DialogSubmitting
	d.failure = nil
	request := d.request
	return func() tea.Msg {
		item, err := request.Accept(ctx, text)
		return AcceptResultMsg{Item: item, Err: err}
	}
}

// HandleAcceptResult closes the dialog on success. A failure keeps it open
// with the buffer untouched so the user can retry.
func (d *InputDialog) HandleAcceptResult(msg AcceptResultMsg) {
	if d.state != DialogSubmitting {
		return
	}
	if msg.Err != nil {
		d.failure = DescribeFailure(msg.Err)
		d.state = d.editingState()
		d.renders++
		return
	}
	d.state = DialogClosed
}

func (d *InputDialog) Cancel() {
	d.request.Cancel()
	d.state = DialogCancelled
}

func (d *InputDialog) editingState() DialogState {
	if d.acceptEnabled {
		return DialogReady
	}
	return DialogEditing
}
