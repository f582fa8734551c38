package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrNilRequest        = errors.New("dialog request is required")
	ErrRequestInProgress = errors.New("request already in progress")
)

// Item is what a successful accept produces.
type Item interface {
	URI() string
	Title() string
}

// Request is one pending modal operation owned by the host.
type Request interface {
	Accept(ctx context.Context, text string) (Item, error)
	Cancel()
	InProgress() bool
	Err() error
}

type AcceptFunc func(ctx context.Context, text string) (Item, error)

// PendingRequest is the host side of a Request. It records progress and the
// last failure around each accept call.
type PendingRequest struct {
	mu         sync.Mutex
	accept     AcceptFunc
	cancel     func()
	inProgress bool
	canceled   bool
	err        error
	item       Item
}

func NewRequest(accept AcceptFunc, cancel func()) (*PendingRequest, error) {
	if accept == nil {
		return nil, errors.New("accept callback is required")
	}
	return &PendingRequest{accept: accept, cancel: cancel}, nil
}

func (r *PendingRequest) Accept(ctx context.Context, text string) (Item, error) {
	r.mu.Lock()
	if r.inProgress {
		r.mu.Unlock()
		return nil, ErrRequestInProgress
	}
	r.inProgress = true
	r.err = nil
	r.mu.Unlock()

	item, err := r.accept(ctx, text)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inProgress = false
	r.err = err
	if err == nil {
		r.item = item
	}
	return item, err
}

func (r *PendingRequest) Cancel() {
	r.mu.Lock()
	r.canceled = true
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *PendingRequest) InProgress() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inProgress
}

func (r *PendingRequest) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *PendingRequest) Canceled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canceled
}

func (r *PendingRequest) Item() Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.item
}

// FailureDescriptor is an error reduced to what the dialog shows.
type FailureDescriptor struct {
	Code    int
	Message string
}

// DescribeFailure prefers a user-facing message carried by err and falls back
// to its diagnostic text. Code is the shell exit code when err has one.
func DescribeFailure(err error) *FailureDescriptor {
	if err == nil {
		return nil
	}
	desc := &FailureDescriptor{Message: err.Error()}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		desc.Code = coder.ExitCode()
	}
	var friendly interface{ UserFacingMessage() string }
	if errors.As(err, &friendly) {
		if msg := strings.TrimSpace(friendly.UserFacingMessage()); msg != "" {
			desc.Message = msg
		}
	}
	return desc
}
