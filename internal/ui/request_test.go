package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tasuku43/opencommit/internal/infra/gitcmd"
)

func TestPendingRequestRecordsOutcome(t *testing.T) {
	var seen []string
	boom := errors.New("boom")
	fail := true
	req, err := NewRequest(func(ctx context.Context, text string) (Item, error) {
		seen = append(seen, text)
		if fail {
			return nil, boom
		}
		return fakeItem{uri: "opencommit://" + text}, nil
	}, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	if _, err := req.Accept(context.Background(), "a"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !errors.Is(req.Err(), boom) || req.InProgress() {
		t.Fatalf("Err = %v InProgress = %v", req.Err(), req.InProgress())
	}

	fail = false
	item, err := req.Accept(context.Background(), "b")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if req.Err() != nil {
		t.Fatalf("Err should reset on success, got %v", req.Err())
	}
	if req.Item() == nil || req.Item().URI() != item.URI() {
		t.Fatalf("Item = %v", req.Item())
	}
	if len(seen) != 2 || seen[1] != "b" {
		t.Fatalf("seen = %v", seen)
	}
}

func TestPendingRequestInProgressDuringAccept(t *testing.T) {
	var req *PendingRequest
	var during bool
	req, _ = NewRequest(func(ctx context.Context, text string) (Item, error) {
		during = req.InProgress()
		_, err := req.Accept(ctx, text)
		return nil, err
	}, nil)

	_, err := req.Accept(context.Background(), "x")
	if !during {
		t.Fatalf("expected InProgress inside accept")
	}
	if !errors.Is(err, ErrRequestInProgress) {
		t.Fatalf("nested accept err = %v", err)
	}
}

func TestPendingRequestCancel(t *testing.T) {
	called := 0
	req, _ := NewRequest(func(ctx context.Context, text string) (Item, error) { return nil, nil }, func() { called++ })
	req.Cancel()
	if !req.Canceled() || called != 1 {
		t.Fatalf("Canceled = %v called = %d", req.Canceled(), called)
	}
}

func TestNewRequestRequiresAccept(t *testing.T) {
	if _, err := NewRequest(nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDescribeFailure(t *testing.T) {
	plain := errors.New("disk on fire")
	withMessage := &gitcmd.Error{Kind: gitcmd.KindGit, Code: 128, Args: []string{"log"}, UserMessage: "There is no commit associated with that reference."}
	withoutMessage := &gitcmd.Error{Kind: gitcmd.KindGit, Code: 1, Args: []string{"log"}, Stderr: "bad"}

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "plain", err: plain, wantMsg: "disk on fire"},
		{name: "user message", err: withMessage, wantCode: 128, wantMsg: "There is no commit associated with that reference."},
		{name: "wrapped", err: fmt.Errorf("open: %w", withMessage), wantCode: 128, wantMsg: "There is no commit associated with that reference."},
		{name: "diagnostic", err: withoutMessage, wantCode: 1, wantMsg: withoutMessage.Error()},
	}
	for _, tc := range cases {
		got := DescribeFailure(tc.err)
		if got.Code != tc.wantCode || got.Message != tc.wantMsg {
			t.Fatalf("%s: got %+v, want code=%d msg=%q", tc.name, got, tc.wantCode, tc.wantMsg)
		}
	}
	if DescribeFailure(nil) != nil {
		t.Fatalf("expected nil descriptor for nil error")
	}
}
