package ui

import (
	"context"
	"io"

	"github.com/tasuku43/opencommit/internal/infra/debuglog"
)

// PromptOpenCommitWithIO shows the reference dialog and blocks until it is
// accepted or dismissed. accept runs for every non-empty submission; a failing
// accept keeps the dialog open.
func PromptOpenCommitWithIO(ctx context.Context, opts DialogOptions, accept AcceptFunc, theme Theme, useColor bool, in io.Reader, out io.Writer) (Item, error) {
	debuglog.SetPrompt("open-commit")
	defer debuglog.ClearPrompt()
	model, err := newOpenCommitModel(ctx, opts, accept, theme, useColor)
	if err != nil {
		return nil, err
	}
	defer model.cancel()
	defer model.dialog.Unmount()
	finalModel, err := runProgramWithIO(model, in, out, false)
	if err != nil {
		return nil, err
	}
	return openCommitResult(finalModel)
}

// ShowCommitDetail runs the interactive detail view until the user quits.
func ShowCommitDetail(detail CommitDetail, opts ViewOptions, theme Theme, useColor bool) error {
	debuglog.SetPhase("view")
	_, err := runProgram(newCommitViewModel(detail, opts, theme, useColor))
	return err
}

func newOpenCommitModel(ctx context.Context, opts DialogOptions, accept AcceptFunc, theme Theme, useColor bool) (*inputDialogModel, error) {
	if accept == nil {
		return nil, ErrNilRequest
	}
	request, err := NewRequest(accept, nil)
	if err != nil {
		return nil, err
	}
	return newInputDialogModel(ctx, request, opts, theme, useColor)
}

func openCommitResult(out any) (Item, error) {
	final := out.(*inputDialogModel)
	if final.err != nil {
		return nil, final.err
	}
	if final.item == nil {
		return nil, ErrPromptCanceled
	}
	return final.item, nil
}
