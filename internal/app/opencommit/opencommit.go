package opencommit

import (
	"context"
	"errors"

	"github.com/tasuku43/opencommit/internal/domain/commit"
	"github.com/tasuku43/opencommit/internal/domain/workspace"
	"github.com/tasuku43/opencommit/internal/infra/debuglog"
	"github.com/tasuku43/opencommit/internal/infra/gitcmd"
	"github.com/tasuku43/opencommit/internal/infra/telemetry"
)

// NoCommitMessage is shown when git cannot resolve the entered reference.
const NoCommitMessage = "There is no commit associated with that reference."

const (
	EventOpenCommitInPane = "open-commit-in-pane"
	telemetryPackage      = "opencommit"
	telemetryFrom         = "InputDialog"
)

type RepositoryService interface {
	GetCommit(ctx context.Context, ref string) (commit.Commit, error)
	WorkingDirectoryPath() string
}

type WorkspaceService interface {
	Open(ctx context.Context, uri string, opts workspace.OpenOptions) (workspace.Item, error)
}

type Deps struct {
	Repository RepositoryService
	Workspace  WorkspaceService
	Telemetry  telemetry.Sink
}

func (d Deps) validate() error {
	if d.Repository == nil {
		return errors.New("repository is required")
	}
	if d.Workspace == nil {
		return errors.New("workspace is required")
	}
	return nil
}

// Resolve checks that ref names a commit and opens its detail view, reusing
// an already open view from any pane. An unknown ref fails with the original
// git error carrying NoCommitMessage.
func Resolve(ctx context.Context, ref string, deps Deps) (workspace.Item, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	trace := debuglog.NewTrace("open")
	if _, err := deps.Repository.GetCommit(ctx, ref); err != nil {
		if gitcmd.HasCode(err, gitcmd.CodeUnknownRevision) {
			gitErr, _ := gitcmd.AsError(err)
			gitErr.UserMessage = NoCommitMessage
			debuglog.Logf(trace, "unknown reference %q", ref)
		}
		return nil, err
	}

	uri := commit.BuildURI(deps.Repository.WorkingDirectoryPath(), ref)
	item, err := deps.Workspace.Open(ctx, uri, workspace.OpenOptions{SearchAllPanes: true})
	if err != nil {
		return nil, err
	}
	debuglog.Logf(trace, "opened %s", uri)

	sink := deps.Telemetry
	if sink == nil {
		sink = telemetry.Nop()
	}
	sink.AddEvent(EventOpenCommitInPane, map[string]string{
		"package": telemetryPackage,
		"from":    telemetryFrom,
	})
	return item, nil
}
