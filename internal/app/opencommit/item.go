package opencommit

import (
	"context"
	"fmt"

	"github.com/tasuku43/opencommit/internal/domain/commit"
	"github.com/tasuku43/opencommit/internal/domain/workspace"
)

// CommitDetailItem is the workspace item behind a commit detail uri.
type CommitDetailItem struct {
	uri     string
	workdir string
	commit  commit.Commit
}

func (i *CommitDetailItem) URI() string {
	return i.uri
}

func (i *CommitDetailItem) Title() string {
	return fmt.Sprintf("Commit: %s", i.commit.ShortSHA())
}

func (i *CommitDetailItem) Workdir() string {
	return i.workdir
}

func (i *CommitDetailItem) Commit() commit.Commit {
	return i.commit
}

// RepositoryOpener returns the repository rooted at workdir.
type RepositoryOpener func(ctx context.Context, workdir string) (RepositoryService, error)

// NewOpener builds commit detail items for uris produced by commit.BuildURI.
func NewOpener(open RepositoryOpener) workspace.Opener {
	return func(ctx context.Context, uri string) (workspace.Item, error) {
		workdir, ref, err := commit.ParseURI(uri)
		if err != nil {
			return nil, err
		}
		repository, err := open(ctx, workdir)
		if err != nil {
			return nil, err
		}
		c, err := repository.GetCommit(ctx, ref)
		if err != nil {
			return nil, err
		}
		return &CommitDetailItem{uri: uri, workdir: repository.WorkingDirectoryPath(), commit: c}, nil
	}
}

// Register wires the commit detail opener into ws.
func Register(ws *workspace.Workspace, open RepositoryOpener) {
	ws.AddOpener(commit.URIScheme, NewOpener(open))
}
