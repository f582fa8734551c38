package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tasuku43/opencommit/internal/domain/commit"
	"github.com/tasuku43/opencommit/internal/infra/gitcmd"
)

// logFormat emits NUL separated fields; the body is last because it may span lines.
const logFormat = "%H%x00%an%x00%ae%x00%at%x00%s%x00%b"

const logFieldCount = 6

// Repository resolves refs against one git working tree.
type Repository struct {
	workdir string
}

// Open locates the working tree containing dir.
func Open(ctx context.Context, dir string) (*Repository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("repository directory is required")
	}
	top, err := gitcmd.ShowToplevel(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &Repository{workdir: top}, nil
}

func (r *Repository) WorkingDirectoryPath() string {
	return r.workdir
}

// GetCommit resolves ref to a commit. Refs git does not know fail with a
// *gitcmd.Error whose code is gitcmd.CodeUnknownRevision.
func (r *Repository) GetCommit(ctx context.Context, ref string) (commit.Commit, error) {
	out, err := gitcmd.LogOne(ctx, r.workdir, logFormat, ref)
	if err != nil {
		return commit.Commit{}, err
	}
	c, err := parseLogRecord(out)
	if err != nil {
		return commit.Commit{}, fmt.Errorf("parse commit %s: %w", ref, err)
	}
	return c, nil
}

func parseLogRecord(out string) (commit.Commit, error) {
	record := strings.TrimRight(out, "\x00\n")
	if record == "" {
		return commit.Commit{}, fmt.Errorf("empty log output")
	}
	fields := strings.SplitN(record, "\x00", logFieldCount)
	if len(fields) < logFieldCount-1 {
		return commit.Commit{}, fmt.Errorf("unexpected log output: %d fields", len(fields))
	}
	seconds, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return commit.Commit{}, fmt.Errorf("author date: %w", err)
	}
	c := commit.Commit{
		SHA:         strings.TrimSpace(fields[0]),
		AuthorName:  fields[1],
		AuthorEmail: fields[2],
		AuthorDate:  time.Unix(seconds, 0),
		Subject:     fields[4],
	}
	if len(fields) == logFieldCount {
		c.Body = strings.TrimRight(fields[5], "\n")
	}
	return c, nil
}
