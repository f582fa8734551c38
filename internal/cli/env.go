package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tasuku43/opencommit/internal/app/opencommit"
	"github.com/tasuku43/opencommit/internal/config"
	"github.com/tasuku43/opencommit/internal/domain/repo"
	"github.com/tasuku43/opencommit/internal/domain/workspace"
	"github.com/tasuku43/opencommit/internal/infra/debuglog"
	"github.com/tasuku43/opencommit/internal/infra/output"
	"github.com/tasuku43/opencommit/internal/infra/paths"
	"github.com/tasuku43/opencommit/internal/infra/telemetry"
	"github.com/tasuku43/opencommit/internal/store"
)

// openEnv holds the services one open command runs against.
type openEnv struct {
	cfg        config.Config
	repository *repo.Repository
	workspace  *workspace.Workspace
	panes      *store.PaneStore
	sink       telemetry.Sink
}

func newOpenEnv(ctx context.Context, rootDir string, cfg config.Config, dir string) (*openEnv, error) {
	trace := debuglog.NewTrace("env")
	dir = strings.TrimSpace(dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	output.Step("Resolve repository")
	repository, err := repo.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	output.Logf("workdir %s", repository.WorkingDirectoryPath())

	env := &openEnv{cfg: cfg, repository: repository, sink: telemetry.Nop()}
	if cfg.TelemetryEnabled() {
		sink, err := telemetry.NewFileSink(paths.InRoot(rootDir, cfg.Telemetry.File))
		if err != nil {
			debuglog.Logf(trace, "telemetry disabled: %v", err)
		} else {
			env.sink = sink
		}
	}

	var layout workspace.Store
	panes, err := store.OpenPaneStore(paths.InRoot(rootDir, cfg.State.File))
	if err != nil {
		debuglog.Logf(trace, "pane store unavailable: %v", err)
		output.Logf("pane state not persisted: %v", err)
	} else {
		env.panes = panes
		layout = panes
	}
	env.workspace = workspace.New(layout)
	opencommit.Register(env.workspace, env.openRepository)
	if err := env.workspace.Restore(); err != nil {
		debuglog.Logf(trace, "restore panes: %v", err)
	}
	return env, nil
}

func (e *openEnv) deps() opencommit.Deps {
	return opencommit.Deps{
		Repository: e.repository,
		Workspace:  e.workspace,
		Telemetry:  e.sink,
	}
}

// openRepository reuses the current repository for its own workdir.
func (e *openEnv) openRepository(ctx context.Context, workdir string) (opencommit.RepositoryService, error) {
	if workdir == e.repository.WorkingDirectoryPath() {
		return e.repository, nil
	}
	r, err := repo.Open(ctx, workdir)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (e *openEnv) Close() error {
	var errs []error
	if e.panes != nil {
		errs = append(errs, e.panes.Close())
	}
	return errors.Join(errs...)
}
