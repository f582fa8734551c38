package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tasuku43/opencommit/internal/config"
	"github.com/tasuku43/opencommit/internal/infra/paths"
	"github.com/tasuku43/opencommit/internal/store"
)

type Issue struct {
	Kind    string
	Path    string
	Message string
}

type Result struct {
	Issues   []Issue
	Warnings []string
	Details  []string
}

func (r *Result) merge(other Result) {
	r.Issues = append(r.Issues, other.Issues...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Details = append(r.Details, other.Details...)
}

// Check inspects the git installation and the files under rootDir.
func Check(ctx context.Context, rootDir string) (Result, error) {
	if strings.TrimSpace(rootDir) == "" {
		return Result{}, fmt.Errorf("root directory is required")
	}
	result := SelfCheck(ctx)
	result.Details = append(result.Details, fmt.Sprintf("root: %s", rootDir))

	info, err := os.Stat(rootDir)
	switch {
	case os.IsNotExist(err):
		result.Warnings = append(result.Warnings, fmt.Sprintf("root does not exist yet: %s", rootDir))
	case err != nil:
		return Result{}, err
	case !info.IsDir():
		result.Issues = append(result.Issues, Issue{
			Kind:    "root_not_directory",
			Path:    rootDir,
			Message: "root exists but is not a directory",
		})
		return result, nil
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Kind:    "invalid_config",
			Path:    rootDir,
			Message: err.Error(),
		})
		cfg = config.Default()
	}
	result.merge(checkState(paths.InRoot(rootDir, cfg.State.File)))
	if cfg.TelemetryEnabled() {
		result.Details = append(result.Details, fmt.Sprintf("telemetry: %s", paths.InRoot(rootDir, cfg.Telemetry.File)))
	} else {
		result.Details = append(result.Details, "telemetry: disabled")
	}
	return result, nil
}

func checkState(path string) Result {
	var result Result
	exists, err := paths.FileExists(path)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Kind:    "state_unavailable",
			Path:    path,
			Message: err.Error(),
		})
		return result
	}
	if !exists {
		result.Details = append(result.Details, fmt.Sprintf("state: %s (not created yet)", path))
		return result
	}
	panes, err := store.OpenPaneStore(path)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Kind:    "state_unavailable",
			Path:    path,
			Message: err.Error(),
		})
		return result
	}
	defer panes.Close()
	states, err := panes.LoadPanes()
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Kind:    "state_corrupt",
			Path:    path,
			Message: err.Error(),
		})
		return result
	}
	items := 0
	for _, st := range states {
		items += len(st.URIs)
	}
	result.Details = append(result.Details, fmt.Sprintf("state: %s (%d panes, %d items)", path, len(states), items))
	return result
}
