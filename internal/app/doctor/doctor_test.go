package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasuku43/opencommit/internal/domain/workspace"
	"github.com/tasuku43/opencommit/internal/store"
)

func issueKinds(result Result) map[string]int {
	kinds := map[string]int{}
	for _, issue := range result.Issues {
		kinds[issue.Kind]++
	}
	return kinds
}

func hasDetail(result Result, prefix string) bool {
	for _, detail := range result.Details {
		if strings.HasPrefix(detail, prefix) {
			return true
		}
	}
	return false
}

func TestCheckMissingRootIsWarning(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "absent")
	result, err := Check(context.Background(), rootDir)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected a warning for a missing root")
	}
	if kinds := issueKinds(result); kinds["invalid_config"] != 0 || kinds["state_unavailable"] != 0 {
		t.Fatalf("unexpected issues: %+v", result.Issues)
	}
}

func TestCheckInvalidConfig(t *testing.T) {
	rootDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(rootDir, "config.yaml"), []byte("view:\n  width: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	result, err := Check(context.Background(), rootDir)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if issueKinds(result)["invalid_config"] != 1 {
		t.Fatalf("expected invalid_config, got %+v", result.Issues)
	}
}

func TestCheckReportsStateContents(t *testing.T) {
	rootDir := t.TempDir()
	panes, err := store.OpenPaneStore(filepath.Join(rootDir, "state.db"))
	if err != nil {
		t.Fatalf("OpenPaneStore: %v", err)
	}
	if err := panes.SavePanes([]workspace.PaneState{{ID: "p1", URIs: []string{"opencommit://a", "opencommit://b"}}}); err != nil {
		t.Fatalf("SavePanes: %v", err)
	}
	if err := panes.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	result, err := Check(context.Background(), rootDir)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !hasDetail(result, "state: "+filepath.Join(rootDir, "state.db")+" (1 panes, 2 items)") {
		t.Fatalf("details = %v", result.Details)
	}
}

func TestCheckRootIsFile(t *testing.T) {
	rootFile := filepath.Join(t.TempDir(), "root")
	if err := os.WriteFile(rootFile, nil, 0o644); err != nil {
		t.Fatalf("write root file: %v", err)
	}
	result, err := Check(context.Background(), rootFile)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if issueKinds(result)["root_not_directory"] != 1 {
		t.Fatalf("expected root_not_directory, got %+v", result.Issues)
	}
}

func TestSelfCheckMissingGit(t *testing.T) {
	prev := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = prev }()

	result := SelfCheck(context.Background())
	if issueKinds(result)["missing_dependency"] != 1 {
		t.Fatalf("expected missing_dependency, got %+v", result.Issues)
	}
}

func TestParseGitVersion(t *testing.T) {
	cases := []struct {
		input string
		want  gitVersion
		ok    bool
	}{
		{input: "git version 2.43.0", want: gitVersion{2, 43, 0}, ok: true},
		{input: "git version 2.39.3 (Apple Git-145)", want: gitVersion{2, 39, 3}, ok: true},
		{input: "git version 2.24", want: gitVersion{2, 24, 0}, ok: true},
		{input: "nope", ok: false},
	}
	for _, tc := range cases {
		got, ok := parseGitVersion(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseGitVersion(%q) = %v, %v; want %v, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
	if !(gitVersion{2, 23, 9}).Less(minGitVersion) || (gitVersion{2, 24, 0}).Less(minGitVersion) {
		t.Fatalf("unexpected version ordering around the minimum")
	}
}
