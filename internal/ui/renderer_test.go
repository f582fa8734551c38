package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tasuku43/opencommit/internal/infra/output"
)

func TestRendererActsAsStepLogger(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, DefaultTheme(), false)
	r.wrapWidth = 0

	output.SetStepLogger(r)
	defer output.SetStepLogger(nil)

	output.Step("Resolve repository")
	output.Log("workdir /tmp/repo")
	output.LogOutput("abc123")

	want := strings.Join([]string{
		"  • Resolve repository",
		"    └─ workdir /tmp/repo",
		output.LogOutputPrefix() + "abc123",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
