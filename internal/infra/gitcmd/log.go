package gitcmd

import (
	"context"
	"fmt"
)

// LogOne runs git log for a single revision and returns raw stdout. rev is
// passed verbatim; a revision git cannot resolve, including one made only of
// whitespace, yields an *Error with CodeUnknownRevision.
func LogOne(ctx context.Context, dir, format, rev string) (string, error) {
	if rev == "" {
		return "", fmt.Errorf("revision is required")
	}
	args := []string{
		"log",
		"--max-count=1",
		"-z",
		"--no-abbrev-commit",
		"--no-color",
		"--format=" + format,
		"--end-of-options",
		rev,
		"--",
	}
	res, err := Run(ctx, args, Options{Dir: dir})
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}
