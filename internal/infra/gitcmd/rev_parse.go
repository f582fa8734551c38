package gitcmd

import (
	"context"
	"fmt"
	"strings"
)

// RevParse runs git rev-parse and returns trimmed stdout.
func RevParse(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"rev-parse"}, args...)
	res, err := Run(ctx, fullArgs, Options{Dir: dir})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// ShowToplevel returns the absolute path of the working tree containing dir.
func ShowToplevel(ctx context.Context, dir string) (string, error) {
	top, err := RevParse(ctx, dir, "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	if top == "" {
		return "", fmt.Errorf("resolve working directory: not a work tree: %s", dir)
	}
	return top, nil
}
