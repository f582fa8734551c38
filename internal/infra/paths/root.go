package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultRootDir = ".opencommit"

// RootEnv overrides the default root directory.
const RootEnv = "OPENCOMMIT_ROOT"

func ResolveRoot(flagRoot string) (string, error) {
	if strings.TrimSpace(flagRoot) != "" {
		return normalizeRoot(flagRoot)
	}

	envRoot := os.Getenv(RootEnv)
	if strings.TrimSpace(envRoot) != "" {
		return normalizeRoot(envRoot)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultRootDir), nil
}

func normalizeRoot(path string) (string, error) {
	expanded, err := ExpandHome(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}

	return path, nil
}
