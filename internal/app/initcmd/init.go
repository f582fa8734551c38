package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tasuku43/opencommit/internal/config"
	"github.com/tasuku43/opencommit/internal/infra/paths"
)

type Result struct {
	RootDir      string
	CreatedDirs  []string
	CreatedFiles []string
	SkippedFiles []string
	SkippedDirs  []string
}

// Run creates the root layout and a default config.yaml. Existing entries are
// left untouched.
func Run(rootDir string) (Result, error) {
	if rootDir == "" {
		return Result{}, fmt.Errorf("root directory is required")
	}

	result := Result{RootDir: rootDir}

	for _, dir := range []string{rootDir, paths.LogsRoot(rootDir)} {
		if exists, err := paths.DirExists(dir); err != nil {
			return Result{}, err
		} else if exists {
			result.SkippedDirs = append(result.SkippedDirs, dir)
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return Result{}, fmt.Errorf("create dir: %w", err)
		}
		result.CreatedDirs = append(result.CreatedDirs, dir)
	}

	configPath := filepath.Join(rootDir, config.FileNameYAML)
	tomlPath := filepath.Join(rootDir, config.FileNameTOML)
	for _, path := range []string{configPath, tomlPath} {
		exists, err := paths.FileExists(path)
		if err != nil {
			return Result{}, err
		}
		if exists {
			result.SkippedFiles = append(result.SkippedFiles, path)
			return result, nil
		}
	}
	if err := writeConfig(configPath); err != nil {
		return Result{}, err
	}
	result.CreatedFiles = append(result.CreatedFiles, configPath)
	return result, nil
}

func writeConfig(path string) error {
	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", config.FileNameYAML, err)
	}
	return nil
}
