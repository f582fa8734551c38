package paths

import "path/filepath"

// LogsRoot returns the directory debug logs are written to.
func LogsRoot(rootDir string) string {
	return filepath.Join(rootDir, "logs")
}

// InRoot resolves name against rootDir unless it is already absolute.
func InRoot(rootDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(rootDir, name)
}
