package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ResolveDataDir finds the directory holding the pron_*.bin chunk
// files. Relative paths are tried against the working directory first,
// then the executable directory, then data/ next to the executable and
// its parent. The original path comes back unchanged when nothing
// matches so the loader can report it.
func ResolveDataDir(userPath string) string {
	var candidates []string
	if filepath.IsAbs(userPath) {
		candidates = append(candidates, userPath)
	} else {
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, userPath))
		}
		if execDir, err := executableDir(); err == nil {
			candidates = append(candidates,
				filepath.Join(execDir, userPath),
				filepath.Join(execDir, "data"),
				filepath.Join(filepath.Dir(execDir), "data"))
		}
	}
	for _, path := range candidates {
		if isDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return userPath
}

// isDataDir checks if a directory contains binary chunk files
func isDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(path, "pron_*.bin"))
	return err == nil && len(matches) > 0
}

// executableDir returns the directory of the current executable with
// symlinks resolved.
func executableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}
