package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ExpandPath resolves a leading ~ and makes relative paths relative to base.
// An empty base leaves relative paths untouched (apart from cleaning).
func ExpandPath(path, base string) string {
	switch {
	case path == "~":
		return UserHomeDir()
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(UserHomeDir(), path[2:])
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	case base != "":
		return filepath.Join(base, path)
	default:
		return filepath.Clean(path)
	}
}
