package core

import (
	"os"
	"path/filepath"
	"strings"
)

// DateLayout is the layout of every calendar date exchanged by the app.
const DateLayout = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NextID returns max(ids)+1, or 1 when ids is empty.
// IDs freed by deleting the highest record are handed out again.
func NextID(ids ...int) int {
	var max int
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Getwd tries to find the project root (the directory holding go.mod).
// go-test changes the working directory to the package being tested.
func Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir, nil
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			// not run from the source tree (e.g. a deployed binary)
			return wd, nil
		}
		currDir = newDir
	}
}
