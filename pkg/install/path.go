package install

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// FindExisting looks name up on PATH.
func FindExisting(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// InPath reports whether dir is one of the entries of pathEnv.
func InPath(dir, pathEnv string) bool {
	want := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry == "" {
			continue
		}
		got := filepath.Clean(entry)
		if got == want || (runtime.GOOS == "windows" && strings.EqualFold(got, want)) {
			return true
		}
	}
	return false
}
