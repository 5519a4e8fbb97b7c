package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// placeLocal writes sourcePath to t.Dir/name without escalation. The copy is
// staged as a hidden file in t.Dir and renamed over the target, so the
// target path only ever holds a complete binary. t.Dir must already exist.
func placeLocal(t Target, sourcePath, name string) (string, error) {
	targetPath := filepath.Join(t.Dir, name)

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open verified artifact")
	}
	defer src.Close()

	staged, err := os.CreateTemp(t.Dir, "."+name+".partial-*")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInstallDir, t.Dir, err)
	}
	stagedPath := staged.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(stagedPath)
		}
	}()

	if err := writeExecutable(staged, src); err != nil {
		return "", err
	}
	if err := replace(stagedPath, targetPath); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInstallDir, targetPath, err)
	}
	committed = true

	log.Debugf("Placed %s", targetPath)
	return targetPath, nil
}

// writeExecutable fills f from src, marks it 0755 and closes it.
func writeExecutable(f *os.File, src io.Reader) error {
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write binary")
	}
	if err := f.Chmod(0755); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to set permissions")
	}
	return errors.Wrap(f.Close(), "failed to write binary")
}

// replace renames staged over target. Windows will not rename onto an
// existing file, so the old binary is removed first there.
func replace(staged, target string) error {
	if runtime.GOOS == "windows" {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return os.Rename(staged, target)
}
