package install

import (
	"context"
	"path/filepath"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Place installs the verified file at sourcePath as t.Dir/name with mode
// 0755 and returns the final path.
func Place(ctx context.Context, t Target, sourcePath, name string, esc *Escalator) (string, error) {
	if !t.Escalated {
		return placeLocal(t, sourcePath, name)
	}
	if esc == nil {
		return "", errors.New("install directory requires escalation but no helper is available")
	}

	targetPath := filepath.Join(t.Dir, name)
	if esc.Has("install") {
		log.Debugf("Installing %s with %s install", targetPath, esc.Helper)
		if err := esc.Run(ctx, "install", "-m", "0755", sourcePath, targetPath); err != nil {
			return "", errors.Wrap(err, "failed to install binary")
		}
		return targetPath, nil
	}

	log.Debugf("Installing %s with %s cp", targetPath, esc.Helper)
	if err := esc.Run(ctx, "cp", sourcePath, targetPath); err != nil {
		return "", errors.Wrap(err, "failed to copy binary")
	}
	if err := esc.Run(ctx, "chmod", "0755", targetPath); err != nil {
		return "", errors.Wrap(err, "failed to set permissions")
	}
	return targetPath, nil
}
