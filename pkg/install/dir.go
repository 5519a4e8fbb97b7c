package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// ErrInstallDir is returned when no install directory could be created or
// written, even after escalation or fallback.
var ErrInstallDir = errors.New("cannot create install directory")

// ExpandDir expands a leading ~ and environment variables in dir and makes
// it absolute.
func ExpandDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: empty directory", ErrInstallDir)
	}

	if home := os.Getenv("HOME"); home != "" {
		if dir == "~" {
			dir = home
		} else if rest, ok := strings.CutPrefix(dir, "~/"); ok {
			dir = filepath.Join(home, rest)
		}
	}

	abs, err := filepath.Abs(os.ExpandEnv(dir))
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve install directory")
	}
	return abs, nil
}

// Target is where, and how, the binary gets installed.
type Target struct {
	Dir string
	// Escalated is set when Dir was only writable through the helper;
	// placement must then run under the helper too.
	Escalated bool
	// FellBack is set when Dir is the user-local fallback.
	FellBack bool
}

// ResolveTarget picks the install directory. It tries dir first; if dir
// cannot be created or written it escalates through esc, or, when esc is
// nil, falls back to fallback.
func ResolveTarget(ctx context.Context, dir, fallback string, esc *Escalator) (Target, error) {
	expanded, err := ExpandDir(dir)
	if err != nil {
		return Target{}, err
	}

	err = ensureWritable(expanded)
	if err == nil {
		return Target{Dir: expanded}, nil
	}
	log.WithError(err).Debugf("%s is not writable", expanded)

	if esc != nil {
		log.Infof("%s is not writable, retrying with %s", expanded, esc.Helper)
		if err := esc.Run(ctx, "mkdir", "-p", expanded); err != nil {
			return Target{}, fmt.Errorf("%w: %s: %v", ErrInstallDir, expanded, err)
		}
		return Target{Dir: expanded, Escalated: true}, nil
	}

	if fallback == "" {
		return Target{}, fmt.Errorf("%w: %s is not writable and no fallback directory is available (HOME unset)", ErrInstallDir, expanded)
	}
	fb, err := ExpandDir(fallback)
	if err != nil {
		return Target{}, err
	}
	log.Debugf("Falling back to %s", fb)
	if err := ensureWritable(fb); err != nil {
		return Target{}, fmt.Errorf("%w: %s: %v", ErrInstallDir, fb, err)
	}
	return Target{Dir: fb, FellBack: true}, nil
}

// ensureWritable creates dir if needed and proves a file can be created in it.
func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".mcpify-write-test-*")
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(f.Name())
}
