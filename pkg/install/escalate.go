package install

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// EscalationHelpers are tried in order when a directory is not writable.
var EscalationHelpers = []string{"sudo", "doas"}

// Runner runs an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with the user's terminal attached, so an
// escalation helper can prompt for a password.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner bound to the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stderr, Stderr: os.Stderr}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	return nil
}

// LookPathFunc has the signature of exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Escalator runs commands through a privilege escalation helper.
type Escalator struct {
	Helper   string
	Runner   Runner
	LookPath LookPathFunc
}

// FindEscalator returns an Escalator for the first available helper, or
// nil if none is installed.
func FindEscalator(lookPath LookPathFunc, runner Runner) *Escalator {
	for _, name := range EscalationHelpers {
		if path, err := lookPath(name); err == nil {
			log.Debugf("Found escalation helper %s", path)
			return &Escalator{Helper: path, Runner: runner, LookPath: lookPath}
		}
	}
	log.Debug("No escalation helper found")
	return nil
}

// Run runs name with args under the helper.
func (e *Escalator) Run(ctx context.Context, name string, args ...string) error {
	return e.Runner.Run(ctx, e.Helper, append([]string{name}, args...)...)
}

// Has reports whether tool can be found on PATH.
func (e *Escalator) Has(tool string) bool {
	_, err := e.LookPath(tool)
	return err == nil
}
