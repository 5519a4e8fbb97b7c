package platform

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/host"
)

// Prober reports the raw kernel and machine names of a host.
type Prober interface {
	Probe(ctx context.Context) (kernel, machine string, err error)
}

// HostProber asks the running host. The kernel name comes from the Go
// runtime; the machine comes from the kernel itself, so a 386 or arm build
// of this program still sees the real hardware.
type HostProber struct{}

// Probe implements Prober.
func (HostProber) Probe(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", errors.Wrap(err, "platform detection cancelled")
	}
	machine, err := host.KernelArch()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to query machine architecture")
	}
	if machine == "" {
		return "", "", errors.New("host reported an empty machine architecture")
	}
	return runtime.GOOS, machine, nil
}

// StaticProber returns fixed values; used for overrides and tests.
type StaticProber struct {
	Kernel  string
	Machine string
}

// Probe implements Prober.
func (p StaticProber) Probe(context.Context) (string, string, error) {
	return p.Kernel, p.Machine, nil
}

// Current probes the host and normalizes the result.
func Current(ctx context.Context, p Prober) (Platform, error) {
	kernel, machine, err := p.Probe(ctx)
	if err != nil {
		return Platform{}, err
	}
	return Detect(kernel, machine)
}
