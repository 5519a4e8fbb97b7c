// Package platform maps what the host reports about itself onto the closed
// set of platforms release artifacts are published for.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// OS families artifacts are published for.
const (
	MacOS   = "macos"
	Linux   = "linux"
	Windows = "win"
)

// Architectures artifacts are published for.
const (
	AMD64 = "amd64"
	ARM64 = "arm64"
)

// ErrUnsupportedPlatform is returned for kernels or machines outside the
// supported set.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Platform is the (OS family, architecture) pair selecting one artifact.
type Platform struct {
	OS   string
	Arch string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// IsWindows reports whether binaries for p need the .exe suffix.
func (p Platform) IsWindows() bool {
	return p.OS == Windows
}

// All returns every supported platform, OS-major.
func All() []Platform {
	var all []Platform
	for _, osName := range []string{MacOS, Linux, Windows} {
		for _, arch := range []string{AMD64, ARM64} {
			all = append(all, Platform{OS: osName, Arch: arch})
		}
	}
	return all
}

// Detect normalizes a kernel name (uname -s or a Go GOOS value) and a
// machine name (uname -m or a Go GOARCH value).
func Detect(kernel, machine string) (Platform, error) {
	osName, err := NormalizeOS(kernel)
	if err != nil {
		return Platform{}, err
	}
	arch, err := NormalizeArch(machine)
	if err != nil {
		return Platform{}, err
	}
	return Platform{OS: osName, Arch: arch}, nil
}

// NormalizeOS maps a kernel name to an OS family.
func NormalizeOS(kernel string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(kernel))
	switch {
	case k == "darwin":
		return MacOS, nil
	case k == "linux":
		return Linux, nil
	case k == "windows", k == "windows_nt",
		strings.HasPrefix(k, "mingw"),
		strings.HasPrefix(k, "msys"),
		strings.HasPrefix(k, "cygwin"):
		return Windows, nil
	}
	return "", fmt.Errorf("%w: operating system %q", ErrUnsupportedPlatform, kernel)
}

// NormalizeArch maps a machine name to an architecture.
func NormalizeArch(machine string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(machine))
	switch {
	case m == "x86_64", m == "amd64", m == "x64":
		return AMD64, nil
	case m == "aarch64", m == "arm64", strings.HasPrefix(m, "armv8"):
		return ARM64, nil
	}
	return "", fmt.Errorf("%w: architecture %q", ErrUnsupportedPlatform, machine)
}
