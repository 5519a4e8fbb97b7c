// Package preflight verifies that everything the installer depends on is
// usable before anything is downloaded.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/mcpify/mcpify-install/pkg/platform"
	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/mcpify/mcpify-install/pkg/verify"
	"github.com/pkg/errors"
)

// ErrMissingCapability is returned when one or more checks fail.
var ErrMissingCapability = errors.New("missing required capability")

// Check is a single named capability probe.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Run executes every check and reports all failures at once.
func Run(ctx context.Context, checks []Check) error {
	var missing []string
	for _, c := range checks {
		if err := c.Run(ctx); err != nil {
			log.WithError(err).Debugf("preflight check %q failed", c.Name)
			missing = append(missing, c.Name)
			continue
		}
		log.Debugf("preflight check %q ok", c.Name)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCapability, strings.Join(missing, ", "))
	}
	return nil
}

// Standard returns the checks an installer run needs: host information,
// temporary files, digest computation and an HTTP client.
func Standard(prober platform.Prober, client *http.Client, algorithm spec.Algorithm) []Check {
	return []Check{
		{
			Name: "system information",
			Run: func(ctx context.Context) error {
				if prober == nil {
					return errors.New("no platform prober")
				}
				_, _, err := prober.Probe(ctx)
				return err
			},
		},
		{
			Name: "temporary files",
			Run: func(context.Context) error {
				f, err := os.CreateTemp("", "mcpify-preflight-*")
				if err != nil {
					return err
				}
				f.Close()
				return os.Remove(f.Name())
			},
		},
		{
			Name: fmt.Sprintf("%s digest", algorithm),
			Run: func(context.Context) error {
				if !verify.Available(algorithm) {
					return errors.Errorf("%s is not available", algorithm)
				}
				return nil
			},
		},
		{
			Name: "HTTP client",
			Run: func(context.Context) error {
				if client == nil {
					return errors.New("no HTTP client configured")
				}
				return nil
			},
		},
	}
}
