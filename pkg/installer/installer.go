// Package installer runs the installation steps in order: preflight,
// idempotency check, release resolution, platform detection, artifact
// naming, manifest lookup, artifact download, verification, install
// directory resolution and placement.
package installer

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/mcpify/mcpify-install/pkg/asset"
	"github.com/mcpify/mcpify-install/pkg/checksums"
	"github.com/mcpify/mcpify-install/pkg/fetch"
	"github.com/mcpify/mcpify-install/pkg/httpclient"
	"github.com/mcpify/mcpify-install/pkg/install"
	"github.com/mcpify/mcpify-install/pkg/platform"
	"github.com/mcpify/mcpify-install/pkg/preflight"
	"github.com/mcpify/mcpify-install/pkg/resolve"
	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/mcpify/mcpify-install/pkg/verify"
	"github.com/pkg/errors"
)

// Installer holds the configuration and collaborators of one run.
type Installer struct {
	Spec *spec.InstallSpec
	// Force skips the already-installed check.
	Force bool
	// DryRun stops after verification and reports the would-be target.
	DryRun bool

	Client   *http.Client
	Prober   platform.Prober
	Releases resolve.LatestFetcher
	// FindExisting looks an installed binary up on PATH.
	FindExisting func(name string) (string, bool)
	// Escalator is nil when no escalation helper is available.
	Escalator *install.Escalator
	// PathEnv is the search path used for the post-install advisory.
	PathEnv string
	// Progress, if set, receives artifact download progress.
	Progress fetch.ProgressFunc
}

// Result describes what a run did.
type Result struct {
	Path             string
	Tag              string
	Platform         platform.Platform
	Artifact         string
	AlreadyInstalled bool
	DryRun           bool
	Escalated        bool
	FellBack         bool
	// OnPath reports whether the install directory is on PATH.
	OnPath bool
}

// New wires an Installer against the real host, network and PATH.
func New(s *spec.InstallSpec) (*Installer, error) {
	client := httpclient.NewGitHubClient()
	releases, err := resolve.NewResolver(client, s.APIBaseURL)
	if err != nil {
		return nil, err
	}
	return &Installer{
		Spec:         s,
		Client:       client,
		Prober:       platform.HostProber{},
		Releases:     releases,
		FindExisting: install.FindExisting,
		Escalator:    install.FindEscalator(exec.LookPath, install.NewExecRunner()),
		PathEnv:      os.Getenv("PATH"),
	}, nil
}

// Run performs the installation. Every error is fatal; nothing is written
// to the install directory unless all checks before placement passed.
func (i *Installer) Run(ctx context.Context) (*Result, error) {
	if err := preflight.Run(ctx, preflight.Standard(i.Prober, i.Client, i.Spec.Algorithm)); err != nil {
		return nil, err
	}

	if !i.Force && i.FindExisting != nil {
		if path, ok := i.FindExisting(i.Spec.Name); ok {
			log.Debugf("Found existing %s at %s", i.Spec.Name, path)
			return &Result{Path: path, AlreadyInstalled: true}, nil
		}
	}

	tag, err := resolve.ResolveTag(ctx, i.Releases, i.Spec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve release tag")
	}
	log.Infof("Resolved release tag: %s", tag)

	p, err := platform.Current(ctx, i.Prober)
	if err != nil {
		return nil, err
	}
	log.Infof("Detected platform: %s", p)

	artifact, err := asset.NewFilenameGenerator(i.Spec, tag).GenerateFilename(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate artifact filename")
	}
	log.Infof("Resolved artifact: %s", artifact)

	res := &Result{Tag: tag, Platform: p, Artifact: artifact}

	ws, err := fetch.NewWorkspace()
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	expected, err := i.expectedDigest(ctx, ws, tag, artifact)
	if err != nil {
		return nil, err
	}

	artifactPath := ws.Path(artifact)
	if err := i.download(ctx, tag, artifact, artifactPath, i.Progress); err != nil {
		return nil, err
	}

	if err := verify.VerifyChecksum(artifactPath, expected, i.Spec.Algorithm); err != nil {
		return nil, errors.Wrapf(err, "refusing to install %s", artifact)
	}
	log.Infof("Checksum verified for %s", artifact)

	binary := asset.BinaryName(i.Spec.Name, p)

	if i.DryRun {
		dir, err := install.ExpandDir(i.Spec.TargetDir())
		if err != nil {
			return nil, err
		}
		res.DryRun = true
		res.Path = filepath.Join(dir, binary)
		log.Infof("Dry run: %s verified, would install to %s", artifact, res.Path)
		return res, nil
	}

	target, err := install.ResolveTarget(ctx, i.Spec.TargetDir(), i.Spec.FallbackInstallDir, i.Escalator)
	if err != nil {
		return nil, err
	}
	res.Escalated = target.Escalated
	res.FellBack = target.FellBack

	path, err := install.Place(ctx, target, artifactPath, binary, i.Escalator)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to install %s", binary)
	}
	res.Path = path
	res.OnPath = install.InPath(target.Dir, i.PathEnv)

	return res, nil
}

// expectedDigest downloads the release's checksum manifest and returns the
// digest listed for artifact.
func (i *Installer) expectedDigest(ctx context.Context, ws *fetch.Workspace, tag, artifact string) (string, error) {
	manifestPath := ws.Path(i.Spec.ChecksumFile)
	if err := i.download(ctx, tag, i.Spec.ChecksumFile, manifestPath, nil); err != nil {
		return "", err
	}

	manifest, err := checksums.Load(manifestPath)
	if err != nil {
		return "", err
	}

	digest, err := manifest.Lookup(artifact)
	if errors.Is(err, checksums.ErrChecksumNotFound) {
		if published := i.publishedPlatforms(manifest, tag); len(published) > 0 {
			return "", errors.Wrapf(err, "release %s only publishes %s", tag, strings.Join(published, ", "))
		}
	}
	return digest, err
}

// publishedPlatforms lists, in platform.All order, the platforms whose
// artifact has an entry in manifest.
func (i *Installer) publishedPlatforms(manifest *checksums.Manifest, tag string) []string {
	names, err := asset.NewFilenameGenerator(i.Spec, tag).GeneratePossibleFilenames()
	if err != nil {
		return nil
	}

	var published []string
	for _, p := range platform.All() {
		if _, err := manifest.Lookup(names[p]); err == nil {
			published = append(published, p.String())
		}
	}
	return published
}

func (i *Installer) download(ctx context.Context, tag, filename, destPath string, progress fetch.ProgressFunc) error {
	url, err := asset.DownloadURL(i.Spec, tag, filename)
	if err != nil {
		return err
	}
	log.Infof("Downloading %s", url)

	d := &fetch.Downloader{Client: i.Client, Progress: progress}
	return d.Download(ctx, url, destPath)
}
