package spec

import (
	"os"
	"path/filepath"
)

// Algorithm is a checksum digest algorithm accepted in checksum manifests.
type Algorithm string

const (
	Sha256 Algorithm = "sha256"
	Sha512 Algorithm = "sha512"
)

const (
	DefaultName              = "mcpify"
	DefaultRepo              = "mcpify/mcpify"
	DefaultReleaseTag        = "latest"
	DefaultInstallDir        = "/usr/local/bin"
	DefaultArtifactTemplate  = "${NAME}-${OS}-${ARCH}${EXT}"
	DefaultChecksumFile      = "checksums.txt"
	DefaultAPIBaseURL        = "https://api.github.com/"
	DefaultDownloadBaseURL   = "https://github.com"
	defaultFallbackSubdirBin = ".local/bin"
)

// InstallSpec holds everything one installer run needs to know. It is
// loaded once, then passed explicitly through every installation step.
type InstallSpec struct {
	// Name of the binary; also the ${NAME} of the artifact template.
	Name string `yaml:"name,omitempty"`
	// Repo is the GitHub owner/name hosting the releases.
	Repo string `yaml:"repo,omitempty"`
	// ReleaseTag is an explicit tag, or "latest" to ask the API.
	ReleaseTag string `yaml:"release_tag,omitempty"`
	// InstallDir overrides DefaultInstallDir when set.
	InstallDir string `yaml:"install_dir,omitempty"`
	// DefaultInstallDir is the system-wide binary directory.
	DefaultInstallDir string `yaml:"default_install_dir,omitempty"`
	// FallbackInstallDir is used when DefaultInstallDir is not writable
	// and no escalation helper is available.
	FallbackInstallDir string `yaml:"fallback_install_dir,omitempty"`
	// ArtifactTemplate supports ${NAME}, ${TAG}, ${OS}, ${ARCH} and ${EXT}.
	ArtifactTemplate string    `yaml:"artifact_template,omitempty"`
	ChecksumFile     string    `yaml:"checksum_file,omitempty"`
	Algorithm        Algorithm `yaml:"algorithm,omitempty"`
	APIBaseURL       string    `yaml:"api_base_url,omitempty"`
	DownloadBaseURL  string    `yaml:"download_base_url,omitempty"`
}

// SetDefaults sets default values for the InstallSpec
func (s *InstallSpec) SetDefaults() {
	if s.Name == "" {
		s.Name = DefaultName
	}
	if s.Repo == "" {
		s.Repo = DefaultRepo
	}
	if s.ReleaseTag == "" {
		s.ReleaseTag = DefaultReleaseTag
	}
	if s.DefaultInstallDir == "" {
		s.DefaultInstallDir = DefaultInstallDir
	}
	if s.FallbackInstallDir == "" {
		if home := os.Getenv("HOME"); home != "" {
			s.FallbackInstallDir = filepath.Join(home, defaultFallbackSubdirBin)
		}
	}
	if s.ArtifactTemplate == "" {
		s.ArtifactTemplate = DefaultArtifactTemplate
	}
	if s.ChecksumFile == "" {
		s.ChecksumFile = DefaultChecksumFile
	}
	if s.Algorithm == "" {
		s.Algorithm = Sha256
	}
	if s.APIBaseURL == "" {
		s.APIBaseURL = DefaultAPIBaseURL
	}
	if s.DownloadBaseURL == "" {
		s.DownloadBaseURL = DefaultDownloadBaseURL
	}
}

// WantsLatest reports whether the release tag must be resolved through the
// latest-release endpoint.
func (s *InstallSpec) WantsLatest() bool {
	return s.ReleaseTag == "" || s.ReleaseTag == DefaultReleaseTag
}

// TargetDir returns the directory the installer tries first.
func (s *InstallSpec) TargetDir() string {
	if s.InstallDir != "" {
		return s.InstallDir
	}
	return s.DefaultInstallDir
}
