package asset

import (
	"fmt"

	"github.com/buildkite/interpolate"
	"github.com/mcpify/mcpify-install/pkg/platform"
	"github.com/mcpify/mcpify-install/pkg/spec"
)

// ExeSuffix is appended to artifacts and installed binaries on Windows.
const ExeSuffix = ".exe"

// FilenameGenerator generates artifact filenames from an InstallSpec's template
type FilenameGenerator struct {
	Spec *spec.InstallSpec
	Tag  string
}

// NewFilenameGenerator creates a new filename generator
func NewFilenameGenerator(spec *spec.InstallSpec, tag string) *FilenameGenerator {
	return &FilenameGenerator{
		Spec: spec,
		Tag:  tag,
	}
}

// GenerateFilename creates the artifact filename for a platform
func (g *FilenameGenerator) GenerateFilename(p platform.Platform) (string, error) {
	if g.Spec == nil || g.Spec.ArtifactTemplate == "" {
		return "", fmt.Errorf("artifact template not defined in spec")
	}

	filename, err := interpolate.Interpolate(interpolate.NewMapEnv(map[string]string{
		"NAME": g.Spec.Name,
		"TAG":  g.Tag,
		"OS":   p.OS,
		"ARCH": p.Arch,
		"EXT":  Ext(p),
	}), g.Spec.ArtifactTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to interpolate artifact template: %w", err)
	}
	if filename == "" {
		return "", fmt.Errorf("artifact template rendered an empty filename")
	}

	return filename, nil
}

// GeneratePossibleFilenames renders the artifact name of every supported
// platform, keyed by platform.
func (g *FilenameGenerator) GeneratePossibleFilenames() (map[platform.Platform]string, error) {
	filenames := make(map[platform.Platform]string)
	for _, p := range platform.All() {
		filename, err := g.GenerateFilename(p)
		if err != nil {
			return nil, err
		}
		filenames[p] = filename
	}
	return filenames, nil
}

// Ext returns the executable suffix for p.
func Ext(p platform.Platform) string {
	if p.IsWindows() {
		return ExeSuffix
	}
	return ""
}

// BinaryName returns the file name the binary is installed under.
func BinaryName(name string, p platform.Platform) string {
	return name + Ext(p)
}
