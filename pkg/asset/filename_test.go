package asset

import (
	"strings"
	"testing"

	"github.com/mcpify/mcpify-install/pkg/platform"
	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSpec() *spec.InstallSpec {
	s := &spec.InstallSpec{}
	s.SetDefaults()
	return s
}

func TestGenerateFilename(t *testing.T) {
	generator := NewFilenameGenerator(defaultSpec(), "1.2.3")

	tests := []struct {
		platform platform.Platform
		want     string
	}{
		{platform.Platform{OS: platform.MacOS, Arch: platform.AMD64}, "mcpify-macos-amd64"},
		{platform.Platform{OS: platform.MacOS, Arch: platform.ARM64}, "mcpify-macos-arm64"},
		{platform.Platform{OS: platform.Linux, Arch: platform.AMD64}, "mcpify-linux-amd64"},
		{platform.Platform{OS: platform.Linux, Arch: platform.ARM64}, "mcpify-linux-arm64"},
		{platform.Platform{OS: platform.Windows, Arch: platform.AMD64}, "mcpify-win-amd64.exe"},
		{platform.Platform{OS: platform.Windows, Arch: platform.ARM64}, "mcpify-win-arm64.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			got, err := generator.GenerateFilename(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// deterministic
			again, err := generator.GenerateFilename(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestGeneratePossibleFilenames(t *testing.T) {
	filenames, err := NewFilenameGenerator(defaultSpec(), "v1.0.0").GeneratePossibleFilenames()
	require.NoError(t, err)
	require.Len(t, filenames, 6)

	unique := make(map[string]bool)
	for p, name := range filenames {
		unique[name] = true
		assert.Equal(t, p.IsWindows(), strings.HasSuffix(name, ".exe"), name)
	}
	assert.Len(t, unique, 6)
}

func TestGenerateFilenameCustomTemplate(t *testing.T) {
	s := defaultSpec()
	s.ArtifactTemplate = "${NAME}_${TAG}_${OS}_${ARCH}${EXT}"

	got, err := NewFilenameGenerator(s, "v2.0.0").GenerateFilename(platform.Platform{OS: platform.Windows, Arch: platform.ARM64})
	require.NoError(t, err)
	assert.Equal(t, "mcpify_v2.0.0_win_arm64.exe", got)
}

func TestGenerateFilenameErrors(t *testing.T) {
	_, err := NewFilenameGenerator(nil, "v1").GenerateFilename(platform.Platform{OS: platform.Linux, Arch: platform.AMD64})
	assert.Error(t, err)

	s := defaultSpec()
	s.ArtifactTemplate = ""
	_, err = NewFilenameGenerator(s, "v1").GenerateFilename(platform.Platform{OS: platform.Linux, Arch: platform.AMD64})
	assert.Error(t, err)
}

func TestBinaryName(t *testing.T) {
	assert.Equal(t, "mcpify", BinaryName("mcpify", platform.Platform{OS: platform.Linux, Arch: platform.AMD64}))
	assert.Equal(t, "mcpify", BinaryName("mcpify", platform.Platform{OS: platform.MacOS, Arch: platform.ARM64}))
	assert.Equal(t, "mcpify.exe", BinaryName("mcpify", platform.Platform{OS: platform.Windows, Arch: platform.AMD64}))
}

func TestDownloadURL(t *testing.T) {
	s := defaultSpec()

	got, err := DownloadURL(s, "1.2.3", "mcpify-linux-amd64")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/mcpify/mcpify/releases/download/1.2.3/mcpify-linux-amd64", got)

	s.DownloadBaseURL = "http://127.0.0.1:8080/mirror/"
	got, err = DownloadURL(s, "v1.0.0", "checksums.txt")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/mirror/mcpify/mcpify/releases/download/v1.0.0/checksums.txt", got)
}
