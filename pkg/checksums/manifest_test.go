package checksums

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `# generated by goreleaser
abc123  mcpify-linux-amd64
def456  mcpify-linux-arm64
0a1b2c *mcpify-win-amd64.exe
	
fff000	mcpify-macos-arm64
malformed-line-without-name
999999  mcpify-linux-amd64
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	want := []Entry{
		{Hash: "abc123", Filename: "mcpify-linux-amd64"},
		{Hash: "def456", Filename: "mcpify-linux-arm64"},
		{Hash: "0a1b2c", Filename: "mcpify-win-amd64.exe"},
		{Hash: "fff000", Filename: "mcpify-macos-arm64"},
		{Hash: "999999", Filename: "mcpify-linux-amd64"},
	}
	if diff := cmp.Diff(want, m.Entries); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "first match wins", filename: "mcpify-linux-amd64", want: "abc123"},
		{name: "binary marker stripped", filename: "mcpify-win-amd64.exe", want: "0a1b2c"},
		{name: "tab separated", filename: "mcpify-macos-arm64", want: "fff000"},
		{name: "missing", filename: "mcpify-win-arm64.exe", wantErr: true},
		{name: "prefix is not a match", filename: "mcpify-linux", wantErr: true},
		{name: "suffix is not a match", filename: "linux-amd64", wantErr: true},
		{name: "digest is not a filename", filename: "abc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Lookup(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrChecksumNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checksums.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc123  mcpify-linux-amd64\n"), 0600))

	m, err := Load(path)
	require.NoError(t, err)
	got, err := m.Lookup("mcpify-linux-amd64")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestParseChecksumLine(t *testing.T) {
	tests := []struct {
		line         string
		wantChecksum string
		wantFilename string
		wantOK       bool
	}{
		{"abc123  file.tar.gz", "abc123", "file.tar.gz", true},
		{"abc123 file.tar.gz", "abc123", "file.tar.gz", true},
		{"abc123\tfile.tar.gz", "abc123", "file.tar.gz", true},
		{"  abc123  file.tar.gz  ", "abc123", "file.tar.gz", true},
		{"abc123 *file.tar.gz", "abc123", "file.tar.gz", true},
		{"", "", "", false},
		{"# comment", "", "", false},
		{"abc123", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			checksum, filename, ok := parseChecksumLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantChecksum, checksum)
			assert.Equal(t, tt.wantFilename, filename)
		})
	}
}
