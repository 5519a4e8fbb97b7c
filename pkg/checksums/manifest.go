// Package checksums reads checksum manifests in the format written by
// sha256sum and goreleaser: one "<hex digest> <filename>" pair per line.
package checksums

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrChecksumNotFound is returned when a manifest has no entry for a file.
var ErrChecksumNotFound = errors.New("checksum not found")

// Entry is one manifest line.
type Entry struct {
	Hash     string
	Filename string
}

// Manifest is a parsed checksum manifest, in file order.
type Manifest struct {
	Entries []Entry
}

// Parse reads a manifest. Blank lines, comments and lines with fewer than
// two fields are skipped.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		hash, filename, ok := parseChecksumLine(scanner.Text())
		if ok {
			m.Entries = append(m.Entries, Entry{Hash: hash, Filename: filename})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read checksum file")
	}
	return m, nil
}

// Load parses the manifest stored at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open checksum file")
	}
	defer f.Close()
	return Parse(f)
}

// Lookup returns the digest listed for filename. The first matching line
// wins; filenames are compared exactly.
func (m *Manifest) Lookup(filename string) (string, error) {
	for _, e := range m.Entries {
		if e.Filename == filename {
			return e.Hash, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrChecksumNotFound, filename)
}

// parseChecksumLine parses a line from a checksum file
// Supports formats like:
// - "abc123  filename" (two spaces)
// - "abc123 filename" (one space)
// - "abc123	filename" (tab)
// - "abc123 *filename" (binary mode marker)
func parseChecksumLine(line string) (checksum, filename string, ok bool) {
	line = strings.TrimSpace(line)

	// Skip empty lines and comments
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", "", false
	}

	return parts[0], strings.TrimPrefix(parts[1], "*"), true
}
