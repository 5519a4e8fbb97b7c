package verify

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/pkg/errors"
)

// ErrChecksumMismatch is returned when a file's digest differs from the
// expected digest.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Available reports whether the digest implementation for algorithm is
// linked into the binary.
func Available(algorithm spec.Algorithm) bool {
	switch algorithm {
	case spec.Sha256:
		return crypto.SHA256.Available()
	case spec.Sha512:
		return crypto.SHA512.Available()
	}
	return false
}

func newHash(algorithm spec.Algorithm) (hash.Hash, error) {
	switch algorithm {
	case spec.Sha256:
		return sha256.New(), nil
	case spec.Sha512:
		return sha512.New(), nil
	}
	return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
}

// ComputeChecksum computes the checksum of a file using the specified algorithm
func ComputeChecksum(filePath string, algorithm spec.Algorithm) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	if _, err := io.Copy(h, file); err != nil {
		return "", errors.Wrap(err, "failed to compute checksum")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum verifies that a file matches the expected checksum
func VerifyChecksum(filePath, expectedHash string, algorithm spec.Algorithm) error {
	computedHash, err := ComputeChecksum(filePath, algorithm)
	if err != nil {
		return err
	}

	// Compare case-insensitively
	if !strings.EqualFold(computedHash, expectedHash) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expectedHash, computedHash)
	}

	return nil
}
