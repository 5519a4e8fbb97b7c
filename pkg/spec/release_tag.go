package spec

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidReleaseTag is returned for tags outside [A-Za-z0-9._-].
var ErrInvalidReleaseTag = errors.New("invalid release tag")

var releaseTagPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateReleaseTag rejects anything that could escape the release path
// segment of a download URL.
func ValidateReleaseTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty", ErrInvalidReleaseTag)
	}
	if !releaseTagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q (allowed: letters, digits, '.', '_', '-')", ErrInvalidReleaseTag, tag)
	}
	if tag == "." || tag == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidReleaseTag, tag)
	}
	return nil
}
