package spec

import (
	"fmt"
	"strings"
	"unicode"
)

// ShellSafeString validates that a string is safe to pass to a command line
// or to splice into a URL. It checks for dangerous patterns that could lead
// to command injection.
func ShellSafeString(value string, fieldName string) error {
	if value == "" {
		return nil
	}

	// Check for command substitution patterns
	if strings.Contains(value, "$(") {
		return fmt.Errorf("%s contains dangerous command substitution '$(' pattern: %s", fieldName, value)
	}
	if strings.Contains(value, "`") {
		return fmt.Errorf("%s contains dangerous command substitution backtick '`' pattern: %s", fieldName, value)
	}

	// Check for shell metacharacters
	dangerousChars := []struct {
		char string
		desc string
	}{
		// Check longer patterns first
		{">>", "append redirection"},
		{"<<", "here document"},
		{"||", "logical OR"},
		{"&&", "logical AND"},
		// Then single characters
		{";", "semicolon"},
		{"|", "pipe"},
		{"&", "ampersand"},
		{">", "output redirection"},
		{"<", "input redirection"},
		{"\n", "newline"},
		{"\r", "carriage return"},
	}

	for _, dc := range dangerousChars {
		if strings.Contains(value, dc.char) {
			return fmt.Errorf("%s contains dangerous character '%s' (%s): %s", fieldName, dc.char, dc.desc, value)
		}
	}

	// Additional check for control characters
	for _, r := range value {
		if unicode.IsControl(r) && r != '\t' {
			return fmt.Errorf("%s contains control character (code %d)", fieldName, r)
		}
	}

	return nil
}

// ValidateAllFields validates every string field that ends up in a URL,
// a file name or a command line, then runs Validate. The release tag is
// left to ValidateReleaseTag, which runs once the tag is resolved.
func (s *InstallSpec) ValidateAllFields() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"repo", s.Repo},
		{"artifact_template", s.ArtifactTemplate},
		{"checksum_file", s.ChecksumFile},
	}
	for _, f := range fields {
		if err := ShellSafeString(f.value, f.name); err != nil {
			return err
		}
	}

	// Install directories may carry ${VAR} and ~ which are expanded later,
	// but never command substitution or shell metacharacters.
	for name, dir := range map[string]string{
		"install_dir":          s.InstallDir,
		"default_install_dir":  s.DefaultInstallDir,
		"fallback_install_dir": s.FallbackInstallDir,
	} {
		if strings.Contains(dir, "$(") || strings.Contains(dir, "`") {
			return fmt.Errorf("%s contains dangerous command substitution: %s", name, dir)
		}
		for _, char := range []string{";", "|", "&", ">", "<", "\n", "\r"} {
			if strings.Contains(dir, char) {
				return fmt.Errorf("%s contains dangerous character '%s': %s", name, char, dir)
			}
		}
	}

	return s.Validate()
}
