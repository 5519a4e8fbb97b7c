package spec

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateArtifactTemplate validates that an artifact template only renders
// a single path segment and uses known variables.
func ValidateArtifactTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("artifact template is empty")
	}
	if strings.Contains(template, "/") || strings.Contains(template, `\`) {
		return fmt.Errorf("artifact template must not contain path separators: %s", template)
	}
	if !strings.Contains(template, "${NAME}") {
		return fmt.Errorf("artifact template must reference ${NAME}: %s", template)
	}
	return nil
}

// Validate checks the fields that are not free-form strings. The release
// tag is not one of them: it is checked after resolution.
func (s *InstallSpec) Validate() error {
	if err := ValidateArtifactTemplate(s.ArtifactTemplate); err != nil {
		return err
	}

	switch s.Algorithm {
	case Sha256, Sha512:
	default:
		return fmt.Errorf("unsupported checksum algorithm: %s", s.Algorithm)
	}

	parts := strings.Split(s.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository format: %s", s.Repo)
	}

	for field, raw := range map[string]string{
		"api_base_url":      s.APIBaseURL,
		"download_base_url": s.DownloadBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s is not a valid URL: %w", field, err)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return fmt.Errorf("%s must be an http(s) URL: %s", field, raw)
		}
	}

	return nil
}
