package asset

import (
	"net/url"

	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/pkg/errors"
)

// DownloadURL returns <download_base_url>/<repo>/releases/download/<tag>/<filename>.
// Each segment is path-escaped, so a tag or filename can never add a segment.
func DownloadURL(s *spec.InstallSpec, tag, filename string) (string, error) {
	base, err := url.Parse(s.DownloadBaseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid download base URL")
	}
	return base.JoinPath(s.Repo, "releases", "download", url.PathEscape(tag), url.PathEscape(filename)).String(), nil
}
