package httpclient

import (
	"net/http"
	"os"
	"strings"
)

// UserAgent is sent with every request made by the installer.
var UserAgent = "mcpify-install"

// NewGitHubClient creates an HTTP client configured for GitHub API and
// release download requests. It adds the token from the GITHUB_TOKEN
// environment variable, if set, to requests for GitHub hosts only.
func NewGitHubClient() *http.Client {
	return &http.Client{
		Transport: &gitHubTransport{
			Base: http.DefaultTransport,
		},
	}
}

// gitHubTransport is a custom RoundTripper that adds GitHub authentication
type gitHubTransport struct {
	Base http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface
func (t *gitHubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req2 := req.Clone(req.Context())

	if req2.Header.Get("User-Agent") == "" {
		req2.Header.Set("User-Agent", UserAgent)
	}

	if isGitHubHost(req2.URL.Hostname()) && req2.Header.Get("Authorization") == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			req2.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return t.Base.RoundTrip(req2)
}

// isGitHubHost reports whether host belongs to GitHub. Release downloads
// redirect to objects.githubusercontent.com, which must not see the token.
func isGitHubHost(host string) bool {
	host = strings.ToLower(host)
	return host == "github.com" || host == "api.github.com"
}
