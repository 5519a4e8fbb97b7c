package resolve

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/google/go-github/v72/github"
	"github.com/mcpify/mcpify-install/pkg/httpclient"
	"github.com/mcpify/mcpify-install/pkg/spec"
	"github.com/pkg/errors"
)

var (
	// ErrRateLimited is returned when the GitHub API refuses the
	// latest-release query because of rate limiting.
	ErrRateLimited = errors.New("GitHub API rate limit exceeded; set GITHUB_TOKEN or pin a tag with MCPIFY_RELEASE_TAG")
	// ErrNoTag is returned when the latest release carries no tag name.
	ErrNoTag = errors.New("no tag_name found in latest release")
)

// rateLimitMarker is the message GitHub puts in rate-limited response bodies.
const rateLimitMarker = "rate limit exceeded"

// Resolver looks up the latest release of a repository.
type Resolver struct {
	client *github.Client
}

// NewResolver creates a Resolver that talks to the API at apiBaseURL using
// httpClient for transport.
func NewResolver(httpClient *http.Client, apiBaseURL string) (*Resolver, error) {
	client := github.NewClient(httpClient)
	client.UserAgent = httpclient.UserAgent
	if apiBaseURL != "" {
		if !strings.HasSuffix(apiBaseURL, "/") {
			apiBaseURL += "/"
		}
		u, err := url.Parse(apiBaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "invalid API base URL")
		}
		client.BaseURL = u
	}
	return &Resolver{client: client}, nil
}

// Latest returns the tag of the latest published release of repo.
func (r *Resolver) Latest(ctx context.Context, repo string) (string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", errors.Errorf("invalid repository format: %s", repo)
	}

	release, resp, err := r.client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		if isRateLimited(err) {
			return "", ErrRateLimited
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", errors.Errorf("no published release found for %s", repo)
		}
		return "", errors.Wrap(err, "failed to fetch latest release")
	}

	tag := release.GetTagName()
	if tag == "" {
		return "", ErrNoTag
	}
	return tag, nil
}

// isRateLimited recognizes both primary and secondary rate limits, and
// falls back to the body marker for proxies that strip the rate-limit headers.
func isRateLimited(err error) bool {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var arle *github.AbuseRateLimitError
	if errors.As(err, &arle) {
		return true
	}
	var er *github.ErrorResponse
	if errors.As(err, &er) {
		return strings.Contains(strings.ToLower(er.Message), rateLimitMarker)
	}
	return false
}

// LatestFetcher is satisfied by *Resolver.
type LatestFetcher interface {
	Latest(ctx context.Context, repo string) (string, error)
}

// ResolveTag returns the tag to install. An explicit tag is used as-is;
// "latest" or empty is resolved through the API. Either way the result is
// validated before it is used in any URL.
func ResolveTag(ctx context.Context, f LatestFetcher, s *spec.InstallSpec) (string, error) {
	tag := s.ReleaseTag
	if s.WantsLatest() {
		log.Info("checking GitHub for latest tag")
		var err error
		tag, err = f.Latest(ctx, s.Repo)
		if err != nil {
			return "", err
		}
	}

	if err := spec.ValidateReleaseTag(tag); err != nil {
		return "", err
	}
	return tag, nil
}
