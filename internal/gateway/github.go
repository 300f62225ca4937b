// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client and transport.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-activity/internal/config"
	"github.com/naka-gawa/github-activity/internal/domain"
)

const (
	// RepositoryLimit is the maximum number of repositories fetched per user.
	RepositoryLimit = 100
	// CommitLimit is the maximum number of recent commits fetched per repository.
	CommitLimit = 20
)

// ErrUserNotFound is returned when GitHub answers 404 for a profile lookup.
var ErrUserNotFound = errors.New("user not found")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
	// FetchCommitDates returns the author timestamps of the most recent commits
	// of owner/repo as RFC 3339 strings, keeping the offset reported by the API.
	FetchCommitDates(ctx context.Context, owner, repo string) ([]string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Requests are authenticated only when cfg.Token is set.
func NewGitHubGateway(cfg *config.Config, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(cfg.RateLimitSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}

	restClient := github.NewClient(&http.Client{Transport: transport})
	baseURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIURL, err)
	}
	restClient.BaseURL = baseURL

	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Debug("Fetching profile", "user", username)
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("failed to fetch profile for %q: %w", username, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile for %q: %w", username, err)
	}
	if user.GetLogin() == "" {
		return nil, fmt.Errorf("failed to fetch profile for %q: response has no login", username)
	}

	return &domain.Profile{
		Login:       user.GetLogin(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         nonEmpty(user.Bio),
		Name:        nonEmpty(user.Name),
		HTMLURL:     user.GetHTMLURL(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Debug("Fetching repositories", "user", username)
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: RepositoryLimit}}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %q: %w", username, err)
	}

	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if r.GetID() == 0 || r.GetName() == "" {
			g.logger.Debug("Skipping repository without id or name", "user", username)
			continue
		}
		result = append(result, domain.Repository{
			ID:          r.GetID(),
			Name:        r.GetName(),
			Description: nonEmpty(r.Description),
			HTMLURL:     r.GetHTMLURL(),
			UpdatedAt:   r.GetUpdatedAt().Time,
			Language:    nonEmpty(r.Language),
			Stars:       r.GetStargazersCount(),
		})
	}
	g.logger.Debug("Fetched repositories", "user", username, "count", len(result))
	return result, nil
}

func (g *GitHubGateway) FetchCommitDates(ctx context.Context, owner, repo string) ([]string, error) {
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: CommitLimit}}
	commits, _, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
	}

	dates := make([]string, 0, len(commits))
	for _, c := range commits {
		author := c.GetCommit().GetAuthor()
		if author == nil || author.Date == nil {
			continue
		}
		dates = append(dates, author.Date.Format(time.RFC3339))
	}
	g.logger.Debug("Fetched commits", "repo", owner+"/"+repo, "count", len(dates))
	return dates, nil
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

// nonEmpty normalizes GitHub's null-or-empty optional strings to nil.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
