package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

var (
	// ErrEmptyUsername is returned when a search is triggered without a username.
	ErrEmptyUsername = errors.New("username is empty")
	// ErrSuperseded is returned by a search whose result was discarded because
	// a newer search started before it finished.
	ErrSuperseded = errors.New("search superseded by a newer search")
)

// Status is the phase of the search state machine.
type Status int

const (
	// StatusIdle is the state before the first search.
	StatusIdle Status = iota
	// StatusLoading is set while a search is fetching.
	StatusLoading
	// StatusSuccess holds the result of the latest search.
	StatusSuccess
	// StatusFailed means the profile or repository list could not be fetched.
	StatusFailed
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText encodes the status by name so JSON output reads "success" rather than 2.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is everything a view needs to render a search.
// Slices are replaced wholesale on every transition and never modified in
// place, so a State returned by Snapshot can be read without locking.
type State struct {
	Status       Status                    `json:"status"`
	Query        string                    `json:"query"`
	Username     string                    `json:"username,omitempty"`
	Profile      *domain.Profile           `json:"profile,omitempty"`
	Repositories []domain.Repository       `json:"repositories"`
	Commits      []domain.DailyCommitCount `json:"commits"`
	Summary      domain.ActivitySummary    `json:"summary"`
	Page         int                       `json:"page"`
	// FailedRepositories lists repositories whose commits could not be fetched.
	FailedRepositories []string `json:"failed_repositories,omitempty"`
	Err                error    `json:"-"`
	Generation         uint64   `json:"generation"`
}

// Searcher orchestrates a profile search and owns the resulting view state.
// It is safe for concurrent use.
type Searcher struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
	pageSize    int

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewSearcher creates a new Searcher. concurrency bounds the number of commit
// fetches in flight; values below 1 mean one at a time.
func NewSearcher(fetcher gateway.Fetcher, logger *log.Logger, concurrency int) *Searcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Searcher{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
		pageSize:    DefaultPageSize,
		state:       State{Status: StatusIdle, Page: 1},
	}
}

// Snapshot returns the current state.
func (s *Searcher) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetQuery records the text currently typed in the search input.
func (s *Searcher) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = q
}

// AppendQuery appends typed text to the current query.
func (s *Searcher) AppendQuery(text string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query += text
	return s.state
}

// TrimQuery removes the last character of the current query, if any.
func (s *Searcher) TrimQuery() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if runes := []rune(s.state.Query); len(runes) > 0 {
		s.state.Query = string(runes[:len(runes)-1])
	}
	return s.state
}

// Search fetches the profile, repositories and recent commits of username and
// transitions the state to Success or Failed. Data from any previous search is
// cleared as soon as the new search starts, and an in-flight previous search
// is cancelled.
//
// A failure to fetch commits for one repository only removes that repository
// from the aggregate. Profile and repository list failures fail the search.
func (s *Searcher) Search(ctx context.Context, username string) (State, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return s.Snapshot(), ErrEmptyUsername
	}

	ctx, cancel, gen := s.begin(ctx, username)
	defer cancel()

	profile, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return s.fail(gen, err)
	}

	repos, err := s.fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return s.fail(gen, err)
	}

	dates, failed := s.collectCommitDates(ctx, username, repos)
	if err := ctx.Err(); err != nil {
		return s.fail(gen, fmt.Errorf("search for %q interrupted: %w", username, err))
	}

	series := AggregateCommits(dates)
	return s.succeed(gen, State{
		Username:           username,
		Profile:            profile,
		Repositories:       repos,
		Commits:            series,
		Summary:            Summarize(series),
		FailedRepositories: failed,
	})
}

// begin starts a new generation and returns the context the search must use.
func (s *Searcher) begin(ctx context.Context, username string) (context.Context, context.CancelFunc, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	gen := s.state.Generation + 1
	s.state = State{
		Status:     StatusLoading,
		Query:      s.state.Query,
		Username:   username,
		Page:       1,
		Generation: gen,
	}
	s.logger.Debug("Search started", "user", username, "generation", gen)
	return ctx, cancel, gen
}

func (s *Searcher) fail(gen uint64, err error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.state.Generation {
		s.logger.Debug("Discarding failure of superseded search", "generation", gen, "err", err)
		return s.state, ErrSuperseded
	}
	s.logger.Error("Search failed", "user", s.state.Username, "err", err)
	s.state = State{
		Status:     StatusFailed,
		Query:      s.state.Query,
		Username:   s.state.Username,
		Page:       1,
		Err:        err,
		Generation: gen,
	}
	return s.state, err
}

func (s *Searcher) succeed(gen uint64, next State) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.state.Generation {
		s.logger.Debug("Discarding result of superseded search", "generation", gen)
		return s.state, ErrSuperseded
	}
	next.Status = StatusSuccess
	next.Query = ""
	next.Page = 1
	next.Generation = gen
	s.state = next
	s.logger.Info("Search complete",
		"user", next.Username,
		"repositories", len(next.Repositories),
		"active_days", len(next.Commits),
		"failed", len(next.FailedRepositories))
	return s.state, nil
}

// collectCommitDates fetches recent commit dates for every repository with at
// most s.concurrency requests in flight. Failing repositories are logged and
// reported by name; they never stop the batch.
func (s *Searcher) collectCommitDates(ctx context.Context, owner string, repos []domain.Repository) ([]string, []string) {
	perRepo := make([][]string, len(repos))
	failedAt := make([]bool, len(repos))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, repo := range repos {
		g.Go(func() error {
			dates, err := s.fetcher.FetchCommitDates(ctx, owner, repo.Name)
			if err != nil {
				failedAt[i] = true
				// A cancelled search is reported once by Search.
				if ctx.Err() == nil {
					s.logger.Warn("Skipping commits", "repo", owner+"/"+repo.Name, "err", err)
				}
				return nil // continue with other repositories
			}
			perRepo[i] = dates
			return nil
		})
	}
	g.Wait()

	var dates, failed []string
	for i, repo := range repos {
		if failedAt[i] {
			failed = append(failed, repo.Name)
			continue
		}
		dates = append(dates, perRepo[i]...)
	}
	return dates, failed
}

// SetPage moves to page n of the repository list, clamped to the valid range.
func (s *Searcher) SetPage(n int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movePage(n)
}

// NextPage moves one page forward, staying on the last page.
func (s *Searcher) NextPage() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movePage(s.state.Page + 1)
}

// PrevPage moves one page back, staying on the first page.
func (s *Searcher) PrevPage() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movePage(s.state.Page - 1)
}

// movePage must be called with s.mu held.
func (s *Searcher) movePage(n int) State {
	s.state.Page = ClampPage(n, TotalPages(len(s.state.Repositories), s.pageSize))
	return s.state
}

// VisibleRepositories returns the current page of the repository list.
func (s *Searcher) VisibleRepositories() Page[domain.Repository] {
	st := s.Snapshot()
	return Paginate(st.Repositories, st.Page, s.pageSize)
}
