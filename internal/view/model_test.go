package view

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

type stubFetcher struct {
	repos []domain.Repository
}

func (f *stubFetcher) FetchProfile(_ context.Context, username string) (*domain.Profile, error) {
	if username == "ghost" {
		return nil, errors.New("user not found")
	}
	return &domain.Profile{Login: username, AvatarURL: "https://avatars.example/" + username}, nil
}

func (f *stubFetcher) FetchRepositories(context.Context, string) ([]domain.Repository, error) {
	return f.repos, nil
}

func (f *stubFetcher) FetchCommitDates(context.Context, string, string) ([]string, error) {
	return []string{"2024-01-01T10:00:00Z"}, nil
}

func newTestModel(initial string) Model {
	m, _ := newTestModelWithFetcher(initial)
	return m
}

func newTestModelWithFetcher(initial string) (Model, *stubFetcher) {
	fetcher := &stubFetcher{repos: sampleRepos(12)}
	searcher := usecase.NewSearcher(fetcher, log.New(io.Discard), 2)
	return NewModel(context.Background(), searcher, initial), fetcher
}

// drain executes cmd and feeds the resulting search completion back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)

	var msgs []tea.Msg
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			for _, inner := range msg {
				run(inner)
			}
		case searchDoneMsg:
			msgs = append(msgs, msg)
		}
	}
	run(cmd)

	require.NotEmpty(t, msgs, "expected a search to complete")
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_TypingAndSearch(t *testing.T) {
	m := newTestModel("")
	assert.Nil(t, m.Init())

	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("octocax")})
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	assert.Equal(t, "octocat", m.State().Query)
	assert.Contains(t, m.View(), "octocat")

	m, cmd := key(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	state := m.State()
	assert.Equal(t, usecase.StatusSuccess, state.Status)
	assert.Empty(t, state.Query)
	assert.Equal(t, "octocat", state.Profile.Login)
	assert.False(t, m.loading())

	view := m.View()
	assert.Contains(t, view, "https://avatars.example/octocat")
	assert.Contains(t, view, "repo-05")
	assert.Contains(t, view, "page 1/3")
}

func TestModel_TypingAfterSearchCompletedElsewhere(t *testing.T) {
	m := newTestModel("")
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("octocat")})

	// The search finishes and clears the query before the model hears about it.
	_, err := m.searcher.Search(context.Background(), "octocat")
	require.NoError(t, err)
	require.Equal(t, "octocat", m.State().Query)

	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "x", m.State().Query)

	m, _ = key(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, m.State().Query)
}

func TestModel_ViewRendersOneSnapshot(t *testing.T) {
	m, fetcher := newTestModelWithFetcher("octocat")
	m = drain(t, m, m.Init())
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Contains(t, m.View(), "page 3/3")

	// A newer search replaces the searcher state before the model refreshes.
	fetcher.repos = nil
	_, err := m.searcher.Search(context.Background(), "hubot")
	require.NoError(t, err)

	view := m.View()
	assert.Contains(t, view, "https://avatars.example/octocat")
	assert.Contains(t, view, "repo-12")
	assert.Contains(t, view, "page 3/3")
	assert.NotContains(t, view, "No public repositories")

	next, _ := m.Update(tickMsg{})
	m = next.(Model)
	view = m.View()
	assert.Contains(t, view, "https://avatars.example/hubot")
	assert.Contains(t, view, "No public repositories")
	assert.NotContains(t, view, "repo-12")
}

func TestModel_EnterRefreshesState(t *testing.T) {
	m := newTestModel("")
	m, _ = key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("octocat")})

	// Another search completes and the query is retyped before enter reaches the model.
	_, err := m.searcher.Search(context.Background(), "hubot")
	require.NoError(t, err)
	m.searcher.AppendQuery("octocat")

	m, cmd := key(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "hubot", m.State().Username)
	assert.Equal(t, usecase.StatusSuccess, m.State().Status)

	m = drain(t, m, cmd)
	assert.Equal(t, "octocat", m.State().Username)
}

func TestModel_EnterWithoutQueryDoesNothing(t *testing.T) {
	m := newTestModel("")

	m, cmd := key(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, usecase.StatusIdle, m.State().Status)
}

func TestModel_Paging(t *testing.T) {
	m := newTestModel("octocat")
	m = drain(t, m, m.Init())

	m, _ = key(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.State().Page)

	for i := 0; i < 5; i++ {
		m, _ = key(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 3, m.State().Page)
	assert.Contains(t, m.View(), "repo-12")
	assert.Contains(t, m.View(), "page 3/3")

	m, _ = key(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 2, m.State().Page)
}

func TestModel_FailedSearch(t *testing.T) {
	m := newTestModel("ghost")
	m = drain(t, m, m.Init())

	assert.Equal(t, usecase.StatusFailed, m.State().Status)
	assert.Contains(t, m.View(), "Search failed")
	assert.NotContains(t, m.View(), "Repositories")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel("")

	_, cmd := key(m, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
