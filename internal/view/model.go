package view

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naka-gawa/github-activity/internal/usecase"
)

const tickInterval = 100 * time.Millisecond

// searchDoneMsg is sent when a search started from the model returns.
type searchDoneMsg struct {
	generation uint64
	err        error
}

type tickMsg time.Time

// Model is the interactive search screen. Typed text goes to the searcher's
// query, enter starts a search and the arrow keys move between repository pages.
type Model struct {
	ctx      context.Context
	searcher *usecase.Searcher
	initial  string

	state   usecase.State
	pending int
	frame   int
}

// NewModel creates a new Model. When initial is not empty it is searched on start.
func NewModel(ctx context.Context, searcher *usecase.Searcher, initial string) Model {
	return Model{
		ctx:      ctx,
		searcher: searcher,
		initial:  strings.TrimSpace(initial),
		state:    searcher.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.initial == "" {
		return nil
	}
	return tea.Batch(m.startSearch(m.initial), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(m.state.Query)
			if query == "" {
				return m, nil
			}
			m.pending++
			m.state = m.searcher.Snapshot()
			return m, tea.Batch(m.startSearch(query), tick())
		case tea.KeyBackspace:
			m.searcher.TrimQuery()
		case tea.KeyRunes, tea.KeySpace:
			m.searcher.AppendQuery(string(msg.Runes))
		case tea.KeyLeft, tea.KeyPgUp:
			m.searcher.PrevPage()
		case tea.KeyRight, tea.KeyPgDown:
			m.searcher.NextPage()
		}
		m.state = m.searcher.Snapshot()

	case searchDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.state = m.searcher.Snapshot()

	case tickMsg:
		m.frame++
		m.state = m.searcher.Snapshot()
		if m.loading() {
			return m, tick()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("GitHub Activity"))
	b.WriteString("\n\n")

	b.WriteString(styleDim.Render("username › "))
	b.WriteString(styleInput.Render(m.state.Query))
	b.WriteString(styleDim.Render("▏"))
	if m.loading() {
		b.WriteString(" " + styleNumber.Render(spinnerFrames[m.frame%len(spinnerFrames)]))
	}
	b.WriteString("\n\n")

	page := usecase.Paginate(m.state.Repositories, m.state.Page, usecase.DefaultPageSize)
	if body := Render(m.state, page); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	b.WriteString(styleDim.Render("⏎ search  ←/→ page  esc quit"))
	return b.String()
}

// State returns the state the model last rendered.
func (m Model) State() usecase.State {
	return m.state
}

func (m Model) loading() bool {
	return m.pending > 0 || m.state.Status == usecase.StatusLoading
}

// startSearch runs the search off the event loop. Superseded searches are
// reported like any other completion; the searcher already discarded them.
func (m Model) startSearch(username string) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		state, err := searcher.Search(ctx, username)
		if errors.Is(err, usecase.ErrSuperseded) {
			err = nil
		}
		return searchDoneMsg{generation: state.Generation, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
