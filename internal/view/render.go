// Package view renders search state for the terminal and exports the commit
// chart as an HTML page.
package view

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

const (
	chartWidth       = 40
	noDescription    = "No description"
	noCommitActivity = "No recent commits"
)

// RenderProfile renders the profile card. A nil profile renders nothing.
func RenderProfile(p *domain.Profile) string {
	if p == nil {
		return ""
	}

	lines := []string{styleLogin.Render(p.Login)}
	if p.Name != nil {
		lines[0] += " " + styleText.Render(*p.Name)
	}
	if p.Bio != nil {
		lines = append(lines, styleText.Render(*p.Bio))
	}
	lines = append(lines, styleDim.Render(fmt.Sprintf("%d repos · %d followers · %d following",
		p.PublicRepos, p.Followers, p.Following)))
	if p.HTMLURL != "" {
		lines = append(lines, styleLink.Render(p.HTMLURL))
	}
	lines = append(lines, styleDim.Render("avatar: "+p.AvatarURL))

	return styleCard.Render(strings.Join(lines, "\n"))
}

// RenderRepositories renders one page of the repository list with its position.
func RenderRepositories(page usecase.Page[domain.Repository]) string {
	if page.TotalPages == 0 {
		return styleDim.Render("No public repositories")
	}

	var b strings.Builder
	for _, r := range page.Items {
		b.WriteString(styleLogin.Render(r.Name))
		if r.Language != nil {
			b.WriteString(" " + styleDim.Render(*r.Language))
		}
		if r.Stars > 0 {
			b.WriteString(" " + styleNumber.Render(fmt.Sprintf("★ %d", r.Stars)))
		}
		b.WriteString("\n")

		desc := noDescription
		if r.Description != nil {
			desc = *r.Description
		}
		b.WriteString("  " + styleText.Render(desc) + "\n")
		b.WriteString("  " + styleLink.Render(r.HTMLURL))
		if !r.UpdatedAt.IsZero() {
			b.WriteString(" " + styleDim.Render("updated "+r.UpdatedAt.Format("2006-01-02")))
		}
		b.WriteString("\n")
	}
	b.WriteString(styleDim.Render(fmt.Sprintf("page %d/%d", page.Number, page.TotalPages)))
	return b.String()
}

// RenderChart renders the daily commit series as horizontal bars scaled to the busiest day.
func RenderChart(series []domain.DailyCommitCount) string {
	if len(series) == 0 {
		return styleDim.Render(noCommitActivity)
	}

	busiest := 0
	for _, day := range series {
		if day.Count > busiest {
			busiest = day.Count
		}
	}

	var b strings.Builder
	for i, day := range series {
		width := day.Count * chartWidth / busiest
		if width < 1 {
			width = 1
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s",
			styleDim.Render(day.Date),
			styleBar.Render(strings.Repeat("█", width)),
			styleNumber.Render(fmt.Sprint(day.Count)))
	}
	return b.String()
}

// RenderSummary renders the activity statistics on one line.
func RenderSummary(s domain.ActivitySummary) string {
	if s.ActiveDays == 0 {
		return ""
	}
	return styleText.Render(fmt.Sprintf("%d commits on %d days · mean %.2f · median %.2f · busiest %s (%d)",
		s.TotalCommits, s.ActiveDays, s.Mean, s.Median, s.BusiestDay, s.Max))
}

// Render renders the whole state: status line, profile, activity and the visible repositories.
func Render(state usecase.State, page usecase.Page[domain.Repository]) string {
	var sections []string

	switch state.Status {
	case usecase.StatusLoading:
		sections = append(sections, styleDim.Render("Loading "+state.Username+"…"))
	case usecase.StatusFailed:
		msg := "Search failed"
		if state.Err != nil {
			msg += ": " + state.Err.Error()
		}
		sections = append(sections, styleError.Render(msg))
	}

	if state.Status != usecase.StatusSuccess {
		return strings.Join(sections, "\n\n")
	}

	sections = append(sections, RenderProfile(state.Profile))

	activity := styleTitle.Render("Commit activity") + "\n" + RenderChart(state.Commits)
	if summary := RenderSummary(state.Summary); summary != "" {
		activity += "\n" + summary
	}
	if n := len(state.FailedRepositories); n > 0 {
		activity += "\n" + styleWarning.Render(fmt.Sprintf("commits unavailable for %d repositories: %s",
			n, strings.Join(state.FailedRepositories, ", ")))
	}
	sections = append(sections, activity)

	sections = append(sections, styleTitle.Render("Repositories")+"\n"+RenderRepositories(page))
	return strings.Join(sections, "\n\n")
}
