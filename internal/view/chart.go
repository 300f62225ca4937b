package view

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// WriteChartHTML renders the daily commit series of username as a standalone
// HTML line chart.
func WriteChartHTML(w io.Writer, username string, series []domain.DailyCommitCount) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Commit activity",
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Commits per day: %s", username),
			Subtitle: "Recent commits across public repositories",
		}),
	)

	xAxis := make([]string, 0, len(series))
	data := make([]opts.LineData, 0, len(series))
	for _, day := range series {
		xAxis = append(xAxis, day.Date)
		data = append(data, opts.LineData{Name: day.Date, Value: day.Count})
	}

	line.SetXAxis(xAxis).
		AddSeries("Commits", data).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.3}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
