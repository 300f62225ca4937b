// Package usecase contains the business logic of the application.
package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-activity/internal/domain"
)

const dateLayout = "2006-01-02"

// AggregateCommits groups commit timestamps by calendar day and returns the
// per-day counts sorted by date. Only the date portion of each timestamp is
// used, so time of day and offset are ignored. Missing or malformed timestamps
// are skipped.
func AggregateCommits(timestamps []string) []domain.DailyCommitCount {
	counts := make(map[string]int)
	days := make(map[string]time.Time)

	for _, ts := range timestamps {
		if len(ts) < len(dateLayout) {
			continue
		}
		date := ts[:len(dateLayout)]
		day, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		counts[date]++
		days[date] = day
	}

	series := make([]domain.DailyCommitCount, 0, len(counts))
	for date, count := range counts {
		series = append(series, domain.DailyCommitCount{Date: date, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return days[series[i].Date].Before(days[series[j].Date])
	})

	return series
}

// Summarize computes descriptive statistics over a daily commit series.
// An empty series yields a zero summary.
func Summarize(series []domain.DailyCommitCount) domain.ActivitySummary {
	if len(series) == 0 {
		return domain.ActivitySummary{}
	}

	data := make(stats.Float64Data, 0, len(series))
	summary := domain.ActivitySummary{ActiveDays: len(series)}
	for _, day := range series {
		data = append(data, float64(day.Count))
		summary.TotalCommits += day.Count
		// The first day reaching the maximum wins ties.
		if day.Count > summary.Max {
			summary.Max = day.Count
			summary.BusiestDay = day.Date
		}
	}

	// Errors are only returned for empty input, which is handled above.
	mean, _ := data.Mean()
	median, _ := data.Median()
	stdDev, _ := data.StandardDeviation()
	summary.Mean = round2(mean)
	summary.Median = round2(median)
	summary.StdDev = round2(stdDev)

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
