// Package domain contains the core data structures and domain logic for the application.
package domain

// DailyCommitCount is the number of commit samples that fall on one calendar day.
// Date uses the YYYY-MM-DD layout and Count is always at least 1.
type DailyCommitCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ActivitySummary holds descriptive statistics over a daily commit series.
// The statistics only consider days with at least one commit.
type ActivitySummary struct {
	TotalCommits int     `json:"total_commits"`
	ActiveDays   int     `json:"active_days"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Max          int     `json:"max"`
	StdDev       float64 `json:"std_dev"`
	BusiestDay   string  `json:"busiest_day,omitempty"`
}
