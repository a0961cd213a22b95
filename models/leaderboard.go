package models

// LeaderboardMetric selects which column a leaderboard is ordered by
type LeaderboardMetric string

const (
	MetricBalance    LeaderboardMetric = "balance"
	MetricExperience LeaderboardMetric = "experience"
)
