//go:build unit

package analytics

const (
	MaxEvents       = maxEvents
	DailyWindowDays = dailyWindowDays
)
