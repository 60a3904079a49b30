package utils

import (
	"time"

	logger "github.com/sirupsen/logrus"
)

// ResetTime resets the time component based on the granularity specified.
// Pass "minute" to reset seconds to zero.
// Pass "hour" to reset minutes and seconds to zero.
// Pass "day" to reset the whole time-of-day to midnight UTC.
func ResetTime(t time.Time, granularity string) time.Time {
	switch granularity {
	case "minute":
		return t.Truncate(time.Minute) // Resets seconds to zero
	case "hour":
		return t.Truncate(time.Hour) // Resets minutes and seconds to zero
	case "day":
		u := t.UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	default:
		logger.WithField("granularity", granularity).
			Warn("Invalid granularity. Please use 'minute', 'hour' or 'day'.")
		return t
	}
}
