package utils

import (
	"testing"
	"time"
)

func TestResetTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 14, 37, 42, 123, time.UTC)

	if got := ResetTime(at, "minute"); got.Second() != 0 || got.Minute() != 37 {
		t.Fatalf("minute reset wrong: %v", got)
	}
	if got := ResetTime(at, "hour"); got.Minute() != 0 || got.Hour() != 14 {
		t.Fatalf("hour reset wrong: %v", got)
	}

	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := ResetTime(at, "day"); !got.Equal(want) {
		t.Fatalf("day reset wrong: %v", got)
	}

	// unknown granularity passes the time through untouched
	if got := ResetTime(at, "week"); !got.Equal(at) {
		t.Fatalf("unknown granularity must be a no-op: %v", got)
	}
}
