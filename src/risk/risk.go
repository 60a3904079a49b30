// Package risk contains triage helpers over risk events: severity ordering,
// alert selection and staleness checks used by the notifier loop.
package risk

import (
	"sort"
	"time"

	"agentcore/src/model"
)

// severityRank orders severities from least to most urgent. Unknown
// severities rank below low so they never outrank real ones.
var severityRank = map[string]int{
	model.SeverityLow:      1,
	model.SeverityMedium:   2,
	model.SeverityHigh:     3,
	model.SeverityCritical: 4,
}

// SeverityRank returns the urgency rank of a severity label, 0 for unknown.
func SeverityRank(severity string) int {
	return severityRank[severity]
}

// AtLeast reports whether severity is as urgent as threshold or more so.
func AtLeast(severity, threshold string) bool {
	return SeverityRank(severity) >= SeverityRank(threshold)
}

// AlertConfig tunes which open events warrant a webhook alert.
type AlertConfig struct {
	// MinSeverity is the lowest severity that always alerts.
	MinSeverity string

	// StaleAfterHours promotes lower-severity events to alerting once they
	// have been open this many whole hours. Zero disables promotion.
	StaleAfterHours int
}

// DefaultAlertConfig alerts on critical events immediately and on anything
// high or above once it has been open for a day.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		MinSeverity:     model.SeverityCritical,
		StaleAfterHours: 24,
	}
}

// IsStale reports whether an open event has aged past the configured
// threshold. Resolved events are never stale.
func IsStale(event *model.RiskEvent, now time.Time, cfg AlertConfig) bool {
	if cfg.StaleAfterHours <= 0 || event.IsResolved() {
		return false
	}
	return event.AgeInHours(now) >= cfg.StaleAfterHours
}

// ShouldAlert decides whether one event warrants an alert right now.
func ShouldAlert(event *model.RiskEvent, now time.Time, cfg AlertConfig) bool {
	if event.IsResolved() {
		return false
	}
	if AtLeast(event.Severity, cfg.MinSeverity) {
		return true
	}
	return IsStale(event, now, cfg) && AtLeast(event.Severity, model.SeverityHigh)
}

// SelectAlerts filters open events down to those warranting an alert and
// orders them most urgent first, oldest first within a severity.
func SelectAlerts(events []model.RiskEvent, now time.Time, cfg AlertConfig) []model.RiskEvent {
	var selected []model.RiskEvent
	for _, event := range events {
		candidate := event
		if ShouldAlert(&candidate, now, cfg) {
			selected = append(selected, candidate)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		ri, rj := SeverityRank(selected[i].Severity), SeverityRank(selected[j].Severity)
		if ri != rj {
			return ri > rj
		}
		return selected[i].CreatedAt.Before(selected[j].CreatedAt)
	})

	return selected
}

// RequiresEmergencyStop reports whether the batch contains an event that
// should halt the owning agent outright.
func RequiresEmergencyStop(events []model.RiskEvent) bool {
	for i := range events {
		event := &events[i]
		if event.IsResolved() {
			continue
		}
		if event.EventType == model.RiskEventEmergencyStop && event.IsCritical() {
			return true
		}
	}
	return false
}
