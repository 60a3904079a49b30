package model

import "time"

const (
	RiskEventDrawdownWarning       = "drawdown_warning"
	RiskEventPositionLimitExceeded = "position_limit_exceeded"
	RiskEventCorrelationViolation  = "correlation_violation"
	RiskEventEmergencyStop         = "emergency_stop"
	RiskEventSystemError           = "system_error"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// RiskEvent records a risk-control incident raised against an agent.
// Resolution is one-way: once resolved an event never goes back to open,
// and the resolution timestamp is always stamped by the server.
type RiskEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// EventUID is a stable identifier handed to external systems
	// (webhook payloads) so retries can be deduplicated.
	EventUID string `gorm:"size:64;uniqueIndex;column:event_uid" json:"event_uid"`

	AgentID    uint           `gorm:"not null;index" json:"agent_id"`
	EventType  string         `gorm:"size:50;not null" json:"event_type"`
	Severity   string         `gorm:"size:20;not null;index" json:"severity"`
	Message    string         `gorm:"size:1000;not null" json:"message"`
	Metadata   map[string]any `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	Resolved   bool           `gorm:"not null;default:false;index" json:"resolved"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (RiskEvent) TableName() string {
	return "risk_events"
}

func (e *RiskEvent) IsCritical() bool {
	return e.Severity == SeverityCritical
}

func (e *RiskEvent) IsResolved() bool {
	return e.Resolved
}

// AgeInHours is the whole number of hours elapsed since the event was
// created, truncated. The caller supplies the clock so tests stay
// deterministic.
func (e *RiskEvent) AgeInHours(now time.Time) int {
	return int(now.Sub(e.CreatedAt) / time.Hour)
}
