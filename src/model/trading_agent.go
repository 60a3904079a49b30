package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AgentStatusIdle    = "idle"
	AgentStatusActive  = "active"
	AgentStatusStopped = "stopped"
	AgentStatusError   = "error"
)

// TradingAgent represents an autonomous trading account managed by the system.
// Trade counters are denormalized: they are bumped by the repository whenever
// a trade outcome is recorded, never recomputed from the trades table.
type TradingAgent struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Status         string          `gorm:"size:50;not null;default:idle" json:"status"`
	Balance        decimal.Decimal `gorm:"type:decimal(32,8);not null;default:0" json:"balance"`
	RiskTolerance  decimal.Decimal `gorm:"type:decimal(10,8);not null" json:"risk_tolerance"`
	StrategyParams map[string]any  `gorm:"type:jsonb;serializer:json" json:"strategy_params,omitempty"`
	LastTradeAt    *time.Time      `json:"last_trade_at,omitempty"`
	TotalTrades    int             `gorm:"not null;default:0" json:"total_trades"`
	WinningTrades  int             `gorm:"not null;default:0" json:"winning_trades"`
	LosingTrades   int             `gorm:"not null;default:0" json:"losing_trades"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// One-to-many relations: children reference the agent by AgentID.
	Trades     []Trade             `gorm:"foreignKey:AgentID" json:"trades,omitempty"`
	RiskEvents []RiskEvent         `gorm:"foreignKey:AgentID" json:"risk_events,omitempty"`
	Metrics    []PerformanceMetric `gorm:"foreignKey:AgentID" json:"metrics,omitempty"`
}

// TableName allows you to control the exact table name for agents.
func (TradingAgent) TableName() string {
	return "trading_agents"
}

// ApplyDefaults fills column defaults before insert so the in-memory
// struct matches what the database would store.
func (a *TradingAgent) ApplyDefaults() {
	if a.Status == "" {
		a.Status = AgentStatusIdle
	}
}

// WinRate returns the percentage of winning trades, unrounded.
// Agents with no recorded trades have a win rate of exactly 0.
func (a *TradingAgent) WinRate() float64 {
	if a.TotalTrades == 0 {
		return 0.0
	}
	return float64(a.WinningTrades) / float64(a.TotalTrades) * 100
}

func (a *TradingAgent) IsActive() bool {
	return a.Status == AgentStatusActive
}

// IsStopped is true for agents halted normally or halted by a fault.
func (a *TradingAgent) IsStopped() bool {
	return a.Status == AgentStatusStopped || a.Status == AgentStatusError
}
