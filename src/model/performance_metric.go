package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PerformanceMetric is a per-period rollup of an agent's results,
// written by whatever aggregates closed trades for the period.
type PerformanceMetric struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AgentID     uint            `gorm:"not null;index" json:"agent_id"`
	PeriodStart time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time       `gorm:"not null" json:"period_end"`
	TotalPnL    decimal.Decimal `gorm:"type:decimal(32,8);not null;default:0;column:total_pnl" json:"total_pnl"`
	MaxDrawdown decimal.Decimal `gorm:"type:decimal(32,8);not null;default:0" json:"max_drawdown"`
	TradeCount  int             `gorm:"not null;default:0" json:"trade_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (PerformanceMetric) TableName() string {
	return "performance_metrics"
}
