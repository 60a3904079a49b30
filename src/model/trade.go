package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"

	TradeTypeMarket    = "market"
	TradeTypeLimit     = "limit"
	TradeTypeStop      = "stop"
	TradeTypeStopLimit = "stop_limit"

	TradeStatusPending   = "pending"
	TradeStatusExecuted  = "executed"
	TradeStatusCancelled = "cancelled"
	TradeStatusFailed    = "failed"

	// Trade outcomes drive the agent's denormalized counters.
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeFlat = "flat"
)

// Outcome classifies the trade for counter updates: win when net pnl is
// strictly positive, loss when strictly negative, flat otherwise
// (including trades with no recorded pnl).
func (t *Trade) Outcome() string {
	net := t.NetPnL()
	if net == nil {
		return OutcomeFlat
	}
	switch {
	case net.GreaterThan(decimal.Zero):
		return OutcomeWin
	case net.LessThan(decimal.Zero):
		return OutcomeLoss
	default:
		return OutcomeFlat
	}
}

// Trade is a single fill recorded against a trading agent.
type Trade struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	AgentID    uint             `gorm:"not null;index" json:"agent_id"`
	Symbol     string           `gorm:"size:50;not null" json:"symbol"`
	Side       string           `gorm:"size:10;not null" json:"side"`
	Type       string           `gorm:"size:20;not null" json:"type"`
	Quantity   decimal.Decimal  `gorm:"type:decimal(32,8);not null" json:"quantity"`
	Price      decimal.Decimal  `gorm:"type:decimal(32,8);not null" json:"price"`
	ExecutedAt time.Time        `gorm:"not null" json:"executed_at"`
	Status     string           `gorm:"size:50;not null;default:pending" json:"status"`
	PnL        *decimal.Decimal `gorm:"type:decimal(32,8);column:pnl" json:"pnl,omitempty"`
	Fees       *decimal.Decimal `gorm:"type:decimal(32,8)" json:"fees,omitempty"`
	Metadata   map[string]any   `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

func (t *Trade) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TradeStatusPending
	}
}

// Value is the notional value of the fill, quantity times price,
// computed with exact decimal arithmetic and no rounding.
func (t *Trade) Value() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// NetPnL returns pnl minus fees when both are present, pnl alone when fees
// are absent, and nil when no pnl has been recorded.
func (t *Trade) NetPnL() *decimal.Decimal {
	if t.PnL == nil {
		return nil
	}
	if t.Fees == nil {
		net := *t.PnL
		return &net
	}
	net := t.PnL.Sub(*t.Fees)
	return &net
}

// IsProfitable is true only when a pnl has been recorded and is strictly
// greater than zero.
func (t *Trade) IsProfitable() bool {
	return t.PnL != nil && t.PnL.GreaterThan(decimal.Zero)
}

func (t *Trade) IsCompleted() bool {
	return t.Status == TradeStatusExecuted
}
