package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAgentPayload is the request body for creating a trading agent.
type CreateAgentPayload struct {
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	RiskTolerance  decimal.Decimal `json:"risk_tolerance"`
	StrategyParams map[string]any  `json:"strategy_params,omitempty"`
}

func (p *CreateAgentPayload) ToModel() *TradingAgent {
	return &TradingAgent{
		Name:           p.Name,
		Status:         p.Status,
		Balance:        p.Balance,
		RiskTolerance:  p.RiskTolerance,
		StrategyParams: p.StrategyParams,
	}
}

// CreateTradePayload is the request body for recording a trade.
type CreateTradePayload struct {
	AgentID    uint             `json:"agent_id"`
	Symbol     string           `json:"symbol"`
	Side       string           `json:"side"`
	Type       string           `json:"type"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Price      decimal.Decimal  `json:"price"`
	ExecutedAt time.Time        `json:"executed_at"`
	Status     string           `json:"status"`
	PnL        *decimal.Decimal `json:"pnl,omitempty"`
	Fees       *decimal.Decimal `json:"fees,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
}

func (p *CreateTradePayload) ToModel() *Trade {
	return &Trade{
		AgentID:    p.AgentID,
		Symbol:     p.Symbol,
		Side:       p.Side,
		Type:       p.Type,
		Quantity:   p.Quantity,
		Price:      p.Price,
		ExecutedAt: p.ExecutedAt,
		Status:     p.Status,
		PnL:        p.PnL,
		Fees:       p.Fees,
		Metadata:   p.Metadata,
	}
}

// CreateRiskEventPayload is the request body for raising a risk event.
type CreateRiskEventPayload struct {
	AgentID   uint           `json:"agent_id"`
	EventType string         `json:"event_type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (p *CreateRiskEventPayload) ToModel() *RiskEvent {
	return &RiskEvent{
		AgentID:   p.AgentID,
		EventType: p.EventType,
		Severity:  p.Severity,
		Message:   p.Message,
		Metadata:  p.Metadata,
	}
}

// ResolveRiskEventPayload exists so callers can POST a body to the resolve
// endpoint; both fields are deliberately ignored. The server always forces
// resolved=true and stamps resolved_at itself.
type ResolveRiskEventPayload struct {
	Resolved   *bool      `json:"resolved,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
