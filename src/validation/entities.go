package validation

import (
	"github.com/shopspring/decimal"

	"agentcore/src/model"
)

// Rule tables for the four persisted entities. Uniqueness of agent names
// and configuration keys, and agent_id referential integrity, are enforced
// at the storage boundary; the repositories translate those conflicts back
// into KindNotUnique / KindNotFound violations so callers see one shape.

var agentRules = RuleSet{
	Entity: "trading_agent",
	Rules: []FieldRule{
		{Name: "name", Required: true, Check: Length(1, 255)},
		{Name: "status", Check: Enum(
			model.AgentStatusIdle,
			model.AgentStatusActive,
			model.AgentStatusStopped,
			model.AgentStatusError,
		)},
		{Name: "balance", Check: DecimalMin(decimal.Zero, false)},
		{Name: "risk_tolerance", Required: true, Check: DecimalRange(decimal.Zero, decimal.NewFromInt(1), true)},
		{Name: "total_trades", Check: IntMin(0)},
		{Name: "winning_trades", Check: IntMin(0)},
		{Name: "losing_trades", Check: IntMin(0)},
	},
}

var tradeRules = RuleSet{
	Entity: "trade",
	Rules: []FieldRule{
		{Name: "agent_id", Required: true},
		{Name: "symbol", Required: true, Check: Length(1, 50)},
		{Name: "side", Required: true, Check: Enum(model.TradeSideBuy, model.TradeSideSell)},
		{Name: "type", Required: true, Check: Enum(
			model.TradeTypeMarket,
			model.TradeTypeLimit,
			model.TradeTypeStop,
			model.TradeTypeStopLimit,
		)},
		{Name: "quantity", Required: true, Check: DecimalMin(decimal.Zero, true)},
		{Name: "price", Required: true, Check: DecimalMin(decimal.Zero, true)},
		{Name: "executed_at", Required: true},
		{Name: "status", Check: Enum(
			model.TradeStatusPending,
			model.TradeStatusExecuted,
			model.TradeStatusCancelled,
			model.TradeStatusFailed,
		)},
		{Name: "fees", Check: DecimalMin(decimal.Zero, false)},
	},
}

var riskEventRules = RuleSet{
	Entity: "risk_event",
	Rules: []FieldRule{
		{Name: "agent_id", Required: true},
		{Name: "event_type", Required: true, Check: Enum(
			model.RiskEventDrawdownWarning,
			model.RiskEventPositionLimitExceeded,
			model.RiskEventCorrelationViolation,
			model.RiskEventEmergencyStop,
			model.RiskEventSystemError,
		)},
		{Name: "severity", Required: true, Check: Enum(
			model.SeverityLow,
			model.SeverityMedium,
			model.SeverityHigh,
			model.SeverityCritical,
		)},
		{Name: "message", Required: true, Check: Length(1, 1000)},
	},
}

var configurationRules = RuleSet{
	Entity: "system_configuration",
	Rules: []FieldRule{
		{Name: "key", Required: true, Check: Length(1, 255)},
		{Name: "value", Required: true},
		{Name: "description", Check: MaxLength(500)},
		{Name: "category", Check: Enum(
			model.ConfigCategoryGeneral,
			model.ConfigCategoryTrading,
			model.ConfigCategoryRiskManagement,
			model.ConfigCategoryAPI,
			model.ConfigCategoryMarketData,
			model.ConfigCategoryNotifications,
		)},
	},
}

// AgentStatus validates a status value alone, for status-only updates.
func AgentStatus(status string) error {
	var errs Errors
	check := Enum(
		model.AgentStatusIdle,
		model.AgentStatusActive,
		model.AgentStatusStopped,
		model.AgentStatusError,
	)
	if kind, ok := check(status); !ok {
		errs.add("status", kind)
	}
	return errs.orNil()
}

// Agent validates a candidate trading agent. Zero-valued identifiers and
// empty strings count as absent; decimals always count as present so a zero
// risk tolerance is reported as out_of_range, not missing.
func Agent(a *model.TradingAgent) error {
	fields := map[string]any{
		"balance":        a.Balance,
		"risk_tolerance": a.RiskTolerance,
		"total_trades":   a.TotalTrades,
		"winning_trades": a.WinningTrades,
		"losing_trades":  a.LosingTrades,
	}
	if a.Name != "" {
		fields["name"] = a.Name
	}
	if a.Status != "" {
		fields["status"] = a.Status
	}
	return agentRules.Apply(fields)
}

// Trade validates a candidate trade record.
func Trade(t *model.Trade) error {
	fields := map[string]any{
		"quantity": t.Quantity,
		"price":    t.Price,
	}
	if t.AgentID != 0 {
		fields["agent_id"] = t.AgentID
	}
	if t.Symbol != "" {
		fields["symbol"] = t.Symbol
	}
	if t.Side != "" {
		fields["side"] = t.Side
	}
	if t.Type != "" {
		fields["type"] = t.Type
	}
	if !t.ExecutedAt.IsZero() {
		fields["executed_at"] = t.ExecutedAt
	}
	if t.Status != "" {
		fields["status"] = t.Status
	}
	if t.Fees != nil {
		fields["fees"] = *t.Fees
	}
	return tradeRules.Apply(fields)
}

// RiskEvent validates a candidate risk event.
func RiskEvent(e *model.RiskEvent) error {
	fields := map[string]any{}
	if e.AgentID != 0 {
		fields["agent_id"] = e.AgentID
	}
	if e.EventType != "" {
		fields["event_type"] = e.EventType
	}
	if e.Severity != "" {
		fields["severity"] = e.Severity
	}
	if e.Message != "" {
		fields["message"] = e.Message
	}
	return riskEventRules.Apply(fields)
}

// Configuration validates a candidate system configuration entry.
func Configuration(c *model.SystemConfiguration) error {
	fields := map[string]any{}
	if c.Key != "" {
		fields["key"] = c.Key
	}
	if c.Value != "" {
		fields["value"] = c.Value
	}
	if c.Description != "" {
		fields["description"] = c.Description
	}
	if c.Category != "" {
		fields["category"] = c.Category
	}
	return configurationRules.Apply(fields)
}
