package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAgentWinRate(t *testing.T) {
	agent := &TradingAgent{}
	if got := agent.WinRate(); got != 0.0 {
		t.Fatalf("expected win rate 0.0 with no trades, got %v", got)
	}

	agent = &TradingAgent{TotalTrades: 8, WinningTrades: 6, LosingTrades: 2}
	assert.InDelta(t, 75.0, agent.WinRate(), 1e-9)

	agent = &TradingAgent{TotalTrades: 3, WinningTrades: 3}
	if got := agent.WinRate(); got != 100.0 {
		t.Fatalf("expected win rate 100.0, got %v", got)
	}

	// counters are denormalized and may be inconsistent; win rate must
	// still stay within [0, 100] for any non-negative counter state
	agent = &TradingAgent{TotalTrades: 10, WinningTrades: 0, LosingTrades: 10}
	rate := agent.WinRate()
	if rate < 0.0 || rate > 100.0 {
		t.Fatalf("win rate out of bounds: %v", rate)
	}
}

func TestAgentStatusPredicates(t *testing.T) {
	assert.True(t, (&TradingAgent{Status: AgentStatusActive}).IsActive())
	assert.False(t, (&TradingAgent{Status: AgentStatusIdle}).IsActive())

	assert.True(t, (&TradingAgent{Status: AgentStatusStopped}).IsStopped())
	assert.True(t, (&TradingAgent{Status: AgentStatusError}).IsStopped())
	assert.False(t, (&TradingAgent{Status: AgentStatusIdle}).IsStopped())
	assert.False(t, (&TradingAgent{Status: AgentStatusActive}).IsStopped())
}

func TestTradeValue(t *testing.T) {
	trade := &Trade{
		Quantity: decimal.RequireFromString("0.325"),
		Price:    decimal.RequireFromString("64123.17"),
	}

	want := decimal.RequireFromString("20840.03025")
	if !trade.Value().Equal(want) {
		t.Fatalf("expected trade value %s, got %s", want, trade.Value())
	}
}

func TestTradeNetPnL(t *testing.T) {
	t.Run("nil when pnl absent", func(t *testing.T) {
		trade := &Trade{Fees: decPtr("1.25")}
		assert.Nil(t, trade.NetPnL())
		assert.False(t, trade.IsProfitable())
	})

	t.Run("pnl alone when fees absent", func(t *testing.T) {
		trade := &Trade{PnL: decPtr("42.10")}
		net := trade.NetPnL()
		if net == nil || !net.Equal(decimal.RequireFromString("42.10")) {
			t.Fatalf("expected net pnl 42.10, got %v", net)
		}
	})

	t.Run("exact subtraction when both present", func(t *testing.T) {
		trade := &Trade{PnL: decPtr("100.50"), Fees: decPtr("1.25")}
		net := trade.NetPnL()
		if net == nil || !net.Equal(decimal.RequireFromString("99.25")) {
			t.Fatalf("expected net pnl 99.25, got %v", net)
		}
	})
}

func TestTradeIsProfitable(t *testing.T) {
	assert.True(t, (&Trade{PnL: decPtr("0.00000001")}).IsProfitable())
	assert.False(t, (&Trade{PnL: decPtr("0")}).IsProfitable())
	assert.False(t, (&Trade{PnL: decPtr("-3.50")}).IsProfitable())
	assert.False(t, (&Trade{}).IsProfitable())
}

func TestTradeIsCompleted(t *testing.T) {
	assert.True(t, (&Trade{Status: TradeStatusExecuted}).IsCompleted())
	assert.False(t, (&Trade{Status: TradeStatusPending}).IsCompleted())
	assert.False(t, (&Trade{Status: TradeStatusCancelled}).IsCompleted())
}

func TestRiskEventPredicates(t *testing.T) {
	assert.True(t, (&RiskEvent{Severity: SeverityCritical}).IsCritical())
	assert.False(t, (&RiskEvent{Severity: SeverityHigh}).IsCritical())

	now := time.Now()
	assert.True(t, (&RiskEvent{Resolved: true, ResolvedAt: &now}).IsResolved())
	assert.False(t, (&RiskEvent{}).IsResolved())
}

func TestRiskEventAgeInHours(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	event := &RiskEvent{CreatedAt: created}

	cases := []struct {
		now  time.Time
		want int
	}{
		{created, 0},
		{created.Add(59 * time.Minute), 0},
		{created.Add(60 * time.Minute), 1},
		{created.Add(26*time.Hour + 45*time.Minute), 26},
	}

	for _, c := range cases {
		if got := event.AgeInHours(c.now); got != c.want {
			t.Fatalf("AgeInHours at %s: expected %d, got %d", c.now, c.want, got)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	agent := &TradingAgent{}
	agent.ApplyDefaults()
	assert.Equal(t, AgentStatusIdle, agent.Status)

	agent.Status = AgentStatusActive
	agent.ApplyDefaults()
	assert.Equal(t, AgentStatusActive, agent.Status)

	trade := &Trade{}
	trade.ApplyDefaults()
	assert.Equal(t, TradeStatusPending, trade.Status)

	cfg := &SystemConfiguration{}
	cfg.ApplyDefaults()
	assert.Equal(t, ConfigCategoryGeneral, cfg.Category)
}
