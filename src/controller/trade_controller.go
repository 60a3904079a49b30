// Package controller orchestrates multi-repository flows that do not belong
// to a single storage entity.
package controller

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/model"
	"agentcore/src/repository"
)

// TradeController records trade executions and keeps the owning agent's
// denormalized counters in step with them.
type TradeController struct {
	trades *repository.TradeRepository
	agents *repository.AgentRepository
}

// NewTradeController creates a controller wired to the main database.
func NewTradeController() *TradeController {
	return &TradeController{
		trades: repository.NewTradeRepository(),
		agents: repository.NewAgentRepository(),
	}
}

// NewTradeControllerWithDB creates a controller bound to a specific DB
// instance, for tests or transactions.
func NewTradeControllerWithDB(db *gorm.DB) *TradeController {
	return &TradeController{
		trades: repository.NewTradeRepositoryWithDB(db),
		agents: repository.NewAgentRepositoryWithDB(db),
	}
}

// RecordExecution persists the trade and, when it is already executed,
// bumps the agent's trade counters according to the trade's outcome.
// Flow:
// 1) validate and insert the trade
// 2) classify the outcome from net pnl
// 3) increment the agent's counters and stamp last_trade_at
func (c *TradeController) RecordExecution(
	ctx context.Context,
	trade *model.Trade,
) error {

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := c.trades.Create(ctx, trade); err != nil {
		return err
	}

	if !trade.IsCompleted() {
		logger.WithFields(map[string]interface{}{
			"trade_id": trade.ID,
			"status":   trade.Status,
		}).Debug("Trade not executed yet, counters untouched")
		return nil
	}

	outcome := trade.Outcome()

	err := c.agents.RecordTradeOutcome(ctx, trade.AgentID, outcome, trade.ExecutedAt)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"trade_id": trade.ID,
			"agent_id": trade.AgentID,
			"outcome":  outcome,
		}).WithError(err).Error("Failed to record trade outcome on agent")
		return err
	}

	logger.WithFields(map[string]interface{}{
		"trade_id": trade.ID,
		"agent_id": trade.AgentID,
		"outcome":  outcome,
		"value":    trade.Value().String(),
	}).Info("Trade execution recorded")

	return nil
}
