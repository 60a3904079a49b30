package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/database"
	"agentcore/src/model"
	"agentcore/src/validation"
)

// AgentRepository handles read/write operations for trading agents.
type AgentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new repository instance using the main read/write database.
func NewAgentRepository() *AgentRepository {
	logger.WithField("component", "AgentRepository").
		Info("Creating new AgentRepository with MainDB")

	return &AgentRepository{
		db: database.MainDB,
	}
}

// NewAgentRepositoryWithDB creates a repository bound to a specific DB
// instance, for tests or transactions.
func NewAgentRepositoryWithDB(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *AgentRepository) WithDB(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create validates and inserts a new agent. Field violations come back as
// *validation.Errors; a duplicate name surfaces the same way with a
// not_unique violation from the database's unique index.
func (r *AgentRepository) Create(
	ctx context.Context,
	agent *model.TradingAgent,
) error {

	logger.WithFields(map[string]interface{}{
		"repo": "AgentRepository",
		"op":   "Create",
		"name": agent.Name,
	}).Debug("Creating new trading agent")

	agent.ApplyDefaults()

	if err := validation.Agent(agent); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Create(agent).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "AgentRepository",
			"op":   "Create",
			"name": agent.Name,
		}).WithError(err).Error("Failed to create trading agent")

		return translateCreateError(err, "name", "")
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "AgentRepository",
		"op":       "Create",
		"agent_id": agent.ID,
	}).Info("Trading agent created successfully")

	return nil
}

// FindByID fetches a single agent by its primary ID.
// Returns (nil, nil) if the agent is not found.
func (r *AgentRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.TradingAgent, error) {

	var agent model.TradingAgent

	err := r.db.WithContext(ctx).First(&agent, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "AgentRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch agent by ID")

		return nil, err
	}

	return &agent, nil
}

// FindByName fetches a single agent by its unique name.
// Returns (nil, nil) if the agent is not found.
func (r *AgentRepository) FindByName(
	ctx context.Context,
	name string,
) (*model.TradingAgent, error) {

	var agent model.TradingAgent

	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&agent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "AgentRepository",
			"op":   "FindByName",
			"name": name,
		}).WithError(err).Error("Failed to fetch agent by name")

		return nil, err
	}

	return &agent, nil
}

// FindAll returns every agent ordered by primary key.
func (r *AgentRepository) FindAll(ctx context.Context) ([]model.TradingAgent, error) {
	var agents []model.TradingAgent

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&agents).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "AgentRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch agents")

		return nil, err
	}

	return agents, nil
}

// UpdateStatus updates only the status of the given agent ID.
func (r *AgentRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status string,
) error {

	if err := validation.AgentStatus(status); err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":   "AgentRepository",
		"op":     "UpdateStatus",
		"id":     id,
		"status": status,
	}).Debug("Updating agent status")

	result := r.db.WithContext(ctx).
		Model(&model.TradingAgent{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "AgentRepository",
			"op":     "UpdateStatus",
			"id":     id,
			"status": status,
		}).WithError(result.Error).Error("Failed to update agent status")

		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	logger.WithFields(map[string]interface{}{
		"repo":   "AgentRepository",
		"op":     "UpdateStatus",
		"id":     id,
		"status": status,
	}).Info("Agent status updated successfully")

	return nil
}

// RecordTradeOutcome bumps the agent's denormalized trade counters inside a
// transaction. total_trades always increments; winning_trades or
// losing_trades increments for win/loss outcomes, and last_trade_at is
// stamped with the execution time.
func (r *AgentRepository) RecordTradeOutcome(
	ctx context.Context,
	agentID uint,
	outcome string,
	executedAt time.Time,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":     "AgentRepository",
		"op":       "RecordTradeOutcome",
		"agent_id": agentID,
		"outcome":  outcome,
	}).Info("Recording trade outcome on agent counters")

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var agent model.TradingAgent

		if err := tx.First(&agent, agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			logger.WithError(err).Error("Failed to load agent inside transaction")
			return err
		}

		updates := map[string]interface{}{
			"total_trades":  agent.TotalTrades + 1,
			"last_trade_at": executedAt,
		}
		switch outcome {
		case model.OutcomeWin:
			updates["winning_trades"] = agent.WinningTrades + 1
		case model.OutcomeLoss:
			updates["losing_trades"] = agent.LosingTrades + 1
		}

		if err := tx.
			Model(&model.TradingAgent{}).
			Where("id = ?", agentID).
			Updates(updates).Error; err != nil {
			logger.WithError(err).Error("Failed to update agent counters inside transaction")
			return err
		}

		return nil
	})
}
