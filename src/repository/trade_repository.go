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

// TradeRepository handles read/write operations for trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main read/write database.
func NewTradeRepository() *TradeRepository {
	logger.WithField("component", "TradeRepository").
		Info("Creating new TradeRepository with MainDB")

	return &TradeRepository{
		db: database.MainDB,
	}
}

// NewTradeRepositoryReadOnly creates a repository bound to the read-only
// connection, for search endpoints.
func NewTradeRepositoryReadOnly() *TradeRepository {
	return &TradeRepository{
		db: database.ReadOnlyDB,
	}
}

// NewTradeRepositoryWithDB creates a repository bound to a specific DB
// instance, for tests or transactions.
func NewTradeRepositoryWithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create validates and inserts a new trade. A dangling agent_id surfaces as
// a not_found violation on agent_id, translated from the foreign key
// constraint at the storage boundary.
func (r *TradeRepository) Create(
	ctx context.Context,
	trade *model.Trade,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Create",
		"agent_id": trade.AgentID,
		"symbol":   trade.Symbol,
		"side":     trade.Side,
	}).Debug("Creating new trade")

	trade.ApplyDefaults()

	if err := validation.Trade(trade); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Create(trade).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "Create",
			"agent_id": trade.AgentID,
		}).WithError(err).Error("Failed to create trade")

		return translateCreateError(err, "", "agent_id")
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Create",
		"trade_id": trade.ID,
	}).Info("Trade created successfully")

	return nil
}

// FindByID fetches a single trade by its primary ID.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.Trade, error) {

	var trade model.Trade

	err := r.db.WithContext(ctx).First(&trade, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch trade by ID")

		return nil, err
	}

	return &trade, nil
}

// TradeSearchOptions narrows a trade search. Zero-valued fields are
// ignored; pointers distinguish "unset" from meaningful zero values.
type TradeSearchOptions struct {
	AgentID        uint
	Symbol         *string
	Status         *string
	ExecutedAfter  *time.Time
	ExecutedBefore *time.Time
	Limit          int
	Offset         int
}

// Search returns trades matching the options, newest first.
func (r *TradeRepository) Search(
	ctx context.Context,
	options TradeSearchOptions,
) ([]model.Trade, error) {

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Search",
		"agent_id": options.AgentID,
	}).Debug("Searching trades")

	query := r.db.WithContext(ctx).Model(&model.Trade{})

	if options.AgentID != 0 {
		query = query.Where("agent_id = ?", options.AgentID)
	}
	if options.Symbol != nil {
		query = query.Where("symbol = ?", *options.Symbol)
	}
	if options.Status != nil {
		query = query.Where("status = ?", *options.Status)
	}
	if options.ExecutedAfter != nil {
		query = query.Where("executed_at >= ?", *options.ExecutedAfter)
	}
	if options.ExecutedBefore != nil {
		query = query.Where("executed_at <= ?", *options.ExecutedBefore)
	}

	query = query.Order("executed_at DESC, id DESC")

	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var trades []model.Trade
	if err := query.Find(&trades).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "Search",
			"agent_id": options.AgentID,
		}).WithError(err).Error("Failed to search trades")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "Search",
		"rows_return": len(trades),
	}).Info("Trades fetched")

	return trades, nil
}
