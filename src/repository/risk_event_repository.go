package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/database"
	"agentcore/src/model"
	"agentcore/src/validation"
)

// RiskEventRepository handles read/write operations for risk events.
type RiskEventRepository struct {
	db *gorm.DB
}

// NewRiskEventRepository creates a new repository instance using the main read/write database.
func NewRiskEventRepository() *RiskEventRepository {
	logger.WithField("component", "RiskEventRepository").
		Info("Creating new RiskEventRepository with MainDB")

	return &RiskEventRepository{
		db: database.MainDB,
	}
}

// NewRiskEventRepositoryWithDB creates a repository bound to a specific DB
// instance, for tests or transactions.
func NewRiskEventRepositoryWithDB(db *gorm.DB) *RiskEventRepository {
	return &RiskEventRepository{db: db}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *RiskEventRepository) WithDB(db *gorm.DB) *RiskEventRepository {
	return &RiskEventRepository{db: db}
}

// Create validates and inserts a new risk event, assigning an EventUID when
// the caller did not provide one.
func (r *RiskEventRepository) Create(
	ctx context.Context,
	event *model.RiskEvent,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":       "RiskEventRepository",
		"op":         "Create",
		"agent_id":   event.AgentID,
		"event_type": event.EventType,
		"severity":   event.Severity,
	}).Debug("Creating new risk event")

	if err := validation.RiskEvent(event); err != nil {
		return err
	}

	if event.EventUID == "" {
		event.EventUID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Create(event).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "RiskEventRepository",
			"op":       "Create",
			"agent_id": event.AgentID,
		}).WithError(err).Error("Failed to create risk event")

		return translateCreateError(err, "event_uid", "agent_id")
	}

	logger.WithFields(map[string]interface{}{
		"repo":      "RiskEventRepository",
		"op":        "Create",
		"event_id":  event.ID,
		"event_uid": event.EventUID,
	}).Info("Risk event created successfully")

	return nil
}

// FindByID fetches a single risk event by its primary ID.
// Returns (nil, nil) if the event is not found.
func (r *RiskEventRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.RiskEvent, error) {

	var event model.RiskEvent

	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "RiskEventRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch risk event by ID")

		return nil, err
	}

	return &event, nil
}

// FindUnresolved returns open events, oldest first. Pass a severity to
// narrow the scan (e.g. only critical events for webhook alerting).
func (r *RiskEventRepository) FindUnresolved(
	ctx context.Context,
	severity string,
) ([]model.RiskEvent, error) {

	query := r.db.WithContext(ctx).
		Where("resolved = ?", false)

	if severity != "" {
		query = query.Where("severity = ?", severity)
	}

	var events []model.RiskEvent
	err := query.Order("created_at ASC, id ASC").Find(&events).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "RiskEventRepository",
			"op":       "FindUnresolved",
			"severity": severity,
		}).WithError(err).Error("Failed to fetch unresolved risk events")

		return nil, err
	}

	return events, nil
}

// Resolve marks the event resolved and stamps resolved_at with now. The
// transition is one-way and idempotent-safe: resolving an already-resolved
// event simply refreshes the timestamp. Caller-supplied values for the two
// fields are never consulted. Returns ErrNotFound for a missing event.
func (r *RiskEventRepository) Resolve(
	ctx context.Context,
	id uint,
	now time.Time,
) (*model.RiskEvent, error) {

	logger.WithFields(map[string]interface{}{
		"repo": "RiskEventRepository",
		"op":   "Resolve",
		"id":   id,
	}).Info("Resolving risk event")

	var event model.RiskEvent

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			logger.WithError(err).Error("Failed to load risk event inside transaction")
			return err
		}

		if err := tx.
			Model(&model.RiskEvent{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"resolved":    true,
				"resolved_at": now,
			}).Error; err != nil {
			logger.WithError(err).Error("Failed to resolve risk event inside transaction")
			return err
		}

		event.Resolved = true
		event.ResolvedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":      "RiskEventRepository",
		"op":        "Resolve",
		"id":        id,
		"event_uid": event.EventUID,
	}).Info("Risk event resolved")

	return &event, nil
}
