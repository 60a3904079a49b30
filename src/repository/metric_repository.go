package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/database"
	"agentcore/src/model"
)

// MetricRepository handles read/write operations for performance rollups.
type MetricRepository struct {
	db *gorm.DB
}

// NewMetricRepository creates a new repository instance using the main read/write database.
func NewMetricRepository() *MetricRepository {
	logger.WithField("component", "MetricRepository").
		Info("Creating new MetricRepository with MainDB")

	return &MetricRepository{
		db: database.MainDB,
	}
}

// NewMetricRepositoryWithDB creates a repository bound to a specific DB
// instance, for tests or transactions.
func NewMetricRepositoryWithDB(db *gorm.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *MetricRepository) WithDB(db *gorm.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// Create inserts a rollup row. A dangling agent_id surfaces as a not_found
// violation translated from the foreign key constraint.
func (r *MetricRepository) Create(
	ctx context.Context,
	metric *model.PerformanceMetric,
) error {

	err := r.db.WithContext(ctx).Create(metric).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "MetricRepository",
			"op":       "Create",
			"agent_id": metric.AgentID,
		}).WithError(err).Error("Failed to create performance metric")

		return translateCreateError(err, "", "agent_id")
	}

	return nil
}

// FindByAgent returns an agent's rollups, newest period first.
func (r *MetricRepository) FindByAgent(
	ctx context.Context,
	agentID uint,
) ([]model.PerformanceMetric, error) {

	var metrics []model.PerformanceMetric

	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("period_start DESC").
		Find(&metrics).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "MetricRepository",
			"op":       "FindByAgent",
			"agent_id": agentID,
		}).WithError(err).Error("Failed to fetch performance metrics")

		return nil, err
	}

	return metrics, nil
}
