package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/database"
	"agentcore/src/model"
	"agentcore/src/validation"
)

// ConfigRepository handles read/write operations for system configurations.
type ConfigRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new repository instance using the main read/write database.
func NewConfigRepository() *ConfigRepository {
	logger.WithField("component", "ConfigRepository").
		Info("Creating new ConfigRepository with MainDB")

	return &ConfigRepository{
		db: database.MainDB,
	}
}

// NewConfigRepositoryReadOnly creates a repository bound to the read-only
// connection, for list endpoints.
func NewConfigRepositoryReadOnly() *ConfigRepository {
	return &ConfigRepository{
		db: database.ReadOnlyDB,
	}
}

// NewConfigRepositoryWithDB creates a repository bound to a specific DB
// instance, for tests or transactions.
func NewConfigRepositoryWithDB(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *ConfigRepository) WithDB(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Create validates and inserts a configuration entry. A duplicate key
// surfaces as a not_unique violation on key.
func (r *ConfigRepository) Create(
	ctx context.Context,
	cfg *model.SystemConfiguration,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":     "ConfigRepository",
		"op":       "Create",
		"key":      cfg.Key,
		"category": cfg.Category,
	}).Debug("Creating configuration entry")

	cfg.ApplyDefaults()

	if err := validation.Configuration(cfg); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Create(cfg).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ConfigRepository",
			"op":   "Create",
			"key":  cfg.Key,
		}).WithError(err).Error("Failed to create configuration entry")

		return translateCreateError(err, "key", "")
	}

	return nil
}

// FindByKey fetches a configuration entry by its unique key.
// Returns (nil, nil) if no entry exists.
func (r *ConfigRepository) FindByKey(
	ctx context.Context,
	key string,
) (*model.SystemConfiguration, error) {

	var cfg model.SystemConfiguration

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "ConfigRepository",
			"op":   "FindByKey",
			"key":  key,
		}).WithError(err).Error("Failed to fetch configuration by key")

		return nil, err
	}

	return &cfg, nil
}

// FindAll returns every configuration entry in insertion order.
func (r *ConfigRepository) FindAll(ctx context.Context) ([]model.SystemConfiguration, error) {
	var configs []model.SystemConfiguration

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&configs).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ConfigRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch configurations")

		return nil, err
	}

	return configs, nil
}

// UpdateValue updates the stored value for an existing key.
// Returns ErrNotFound when the key does not exist.
func (r *ConfigRepository) UpdateValue(
	ctx context.Context,
	key string,
	value string,
) error {

	logger.WithFields(map[string]interface{}{
		"repo": "ConfigRepository",
		"op":   "UpdateValue",
		"key":  key,
	}).Debug("Updating configuration value")

	result := r.db.WithContext(ctx).
		Model(&model.SystemConfiguration{}).
		Where("key = ?", key).
		Update("value", value)

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ConfigRepository",
			"op":   "UpdateValue",
			"key":  key,
		}).WithError(result.Error).Error("Failed to update configuration value")

		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
