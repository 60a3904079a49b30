package migrations

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agentcore/src/model"
)

// backfillRiskEventUIDs assigns an event_uid to risk events created before
// the column existed, so webhook deliveries can always be deduplicated.
func backfillRiskEventUIDs(db *gorm.DB) error {
	var events []model.RiskEvent
	if err := db.Where("event_uid IS NULL OR event_uid = ''").Find(&events).Error; err != nil {
		return fmt.Errorf("load risk events without uid: %w", err)
	}

	for i := range events {
		uid := uuid.NewString()
		err := db.Model(&model.RiskEvent{}).
			Where("id = ?", events[i].ID).
			Update("event_uid", uid).Error
		if err != nil {
			return fmt.Errorf("backfill event_uid for risk event %d: %w", events[i].ID, err)
		}
	}

	return nil
}
