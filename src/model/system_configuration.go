package model

import "time"

const (
	ConfigCategoryGeneral        = "general"
	ConfigCategoryTrading        = "trading"
	ConfigCategoryRiskManagement = "risk_management"
	ConfigCategoryAPI            = "api"
	ConfigCategoryMarketData     = "market_data"
	ConfigCategoryNotifications  = "notifications"
)

// SystemConfiguration is a keyed runtime setting. Encrypted rows hold a
// base64 secretbox payload; use the registry to read values so decryption
// is applied.
type SystemConfiguration struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"size:255;not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Category    string    `gorm:"size:50;not null;default:general;index" json:"category"`
	Encrypted   bool      `gorm:"not null;default:false" json:"encrypted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SystemConfiguration) TableName() string {
	return "system_configurations"
}

func (c *SystemConfiguration) ApplyDefaults() {
	if c.Category == "" {
		c.Category = ConfigCategoryGeneral
	}
}

func (c *SystemConfiguration) IsEncrypted() bool {
	return c.Encrypted
}
