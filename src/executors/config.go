package executors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LoopPeriod       time.Duration `envconfig:"LOOP_PERIOD" default:"30s"`
	AlertMinSeverity string        `envconfig:"ALERT_MIN_SEVERITY" default:"critical"`
	StaleAfterHours  int           `envconfig:"STALE_AFTER_HOURS" default:"24"`
	WebhookConfigKey string        `envconfig:"WEBHOOK_CONFIG_KEY" default:"risk_webhook_url"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
