package security

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// ConfigCRKey is the base64-encoded 32-byte key used to encrypt and
	// decrypt sensitive configuration values at rest.
	ConfigCRKey string `envconfig:"CONFIG_CREDENTIALS_KEY" default:""`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
