package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/snackbot/core/config"
	coredatabase "github.com/m3rciful/snackbot/core/database"
)

// defaultDeliveryFee is the flat delivery charge in minor currency units.
const defaultDeliveryFee = 99

// ShopConfig holds snackbot-specific settings.
type ShopConfig struct {
	DeliveryFee int `yaml:"delivery_fee" envconfig:"SHOP_DELIVERY_FEE"`
}

// Config aggregates core, database, and shop configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Shop     ShopConfig          `yaml:"shop"`
}

// CoreConfig exposes the embedded core configuration to the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads configuration from a YAML file and environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if len(cfg.Core.Telegram.AdminIDs) == 0 {
		return nil, fmt.Errorf("telegram.admin_ids must list at least one administrator")
	}
	if cfg.Shop.DeliveryFee == 0 {
		cfg.Shop.DeliveryFee = defaultDeliveryFee
	}
	if cfg.Shop.DeliveryFee < 0 {
		return nil, fmt.Errorf("shop.delivery_fee must be >= 0")
	}
	return &cfg, nil
}
