package srv

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every tunable of the engine. Defaults are the reference
// balance values; any of them can be overridden through the environment.
type Config struct {
	Addr    string `env:"ADDR" envDefault:":3001"`
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`

	InitialHealth     float64 `env:"INITIAL_HEALTH" envDefault:"10000"`
	InitialMoney      float64 `env:"INITIAL_MONEY" envDefault:"50"`
	InitialEnergy     float64 `env:"INITIAL_ENERGY" envDefault:"100"`
	InitialClickPower float64 `env:"INITIAL_CLICK_POWER" envDefault:"1"`

	BaseMoneyPerSecond  float64 `env:"BASE_MONEY_PER_SECOND" envDefault:"0"`
	BaseEnergyPerSecond float64 `env:"BASE_ENERGY_PER_SECOND" envDefault:"1"`

	// EnergyCap doubles as the threshold that forces an energy choice.
	EnergyCap     float64 `env:"ENERGY_CAP" envDefault:"1000"`
	EnergyPerFood float64 `env:"ENERGY_PER_FOOD" envDefault:"10"`

	// DefaultFoodAmount is bought when a buy_food intent names no amount.
	DefaultFoodAmount float64 `env:"DEFAULT_FOOD_AMOUNT" envDefault:"10"`
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
