package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// Front ends selectable with the ui setting.
const (
	UIText   = "text"
	UIScreen = "screen"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Variant  string   `yaml:"variant" env:"VARIANT" env-default:"tictactoe"`
	UI       string   `yaml:"ui" env:"UI" env-default:"text"`
	Geometry Geometry `yaml:"geometry"`
	Redis    Redis    `yaml:"redis"`
}

// Geometry overrides the variant's board for custom M×N games. It is
// ignored while all of its fields are zero.
type Geometry struct {
	Rows      int                  `yaml:"rows" env:"BOARD_ROWS"`
	Cols      int                  `yaml:"cols" env:"BOARD_COLS"`
	WinLength int                  `yaml:"win-length" env:"BOARD_WIN_LENGTH"`
	Mode      entity.PlacementMode `yaml:"mode" env:"BOARD_MODE"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - loads config.yml at path, or only the environment when the file
// does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

// GameVariant - resolves the configured variant, applying the geometry
// override when one is set.
func (that *Config) GameVariant() (entity.Variant, error) {
	variant, err := entity.VariantByName(that.Variant)
	if err != nil {
		return entity.Variant{}, err
	}

	if !that.Geometry.isZero() {
		variant.Name = fmt.Sprintf("custom-%dx%d-%d", that.Geometry.Rows, that.Geometry.Cols, that.Geometry.WinLength)
		variant.Geometry = entity.Geometry{
			Rows:      that.Geometry.Rows,
			Cols:      that.Geometry.Cols,
			WinLength: that.Geometry.WinLength,
			Mode:      that.Geometry.Mode,
		}
	}

	if err = variant.Geometry.Validate(); err != nil {
		return entity.Variant{}, err
	}

	return variant, nil
}

func (that Geometry) isZero() bool {
	return that == Geometry{}
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
