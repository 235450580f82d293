package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/validation"
)

type Config struct {
	DataFile    string           `mapstructure:"data_file"`
	CatalogFile string           `mapstructure:"catalog_file"`
	Log         LogConfig        `mapstructure:"log"`
	Validation  ValidationConfig `mapstructure:"validation"`
	Snapshots   SnapshotConfig   `mapstructure:"snapshots"`
}

type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	Dir   string `mapstructure:"dir"`
}

type ValidationConfig struct {
	EnforceHoursRange bool `mapstructure:"enforce_hours_range"`
	StrictCatalog     bool `mapstructure:"strict_catalog"`
	RequireWorkType   bool `mapstructure:"require_work_type"`
}

type SnapshotConfig struct {
	// Keep is the number of snapshots retained next to the data file; 0 disables them.
	Keep int `mapstructure:"keep"`
}

// Load reads configuration with precedence env > file > defaults. An empty
// path searches for dailysched.yaml in the config dir and the working dir;
// a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_file", constants.DefaultExportFile)
	v.SetDefault("catalog_file", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", constants.DefaultConfigDir)
	v.SetDefault("validation.enforce_hours_range", true)
	v.SetDefault("validation.strict_catalog", false)
	v.SetDefault("validation.require_work_type", false)
	v.SetDefault("snapshots.keep", constants.DefaultSnapshots)

	if path != "" {
		v.SetConfigFile(ExpandPath(path))
	} else {
		v.SetConfigName(constants.AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(ExpandPath(constants.DefaultConfigDir))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("invalid config: data_file must not be empty")
	}
	if c.Snapshots.Keep < 0 {
		return fmt.Errorf("invalid config: snapshots.keep must not be negative, got %d", c.Snapshots.Keep)
	}
	return nil
}

// Policy maps the validation keys onto a validator policy.
func (c *Config) Policy() validation.Policy {
	return validation.Policy{
		EnforceHoursRange: c.Validation.EnforceHoursRange,
		StrictCatalog:     c.Validation.StrictCatalog,
		RequireWorkType:   c.Validation.RequireWorkType,
	}
}

// Catalog loads the catalog override file, or the built-in catalog when none is set.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	return catalog.Load(ExpandPath(c.CatalogFile))
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
