// Package config loads the settings of a run from defaults, a variant preset, an optional
// YAML file, the environment and command flags.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/go-teambalance/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "TEAMBALANCE"

const DefaultVariant = "four"

type Config struct {
	Variant  string         `mapstructure:"variant" validate:"required"`
	Input    string         `mapstructure:"input" validate:"required"`
	Team     TeamConfig     `mapstructure:"team"`
	Band     BandConfig     `mapstructure:"band"`
	Outliers OutliersConfig `mapstructure:"outliers"`
	Search   SearchConfig   `mapstructure:"search"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  logging.Config `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Graph    GraphConfig    `mapstructure:"graph"`
}

type TeamConfig struct {
	Size   int `mapstructure:"size" validate:"min=1"`
	Groups int `mapstructure:"groups" validate:"min=1"`
}

type BandConfig struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high" validate:"gtefield=Low"`
}

type OutliersConfig struct {
	// ZThreshold of 0 disables masking.
	ZThreshold float64 `mapstructure:"z_threshold" validate:"gte=0"`
}

type SearchConfig struct {
	Workers  int           `mapstructure:"workers" validate:"min=1"`
	Sentinel float64       `mapstructure:"sentinel" validate:"gt=0"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ReportConfig struct {
	Format            string `mapstructure:"format" validate:"oneof=text yaml json"`
	ShowAcceptedCount bool   `mapstructure:"show_accepted_count"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type GraphConfig struct {
	// Dir receives one DOT file per pipeline of the run.
	Dir string `mapstructure:"dir"`
}

// Default returns the configuration of the default variant, without input.
func Default() *Config {
	preset, _ := Lookup(DefaultVariant)

	return &Config{
		Variant: DefaultVariant,
		Team:    TeamConfig{Size: preset.Size, Groups: preset.Groups},
		Band:    BandConfig{Low: preset.Low, High: preset.High},
		Outliers: OutliersConfig{
			ZThreshold: 2.0,
		},
		Search: SearchConfig{
			Workers:  1,
			Sentinel: 10.0,
		},
		Report: ReportConfig{
			Format:            "text",
			ShowAcceptedCount: preset.ShowAcceptedCount,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// New returns a viper instance holding the defaults and reading the environment.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("variant", defaults.Variant)
	v.SetDefault("input", defaults.Input)

	v.SetDefault("team.size", defaults.Team.Size)
	v.SetDefault("team.groups", defaults.Team.Groups)

	v.SetDefault("band.low", defaults.Band.Low)
	v.SetDefault("band.high", defaults.Band.High)

	v.SetDefault("outliers.z_threshold", defaults.Outliers.ZThreshold)

	v.SetDefault("search.workers", defaults.Search.Workers)
	v.SetDefault("search.sentinel", defaults.Search.Sentinel)
	v.SetDefault("search.timeout", defaults.Search.Timeout)

	v.SetDefault("report.format", defaults.Report.Format)
	v.SetDefault("report.show_accepted_count", defaults.Report.ShowAcceptedCount)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("metrics.textfile", defaults.Metrics.Textfile)
	v.SetDefault("graph.dir", defaults.Graph.Dir)
}

// ReadFile merges the YAML file at path into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	if err != nil {
		return errors.Wrapf(err, "unable to read config file %s", path)
	}

	return nil
}

// Load resolves the variant, applies its preset as defaults and decodes v.
// Values set explicitly in a file, the environment or a flag override the preset.
func Load(v *viper.Viper) (*Config, error) {
	preset, err := Lookup(v.GetString("variant"))
	if err != nil {
		return nil, err
	}

	v.SetDefault("team.size", preset.Size)
	v.SetDefault("team.groups", preset.Groups)
	v.SetDefault("band.low", preset.Low)
	v.SetDefault("band.high", preset.High)
	v.SetDefault("report.show_accepted_count", preset.ShowAcceptedCount)

	cfg := &Config{}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode configuration")
	}

	err = Validate(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New()

func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}
