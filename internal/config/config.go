// Package config loads ledgerview.yaml, applies LEDGERVIEW_* environment
// overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerview/internal/fiscal"
	"github.com/cleared-dev/ledgerview/internal/gst"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// FileName is the config file looked up in the project directory.
const FileName = "ledgerview.yaml"

// EnvPrefix prefixes every environment override, e.g. LEDGERVIEW_STORE_BACKEND.
const EnvPrefix = "ledgerview"

// Config represents the top-level ledgerview.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Fiscal  FiscalConfig  `yaml:"fiscal"`
	GST     GSTConfig     `yaml:"gst"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Data    DataConfig    `yaml:"data"`
}

// CompanyConfig is the tenant the reports run for. ID namespaces the
// published net profit and loss.
type CompanyConfig struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	OwnerType string `yaml:"owner_type,omitempty" split_words:"true"`
	OwnerID   string `yaml:"owner_id,omitempty" split_words:"true"`
}

// FiscalConfig defines the fiscal year boundary.
type FiscalConfig struct {
	YearStartMonth int `yaml:"year_start_month" split_words:"true" validate:"min=1,max=12"`
}

// GSTConfig controls B2B/B2C segmentation.
type GSTConfig struct {
	GSTINLength int `yaml:"gstin_length" split_words:"true" validate:"min=1,max=64"`
}

// StoreConfig selects where net profit and loss are published.
type StoreConfig struct {
	Backend   string `yaml:"backend" validate:"oneof=memory redis"`
	RedisAddr string `yaml:"redis_addr,omitempty" split_words:"true" validate:"required_if=Backend redis"`
	KeyPrefix string `yaml:"key_prefix,omitempty" split_words:"true"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// DataConfig locates the snapshot files. A relative Dir is resolved against
// the project directory.
type DataConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// Load reads a ledgerview.yaml file from disk. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyID, companyName string) *Config {
	return &Config{
		Company: CompanyConfig{
			ID:   companyID,
			Name: companyName,
		},
		Fiscal: FiscalConfig{
			YearStartMonth: int(fiscal.DefaultStart),
		},
		GST: GSTConfig{
			GSTINLength: gst.GSTINLength,
		},
		Store: StoreConfig{
			Backend:   "memory",
			KeyPrefix: "ledgerview:",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			Dir: "data",
		},
	}
}

// ApplyEnv overrides cfg from LEDGERVIEW_* variables. Unset variables leave
// fields untouched.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Resolve loads the config for a project directory: the file when present,
// else defaults, then environment overrides, then validation.
func Resolve(projectDir, path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(projectDir, FileName)
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default("", ""), nil
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DataPath returns the snapshot directory for a project.
func (c *Config) DataPath(projectDir string) string {
	if filepath.IsAbs(c.Data.Dir) {
		return c.Data.Dir
	}
	return filepath.Join(projectDir, c.Data.Dir)
}

// Tenant returns the session context reports run under.
func (c *Config) Tenant() model.Tenant {
	return model.Tenant{
		CompanyID: c.Company.ID,
		OwnerType: c.Company.OwnerType,
		OwnerID:   c.Company.OwnerID,
	}
}

// FiscalStart returns the first month of the fiscal year.
func (c *Config) FiscalStart() time.Month {
	return time.Month(c.Fiscal.YearStartMonth)
}

// Segmenter returns the GSTIN segmenter for the configured length.
func (c *Config) Segmenter() gst.Segmenter {
	return gst.Segmenter{Length: c.GST.GSTINLength}
}
