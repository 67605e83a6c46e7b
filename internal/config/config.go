package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/icd9harvest/internal/clinicaltables"
)

// Defaults for a harvest run. The page size is the service maximum; the
// delay is a politeness pause between requests, not a correctness knob.
const (
	DefaultPageSize = 500
	DefaultDelay    = 150 * time.Millisecond
	DefaultOutPath  = "icd9.rich.json"
)

// Config holds all runtime configuration for an icd9build run.
type Config struct {
	OutPath     string
	DatasetPath string // input dataset file for load/export
	DSN         string
	LogFormat   string // "text" or "json"
	PageSize    int
	Delay       time.Duration

	// Prefix partitions. Each prefix anchors one paged scan; together the
	// prefixes cover a whole table despite the per-query result cap.
	DxPrefixes   []string `yaml:"dx_prefixes"`
	ProcPrefixes []string `yaml:"proc_prefixes"`
	CondPrefixes []string `yaml:"condition_prefixes"`

	// Endpoint overrides, used by tests. Empty means the production URLs.
	DxBaseURL   string
	ProcBaseURL string
	CondBaseURL string
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	PageSize     int      `yaml:"page_size"`
	DelayMS      int      `yaml:"delay_ms"`
	DxPrefixes   []string `yaml:"dx_prefixes"`
	ProcPrefixes []string `yaml:"proc_prefixes"`
	CondPrefixes []string `yaml:"condition_prefixes"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Absent keys leave the corresponding fields untouched.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.PageSize != 0 {
		c.PageSize = yc.PageSize
	}
	if yc.DelayMS != 0 {
		c.Delay = time.Duration(yc.DelayMS) * time.Millisecond
	}
	if len(yc.DxPrefixes) > 0 {
		c.DxPrefixes = yc.DxPrefixes
	}
	if len(yc.ProcPrefixes) > 0 {
		c.ProcPrefixes = yc.ProcPrefixes
	}
	if len(yc.CondPrefixes) > 0 {
		c.CondPrefixes = yc.CondPrefixes
	}
	return nil
}

// ApplyDefaults fills unset fields with the compiled-in defaults: diagnosis
// prefixes 0-9 plus V and E, procedure prefixes 0-9, condition prefixes a-z
// plus 0-9, and the production ClinicalTables endpoints.
func (c *Config) ApplyDefaults() {
	if c.OutPath == "" {
		c.OutPath = DefaultOutPath
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Delay == 0 {
		c.Delay = DefaultDelay
	}
	if len(c.DxPrefixes) == 0 {
		c.DxPrefixes = append(rangePrefixes('0', '9'), "V", "E")
	}
	if len(c.ProcPrefixes) == 0 {
		c.ProcPrefixes = rangePrefixes('0', '9')
	}
	if len(c.CondPrefixes) == 0 {
		c.CondPrefixes = append(rangePrefixes('a', 'z'), rangePrefixes('0', '9')...)
	}
	if c.DxBaseURL == "" {
		c.DxBaseURL = clinicaltables.DiagnosisBaseURL
	}
	if c.ProcBaseURL == "" {
		c.ProcBaseURL = clinicaltables.ProcedureBaseURL
	}
	if c.CondBaseURL == "" {
		c.CondBaseURL = clinicaltables.ConditionBaseURL
	}
}

// Validate checks the harvest parameters and returns an error if any are
// invalid. Call after ApplyDefaults.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > DefaultPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", DefaultPageSize, c.PageSize)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	for _, set := range [][]string{c.DxPrefixes, c.ProcPrefixes, c.CondPrefixes} {
		for _, p := range set {
			if p == "" {
				return fmt.Errorf("prefix partitions must not contain empty strings")
			}
		}
	}
	return nil
}

// ValidateDataset checks that the dataset input file is set and accessible.
func (c *Config) ValidateDataset() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.DatasetPath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both the dataset file and the DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.ValidateDataset(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}

func rangePrefixes(lo, hi byte) []string {
	out := make([]string, 0, hi-lo+1)
	for b := lo; b <= hi; b++ {
		out = append(out, string(b))
	}
	return out
}
