//nolint:revive // Config struct field names match YAML structure
package config

import (
	"fmt"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/errors"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/utils"
)

const (
	// DefaultConfigFile is the config path used when --config is not given
	DefaultConfigFile = "config.yaml"
	// DefaultMappingSheet is the tab holding the mapping table
	DefaultMappingSheet = "KeynoteMap"
)

// Google holds the Sheets data-source settings. Token acquisition and
// refresh happen outside this tool; only a ready credential is accepted.
type Google struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	MappingSheet  string `yaml:"mapping_sheet"`
	AccessToken   string `yaml:"access_token"`
	APIKey        string `yaml:"api_key"`
}

// PowerPoint holds the presentation file settings
type PowerPoint struct {
	FilePath   string `yaml:"file_path"`
	OutputPath string `yaml:"output_path"`
}

// Defaults holds the fallback strings used by the value formatter
type Defaults struct {
	EmptyValue string `yaml:"empty_value"`
	ErrorValue string `yaml:"error_value"`
}

// Config represents the application configuration
type Config struct {
	Google     Google     `yaml:"google"`
	PowerPoint PowerPoint `yaml:"powerpoint"`
	Defaults   Defaults   `yaml:"defaults"`
	DryRun     bool       `yaml:"dry_run"`
	Offline    bool       `yaml:"offline"`

	// Offline mode only: static cell values keyed by range, and optional
	// mapping rows (eleven columns each) replacing the mapping sheet.
	Values  map[string]string `yaml:"values"`
	Mapping [][]string        `yaml:"mapping"`
}

// Load reads and validates the configuration file at path
func Load(path string) (*Config, error) {
	var conf Config
	if err := utils.ParseYamlFromFile(path, &conf); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigNotFound, "read %s (%v)", path, err)
	}

	if conf.Google.MappingSheet == "" {
		conf.Google.MappingSheet = DefaultMappingSheet
	}

	return &conf, nil
}

// ValidateSource checks the fields required to reach the data source.
// Read-only deck commands skip this; only fetching runs call it.
func (c *Config) ValidateSource() error {
	if c.Offline {
		return nil
	}
	if c.Google.SpreadsheetID == "" {
		return errors.Wrap(errors.ErrNoSpreadsheet, "google.spreadsheet_id")
	}
	if c.Google.AccessToken == "" && c.Google.APIKey == "" {
		return fmt.Errorf("%w: google.access_token or google.api_key", errors.ErrMissingRequired)
	}
	return nil
}

// OutputPath returns the path the updated deck is written to. An empty
// output_path means the input file is overwritten in place.
func (c *Config) OutputPath() string {
	if c.PowerPoint.OutputPath != "" {
		return c.PowerPoint.OutputPath
	}
	return c.PowerPoint.FilePath
}
