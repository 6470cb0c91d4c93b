// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/property-forecast/internal/recommend"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for property-forecast.
type Configuration struct {
	Logging        LoggingConfig        `yaml:"logging,omitempty"`
	Output         OutputConfig         `yaml:"output,omitempty"`
	Data           DataConfig           `yaml:"data,omitempty"`
	Financing      property.Financing   `yaml:"financing,omitempty"`
	Assumptions    property.Assumptions `yaml:"assumptions,omitempty"`
	Recommendation recommend.Rules      `yaml:"recommendation,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// DataConfig points at the neighborhood table and optional listings.
type DataConfig struct {
	Neighborhoods string `yaml:"neighborhoods,omitempty"`
	Listings      string `yaml:"listings,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigType("yml")

	rules := recommend.DefaultRules()
	v.SetDefault("recommendation.kiteZones", rules.KiteZones)
	v.SetDefault("recommendation.beachZones", rules.BeachZones)
	v.SetDefault("recommendation.premiumMarker", rules.PremiumMarker)
	v.SetDefault("recommendation.lowOccupancy", rules.LowOccupancy)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Data.Neighborhoods == "" {
		warnings = append(warnings, "no neighborhood data file configured; explicit prices and rents must be supplied")
	}
	if c.Data.Listings != "" && c.Data.Neighborhoods == "" {
		warnings = append(warnings, "listings are configured without a neighborhood data file and will be ignored")
	}
	if c.Financing.LoanToValue > 0 && c.Financing.AnnualInterestRate == 0 {
		warnings = append(warnings, "financing.annualInterestRate is unset; the default rate will be used")
	}
	if c.Assumptions.Appreciation != nil && *c.Assumptions.Appreciation < 0 {
		warnings = append(warnings, fmt.Sprintf("assumptions.appreciation is negative (%.4f); property values will decline",
			*c.Assumptions.Appreciation))
	}

	return warnings
}
