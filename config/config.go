// Package config reads the settings igctool needs from the environment. Command line
// flags, where a tool has them, override these.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/skypies/flightlog"
	"github.com/skypies/flightlog/igc"
)

type Config struct {
	Pilot        string `mapstructure:"FLIGHTLOG_PILOT"`
	Manufacturer string `mapstructure:"FLIGHTLOG_MANUFACTURER"`
	DeviceID     string `mapstructure:"FLIGHTLOG_DEVICE_ID"`
	DeviceType   string `mapstructure:"FLIGHTLOG_DEVICE_TYPE"`
	GliderType   string `mapstructure:"FLIGHTLOG_GLIDER_TYPE"`
	GliderID     string `mapstructure:"FLIGHTLOG_GLIDER_ID"`

	LogLevel string `mapstructure:"FLIGHTLOG_LOG_LEVEL"`
	LogDir   string `mapstructure:"FLIGHTLOG_LOG_DIR"`

	GCSBucket      string `mapstructure:"FLIGHTLOG_GCS_BUCKET"`
	GCPCredentials string `mapstructure:"FLIGHTLOG_GCP_CREDENTIALS"` // Path to a JSON key file; empty means ADC
	BQProject      string `mapstructure:"FLIGHTLOG_BQ_PROJECT"`
	BQDataset      string `mapstructure:"FLIGHTLOG_BQ_DATASET"`
	BQTable        string `mapstructure:"FLIGHTLOG_BQ_TABLE"`

	SmoothingWindow int `mapstructure:"FLIGHTLOG_SMOOTHING_WINDOW"`
}

// Load reads the environment. A value that can't be decoded into its field (say a
// non-numeric smoothing window) is an error; the returned Config is still usable, with
// that field left at its default.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Every key needs a default, else Unmarshal never asks the environment about it.
	v.SetDefault("FLIGHTLOG_PILOT", igc.DefaultPilot)
	v.SetDefault("FLIGHTLOG_MANUFACTURER", igc.DefaultManufacturer)
	v.SetDefault("FLIGHTLOG_DEVICE_ID", igc.DefaultDeviceID)
	v.SetDefault("FLIGHTLOG_DEVICE_TYPE", igc.DefaultDeviceType)
	v.SetDefault("FLIGHTLOG_GLIDER_TYPE", igc.DefaultGliderType)
	v.SetDefault("FLIGHTLOG_GLIDER_ID", igc.DefaultGliderID)
	v.SetDefault("FLIGHTLOG_LOG_LEVEL", "info")
	v.SetDefault("FLIGHTLOG_LOG_DIR", "")
	v.SetDefault("FLIGHTLOG_GCS_BUCKET", "")
	v.SetDefault("FLIGHTLOG_GCP_CREDENTIALS", "")
	v.SetDefault("FLIGHTLOG_BQ_PROJECT", "")
	v.SetDefault("FLIGHTLOG_BQ_DATASET", "flightlog")
	v.SetDefault("FLIGHTLOG_BQ_TABLE", "flights")
	v.SetDefault("FLIGHTLOG_SMOOTHING_WINDOW", flightlog.DefaultSmoothingWindow)

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		err = fmt.Errorf("config: %w", err)
	}

	if cfg.SmoothingWindow < 1 { cfg.SmoothingWindow = flightlog.DefaultSmoothingWindow }

	return cfg, err
}

// Metadata is what goes into the IGC header records.
func (c Config)Metadata() igc.Metadata {
	return igc.Metadata{
		PilotName:    c.Pilot,
		Manufacturer: c.Manufacturer,
		DeviceID:     c.DeviceID,
		DeviceType:   c.DeviceType,
		GliderType:   c.GliderType,
		GliderID:     c.GliderID,
	}
}

// CanPublish is true when there is somewhere to upload to.
func (c Config)CanPublish() bool { return c.GCSBucket != "" }

// CanLoad is true when BigQuery loads are configured as well.
func (c Config)CanLoad() bool {
	return c.CanPublish() && c.BQProject != "" && c.BQDataset != "" && c.BQTable != ""
}
