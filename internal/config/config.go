// Package config loads monitor and server settings from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// #region config

// Config is the full service configuration.
type Config struct {
	UserID   string `yaml:"user_id"`
	Username string `yaml:"username"`

	FPS        float64 `yaml:"fps"`
	WindowSize int     `yaml:"window_size"`

	CalibrationDir        string `yaml:"calibration_dir"`
	MinCalibrationSamples int    `yaml:"min_calibration_samples"`

	DBPath     string `yaml:"db_path"`
	ServerAddr string `yaml:"server_addr"`

	ServerURL             string  `yaml:"server_url"`
	ReportEnabled         bool    `yaml:"report_enabled"`
	ReportIntervalSeconds float64 `yaml:"report_interval_seconds"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		UserID:                "default",
		FPS:                   30,
		WindowSize:            60,
		CalibrationDir:        ".",
		MinCalibrationSamples: 50,
		DBPath:                "study_monitor.db",
		ServerAddr:            ":3000",
		ServerURL:             "http://127.0.0.1:3000",
		ReportEnabled:         true,
		ReportIntervalSeconds: 2.0,
	}
}

// #endregion config

// #region load

// Load reads a YAML config file and applies environment overrides. A missing
// path yields defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides fields from STUDY_* environment variables.
func (c *Config) applyEnv() {
	c.UserID = envOr("STUDY_USER_ID", c.UserID)
	c.Username = envOr("STUDY_USERNAME", c.Username)
	c.CalibrationDir = envOr("STUDY_CALIBRATION_DIR", c.CalibrationDir)
	c.DBPath = envOr("STUDY_DB", c.DBPath)
	c.ServerAddr = envOr("STUDY_SERVER_ADDR", c.ServerAddr)
	c.ServerURL = envOr("STUDY_SERVER_URL", c.ServerURL)

	if v := os.Getenv("STUDY_FPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.FPS = f
		}
	}
	if v := os.Getenv("STUDY_REPORT_ENABLED"); v != "" {
		c.ReportEnabled = v != "false"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load
