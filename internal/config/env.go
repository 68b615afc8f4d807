package config

import "os"

// FromEnv applies environment overrides on top of a loaded config.
// Unset variables leave the existing values alone.
func (c *Config) FromEnv() {
	if v := os.Getenv("WEEKBOARD_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("WEEKBOARD_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("WEEKBOARD_WEEK_START"); v != "" {
		c.WeekStart = v
	}
	if v := os.Getenv("WEEKBOARD_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("WEEKBOARD_SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
}
