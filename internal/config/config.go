package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
)

// Config represents application configuration
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

// StorageConfig selects the snapshot backend
type StorageConfig struct {
	Type string `mapstructure:"type"` // "file", "sqlite" or "memory"
	Path string `mapstructure:"path"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CalendarConfig describes the default calendar seeded on first start
type CalendarConfig struct {
	Name        string   `mapstructure:"name"`
	CountryCode string   `mapstructure:"country_code"`
	Workdays    []string `mapstructure:"workdays"` // weekday names; empty means monday..friday
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.factory-calendar")
		v.AddConfigPath("/etc/factory-calendar")
	}

	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.path", "calendar_data.json")
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("calendar.name", "Default")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for %s storage", c.Storage.Type)
		}
	case "memory":
	default:
		return fmt.Errorf("storage.type must be 'file', 'sqlite' or 'memory', got '%s'", c.Storage.Type)
	}

	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Calendar.Name == "" {
		return fmt.Errorf("calendar.name is required")
	}

	for _, day := range c.Calendar.Workdays {
		switch day {
		case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		default:
			return fmt.Errorf("calendar.workdays contains unknown weekday '%s'", day)
		}
	}

	return nil
}

// Seed builds the default-calendar seed from the configuration
func (c *CalendarConfig) Seed() schedule.Seed {
	pattern := schedule.MondayToFriday()
	if len(c.Workdays) > 0 {
		pattern = schedule.WorkdaysPattern{}
		for _, day := range c.Workdays {
			switch day {
			case "monday":
				pattern.Monday = true
			case "tuesday":
				pattern.Tuesday = true
			case "wednesday":
				pattern.Wednesday = true
			case "thursday":
				pattern.Thursday = true
			case "friday":
				pattern.Friday = true
			case "saturday":
				pattern.Saturday = true
			case "sunday":
				pattern.Sunday = true
			}
		}
	}

	return schedule.Seed{
		Name:        c.Name,
		CountryCode: c.CountryCode,
		Workdays:    pattern,
	}
}
