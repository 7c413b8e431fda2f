package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Unit describes the layout of the ward
type Unit struct {
	Name          string `yaml:"name" validate:"required"`
	RoomCount     int    `yaml:"roomCount" validate:"min=1,max=30"`
	FlexBed       bool   `yaml:"flexBed"`
	DefaultNurses int    `yaml:"defaultNurses" validate:"min=0"`
}

// Storage selects where the board and run history are kept
type Storage struct {
	Backend        string `yaml:"backend" validate:"required,oneof=file postgres redis"`
	Path           string `yaml:"path" validate:"required_if=Backend file"`
	PostgresURL    string `yaml:"postgresURL" validate:"required_if=Backend postgres"`
	RedisAddr      string `yaml:"redisAddr" validate:"required_if=Backend redis"`
	RedisPassword  string `yaml:"redisPassword,omitempty"`
	RedisDB        int    `yaml:"redisDB" validate:"min=0"`
	RedisKeyPrefix string `yaml:"redisKeyPrefix,omitempty"`
}

// Publish configures the Google Sheets and Gmail targets of the publish command
type Publish struct {
	SpreadsheetID string   `yaml:"spreadsheetID,omitempty"`
	Recipients    []string `yaml:"recipients,omitempty" validate:"dive,email"`
	GmailUserID   string   `yaml:"gmailUserID,omitempty"`
	Sender        string   `yaml:"sender,omitempty" validate:"omitempty,email"`
}

// Server configures the HTTP API
type Server struct {
	Addr string `yaml:"addr"`
}

// Logging configures where log files are written
type Logging struct {
	Dir string `yaml:"dir"`
}

// Config represents the application configuration
type Config struct {
	Unit          Unit    `yaml:"unit"`
	Storage       Storage `yaml:"storage"`
	ShiftSchedule string  `yaml:"shiftSchedule" validate:"required"`
	Publish       Publish `yaml:"publish"`
	Server        Server  `yaml:"server"`
	Logging       Logging `yaml:"logging"`
}

// Layout returns the unit layout used when no board has been saved yet
func (c *Config) Layout() model.UnitLayout {
	return model.UnitLayout{
		RoomCount:     c.Unit.RoomCount,
		FlexBed:       c.Unit.FlexBed,
		DefaultNurses: c.Unit.DefaultNurses,
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="prod" will look for "charge_nurse_config.prod.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the shift schedule rrule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.ShiftSchedule); err != nil {
		return fmt.Errorf("invalid rrule in shiftSchedule: %w", err)
	}

	return nil
}

// applyDefaults fills in optional settings that were left out of the file
func applyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if cfg.Storage.Backend == BackendFile && cfg.Storage.Path == "" {
		cfg.Storage.Path = "data"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "charge_nurse_config.yaml"
	if env != "" {
		configFileName = "charge_nurse_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
