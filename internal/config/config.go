package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// OpMode is a custom type to represent the application's operating mode - seeded from stdin or started empty
type OpMode int

const (
	ModeServer OpMode = iota
	ModePipe
)

type Config struct {
	ServerAddr string `yaml:"server_addr"`
	OpMode     OpMode `yaml:"-"`
	// optional seed document loaded at startup
	SeedFile string `yaml:"seed_file"`
	// batch settings for listing contacts
	BatchSize    int `yaml:"batch_size"`
	MaxBatchSize int `yaml:"max_batch_size"`
	// log settings
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// change here only as it populates both default and env aware configs
var cfgDefaults = map[string]string{
	"SERVER_ADDR": ":8080",
	"SEED_FILE":   "",
	// "OP_MODE" should not be here as the mode is set at run time
	// batch settings
	"BATCH_SIZE":     "10",
	"MAX_BATCH_SIZE": "100",
	// log settings
	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "text",
}

// Default return a configuration object with defaults so can bypass config files or ENV vars
func Default() *Config {
	// safe to ignore the errors as these are defined by us just above
	defaultBatchSize, _ := strconv.Atoi(cfgDefaults["BATCH_SIZE"])
	defaultMaxBatchSize, _ := strconv.Atoi(cfgDefaults["MAX_BATCH_SIZE"])

	return &Config{
		ServerAddr:   cfgDefaults["SERVER_ADDR"],
		SeedFile:     cfgDefaults["SEED_FILE"],
		BatchSize:    defaultBatchSize,
		MaxBatchSize: defaultMaxBatchSize,
		LogLevel:     cfgDefaults["LOG_LEVEL"],
		LogFormat:    cfgDefaults["LOG_FORMAT"],
	}
}

// Load builds a config from defaults, then the YAML file at path (skipped when path is empty or missing),
// then a ".env" file, then environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// Try to load a standard ".env" file. It's not an error if it doesn't exist.
	if err := loadEnvFile(".env"); err != nil {

		if !os.IsNotExist(errors.Unwrap(err)) {
			// If it's some other relevant error return it.
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return nil
}

// applyEnv overrides fields with any environment variables that are set
func (c *Config) applyEnv() error {
	c.ServerAddr = getEnv("SERVER_ADDR", c.ServerAddr)
	c.SeedFile = getEnv("SEED_FILE", c.SeedFile)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	var err error
	if c.BatchSize, err = getEnvInt("BATCH_SIZE", c.BatchSize); err != nil {
		return err
	}
	if c.MaxBatchSize, err = getEnvInt("MAX_BATCH_SIZE", c.MaxBatchSize); err != nil {
		return err
	}

	return nil
}

// Validate reports every unusable value at once.
func (c *Config) Validate() error {
	var err error

	if c.ServerAddr == "" {
		err = multierr.Append(err, errors.New("config: server_addr cannot be empty"))
	}
	if c.BatchSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("config: batch_size must be positive, got %d", c.BatchSize))
	}
	if c.MaxBatchSize < c.BatchSize {
		err = multierr.Append(err, fmt.Errorf("config: max_batch_size (%d) cannot be smaller than batch_size (%d)", c.MaxBatchSize, c.BatchSize))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("config: invalid log_level '%s'. valid options are 'debug', 'info', 'warn', 'error'", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("config: invalid log_format '%s'. valid options are 'text', 'json'", c.LogFormat))
	}

	return err
}

// getEnv returns the value of an environment var or the default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config error: %s should be an integer, got '%s'", key, value)
	}
	return n, nil
}

// loadEnvFile attempts to read config data pairs from the filename parameter to set as env vars. Returns an error if loading fails
func loadEnvFile(filename string) error {
	file, err := os.Open(filename)

	if err != nil {
		return fmt.Errorf("could not open env file %s: %w", filename, err)
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())

		// ignore blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2) // splits in parts on the first '=' it finds
		if len(parts) != 2 {
			return fmt.Errorf("invalid line %d in %s: %s", lineNum, filename, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			// remove quotes if they exist
			if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		// now set from file if it the env var does not already exist
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}

	return nil
}
