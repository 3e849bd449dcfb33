// Package config loads application configuration from config files,
// environment variables, and .env files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

// Config holds the application configuration loaded from various sources.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Reconciliation configuration
	PrimaryWarehouse string
	BufferLocation   string
	Mode             string
	NotesPath        string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (RECOUNT_* prefix)
// 3. .env files
// 4. Config file (~/.recount.yaml)
// 5. Defaults
func Load() (*Config, error) {
	loadEnvFiles()

	viper.SetEnvPrefix("RECOUNT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("primary_warehouse", recommend.DefaultPrimaryWarehouse)
	viper.SetDefault("buffer_location", recommend.DefaultBufferLocation)
	viper.SetDefault("mode", string(inventory.ModeAdjust))
	viper.SetDefault("notes_path", defaultNotesPath())

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".recount")
		}
	}

	// A missing config file is fine; env vars and defaults still apply.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		PrimaryWarehouse: viper.GetString("primary_warehouse"),
		BufferLocation:   viper.GetString("buffer_location"),
		Mode:             viper.GetString("mode"),
		NotesPath:        viper.GetString("notes_path"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return cfg, nil
}

// UpdateFromFlags applies parsed command flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// defaultNotesPath is the notes database location when none is configured.
func defaultNotesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recount-notes.db"
	}
	return filepath.Join(home, ".recount", "notes.db")
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
