package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig controls where Load looks for configuration.
type LoaderConfig struct {
	// ConfigFile is an explicit YAML config path. Empty means search.
	ConfigFile string
	// EnvFile is an explicit .env path. Empty means search.
	EnvFile string
	// EnvPrefix namespaces environment variable overrides
	// (e.g. prefix "EVENTSOURCE" maps EVENTSOURCE_CLIENT_URL to client.url).
	EnvPrefix string
}

// Load resolves configuration files for a service and unmarshals them
// into cfg. Missing files are not an error; environment variables alone
// are a valid configuration source.
func Load(serviceName string, cfg any, opts LoaderConfig) error {
	resolved := resolveFiles(serviceName, opts)

	if resolved.EnvFile != "" {
		if err := godotenv.Load(resolved.EnvFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", resolved.EnvFile, err)
		}
	}

	v := viper.New()
	if resolved.ConfigFile != "" {
		v.SetConfigFile(resolved.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", resolved.ConfigFile, err)
		}
	}

	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	return nil
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// resolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func resolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = findFirst(
			fmt.Sprintf("./config/%s.yml", serviceName),
			fmt.Sprintf("./%s.yml", serviceName),
			"./config/config.yml",
			"./config.yml",
		)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = findFirst(
			fmt.Sprintf(".env.%s", serviceName),
			".env",
		)
	}

	return resolved
}

func findFirst(paths ...string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
