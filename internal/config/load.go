package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. COMMANDER_SERVER_PORT overrides server.port.
const EnvPrefix = "COMMANDER"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":         "server.port",
	"log-level":    "server.log_level",
	"storage":      "database.storage",
	"database-url": "database.url",
}

// Options customizes where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, commander.yaml
	// is looked up in the working directory and its absence is not an error.
	ConfigFile string

	// Flags, when set, override file and environment values for the flags
	// that were explicitly passed.
	Flags *pflag.FlagSet

	// EnvFile is a dotenv file loaded into the process environment before
	// reading. Defaults to ".env"; a missing file is ignored.
	EnvFile string
}

// Load reads configuration from the defaults, commander.yaml and COMMANDER_*
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions is Load with an explicit config file and flag set.
// Returns a populated Config struct or an error if loading/validation fails.
func LoadWithOptions(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("commander")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("database.storage", StorageMemory)
	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open_conns", 10)
}
