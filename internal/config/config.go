package config

// Storage backends selectable at startup.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"dive,required"`
}

// DatabaseConfig selects the storage backend and how to reach it.
type DatabaseConfig struct {
	Storage      string `mapstructure:"storage"        validate:"required,oneof=memory postgres sqlite"`
	URL          string `mapstructure:"url"            validate:"required_unless=Storage memory"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// UsesSQL reports whether the configured storage is backed by a SQL database.
func (c DatabaseConfig) UsesSQL() bool {
	return c.Storage == StoragePostgres || c.Storage == StorageSQLite
}
