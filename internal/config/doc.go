// Package config loads server and database settings from defaults, an
// optional YAML file, COMMANDER_* environment variables and command-line
// flags, and validates the result before anything is started.
package config
