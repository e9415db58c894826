// Package main implements the commander server, an HTTP API over a catalog
// of shell commands, together with its database migration tooling.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phrazzld/commander-api/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Tests call it to get a fresh,
// isolated instance.
func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "commander",
		Short:        "Commander stores and serves a catalog of shell commands",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./commander.yaml)")
	cmd.PersistentFlags().String("storage", "", `storage backend ("memory", "postgres", "sqlite")`)
	cmd.PersistentFlags().String("database-url", "", "PostgreSQL URL or SQLite file path")

	cmd.AddCommand(newServeCmd(&configFile), newMigrateCmd(&configFile))
	return cmd
}

func newServeCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP listen port")
	cmd.Flags().String("log-level", "", `log level ("debug", "info", "warn", "error")`)
	return cmd
}

// loadConfig reads configuration with the command's flags taking
// precedence over the config file and environment.
func loadConfig(configFile string, flags *pflag.FlagSet) (*config.Config, error) {
	return config.LoadWithOptions(config.Options{
		ConfigFile: configFile,
		Flags:      flags,
	})
}
