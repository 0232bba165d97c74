// Package cli holds the paginater command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/paginater/internal/logger"
)

// NewRootCmd creates the root command and wires logging for every subcommand.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "paginater",
		Short:         "Paging and field exposure for collections",
		Long:          "paginater pages collections and renders them through declared exposure types, as a CLI or an HTTP API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Page 2 of a JSON file, 10 rows per page, only two fields
  paginater page people.json --page 2 --per 10 --expose id,name

  # Run the HTTP API
  paginater serve --config config.yaml

  # Apply database migrations
  paginater migrate up --config config.yaml`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(l.WithContext(cmd.Context()))
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-format", "console", "log format for CLI diagnostics: console or json")
	cmd.AddCommand(newPageCmd(), newServeCmd(), newMigrateCmd())

	return cmd
}

// setupLogging builds the diagnostics logger. It always writes to stderr so stdout stays clean
// for rendered output.
func setupLogging(cmd *cobra.Command) (zerolog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	format, _ := cmd.Flags().GetString("log-format")

	cfg := logger.LoggerConfig{Level: "warn", Format: format, ServiceName: "paginater", Env: "dev"}
	if debug {
		cfg.Level = "debug"
	}
	return logger.NewWithWriter(&cfg, cmd.ErrOrStderr())
}
