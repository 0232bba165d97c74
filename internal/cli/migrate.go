package cli

import (
	"context"
	"database/sql"
	"fmt"
	"text/tabwriter"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/paginater/internal/config"
	"github.com/maxviazov/paginater/internal/repository"
	"github.com/maxviazov/paginater/migrations"
)

func newMigrateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:     "migrate",
		Args:    cobra.NoArgs,
		Aliases: []string{"m"},
		Short:   "Database migration commands",
		Long:    `Apply or inspect the embedded Postgres migrations.`,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), configPath, func(ctx context.Context, db *sql.DB) error {
				if err := migrations.Up(ctx, db); err != nil {
					return err
				}
				zerolog.Ctx(ctx).Info().Msg("migrations applied")
				cmd.Println("migrations applied")
				return nil
			})
		},
	}
	status := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), configPath, func(ctx context.Context, db *sql.DB) error {
				list, err := migrations.Status(ctx, db)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tSOURCE")
				for _, m := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", m.Source.Version, m.State, m.Source.Path)
				}
				return tw.Flush()
			})
		},
	}
	cmd.AddCommand(up, status)
	return cmd
}

// withDB opens a database/sql handle over pgx for goose and closes it after fn.
func withDB(ctx context.Context, configPath string, fn func(context.Context, *sql.DB) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config loading failed: %w", err)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations need storage.driver %q, got %q", config.DriverPostgres, cfg.Storage.Driver)
	}
	db, err := sql.Open("pgx", repository.DSN(cfg.Postgres))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(ctx, db)
}
