package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/mimicdb/pkg/mimic"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [dir]",
		Short: "Build a database file from a directory of .sql migrations",
		Long: `Migrate applies every .sql file in the migrations directory, in
lexicographic filename order, to a fresh in-memory database and writes the
serialized result to the --db path. The first broken file aborts the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.MigrationsDir
			if len(args) == 1 {
				dir = args[0]
			}
			if cfg.Database == ":memory:" {
				return fmt.Errorf("migrate writes a database file, set --db to a file path")
			}

			db, err := mimic.Bootstrap(cmd.Context(), dir, mimic.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			image, err := db.Dump(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfg.Database, image, 0o644); err != nil {
				return fmt.Errorf("failed to write database file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", cfg.Database, len(image))
			return nil
		},
	}
}
