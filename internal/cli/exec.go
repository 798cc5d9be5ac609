package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/mimicdb/pkg/mimic"
	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "exec [sql]",
		Short: "Execute raw SQL against the database",
		Long: `Exec runs raw SQL text against the database. The text may contain
multiple semicolon-separated statements; they execute in a single engine
call. Reports the total affected-row count and the elapsed time.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args, fromFile)
			if err != nil {
				return err
			}

			db, err := mimic.Open(cfg.Database, mimic.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			res, err := db.Exec(cmd.Context(), query)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d rows changed in %.3fms\n", res.Meta.Changes, res.Meta.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "read SQL from a file instead of the argument")
	return cmd
}

// readQuery resolves the SQL text from the positional argument or --file.
func readQuery(args []string, fromFile string) (string, error) {
	switch {
	case fromFile != "" && len(args) > 0:
		return "", fmt.Errorf("pass SQL as an argument or via --file, not both")
	case fromFile != "":
		text, err := os.ReadFile(fromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read SQL file: %w", err)
		}
		return string(text), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("no SQL given")
	}
}
