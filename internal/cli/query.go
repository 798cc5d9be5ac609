package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/mimicdb/pkg/mimic"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print its rows",
		Long: `Query prepares a single statement, fetches every matching row and
renders the result. With --output json the full result envelope is printed;
the default renders a table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := mimic.Open(cfg.Database, mimic.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			stmt, err := db.Prepare(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch cfg.Output {
			case "json":
				res, err := stmt.All(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "table", "":
				// Raw mode keeps the engine's column order intact.
				seqs, err := stmt.Raw(cmd.Context(), mimic.WithColumnNames())
				if err != nil {
					return err
				}
				renderTable(cmd.OutOrStdout(), seqs)
				return nil
			default:
				return fmt.Errorf("unknown output format: %s", cfg.Output)
			}
		},
	}
}
