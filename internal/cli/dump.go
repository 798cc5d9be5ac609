package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/mimicdb/pkg/mimic"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Serialize the database to a single file",
		Long: `Dump serializes the whole database to a byte-for-byte image that
"mimicdb query" and OpenBuffer can consume. Writes to --out, or to stdout
when no output file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := mimic.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			image, err := db.Dump(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(image)
				return err
			}
			if err := os.WriteFile(out, image, 0o644); err != nil {
				return fmt.Errorf("failed to write dump: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(image))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to stdout)")
	return cmd
}
