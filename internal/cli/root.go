// Package cli implements the mimicdb command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/mimicdb/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mimicdb",
		Short: "MimicDB - local stand-in for a managed SQL database",
		Long: `MimicDB wraps an embedded SQLite engine in the client contract of a remote
managed database service, so tests and tooling can run against a local file
or in-memory database instead of a network-backed service.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default mimicdb.yaml)")
	flags.String("db", config.DefaultDatabase, "database file path or :memory:")
	flags.String("migrations-dir", config.DefaultMigrationsDir, "directory with .sql migration files")
	flags.String("output", config.DefaultOutput, "output format for query results (table, json)")
	flags.Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newExecCmd(),
		newQueryCmd(),
		newDumpCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
