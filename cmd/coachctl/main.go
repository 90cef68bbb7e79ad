// Command coachctl manages compiled coaching policies: compile and version
// reward tables, inspect versions and decision logs, roll back, and replay
// fixtures offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/coaching-policy/internal/config"
	"github.com/danielpatrickdp/coaching-policy/internal/logging"
	"github.com/danielpatrickdp/coaching-policy/internal/store"
)

// #region root

// app carries the persistent flags and what PersistentPreRunE builds from them.
type app struct {
	cfgPath string
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "coachctl",
		Short: "Manage compiled coaching policies",
		Long: `coachctl compiles reward tables into versioned policy artifacts,
inspects versions and decision logs, rolls back the active version and
replays recorded sessions offline.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.DB = a.dbPath
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			a.cfg = cfg

			mode := "nop"
			if a.verbose {
				mode = "dev"
			}
			a.logger, err = logging.NewLogger(mode)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "coaching_policy.yaml", "path to YAML config")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "policy database (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.compileCmd(),
		a.inspectCmd(),
		a.rollbackCmd(),
		a.replayCmd(),
		a.exportFixtureCmd(),
		a.explainCmd(),
	)
	return root
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.NewStore(a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.cfg.DB, err)
	}
	return st, nil
}

// #endregion root

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
