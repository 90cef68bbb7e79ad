package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// #region rollback

func (a *app) rollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <version-id>",
		Short: "Point the active policy at an earlier version",
		Long: `Sets the active version pointer. Running policyd instances pick the new
version up on restart; open sessions keep the tables they were created with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var from string
			if prev, err := st.Active(); err == nil {
				from = prev.VersionID
			}
			if err := st.Rollback(args[0]); err != nil {
				return err
			}
			a.logger.Info("rolled back", zap.String("from", from), zap.String("to", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "active version: %s (was %s)\n", args[0], orDash(from))
			return nil
		},
	}
}

// #endregion rollback
