package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/config"
	"github.com/danielpatrickdp/coaching-policy/internal/eval"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
	"github.com/danielpatrickdp/coaching-policy/internal/store"
)

// #region compile

func (a *app) compileCmd() *cobra.Command {
	var (
		rewardsPath    string
		track          string
		ability        int
		failDegenerate bool
		dryRun         bool
	)
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a reward table into a new active policy version",
		Long: `Compiles the reward table (built-in, or --rewards YAML) into transition
matrices for all twelve styles, runs the eval checks and, unless --dry-run,
saves the result as the new active version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rewardsPath == "" {
				rewardsPath = a.cfg.Rewards
			}
			table, err := config.LoadRewards(rewardsPath)
			if err != nil {
				return err
			}
			tables, err := reward.CompileAll(table)
			if err != nil {
				return fmt.Errorf("compile rewards: %w", err)
			}

			bel, err := a.compileBelief(cmd, track, ability)
			if err != nil {
				return err
			}

			result := eval.NewHarness(eval.Config{
				RowBound:       reward.Bound,
				FailDegenerate: failDegenerate,
			}).Run(tables, bel)

			out := cmd.OutOrStdout()
			for _, m := range result.Metrics {
				mark := "ok"
				if !m.Pass {
					mark = "FAIL"
				}
				fmt.Fprintf(out, "  %-18s %-4s %.6g\n", m.Name, mark, m.Value)
			}
			for _, s := range tables.Degenerate() {
				a.logger.Warn("degenerate reward vector, compiled uniform", zap.Int("style", int(s)))
			}
			if !result.Passed {
				return errors.New(result.Reason)
			}
			if dryRun {
				fmt.Fprintln(out, "dry run: not saved")
				return nil
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var parent string
			if prev, err := st.Active(); err == nil {
				parent = prev.VersionID
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			saved, err := st.SaveArtifact(store.Artifact{
				ParentID:    parent,
				Source:      sourceName(rewardsPath),
				Belief:      bel,
				Tables:      tables,
				MetricsJSON: result.JSON(),
			})
			if err != nil {
				return err
			}
			a.logger.Info("policy version saved", zap.String("version_id", saved.VersionID), zap.String("parent_id", parent))
			fmt.Fprintf(out, "active version: %s\n", saved.VersionID)
			return nil
		},
	}
	cmd.Flags().StringVar(&rewardsPath, "rewards", "", "reward table YAML (default: config rewards, else built-in)")
	cmd.Flags().StringVar(&track, "track", "", "prior track: sport or physio (default: config)")
	cmd.Flags().IntVar(&ability, "ability", 0, "prior ability 1..6 (default: config)")
	cmd.Flags().BoolVar(&failDegenerate, "fail-degenerate", false, "reject tables with all-zero style vectors")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compile and check without saving")
	return cmd
}

// compileBelief applies --track/--ability over the configured prior.
func (a *app) compileBelief(cmd *cobra.Command, track string, ability int) (belief.Distribution, error) {
	prior := a.cfg.Prior
	if cmd.Flags().Changed("track") {
		prior.Track = track
	}
	if cmd.Flags().Changed("ability") {
		prior.Ability = ability
	}
	t, err := config.ParseTrack(prior.Track)
	if err != nil {
		return belief.Distribution{}, err
	}
	return belief.Prior(t, prior.Ability)
}

func sourceName(path string) string {
	if path == "" {
		return "default"
	}
	return path
}

// #endregion compile
