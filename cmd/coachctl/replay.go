package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/config"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/replay"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
	"github.com/danielpatrickdp/coaching-policy/internal/validity"
)

// #region replay

func (a *app) replayCmd() *cobra.Command {
	var (
		fixturePath string
		rewardsPath string
		versionID   string
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a fixture against a compiled policy and compare the results",
		Long: `Runs every turn of a fixture through a seeded policy, checks each behaviour
is legal in its context and compares pinned turns against their expected
behaviour. Exits non-zero on any divergence.

The tables come from --version (a stored version, or "active") or are
compiled from --rewards, the configured rewards, or the built-in table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := replay.LoadFixture(fixturePath)
			if err != nil {
				return err
			}
			tables, err := a.replayTables(versionID, rewardsPath)
			if err != nil {
				return err
			}
			p, err := f.Policy(tables)
			if err != nil {
				return err
			}
			start, err := f.Start()
			if err != nil {
				return err
			}
			turns, err := f.ToTurns()
			if err != nil {
				return err
			}

			results, runErr := replay.Replay(p, start, turns)
			out := cmd.OutOrStdout()
			mismatches := f.Check(results, legal)
			printReplay(out, f, results, mismatches)
			printSummary(out, replay.Summarize(results, start))
			if runErr != nil {
				return runErr
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%d mismatches", len(mismatches))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "fixture JSON path")
	cmd.Flags().StringVar(&rewardsPath, "rewards", "", "reward table YAML to compile")
	cmd.Flags().StringVar(&versionID, "version", "", "stored version id, or \"active\"")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

func (a *app) replayTables(versionID, rewardsPath string) (*reward.Tables, error) {
	if versionID != "" {
		st, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer st.Close()
		if versionID == "active" {
			art, err := st.Active()
			return art.Tables, err
		}
		art, err := st.Get(versionID)
		return art.Tables, err
	}
	if rewardsPath == "" {
		rewardsPath = a.cfg.Rewards
	}
	table, err := config.LoadRewards(rewardsPath)
	if err != nil {
		return nil, err
	}
	return reward.CompileAll(table)
}

func legal(ctx interaction.Context, b behaviour.Behaviour) bool {
	return validity.Check(ctx, b).Allowed
}

// #endregion replay

// #region output

func printReplay(out io.Writer, f *replay.Fixture, results []replay.Result, mismatches []replay.Mismatch) {
	expected := make(map[string]string, len(f.ExpectedResults))
	for _, e := range f.ExpectedResults {
		expected[e.TurnID] = e.Behaviour
	}
	diverged := make(map[string]bool, len(mismatches))
	for _, m := range mismatches {
		diverged[m.TurnID] = true
	}

	fmt.Fprintf(out, "%-8s| %-30s| %-36s| %5s | %-14s| %s\n", "Turn", "Context", "Behaviour", "Draws", "Step", "Match")
	for _, r := range results {
		match := "-"
		if _, ok := expected[r.TurnID]; ok {
			match = "OK"
		}
		if diverged[r.TurnID] {
			match = "DIFF"
		}
		fmt.Fprintf(out, "%-8s| %-30s| %-36s| %5d | %-14s| %s\n",
			r.TurnID, r.Context, r.Behaviour, r.Draws, r.Final(), match)
	}
	for _, m := range mismatches {
		fmt.Fprintf(out, "  %s: expected %s, got %s\n", m.TurnID, m.Expected, m.Actual)
	}
}

func printSummary(out io.Writer, s replay.Summary) {
	fmt.Fprintf(out, "\nSummary: %d turns, %d draws, %d retried, %d silenced, %d canonicalized, %d advanced, final state %d\n",
		s.TotalTurns, s.Draws, s.Retried, s.Silenced, s.Canonicalized, s.Advanced, s.FinalState)

	bs := make([]behaviour.Behaviour, 0, len(s.Behaviours))
	for b := range s.Behaviours {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return s.Behaviours[bs[i]] > s.Behaviours[bs[j]] || (s.Behaviours[bs[i]] == s.Behaviours[bs[j]] && bs[i] < bs[j]) })
	for _, b := range bs {
		fmt.Fprintf(out, "  %-36s %d\n", b, s.Behaviours[b])
	}
}

// #endregion output
