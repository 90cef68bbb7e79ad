package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
	"github.com/danielpatrickdp/coaching-policy/internal/replay"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
	"github.com/danielpatrickdp/coaching-policy/internal/store"
)

// #region export

func (a *app) exportFixtureCmd() *cobra.Command {
	var (
		sessionID   string
		outPath     string
		seed        uint64
		last        int
		description string
	)
	cmd := &cobra.Command{
		Use:   "export-fixture",
		Short: "Export a logged session as a pinned replay fixture",
		Long: `Reads a session's contexts from the decision log, replays them through a
policy seeded with --seed using the active version, and writes a fixture
that pins every resulting behaviour. The fixture is a regression baseline
for later table or policy changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.Decisions(sessionID, last)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("session %s: no logged decisions", sessionID)
			}

			tables, bel, err := a.exportPolicy(st)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Seed
			}
			cfg := a.cfg.PolicyConfig()
			p, err := policy.NewSeeded(tables, bel, seed, cfg, a.logger)
			if err != nil {
				return err
			}

			start := codec.State(records[0].State)
			turns, err := turnsFromRecords(records)
			if err != nil {
				return err
			}
			results, err := replay.Replay(p, start, turns)
			if err != nil {
				return err
			}

			if description == "" {
				description = fmt.Sprintf("session %s replayed with seed %d", sessionID, seed)
			}
			f := replay.FromResults(description, seed, start, bel, cfg, results)
			if err := f.Save(outPath); err != nil {
				return err
			}
			a.logger.Info("fixture exported", zap.String("session_id", sessionID), zap.Int("turns", len(results)))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d turns to %s\n", len(results), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id in the decision log")
	cmd.Flags().StringVar(&outPath, "out", "", "output fixture JSON path")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "replay seed (default: config seed)")
	cmd.Flags().IntVar(&last, "last", 0, "export only the first N decisions (0 = all)")
	cmd.Flags().StringVar(&description, "description", "", "fixture description")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// exportPolicy uses the active version, or compiles the configured rewards
// when the store has none.
func (a *app) exportPolicy(st *store.Store) (*reward.Tables, belief.Distribution, error) {
	art, err := st.Active()
	if err == nil {
		return art.Tables, art.Belief, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, belief.Distribution{}, err
	}
	tables, err := a.replayTables("", "")
	if err != nil {
		return nil, belief.Distribution{}, err
	}
	bel, err := a.cfg.Belief()
	return tables, bel, err
}

func turnsFromRecords(records []store.DecisionRecord) ([]replay.Turn, error) {
	turns := make([]replay.Turn, len(records))
	for i, r := range records {
		ft := replay.FixtureTurn{
			TurnID:      fmt.Sprintf("t%d", i+1),
			Goal:        r.Goal,
			Phase:       r.Phase,
			Performance: r.Performance,
		}
		t, err := ft.ToTurn()
		if err != nil {
			return nil, err
		}
		turns[i] = t
	}
	return turns, nil
}

// #endregion export
