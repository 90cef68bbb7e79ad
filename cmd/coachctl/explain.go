package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
	"github.com/danielpatrickdp/coaching-policy/internal/validity"
)

// #region explain

func (a *app) explainCmd() *cobra.Command {
	var goal, phase, performance, name string
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show the behaviours allowed in an interaction context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ctx interaction.Context
			var err error
			if ctx.Goal, err = interaction.ParseGoal(goal); err != nil {
				return err
			}
			if ctx.Phase, err = interaction.ParsePhase(phase); err != nil {
				return err
			}
			if ctx.Performance, err = interaction.ParsePerformance(performance); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if name != "" {
				b, err := behaviour.Parse(name)
				if err != nil {
					return err
				}
				v := validity.Check(ctx, b)
				fmt.Fprintln(out, v.Reason)
				if !v.Allowed {
					if c, ok := policy.Canonical(b); ok {
						fmt.Fprintf(out, "repairs to %s: %s\n", c, validity.Check(ctx, c).Reason)
					}
				}
				return nil
			}

			valid := validity.Valid(ctx)
			fmt.Fprintf(out, "%s allows %d behaviours:\n", ctx, valid.Len())
			for _, b := range valid.Slice() {
				fmt.Fprintf(out, "  %2d  %s\n", int(b), b)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "goal level, e.g. SESSION, SET or ACTION")
	cmd.Flags().StringVar(&phase, "phase", "", "START or END")
	cmd.Flags().StringVar(&performance, "performance", "", "performance, e.g. MET or MUCH_IMPROVED")
	cmd.Flags().StringVar(&name, "behaviour", "", "check one behaviour by name")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("performance")
	return cmd
}

// #endregion explain
