package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/eval"
	"github.com/danielpatrickdp/coaching-policy/internal/store"
)

// #region inspect

func (a *app) inspectCmd() *cobra.Command {
	var (
		last      int
		versionID string
		sessionID string
		top       int
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List policy versions, show one version, or show a session's decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionID != "" && sessionID != "" {
				return fmt.Errorf("--version and --session are mutually exclusive")
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			switch {
			case sessionID != "":
				return runSessionMode(out, st, sessionID, last, jsonOut)
			case versionID != "":
				return runDetailMode(out, st, versionID, top, jsonOut)
			default:
				return runListMode(out, st, last, jsonOut)
			}
		},
	}
	cmd.Flags().IntVar(&last, "last", 10, "number of rows to show")
	cmd.Flags().StringVar(&versionID, "version", "", "show one version (\"active\" for the active one)")
	cmd.Flags().StringVar(&sessionID, "session", "", "show the decision log of a session")
	cmd.Flags().IntVar(&top, "top", 3, "most likely successors of START to show per style")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "JSON output")
	return cmd
}

// #endregion inspect

// #region list-mode

type listRow struct {
	VersionID string `json:"version_id"`
	ParentID  string `json:"parent_id,omitempty"`
	Source    string `json:"source"`
	Active    bool   `json:"active"`
	Passed    bool   `json:"passed"`
	CreatedAt string `json:"created_at"`
}

func runListMode(out io.Writer, st *store.Store, last int, jsonOut bool) error {
	versions, err := st.List(last)
	if err != nil {
		return err
	}
	var activeID string
	if active, err := st.Active(); err == nil {
		activeID = active.VersionID
	}

	rows := make([]listRow, len(versions))
	for i, v := range versions {
		rows[i] = listRow{
			VersionID: v.VersionID,
			ParentID:  v.ParentID,
			Source:    v.Source,
			Active:    v.VersionID == activeID,
			Passed:    metrics(v.MetricsJSON).Passed,
			CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	if jsonOut {
		return printJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "no versions found")
		return nil
	}

	fmt.Fprintf(out, "%-1s %-12s  %-12s  %-6s  %-20s  %s\n", "", "Version", "Parent", "Eval", "Time", "Source")
	for _, r := range rows {
		mark := " "
		if r.Active {
			mark = "*"
		}
		verdict := "pass"
		if !r.Passed {
			verdict = "fail"
		}
		fmt.Fprintf(out, "%-1s %-12s  %-12s  %-6s  %-20s  %s\n",
			mark, shortID(r.VersionID), shortID(r.ParentID), verdict, r.CreatedAt, r.Source)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type successor struct {
	Behaviour   string  `json:"behaviour"`
	Probability float64 `json:"probability"`
}

type detailOutput struct {
	VersionID  string                 `json:"version_id"`
	ParentID   string                 `json:"parent_id,omitempty"`
	Source     string                 `json:"source"`
	CreatedAt  string                 `json:"created_at"`
	Belief     []float64              `json:"belief"`
	Eval       eval.Result            `json:"eval"`
	Degenerate []int                  `json:"degenerate_styles"`
	FromStart  map[string][]successor `json:"from_start"`
}

func runDetailMode(out io.Writer, st *store.Store, versionID string, top int, jsonOut bool) error {
	var (
		a   store.Artifact
		err error
	)
	if versionID == "active" {
		a, err = st.Active()
	} else {
		a, err = st.Get(versionID)
	}
	if err != nil {
		return err
	}

	d := detailOutput{
		VersionID: a.VersionID,
		ParentID:  a.ParentID,
		Source:    a.Source,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Belief:    a.Belief.Weights(),
		Eval:      metrics(a.MetricsJSON),
		FromStart: make(map[string][]successor),
	}
	for _, s := range a.Tables.Degenerate() {
		d.Degenerate = append(d.Degenerate, int(s))
	}
	for _, style := range codec.Styles() {
		row, err := a.Tables.Row(style, behaviour.Start)
		if err != nil {
			return err
		}
		d.FromStart[fmt.Sprintf("%d", style)] = topSuccessors(row, top)
	}

	if jsonOut {
		return printJSON(out, d)
	}

	fmt.Fprintf(out, "Version:  %s\n", d.VersionID)
	fmt.Fprintf(out, "Parent:   %s\n", orDash(d.ParentID))
	fmt.Fprintf(out, "Source:   %s\n", d.Source)
	fmt.Fprintf(out, "Created:  %s\n", d.CreatedAt)
	fmt.Fprintf(out, "Eval:     %s\n", d.Eval.Reason)
	for _, m := range d.Eval.Metrics {
		fmt.Fprintf(out, "  %-18s %.6g\n", m.Name, m.Value)
	}
	fmt.Fprintf(out, "\n%-6s  %-8s  %s\n", "Style", "Belief", "Likely after START")
	for _, style := range codec.Styles() {
		fmt.Fprintf(out, "%-6d  %-8.4f ", style, a.Belief.Of(style))
		for _, s := range d.FromStart[fmt.Sprintf("%d", style)] {
			fmt.Fprintf(out, " %s=%.3f", s.Behaviour, s.Probability)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func topSuccessors(row []float64, n int) []successor {
	out := make([]successor, 0, len(row))
	for i, p := range row {
		if p > 0 {
			out = append(out, successor{Behaviour: behaviour.Behaviour(i).String(), Probability: p})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Probability > out[j].Probability })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// #endregion detail-mode

// #region session-mode

func runSessionMode(out io.Writer, st *store.Store, sessionID string, last int, jsonOut bool) error {
	rows, err := st.Decisions(sessionID, last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "no decisions for session %s\n", sessionID)
		return nil
	}

	fmt.Fprintf(out, "%5s  %-8s  %-9s  %-10s  %-36s  %5s  %5s  %s\n",
		"State", "Goal", "Phase", "Perf", "Behaviour", "Draws", "Adv", "Step")
	for _, r := range rows {
		fmt.Fprintf(out, "%5d  %-8s  %-9s  %-10s  %-36s  %5d  %5d  %s\n",
			r.State, r.Goal, r.Phase, r.Performance, r.Behaviour, r.Draws, r.Advances, r.Step)
	}
	return nil
}

// #endregion session-mode

// #region helpers

func metrics(raw string) eval.Result {
	var r eval.Result
	if raw == "" {
		return r
	}
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		r.Reason = fmt.Sprintf("unreadable metrics: %v", err)
	}
	return r
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return orDash(id)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// #endregion helpers
