package logging

import "time"

// #region decision-entry
// DecisionEntry is a single row in the decision_log table.
type DecisionEntry struct {
	SessionID   string
	VersionID   string // active policy version, empty when running from defaults
	State       int
	Goal        string
	Phase       string
	Performance string
	Behaviour   string
	NextState   int
	Draws       int
	Advances    int
	Step        string // final repair step: "accepted" | "silenced"
	CreatedAt   time.Time
}
// #endregion decision-entry
