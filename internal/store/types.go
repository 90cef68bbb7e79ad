package store

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// ErrNotFound is returned when a version or the active pointer is missing.
var ErrNotFound = errors.New("policy version not found")

// #region artifact
// Artifact is a versioned, compiled policy: the transition matrices for all
// twelve styles plus the starting belief sessions are created with.
type Artifact struct {
	VersionID   string
	ParentID    string
	Source      string // where the reward table came from: "default" or a file path
	Belief      belief.Distribution
	Tables      *reward.Tables
	MetricsJSON string // eval.Result at compile time
	CreatedAt   time.Time
}
// #endregion artifact

// #region decision-record
// DecisionRecord is one row of decision_log as read back for inspection.
type DecisionRecord struct {
	ID          int64
	SessionID   string
	VersionID   string
	State       int
	Goal        string
	Phase       string
	Performance string
	Behaviour   string
	NextState   int
	Draws       int
	Advances    int
	Step        string
	CreatedAt   time.Time
}
// #endregion decision-record
