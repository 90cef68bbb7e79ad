package eval

import "github.com/danielpatrickdp/coaching-policy/internal/reward"

// #region eval-config
// Config holds thresholds for artifact validation.
type Config struct {
	RowBound       float64 // reject if any |row sum - 1| exceeds this
	FailDegenerate bool    // reject artifacts with uniform fallback styles
}

// DefaultConfig returns the compile-time bound; degenerate styles only warn.
func DefaultConfig() Config {
	return Config{
		RowBound: reward.Bound,
	}
}

// #endregion eval-config

// #region eval-metric
// Metric captures a single validation check result.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

// #endregion eval-metric

// #region eval-result
// Result is the output of artifact validation.
type Result struct {
	Passed  bool     `json:"passed"`
	Metrics []Metric `json:"metrics"`
	Reason  string   `json:"reason"`
}

// #endregion eval-result
