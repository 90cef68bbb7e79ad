package logging

import (
	"strings"

	"go.uber.org/zap"
)

// #region new-logger
// NewLogger builds a zap logger for the given mode: "prod" logs JSON at info,
// "nop" discards everything, anything else logs console output at debug.
func NewLogger(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "nop", "off":
		return zap.NewNop(), nil
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
// #endregion new-logger
