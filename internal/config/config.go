package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// #region config

// Config is the policy service configuration.
type Config struct {
	DB      string `yaml:"db"`
	Addr    string `yaml:"addr"`
	LogMode string `yaml:"log_mode"` // prod, dev, nop
	Seed    uint64 `yaml:"seed"`     // base seed; each session derives its own
	Rewards string `yaml:"rewards"`  // reward table YAML; empty uses the built-in table

	MaxSessions int `yaml:"max_sessions"` // live sessions kept by policyd; 0 uses the server default

	Policy PolicyConfig `yaml:"policy"`
	Prior  PriorConfig  `yaml:"prior"`
}

// PolicyConfig bounds the repair loop.
type PolicyConfig struct {
	MaxRetries int `yaml:"max_retries"`
	MaxDraws   int `yaml:"max_draws"`
}

// PriorConfig picks the starting belief for new sessions.
type PriorConfig struct {
	Track   string `yaml:"track"`   // sport or physio
	Ability int    `yaml:"ability"` // 1..6
}

// DefaultConfig returns the defaults used when no file is present.
func DefaultConfig() *Config {
	d := policy.DefaultConfig()
	return &Config{
		DB:      "coaching_policy.db",
		Addr:    "localhost:50061",
		LogMode: "prod",
		Seed:    1,
		Policy: PolicyConfig{
			MaxRetries: d.MaxRetries,
			MaxDraws:   d.MaxDraws,
		},
		Prior: PriorConfig{
			Track:   "sport",
			Ability: 3,
		},
	}
}

// #endregion config

// #region load

// Load reads a YAML file over the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.DB = envOr("COACH_DB", c.DB)
	c.Addr = envOr("COACH_ADDR", c.Addr)
	c.LogMode = envOr("COACH_LOG_MODE", c.LogMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load

// #region derived

// Validate checks the values Load cannot fix up.
func (c *Config) Validate() error {
	if c.Policy.MaxRetries < 0 || c.Policy.MaxDraws < 0 {
		return fmt.Errorf("policy bounds must not be negative (retries %d, draws %d)", c.Policy.MaxRetries, c.Policy.MaxDraws)
	}
	if c.Policy.MaxDraws > 0 && c.Policy.MaxDraws <= c.Policy.MaxRetries {
		return fmt.Errorf("max_draws %d must exceed max_retries %d", c.Policy.MaxDraws, c.Policy.MaxRetries)
	}
	if _, err := c.Belief(); err != nil {
		return err
	}
	return nil
}

// PolicyConfig converts the YAML bounds for policy.New.
func (c *Config) PolicyConfig() policy.Config {
	return policy.Config{
		MaxRetries: c.Policy.MaxRetries,
		MaxDraws:   c.Policy.MaxDraws,
	}
}

// Belief builds the prior for new sessions.
func (c *Config) Belief() (belief.Distribution, error) {
	track, err := ParseTrack(c.Prior.Track)
	if err != nil {
		return belief.Distribution{}, err
	}
	return belief.Prior(track, c.Prior.Ability)
}

// ParseTrack accepts "sport" or "physio".
func ParseTrack(s string) (codec.Track, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sport", "":
		return codec.Sport, nil
	case "physio":
		return codec.Physio, nil
	}
	return 0, fmt.Errorf("unknown track %q (valid: sport, physio)", s)
}

// #endregion derived

// #region rewards

// rewardFile is the on-disk reward table: style number to slot-indexed rewards.
type rewardFile struct {
	Styles map[int][]float64 `yaml:"styles"`
}

// LoadRewards reads a reward table. An empty path returns the built-in table.
func LoadRewards(path string) (reward.Table, error) {
	if path == "" {
		return reward.DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rewards: %w", err)
	}
	var f rewardFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rewards: %w", err)
	}
	table := make(reward.Table, len(f.Styles))
	for s, vec := range f.Styles {
		style := codec.Style(s)
		if !style.Valid() {
			return nil, fmt.Errorf("rewards for style %d: %w", s, codec.ErrInvalidStyle)
		}
		table[style] = vec
	}
	return table, nil
}

// SaveRewards writes a reward table in the format LoadRewards reads.
func SaveRewards(path string, table reward.Table) error {
	f := rewardFile{Styles: make(map[int][]float64, len(table))}
	for s, vec := range table {
		f.Styles[int(s)] = vec
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal rewards: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rewards: %w", err)
	}
	return nil
}

// #endregion rewards
