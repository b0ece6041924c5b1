package configs

import (
	"fmt"
	"os"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/wallet"
)

// Config is the operator configuration, stored as TOML in the data dir.
type Config struct {
	Custodians Custodians `toml:"custodians"`
	Governance Governance `toml:"governance"`
	RateLimit  RateLimit  `toml:"rate_limit"`
	Session    Session    `toml:"session"`
}

// Custodians are the two wallets with privileged custody rights: the
// initiator who generated the phrase and the standing co-custodian.
type Custodians struct {
	Initiator   string `toml:"initiator"`
	CoCustodian string `toml:"co_custodian"`
}

// Governance bounds the partner collective.
type Governance struct {
	MaxPartners int `toml:"max_partners"`
}

// RateLimit holds the default ceilings applied to newly issued API keys.
type RateLimit struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
	RequestsPerDay    int `toml:"requests_per_day"`
}

// Session configures partner session tokens.
type Session struct {
	// SigningKey signs session tokens (HS256). Generated on first run if empty.
	SigningKey string `toml:"signing_key"`
	// TTLHours is the session lifetime. Defaults to 24.
	TTLHours int `toml:"ttl_hours"`
}

// DefaultConfig returns the baseline configuration: 65 partners, 60
// requests/minute, 10000 requests/day, 24h sessions.
func DefaultConfig() *Config {
	return &Config{
		Governance: Governance{MaxPartners: 65},
		RateLimit:  RateLimit{RequestsPerMinute: 60, RequestsPerDay: 10000},
		Session:    Session{TTLHours: 24},
	}
}

// LoadConfig reads the configuration, falling back to defaults for any
// unset section. A missing file returns the defaults without error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Governance.MaxPartners <= 0 {
		config.Governance.MaxPartners = 65
	}
	if config.RateLimit.RequestsPerMinute <= 0 {
		config.RateLimit.RequestsPerMinute = 60
	}
	if config.RateLimit.RequestsPerDay <= 0 {
		config.RateLimit.RequestsPerDay = 10000
	}
	if config.Session.TTLHours <= 0 {
		config.Session.TTLHours = 24
	}

	return config, nil
}

// SaveConfig persists the configuration.
func SaveConfig(path string, config *Config) error {
	return SaveTOML(path, config)
}

// IsCustodian reports whether the wallet is the initiator or co-custodian.
// The comparison is on normalized addresses; malformed config entries never
// match anything.
func (c *Config) IsCustodian(address string) bool {
	normalized, err := wallet.Normalize(address)
	if err != nil {
		return false
	}
	for _, custodian := range []string{c.Custodians.Initiator, c.Custodians.CoCustodian} {
		cw, err := wallet.Normalize(custodian)
		if err != nil {
			continue
		}
		if cw == normalized {
			return true
		}
	}
	return false
}

// Validate checks that configured custodian wallets are well-formed.
func (c *Config) Validate() error {
	for _, custodian := range []string{c.Custodians.Initiator, c.Custodians.CoCustodian} {
		if custodian == "" {
			continue
		}
		if !wallet.IsValid(custodian) {
			return fmt.Errorf("%w: custodian %q", cerrors.ErrInvalidWallet, custodian)
		}
	}
	return nil
}
