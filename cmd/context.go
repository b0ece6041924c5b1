package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/apikeys"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/configs"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/credentials"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/partners"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/seedvault"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/session"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
)

// runtime wires the governance components from the resolved configuration.
// Commands build one per invocation; all state lives in the document stores.
type runtime struct {
	settings *configs.Settings
	config   *configs.Config
	audit    *audit.Log
	partners *partners.Registry
	vault    *seedvault.Vault
	keys     *apikeys.Registry
}

func newRuntime() (*runtime, error) {
	settings, err := configs.DefaultSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := settings.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	config, err := configs.LoadConfig(settings.ConfigPath())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	log := audit.New(store.NewFileStore(settings.SecurityLogPath(), 0600), settings.AuditLogDir())
	registry := partners.New(store.NewFileStore(settings.RegistryPath(), 0600), log, config.Governance.MaxPartners)
	vault := seedvault.New(store.NewFileStore(settings.SeedMetadataPath(), 0600), settings.SeedKeyPath(), log, config, registry)
	keys := apikeys.New(store.NewFileStore(settings.APIKeysPath(), 0600), log,
		config.RateLimit.RequestsPerMinute, config.RateLimit.RequestsPerDay)

	return &runtime{
		settings: settings,
		config:   config,
		audit:    log,
		partners: registry,
		vault:    vault,
		keys:     keys,
	}, nil
}

// credentialManager builds the credential store, resolving the encryption
// passphrase from the environment or an interactive prompt.
func (rt *runtime) credentialManager() (*credentials.Manager, error) {
	passphrase, err := readPassphrase()
	if err != nil {
		return nil, err
	}
	return credentials.New(store.NewFileStore(rt.settings.CredentialsPath(), 0600), rt.audit, passphrase)
}

// sessionManager builds the session manager. A missing signing key is
// generated once and persisted to the config so tokens survive restarts.
func (rt *runtime) sessionManager() (*session.Manager, error) {
	key := rt.config.Session.SigningKey
	if key == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		key = hex.EncodeToString(raw)
		rt.config.Session.SigningKey = key
		if err := configs.SaveConfig(rt.settings.ConfigPath(), rt.config); err != nil {
			return nil, fmt.Errorf("failed to persist signing key: %w", err)
		}
	}

	ttl := time.Duration(rt.config.Session.TTLHours) * time.Hour
	return session.New([]byte(key), ttl, rt.audit, rt.vault, rt.partners), nil
}
