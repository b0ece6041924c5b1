package configs

import (
	"os"
	"path/filepath"
)

// EnvDataDir overrides the data directory when set. Used by tests and by
// deployments that keep governance state outside the home directory.
const EnvDataDir = "COVENANT_DATA_DIR"

// Settings holds the resolved filesystem layout for all governance stores.
type Settings struct {
	// DataDir is the root directory for all persisted state.
	DataDir string
}

// DefaultSettings resolves the data directory: $COVENANT_DATA_DIR if set,
// otherwise $XDG_DATA_HOME/covenant, otherwise ~/.local/share/covenant.
func DefaultSettings() (*Settings, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return &Settings{DataDir: dir}, nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{DataDir: filepath.Join(dataDir, "covenant")}, nil
}

// EnsureDataDir creates the data directory with owner-only permissions.
func (s *Settings) EnsureDataDir() error {
	return os.MkdirAll(s.DataDir, 0700)
}

// ConfigPath is the operator configuration file.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.DataDir, "config.toml")
}

// RegistryPath is the partner governance document (seed metadata redacted).
func (s *Settings) RegistryPath() string {
	return filepath.Join(s.DataDir, "partner-governance.json")
}

// SeedKeyPath is the restricted-permission file holding the raw phrase.
func (s *Settings) SeedKeyPath() string {
	return filepath.Join(s.DataDir, ".partner-seed.key")
}

// SeedMetadataPath is the seed vault metadata document.
func (s *Settings) SeedMetadataPath() string {
	return filepath.Join(s.DataDir, "seed-vault.json")
}

// CredentialsPath is the encrypted team credential document.
func (s *Settings) CredentialsPath() string {
	return filepath.Join(s.DataDir, "credentials", "team-members.json")
}

// APIKeysPath is the API key registry document.
func (s *Settings) APIKeysPath() string {
	return filepath.Join(s.DataDir, "api-keys.json")
}

// SecurityLogPath is the hot security event document.
func (s *Settings) SecurityLogPath() string {
	return filepath.Join(s.DataDir, "security-log.json")
}

// AuditLogDir holds the day-partitioned audit files.
func (s *Settings) AuditLogDir() string {
	return filepath.Join(s.DataDir, "audit-logs")
}
