// Package configs resolves the on-disk layout of all governance stores and
// loads the operator configuration.
//
// # Layout
//
// All state lives under a single data directory, resolved by
// DefaultSettings() in priority order:
//
//   - $COVENANT_DATA_DIR (deployments and tests)
//   - $XDG_DATA_HOME/covenant
//   - ~/.local/share/covenant
//
// The directory holds one JSON document per store plus the 0600 seed key
// file and the day-partitioned audit logs.
//
// # Configuration
//
// config.toml carries the custodian wallets, the partner ceiling, default
// API key rate limits, and the session signing key. Missing sections fall
// back to the documented defaults, so a fresh deployment works with an
// empty file.
package configs
