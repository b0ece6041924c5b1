// Package credentials stores operational connection bundles (SSH keys,
// server addresses) encrypted at rest with XChaCha20-Poly1305, keyed by
// wallet address. Metadata (role, description, status) stays plaintext so
// members can be listed without the encryption key; payloads are only
// materialized on an authorized, active read.
package credentials
