// Package apikeys issues and enforces opaque bearer keys scoped to a
// wallet and agent name. Raw tokens are returned exactly once at issuance;
// only their SHA-256 hashes are stored, so a lost token can only be
// replaced by regeneration. Verification applies a lazy two-tier sliding
// window rate limiter (per minute and per day) evaluated against wall-clock
// time at each call.
package apikeys
