// Package session exchanges possession of the shared recovery phrase for a
// signed, expiring partner session token (HS256 JWT bound to the wallet).
package session
