// Package errors provides typed error values for the governance core.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by failure class:
//
//   - Validation: malformed addresses, phrases, or missing fields
//   - Authorization: caller is not a custodian or partner
//   - Not-found: referenced wallet, seat, key, or credential does not exist
//   - Capacity/rate-limit: the partner ceiling or a request window was hit
//   - Crypto: decryption failed (deliberately opaque)
//   - State: operation attempted on an already-terminal entity
//
// Categorize() maps any project error to the coarse class collaborators
// translate into transport codes (400/401/404/409/429/500 equivalents).
//
// # Usage
//
// Return errors from internal packages:
//
//	if doc.Seed != "" {
//	    return errors.ErrSeedAlreadyGenerated
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w (%d of %d seats filled)", errors.ErrCapacityExceeded, n, max)
package errors
