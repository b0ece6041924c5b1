package errors

import "errors"

// Category is the coarse failure class a collaborator (HTTP layer, CLI)
// translates into its own transport-specific code.
type Category int

const (
	// CategoryInternal is an unexpected failure (500-equivalent).
	CategoryInternal Category = iota
	// CategoryValidation is malformed input (400-equivalent).
	CategoryValidation
	// CategoryAuthorization is a permission failure (401/403-equivalent).
	CategoryAuthorization
	// CategoryNotFound is a missing entity (404-equivalent).
	CategoryNotFound
	// CategoryConflict is a capacity or terminal-state failure (409-equivalent).
	CategoryConflict
	// CategoryRateLimit is a request-window ceiling failure (429-equivalent).
	CategoryRateLimit
)

// Categorize maps an error to its failure category. Unknown errors are
// internal so they surface as generic failures rather than leaking detail.
func Categorize(err error) Category {
	switch {
	case err == nil:
		return CategoryInternal
	case errors.Is(err, ErrInvalidWallet),
		errors.Is(err, ErrInvalidMnemonic),
		errors.Is(err, ErrInvalidAlias),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidIntentType),
		errors.Is(err, ErrInvalidStatus):
		return CategoryValidation
	case errors.Is(err, ErrSeedAccessDenied),
		errors.Is(err, ErrCustodianOnly),
		errors.Is(err, ErrNotPartner),
		errors.Is(err, ErrNotAcknowledged),
		errors.Is(err, ErrPhraseMismatch),
		errors.Is(err, ErrInvalidAPIKey),
		errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrSessionInvalid):
		return CategoryAuthorization
	case errors.Is(err, ErrPartnerNotFound),
		errors.Is(err, ErrSeatNotFound),
		errors.Is(err, ErrKeyNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrAgentNotFound),
		errors.Is(err, ErrSeedNotGenerated):
		return CategoryNotFound
	case errors.Is(err, ErrRateLimited):
		return CategoryRateLimit
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrSeedAlreadyGenerated),
		errors.Is(err, ErrRestoreNeedsConfirm),
		errors.Is(err, ErrDuplicatePartner),
		errors.Is(err, ErrSeatOccupied),
		errors.Is(err, ErrSeatRevoked),
		errors.Is(err, ErrNotEligible),
		errors.Is(err, ErrKeyRevoked),
		errors.Is(err, ErrKeyExpired),
		errors.Is(err, ErrCredentialsNotActive):
		return CategoryConflict
	case errors.Is(err, ErrDecryptFailed), errors.Is(err, ErrEncryptFailed):
		// Deliberately opaque: crypto failures look like internal errors so
		// callers cannot probe key material.
		return CategoryInternal
	default:
		return CategoryInternal
	}
}

// Is re-exports errors.Is so callers of this package do not need to import
// both this package and the standard library errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
