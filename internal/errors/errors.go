package errors

import "errors"

// Validation errors indicate malformed caller input.
var (
	// ErrInvalidWallet indicates the wallet address is not 0x-prefixed 40-digit hex.
	ErrInvalidWallet = errors.New("invalid wallet address")

	// ErrInvalidMnemonic indicates the phrase is not a well-formed 12-word mnemonic.
	ErrInvalidMnemonic = errors.New("invalid recovery phrase")

	// ErrInvalidAlias indicates the partner alias is missing or out of bounds.
	ErrInvalidAlias = errors.New("invalid alias (must be 3-50 characters)")

	// ErrMissingField indicates a required field was not provided.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidIntentType indicates an unknown intent declaration type.
	ErrInvalidIntentType = errors.New("invalid intent type")

	// ErrInvalidStatus indicates an unknown member status value.
	ErrInvalidStatus = errors.New("invalid status (must be active or inactive)")
)

// Authorization errors indicate the caller may not perform the operation.
var (
	// ErrSeedAccessDenied indicates the caller is not a custodian or partner.
	ErrSeedAccessDenied = errors.New("not authorized to access the recovery phrase")

	// ErrCustodianOnly indicates the operation is restricted to the initiator
	// or co-custodian.
	ErrCustodianOnly = errors.New("operation restricted to custodians")

	// ErrNotPartner indicates the wallet is not an enrolled partner.
	ErrNotPartner = errors.New("wallet is not an enrolled partner")

	// ErrNotAcknowledged indicates the partner has not acknowledged the
	// recovery phrase and cannot authenticate with it yet.
	ErrNotAcknowledged = errors.New("partner has not acknowledged the recovery phrase")

	// ErrPhraseMismatch indicates the submitted words do not match the
	// canonical recovery phrase.
	ErrPhraseMismatch = errors.New("recovery phrase does not match")
)

// Not-found errors indicate a referenced entity does not exist.
var (
	// ErrPartnerNotFound indicates the wallet has no partner record.
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrSeatNotFound indicates the named seat does not exist.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrKeyNotFound indicates no API key matches the wallet and key ID.
	ErrKeyNotFound = errors.New("API key not found")

	// ErrMemberNotFound indicates the wallet has no credential record.
	ErrMemberNotFound = errors.New("team member not found")

	// ErrAgentNotFound indicates no API keys were registered under the agent name.
	ErrAgentNotFound = errors.New("agent not found")
)

// Capacity and rate-limit errors carry their ceiling in wrapped context so
// callers can decide whether to retry or abandon.
var (
	// ErrCapacityExceeded indicates the partner roster is at its ceiling.
	ErrCapacityExceeded = errors.New("maximum partners reached")

	// ErrRateLimited indicates an API key exceeded a request window ceiling.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Crypto errors indicate encryption or decryption failures. Decrypt failures
// are deliberately opaque: callers must not learn whether the key or the
// ciphertext was at fault.
var (
	// ErrDecryptFailed indicates the payload could not be decrypted.
	ErrDecryptFailed = errors.New("failed to decrypt credentials")

	// ErrEncryptFailed indicates the payload could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt credentials")
)

// State errors indicate an operation attempted on an already-terminal entity.
var (
	// ErrSeedAlreadyGenerated indicates the one-time generation already happened.
	ErrSeedAlreadyGenerated = errors.New("recovery phrase already generated")

	// ErrSeedNotGenerated indicates no recovery phrase exists yet.
	ErrSeedNotGenerated = errors.New("recovery phrase not yet generated")

	// ErrRestoreNeedsConfirm indicates a restore would overwrite an existing
	// phrase and explicit confirmation was not given.
	ErrRestoreNeedsConfirm = errors.New("restore would overwrite existing phrase; confirmation required")

	// ErrDuplicatePartner indicates the wallet is already enrolled.
	ErrDuplicatePartner = errors.New("wallet is already a partner")

	// ErrSeatOccupied indicates the seat has an active, unrevoked occupant.
	ErrSeatOccupied = errors.New("seat is already occupied")

	// ErrSeatRevoked indicates the seat has already been revoked.
	ErrSeatRevoked = errors.New("seat is already revoked")

	// ErrNotEligible indicates the partner has not acknowledged the phrase or
	// already holds a seat.
	ErrNotEligible = errors.New("partner is not eligible for a seat")

	// ErrKeyRevoked indicates the API key has been revoked.
	ErrKeyRevoked = errors.New("API key is not active")

	// ErrKeyExpired indicates the API key is past its expiry.
	ErrKeyExpired = errors.New("API key has expired")

	// ErrCredentialsNotActive indicates the member's credentials are disabled.
	ErrCredentialsNotActive = errors.New("team member credentials not active")

	// ErrSessionExpired indicates the session token is past its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionInvalid indicates the session token is malformed or does not
	// belong to the presenting wallet.
	ErrSessionInvalid = errors.New("invalid session token")
)

// ErrInvalidAPIKey indicates no record matches the presented bearer token.
// Kept outside the groups above: it is simultaneously an authentication and
// a not-found condition, and callers map it to a 401-equivalent.
var ErrInvalidAPIKey = errors.New("invalid API key")
