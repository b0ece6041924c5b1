// Package seedvault custodies the single shared 12-word recovery phrase.
//
// Generation is a one-shot, irreversible action: the phrase is produced from
// 128 bits of entropy via the standard BIP39 wordlist, returned exactly once
// in the generation response, and written to a key file with owner-only
// permissions. The metadata document never contains the phrase; it reads
// "[REDACTED]" from the moment of generation.
//
// Retrieval is gated: only the initiator, the co-custodian, or an enrolled
// partner may read the phrase, and every access (granted or denied) leaves a
// security event. Restore re-seats the key file from an operator-held backup
// and refuses to overwrite an existing phrase without explicit confirmation.
package seedvault
