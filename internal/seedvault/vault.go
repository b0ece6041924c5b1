package seedvault

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/wallet"
)

// WordCount is the fixed length of the recovery phrase.
const WordCount = 12

// entropyBits yields a 12-word mnemonic.
const entropyBits = 128

// Authorizer answers whether a wallet holds custodial rights (initiator or
// co-custodian). Implemented by configs.Config.
type Authorizer interface {
	IsCustodian(address string) bool
}

// PartnerDirectory answers whether a wallet is an enrolled partner.
// Implemented by partners.Registry.
type PartnerDirectory interface {
	IsPartner(address string) bool
}

// Metadata is the persisted vault document. The phrase itself never appears
// here; once generated the field always reads "[REDACTED]".
type Metadata struct {
	Phrase      string     `json:"partnerSeed,omitempty"`
	CreatedAt   *time.Time `json:"seedCreatedAt,omitempty"`
	GeneratedBy string     `json:"seedGeneratedBy,omitempty"`
	RestoredAt  *time.Time `json:"seedRestoredAt,omitempty"`
	RestoredBy  string     `json:"seedRestoredBy,omitempty"`
}

const redacted = "[REDACTED]"

// Vault custodies the single shared recovery phrase. The raw phrase lives
// only in a 0600 key file separate from the metadata document.
type Vault struct {
	mu       sync.Mutex
	meta     store.Store
	keyPath  string
	log      *audit.Log
	auth     Authorizer
	partners PartnerDirectory
	now      func() time.Time
}

// New creates a vault. partners may be nil when no registry exists yet; in
// that case only custodians can retrieve.
func New(meta store.Store, keyPath string, log *audit.Log, auth Authorizer, partners PartnerDirectory) *Vault {
	return &Vault{
		meta:     meta,
		keyPath:  keyPath,
		log:      log,
		auth:     auth,
		partners: partners,
		now:      time.Now,
	}
}

// GenerateResult is returned exactly once, at generation time. The phrase is
// unrecoverable from the metadata document afterwards.
type GenerateResult struct {
	Phrase      string
	WordCount   int
	CreatedAt   time.Time
	GeneratedBy string
}

// Generate performs the one-time creation of the recovery phrase. It fails
// with ErrSeedAlreadyGenerated on any later call, regardless of caller.
func (v *Vault) Generate(initiator string) (*GenerateResult, error) {
	initiator, err := wallet.Normalize(initiator)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phraseExists() {
		return nil, cerrors.ErrSeedAlreadyGenerated
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to gather entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to derive mnemonic: %w", err)
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("%w: generated mnemonic failed validation", cerrors.ErrInvalidMnemonic)
	}

	createdAt := v.now().UTC()
	if err := v.writePhrase(mnemonic); err != nil {
		return nil, err
	}

	meta := Metadata{
		Phrase:      redacted,
		CreatedAt:   &createdAt,
		GeneratedBy: initiator,
	}
	if err := v.meta.Save(&meta); err != nil {
		return nil, fmt.Errorf("failed to save vault metadata: %w", err)
	}

	v.log.Record(audit.EventSeedGenerated, map[string]any{
		"initiator": initiator,
		"wordCount": WordCount,
	})

	return &GenerateResult{
		Phrase:      mnemonic,
		WordCount:   WordCount,
		CreatedAt:   createdAt,
		GeneratedBy: initiator,
	}, nil
}

// RetrieveResult carries the phrase and the access timestamp.
type RetrieveResult struct {
	Phrase     string
	WordCount  int
	AccessedAt time.Time
}

// Retrieve returns the phrase to an authorized requester: the initiator, the
// co-custodian, or any enrolled partner. Unauthorized attempts are recorded
// as HIGH-severity events before the rejection is returned.
func (v *Vault) Retrieve(requester string) (*RetrieveResult, error) {
	requester, err := wallet.Normalize(requester)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	phrase, err := v.readPhrase()
	if err != nil {
		return nil, err
	}

	if !v.authorized(requester) {
		v.log.Record(audit.EventSeedAccessDenied, map[string]any{
			"attemptedBy": requester,
		})
		return nil, cerrors.ErrSeedAccessDenied
	}

	accessedAt := v.now().UTC()
	v.log.Record(audit.EventSeedAccessed, map[string]any{
		"accessedBy": requester,
	})

	return &RetrieveResult{
		Phrase:     phrase,
		WordCount:  WordCount,
		AccessedAt: accessedAt,
	}, nil
}

// Restore overwrites the key file from a backup phrase. Custodians only.
// Overwriting an existing non-empty phrase requires confirm=true.
func (v *Vault) Restore(requester, phrase string, confirm bool) error {
	requester, err := wallet.Normalize(requester)
	if err != nil {
		return err
	}
	if !v.auth.IsCustodian(requester) {
		return cerrors.ErrCustodianOnly
	}

	phrase = normalizePhrase(phrase)
	if len(strings.Fields(phrase)) != WordCount || !bip39.IsMnemonicValid(phrase) {
		return cerrors.ErrInvalidMnemonic
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	var meta Metadata
	if err := v.meta.Load(&meta); err != nil {
		if err == store.ErrNotExist {
			return cerrors.ErrSeedNotGenerated
		}
		return fmt.Errorf("failed to load vault metadata: %w", err)
	}
	if meta.CreatedAt == nil {
		return cerrors.ErrSeedNotGenerated
	}

	if existing, _ := v.readPhrase(); existing != "" && !confirm {
		return cerrors.ErrRestoreNeedsConfirm
	}

	if err := v.writePhrase(phrase); err != nil {
		return err
	}

	restoredAt := v.now().UTC()
	meta.Phrase = redacted
	meta.RestoredAt = &restoredAt
	meta.RestoredBy = requester
	if err := v.meta.Save(&meta); err != nil {
		return fmt.Errorf("failed to save vault metadata: %w", err)
	}

	v.log.Record(audit.EventSeedRestored, map[string]any{
		"restoredBy": requester,
		"wordCount":  WordCount,
	})
	return nil
}

// VerifyPhrase compares a submitted word list against the canonical phrase,
// case-insensitively. It is a pure read; callers that gate logins on it are
// responsible for their own audit events.
func (v *Vault) VerifyPhrase(words []string) (bool, error) {
	if len(words) != WordCount {
		return false, cerrors.ErrInvalidMnemonic
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	phrase, err := v.readPhrase()
	if err != nil {
		return false, err
	}

	canonical := strings.Fields(strings.ToLower(phrase))
	if len(canonical) != WordCount {
		return false, cerrors.ErrInvalidMnemonic
	}
	for i, word := range words {
		if strings.TrimSpace(strings.ToLower(word)) != canonical[i] {
			return false, nil
		}
	}
	return true, nil
}

// Generated reports whether the one-time generation has happened.
func (v *Vault) Generated() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phraseExists()
}

// Status returns the redacted metadata document.
func (v *Vault) Status() (*Metadata, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var meta Metadata
	if err := v.meta.Load(&meta); err != nil {
		if err == store.ErrNotExist {
			return &Metadata{}, nil
		}
		return nil, err
	}
	return &meta, nil
}

func (v *Vault) authorized(requester string) bool {
	if v.auth.IsCustodian(requester) {
		return true
	}
	return v.partners != nil && v.partners.IsPartner(requester)
}

func (v *Vault) phraseExists() bool {
	phrase, err := v.readPhraseFile()
	if err == nil && phrase != "" {
		return true
	}
	var meta Metadata
	if err := v.meta.Load(&meta); err == nil && meta.CreatedAt != nil {
		return true
	}
	return false
}

// readPhrase returns the phrase or ErrSeedNotGenerated.
func (v *Vault) readPhrase() (string, error) {
	phrase, err := v.readPhraseFile()
	if err != nil || phrase == "" {
		return "", cerrors.ErrSeedNotGenerated
	}
	return phrase, nil
}

func (v *Vault) readPhraseFile() (string, error) {
	data, err := os.ReadFile(v.keyPath)
	if err != nil {
		return "", err
	}
	return normalizePhrase(string(data)), nil
}

func (v *Vault) writePhrase(phrase string) error {
	// #nosec G306 -- 0600 is the point: owner-only custody of the raw phrase.
	if err := os.WriteFile(v.keyPath, []byte(phrase+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write seed key file: %w", err)
	}
	// Re-assert permissions in case the file pre-existed with a wider mode.
	if err := os.Chmod(v.keyPath, 0600); err != nil {
		return fmt.Errorf("failed to restrict seed key file: %w", err)
	}
	return nil
}

func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(phrase)), " ")
}
