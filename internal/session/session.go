package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/partners"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/wallet"
)

// PhraseVerifier compares a submitted word list against the canonical
// recovery phrase.
type PhraseVerifier interface {
	VerifyPhrase(words []string) (bool, error)
}

// Directory resolves partner records.
type Directory interface {
	Partner(address string) (*partners.Partner, error)
}

// Manager issues and validates signed partner session tokens. A login
// proves possession of the shared recovery phrase; the resulting token is
// an HS256 JWT carrying the wallet as subject.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
	log        *audit.Log
	vault      PhraseVerifier
	partners   Directory
	now        func() time.Time
}

// New creates a session manager. ttl bounds how long issued tokens live.
func New(signingKey []byte, ttl time.Duration, log *audit.Log, vault PhraseVerifier, directory Directory) *Manager {
	return &Manager{
		signingKey: signingKey,
		ttl:        ttl,
		log:        log,
		vault:      vault,
		partners:   directory,
		now:        time.Now,
	}
}

// Session is an issued login.
type Session struct {
	Token      string    `json:"sessionToken"`
	Wallet     string    `json:"wallet"`
	Alias      string    `json:"alias"`
	VerifiedAt time.Time `json:"verifiedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Login verifies a partner's recovery phrase and issues a session token.
// The wallet must be an acknowledged partner; the words must match the
// canonical phrase exactly (case-insensitive).
func (m *Manager) Login(address string, words []string) (*Session, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	partner, err := m.partners.Partner(address)
	if err != nil {
		if cerrors.Is(err, cerrors.ErrPartnerNotFound) {
			return nil, cerrors.ErrNotPartner
		}
		return nil, err
	}
	if !partner.Acknowledged {
		return nil, cerrors.ErrNotAcknowledged
	}

	match, err := m.vault.VerifyPhrase(words)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, cerrors.ErrPhraseMismatch
	}

	verifiedAt := m.now().UTC()
	expiresAt := verifiedAt.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   address,
		IssuedAt:  jwt.NewNumericDate(verifiedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	m.log.Record(audit.EventPartnerVerified, map[string]any{
		"wallet": address,
		"alias":  partner.Alias,
		"method": "seed-phrase-verification",
	})
	return &Session{
		Token:      token,
		Wallet:     address,
		Alias:      partner.Alias,
		VerifiedAt: verifiedAt,
		ExpiresAt:  expiresAt,
	}, nil
}

// Validation reports the state of a presented token.
type Validation struct {
	Valid     bool          `json:"isValid"`
	ExpiresAt time.Time     `json:"expiresAt"`
	ExpiresIn time.Duration `json:"expiresIn"`
}

// Validate checks a token's signature, expiry, and wallet binding.
func (m *Manager) Validate(address, token string) (*Validation, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: session token", cerrors.ErrMissingField)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return m.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if cerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, cerrors.ErrSessionExpired
		}
		return nil, cerrors.ErrSessionInvalid
	}
	if !parsed.Valid || claims.Subject != address {
		return nil, cerrors.ErrSessionInvalid
	}

	expiresAt := claims.ExpiresAt.Time
	return &Validation{
		Valid:     true,
		ExpiresAt: expiresAt,
		ExpiresIn: expiresAt.Sub(m.now()),
	}, nil
}

// Logout records the end of a session. Tokens are stateless; the caller
// discards its copy and the event keeps the logout forensically visible.
func (m *Manager) Logout(address string) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}

	m.log.Record(audit.EventPartnerLoggedOut, map[string]any{
		"wallet": address,
	})
	return nil
}
