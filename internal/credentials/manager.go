package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/wallet"
)

// Member statuses. Inactive members keep their encrypted payload but cannot
// retrieve it.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Payload is the sensitive connection bundle encrypted at rest. The
// decrypted form is only ever materialized on read, never persisted.
type Payload struct {
	SSHKey        string `json:"ssh_key"`
	ServerAddress string `json:"server_address"`
	Username      string `json:"username"`
	Port          int    `json:"port"`
	Instructions  string `json:"instructions,omitempty"`
}

// member is the persisted record. Role, description, and status stay
// plaintext so listing works without the key.
type member struct {
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Encrypted   string    `json:"ssh_key_encrypted"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"last_updated"`
}

type document struct {
	Members map[string]member `json:"members"`
}

// MemberInfo is the metadata view of one member; no payload.
type MemberInfo struct {
	Wallet      string    `json:"wallet"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
}

// MemberCredentials is the decrypted view returned by GetCredentials.
type MemberCredentials struct {
	Wallet      string    `json:"wallet"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Credentials Payload   `json:"credentials"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
}

// Manager encrypts and stores operational credential payloads keyed by
// wallet address.
type Manager struct {
	mu    sync.Mutex
	store store.Store
	log   *audit.Log
	key   [chacha20poly1305.KeySize]byte
	now   func() time.Time
}

// New creates a manager whose cipher key is derived from the operator
// passphrase: used directly when it carries at least 32 bytes, widened
// through SHA-256 otherwise. The effective security is bounded by the
// strength of the passphrase.
func New(st store.Store, log *audit.Log, passphrase string) (*Manager, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: encryption passphrase", cerrors.ErrMissingField)
	}

	m := &Manager{store: st, log: log, now: time.Now}
	if len(passphrase) >= chacha20poly1305.KeySize {
		copy(m.key[:], passphrase[:chacha20poly1305.KeySize])
	} else {
		m.key = sha256.Sum256([]byte(passphrase))
	}
	return m, nil
}

// encrypt seals a payload with a fresh random nonce, producing the stored
// nonce:ciphertext hex form.
func (m *Manager) encrypt(payload Payload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", cerrors.ErrEncryptFailed
	}

	aead, err := chacha20poly1305.NewX(m.key[:])
	if err != nil {
		return "", cerrors.ErrEncryptFailed
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", cerrors.ErrEncryptFailed
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(ciphertext), nil
}

// decrypt opens a stored nonce:ciphertext pair. Every failure mode returns
// the same opaque error so callers cannot tell key from ciphertext faults.
func (m *Manager) decrypt(encrypted string) (Payload, error) {
	var payload Payload

	parts := strings.SplitN(encrypted, ":", 2)
	if len(parts) != 2 {
		return payload, cerrors.ErrDecryptFailed
	}
	nonce, err := hex.DecodeString(parts[0])
	if err != nil {
		return payload, cerrors.ErrDecryptFailed
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return payload, cerrors.ErrDecryptFailed
	}

	aead, err := chacha20poly1305.NewX(m.key[:])
	if err != nil || len(nonce) != aead.NonceSize() {
		return payload, cerrors.ErrDecryptFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return payload, cerrors.ErrDecryptFailed
	}
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return payload, cerrors.ErrDecryptFailed
	}
	return payload, nil
}

func (m *Manager) load() (*document, error) {
	var doc document
	if err := m.store.Load(&doc); err != nil && err != store.ErrNotExist {
		return nil, fmt.Errorf("failed to load credential store: %w", err)
	}
	if doc.Members == nil {
		doc.Members = make(map[string]member)
	}
	return &doc, nil
}

func (m *Manager) save(doc *document) error {
	if err := m.store.Save(doc); err != nil {
		return fmt.Errorf("failed to save credential store: %w", err)
	}
	return nil
}

// AddOrUpdateMember encrypts the payload and stores it alongside plaintext
// metadata. An existing record for the wallet is replaced; its creation
// timestamp is preserved.
func (m *Manager) AddOrUpdateMember(address, role, description string, payload Payload, status string) (*MemberInfo, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, fmt.Errorf("%w: role", cerrors.ErrMissingField)
	}
	if status == "" {
		status = StatusActive
	}
	if status != StatusActive && status != StatusInactive {
		return nil, cerrors.ErrInvalidStatus
	}
	if payload.Port == 0 {
		payload.Port = 22
	}

	encrypted, err := m.encrypt(payload)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	record := member{
		Role:        role,
		Description: description,
		Status:      status,
		Encrypted:   encrypted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, ok := doc.Members[address]; ok {
		record.CreatedAt = existing.CreatedAt
	}
	doc.Members[address] = record

	if err := m.save(doc); err != nil {
		return nil, err
	}

	m.log.Record(audit.EventCredentialStored, map[string]any{
		"wallet": address,
		"role":   role,
		"status": status,
	})
	return &MemberInfo{
		Wallet:      address,
		Role:        record.Role,
		Description: record.Description,
		Status:      record.Status,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// GetCredentials decrypts and returns a member's payload. Existence and
// active status are checked before any decryption is attempted.
func (m *Manager) GetCredentials(address string) (*MemberCredentials, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	record, ok := doc.Members[address]
	if !ok {
		return nil, cerrors.ErrMemberNotFound
	}
	if record.Status != StatusActive {
		return nil, cerrors.ErrCredentialsNotActive
	}

	payload, err := m.decrypt(record.Encrypted)
	if err != nil {
		return nil, err
	}

	m.log.Record(audit.EventCredentialAccessed, map[string]any{
		"wallet": address,
		"role":   record.Role,
	})
	return &MemberCredentials{
		Wallet:      address,
		Role:        record.Role,
		Description: record.Description,
		Credentials: payload,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// List returns member metadata sorted by wallet. Encrypted payloads are
// never included.
func (m *Manager) List() ([]MemberInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	members := make([]MemberInfo, 0, len(doc.Members))
	for address, record := range doc.Members {
		members = append(members, MemberInfo{
			Wallet:      address,
			Role:        record.Role,
			Description: record.Description,
			Status:      record.Status,
			CreatedAt:   record.CreatedAt,
			UpdatedAt:   record.UpdatedAt,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Wallet < members[j].Wallet
	})
	return members, nil
}

// UpdateMemberStatus flips a member between active and inactive.
func (m *Manager) UpdateMemberStatus(address, status string) (*MemberInfo, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	if status != StatusActive && status != StatusInactive {
		return nil, cerrors.ErrInvalidStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	record, ok := doc.Members[address]
	if !ok {
		return nil, cerrors.ErrMemberNotFound
	}
	record.Status = status
	record.UpdatedAt = m.now().UTC()
	doc.Members[address] = record

	if err := m.save(doc); err != nil {
		return nil, err
	}

	m.log.Record(audit.EventCredentialStatusChange, map[string]any{
		"wallet": address,
		"status": status,
	})
	return &MemberInfo{
		Wallet:      address,
		Role:        record.Role,
		Description: record.Description,
		Status:      record.Status,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// RemoveMember deletes a member record and its encrypted payload.
func (m *Manager) RemoveMember(address string) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.load()
	if err != nil {
		return err
	}

	if _, ok := doc.Members[address]; !ok {
		return cerrors.ErrMemberNotFound
	}
	delete(doc.Members, address)

	if err := m.save(doc); err != nil {
		return err
	}

	m.log.Record(audit.EventCredentialRemoved, map[string]any{
		"wallet": address,
	})
	return nil
}
