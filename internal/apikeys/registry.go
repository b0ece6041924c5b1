package apikeys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/wallet"
)

// Key statuses. active → revoked is terminal; expiry is time-based and
// checked lazily on Verify.
const (
	StatusActive  = "active"
	StatusRevoked = "revoked"
)

// Rate-limit windows.
const (
	minuteWindow = time.Minute
	dayWindow    = 24 * time.Hour
)

// Permissions are the capability flags attached to a key. Withdraw and
// mint stay off unless explicitly granted.
type Permissions struct {
	Ceremony  bool `json:"ceremony"`
	Donations bool `json:"donations"`
	BurnTrust bool `json:"burn_trust"`
	Withdraw  bool `json:"withdraw"`
	Mint      bool `json:"mint"`
}

// DefaultPermissions returns the conservative default grant.
func DefaultPermissions() Permissions {
	return Permissions{Ceremony: true, Donations: true, BurnTrust: true}
}

type rateLimit struct {
	RequestsPerMinute int       `json:"requestsPerMinute"`
	RequestsPerDay    int       `json:"requestsPerDay"`
	MinuteRequests    int       `json:"currentMinuteRequests"`
	DayRequests       int       `json:"currentDayRequests"`
	MinuteWindowStart time.Time `json:"lastMinuteReset"`
	DayWindowStart    time.Time `json:"lastDayReset"`
}

// keyRecord is the persisted key. The raw bearer token never appears here,
// only its SHA-256 hash as the map key in the document.
type keyRecord struct {
	KeyID       string      `json:"keyId"`
	Wallet      string      `json:"walletAddress"`
	Agent       string      `json:"agentName"`
	Description string      `json:"description"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"`
	LastUsed    *time.Time  `json:"lastUsed,omitempty"`
	UsageCount  int         `json:"usageCount"`
	Status      string      `json:"status"`
	RevokedAt   *time.Time  `json:"revokedAt,omitempty"`
	RateLimit   rateLimit   `json:"rateLimit"`
}

type walletRecord struct {
	Address   string    `json:"address"`
	Keys      []string  `json:"keys"` // token hashes
	CreatedAt time.Time `json:"createdAt"`
}

type agentRecord struct {
	Name      string    `json:"name"`
	Wallets   []string  `json:"wallets"`
	CreatedAt time.Time `json:"createdAt"`
}

type document struct {
	Keys    map[string]*keyRecord   `json:"keys"`
	Wallets map[string]walletRecord `json:"wallets"`
	Agents  map[string]agentRecord  `json:"agents"`
}

// Registry issues, verifies, rate-limits, and revokes opaque bearer keys
// scoped to a wallet and agent name.
type Registry struct {
	mu        sync.Mutex
	store     store.Store
	log       *audit.Log
	perMinute int
	perDay    int
	now       func() time.Time
}

// New creates a registry with the given default rate-limit ceilings.
func New(st store.Store, log *audit.Log, perMinute, perDay int) *Registry {
	return &Registry{
		store:     st,
		log:       log,
		perMinute: perMinute,
		perDay:    perDay,
		now:       time.Now,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func newKeyID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key ID: %w", err)
	}
	return "key_" + hex.EncodeToString(buf), nil
}

func (r *Registry) load() (*document, error) {
	var doc document
	if err := r.store.Load(&doc); err != nil && err != store.ErrNotExist {
		return nil, fmt.Errorf("failed to load API key registry: %w", err)
	}
	if doc.Keys == nil {
		doc.Keys = make(map[string]*keyRecord)
	}
	if doc.Wallets == nil {
		doc.Wallets = make(map[string]walletRecord)
	}
	if doc.Agents == nil {
		doc.Agents = make(map[string]agentRecord)
	}
	return &doc, nil
}

func (r *Registry) save(doc *document) error {
	if err := r.store.Save(doc); err != nil {
		return fmt.Errorf("failed to save API key registry: %w", err)
	}
	return nil
}

// findByID locates a key by keyId scoped to its owning wallet.
func findByID(doc *document, address, keyID string) *keyRecord {
	for _, record := range doc.Keys {
		if record.KeyID == keyID && record.Wallet == address {
			return record
		}
	}
	return nil
}

// IssueResult carries the raw bearer token. It is returned exactly once;
// only the token's hash is stored.
type IssueResult struct {
	KeyID       string      `json:"keyId"`
	APIKey      string      `json:"apiKey"`
	Wallet      string      `json:"walletAddress"`
	Agent       string      `json:"agentName"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Issue creates a key for a wallet and agent. A nil permissions argument
// applies the conservative defaults.
func (r *Registry) Issue(address, agent, description string, perms *Permissions) (*IssueResult, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}
	if agent == "" {
		return nil, fmt.Errorf("%w: agent name", cerrors.ErrMissingField)
	}

	granted := DefaultPermissions()
	if perms != nil {
		granted = *perms
	}
	if description == "" {
		description = fmt.Sprintf("API key for %s", agent)
	}

	raw, err := newToken()
	if err != nil {
		return nil, err
	}
	keyID, err := newKeyID()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	hashed := hashToken(raw)
	doc.Keys[hashed] = &keyRecord{
		KeyID:       keyID,
		Wallet:      address,
		Agent:       agent,
		Description: description,
		Permissions: granted,
		CreatedAt:   now,
		Status:      StatusActive,
		RateLimit: rateLimit{
			RequestsPerMinute: r.perMinute,
			RequestsPerDay:    r.perDay,
			MinuteWindowStart: now,
			DayWindowStart:    now,
		},
	}

	walletRec, ok := doc.Wallets[address]
	if !ok {
		walletRec = walletRecord{Address: address, CreatedAt: now}
	}
	walletRec.Keys = append(walletRec.Keys, hashed)
	doc.Wallets[address] = walletRec

	agentKey := strings.ToLower(agent)
	agentRec, ok := doc.Agents[agentKey]
	if !ok {
		agentRec = agentRecord{Name: agent, CreatedAt: now}
	}
	enrolled := false
	for _, w := range agentRec.Wallets {
		if w == address {
			enrolled = true
			break
		}
	}
	if !enrolled {
		agentRec.Wallets = append(agentRec.Wallets, address)
	}
	doc.Agents[agentKey] = agentRec

	if err := r.save(doc); err != nil {
		return nil, err
	}

	r.log.Record(audit.EventAPIKeyIssued, map[string]any{
		"keyId":  keyID,
		"wallet": address,
		"agent":  agent,
	})
	return &IssueResult{
		KeyID:       keyID,
		APIKey:      raw,
		Wallet:      address,
		Agent:       agent,
		Permissions: granted,
		CreatedAt:   now,
	}, nil
}

// Scope is what a verified key is allowed to do.
type Scope struct {
	KeyID       string      `json:"keyId"`
	Wallet      string      `json:"walletAddress"`
	Agent       string      `json:"agentName"`
	Permissions Permissions `json:"permissions"`
	Status      string      `json:"status"`
}

// Verify authenticates a raw bearer token and applies the two-tier sliding
// window rate limiter. Each window's counter resets lazily once the window
// has elapsed; exceeding either ceiling rejects the request and raises a
// HIGH security event.
func (r *Registry) Verify(rawToken string) (*Scope, error) {
	if rawToken == "" {
		return nil, cerrors.ErrInvalidAPIKey
	}
	hashed := hashToken(rawToken)

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	record, ok := doc.Keys[hashed]
	if !ok {
		return nil, cerrors.ErrInvalidAPIKey
	}
	if record.Status != StatusActive {
		return nil, cerrors.ErrKeyRevoked
	}

	now := r.now().UTC()
	if record.ExpiresAt != nil && now.After(*record.ExpiresAt) {
		return nil, cerrors.ErrKeyExpired
	}

	limit := &record.RateLimit
	if now.Sub(limit.MinuteWindowStart) > minuteWindow {
		limit.MinuteRequests = 0
		limit.MinuteWindowStart = now
	}
	if now.Sub(limit.DayWindowStart) > dayWindow {
		limit.DayRequests = 0
		limit.DayWindowStart = now
	}

	if limit.MinuteRequests >= limit.RequestsPerMinute {
		_ = r.save(doc) // persist the lazy window reset
		r.log.Record(audit.EventAPIKeyRateLimited, map[string]any{
			"keyId":   record.KeyID,
			"wallet":  record.Wallet,
			"window":  "minute",
			"ceiling": limit.RequestsPerMinute,
		})
		return nil, fmt.Errorf("%w: %d of %d requests this minute", cerrors.ErrRateLimited, limit.MinuteRequests, limit.RequestsPerMinute)
	}
	if limit.DayRequests >= limit.RequestsPerDay {
		_ = r.save(doc)
		r.log.Record(audit.EventAPIKeyRateLimited, map[string]any{
			"keyId":   record.KeyID,
			"wallet":  record.Wallet,
			"window":  "day",
			"ceiling": limit.RequestsPerDay,
		})
		return nil, fmt.Errorf("%w: %d of %d requests today", cerrors.ErrRateLimited, limit.DayRequests, limit.RequestsPerDay)
	}

	limit.MinuteRequests++
	limit.DayRequests++
	record.LastUsed = &now
	record.UsageCount++

	if err := r.save(doc); err != nil {
		return nil, err
	}

	r.log.Record(audit.EventAPIKeyUsed, map[string]any{
		"keyId":  record.KeyID,
		"wallet": record.Wallet,
		"agent":  record.Agent,
	})
	return &Scope{
		KeyID:       record.KeyID,
		Wallet:      record.Wallet,
		Agent:       record.Agent,
		Permissions: record.Permissions,
		Status:      record.Status,
	}, nil
}

// Revoke marks a key revoked. Terminal.
func (r *Registry) Revoke(address, keyID string) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	record := findByID(doc, address, keyID)
	if record == nil {
		return cerrors.ErrKeyNotFound
	}
	if record.Status == StatusRevoked {
		return cerrors.ErrKeyRevoked
	}

	revokedAt := r.now().UTC()
	record.Status = StatusRevoked
	record.RevokedAt = &revokedAt

	if err := r.save(doc); err != nil {
		return err
	}

	r.log.Record(audit.EventAPIKeyRevoked, map[string]any{
		"keyId":  keyID,
		"wallet": address,
	})
	return nil
}

// Regenerate revokes a key and issues a replacement carrying forward the
// same agent, description, and permissions. The new raw token is returned
// exactly once.
func (r *Registry) Regenerate(address, keyID string) (*IssueResult, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	raw, err := newToken()
	if err != nil {
		return nil, err
	}
	newID, err := newKeyID()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	old := findByID(doc, address, keyID)
	if old == nil {
		return nil, cerrors.ErrKeyNotFound
	}

	now := r.now().UTC()
	if old.Status == StatusActive {
		old.Status = StatusRevoked
		old.RevokedAt = &now
	}

	hashed := hashToken(raw)
	doc.Keys[hashed] = &keyRecord{
		KeyID:       newID,
		Wallet:      address,
		Agent:       old.Agent,
		Description: old.Description,
		Permissions: old.Permissions,
		CreatedAt:   now,
		Status:      StatusActive,
		RateLimit: rateLimit{
			RequestsPerMinute: r.perMinute,
			RequestsPerDay:    r.perDay,
			MinuteWindowStart: now,
			DayWindowStart:    now,
		},
	}
	walletRec := doc.Wallets[address]
	walletRec.Keys = append(walletRec.Keys, hashed)
	doc.Wallets[address] = walletRec

	if err := r.save(doc); err != nil {
		return nil, err
	}

	r.log.Record(audit.EventAPIKeyRegenerated, map[string]any{
		"oldKeyId": keyID,
		"newKeyId": newID,
		"wallet":   address,
		"agent":    old.Agent,
	})
	return &IssueResult{
		KeyID:       newID,
		APIKey:      raw,
		Wallet:      address,
		Agent:       old.Agent,
		Permissions: old.Permissions,
		CreatedAt:   now,
	}, nil
}

// KeyInfo is key metadata. Neither the raw token nor its hash ever appears.
type KeyInfo struct {
	KeyID       string      `json:"keyId"`
	Agent       string      `json:"agentName"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"`
	LastUsed    *time.Time  `json:"lastUsed,omitempty"`
	UsageCount  int         `json:"usageCount"`
	Permissions Permissions `json:"permissions"`
}

// KeysForWallet returns metadata for a wallet's active keys.
func (r *Registry) KeysForWallet(address string) ([]KeyInfo, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	walletRec, ok := doc.Wallets[address]
	if !ok {
		return nil, nil
	}

	var keys []KeyInfo
	for _, hashed := range walletRec.Keys {
		record, ok := doc.Keys[hashed]
		if !ok || record.Status != StatusActive {
			continue
		}
		keys = append(keys, KeyInfo{
			KeyID:       record.KeyID,
			Agent:       record.Agent,
			Description: record.Description,
			Status:      record.Status,
			CreatedAt:   record.CreatedAt,
			ExpiresAt:   record.ExpiresAt,
			LastUsed:    record.LastUsed,
			UsageCount:  record.UsageCount,
			Permissions: record.Permissions,
		})
	}
	return keys, nil
}

// AgentsForWallet returns the distinct agent names behind a wallet's
// active keys.
func (r *Registry) AgentsForWallet(address string) ([]string, error) {
	address, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	walletRec, ok := doc.Wallets[address]
	if !ok {
		return nil, nil
	}

	seen := make(map[string]bool)
	var agents []string
	for _, hashed := range walletRec.Keys {
		record, ok := doc.Keys[hashed]
		if !ok || record.Status != StatusActive || seen[record.Agent] {
			continue
		}
		seen[record.Agent] = true
		agents = append(agents, record.Agent)
	}
	sort.Strings(agents)
	return agents, nil
}

// AgentInfo summarizes one registered agent.
type AgentInfo struct {
	Name        string    `json:"name"`
	WalletCount int       `json:"walletCount"`
	Wallets     []string  `json:"wallets"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AllAgents lists every registered agent, sorted by name.
func (r *Registry) AllAgents() ([]AgentInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	agents := make([]AgentInfo, 0, len(doc.Agents))
	for _, agentRec := range doc.Agents {
		agents = append(agents, AgentInfo{
			Name:        agentRec.Name,
			WalletCount: len(agentRec.Wallets),
			Wallets:     agentRec.Wallets,
			CreatedAt:   agentRec.CreatedAt,
		})
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

// AgentStats aggregates keys and usage across every wallet registered
// under one agent name.
type AgentStats struct {
	Name          string    `json:"name"`
	ActiveWallets int       `json:"activeWallets"`
	TotalKeys     int       `json:"totalKeys"`
	TotalRequests int       `json:"totalRequests"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatsForAgent aggregates usage for an agent name, case-insensitively.
func (r *Registry) StatsForAgent(agent string) (*AgentStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	agentRec, ok := doc.Agents[strings.ToLower(agent)]
	if !ok {
		return nil, cerrors.ErrAgentNotFound
	}

	stats := &AgentStats{
		Name:          agentRec.Name,
		ActiveWallets: len(agentRec.Wallets),
		CreatedAt:     agentRec.CreatedAt,
	}
	for _, record := range doc.Keys {
		if strings.EqualFold(record.Agent, agent) {
			stats.TotalKeys++
			stats.TotalRequests += record.UsageCount
		}
	}
	return stats, nil
}

// SetRateLimit overrides one key's window ceilings.
func (r *Registry) SetRateLimit(address, keyID string, perMinute, perDay int) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}
	if perMinute <= 0 || perDay <= 0 {
		return fmt.Errorf("%w: rate-limit ceilings must be positive", cerrors.ErrMissingField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	record := findByID(doc, address, keyID)
	if record == nil {
		return cerrors.ErrKeyNotFound
	}
	record.RateLimit.RequestsPerMinute = perMinute
	record.RateLimit.RequestsPerDay = perDay

	if err := r.save(doc); err != nil {
		return err
	}

	r.log.Record(audit.EventAPIKeyLimitsChanged, map[string]any{
		"keyId":             keyID,
		"wallet":            address,
		"requestsPerMinute": perMinute,
		"requestsPerDay":    perDay,
	})
	return nil
}

// UpdatePermissions replaces one key's capability flags.
func (r *Registry) UpdatePermissions(address, keyID string, perms Permissions) error {
	address, err := wallet.Normalize(address)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	record := findByID(doc, address, keyID)
	if record == nil {
		return cerrors.ErrKeyNotFound
	}
	record.Permissions = perms

	if err := r.save(doc); err != nil {
		return err
	}

	r.log.Record(audit.EventAPIKeyPermsChanged, map[string]any{
		"keyId":  keyID,
		"wallet": address,
	})
	return nil
}
