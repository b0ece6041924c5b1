package apikeys

import (
	"strings"
	"testing"
	"time"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
)

const keyOwnerWallet = "0xc0de000000000000000000000000000000000003"

func newTestRegistry(t *testing.T, perMinute, perDay int) (*Registry, *store.MemStore, *audit.Log) {
	t.Helper()
	backing := store.NewMemStore()
	log := audit.New(store.NewMemStore(), "")
	return New(backing, log, perMinute, perDay), backing, log
}

func TestIssue_DefaultPermissions(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	issued, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if issued.APIKey == "" || issued.KeyID == "" {
		t.Fatalf("Expected raw token and key ID, got: %+v", issued)
	}
	perms := issued.Permissions
	if !perms.Ceremony || !perms.Donations || !perms.BurnTrust {
		t.Errorf("Expected ceremony/donations/burnTrust on by default, got: %+v", perms)
	}
	if perms.Withdraw || perms.Mint {
		t.Errorf("Expected withdraw/mint off by default, got: %+v", perms)
	}
}

func TestIssue_RequiresAgentName(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	if _, err := r.Issue(keyOwnerWallet, "", "", nil); !cerrors.Is(err, cerrors.ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got: %v", err)
	}
}

func TestVerify_ReturnsScope(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)
	issued, err := r.Issue(keyOwnerWallet, "Gemini", "ops automation", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	scope, err := r.Verify(issued.APIKey)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if scope.Wallet != keyOwnerWallet || scope.Agent != "Gemini" || scope.KeyID != issued.KeyID {
		t.Errorf("Unexpected scope: %+v", scope)
	}
}

func TestVerify_UnknownAndRevoked(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	if _, err := r.Verify("deadbeef"); !cerrors.Is(err, cerrors.ErrInvalidAPIKey) {
		t.Errorf("Expected ErrInvalidAPIKey, got: %v", err)
	}

	issued, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := r.Revoke(keyOwnerWallet, issued.KeyID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := r.Verify(issued.APIKey); !cerrors.Is(err, cerrors.ErrKeyRevoked) {
		t.Errorf("Expected ErrKeyRevoked, got: %v", err)
	}
}

func TestVerify_MinuteWindowResets(t *testing.T) {
	r, _, log := newTestRegistry(t, 3, 10000)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	issued, err := r.Issue(keyOwnerWallet, "Qwen", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		current = current.Add(time.Second)
		if _, err := r.Verify(issued.APIKey); err != nil {
			t.Fatalf("Verify %d failed: %v", i+1, err)
		}
	}

	// Fourth request inside the window is rejected with the ceiling.
	current = current.Add(time.Second)
	_, err = r.Verify(issued.APIKey)
	if !cerrors.Is(err, cerrors.ErrRateLimited) {
		t.Fatalf("Expected ErrRateLimited, got: %v", err)
	}
	if !strings.Contains(err.Error(), "3 of 3") {
		t.Errorf("Expected ceiling in error, got: %v", err)
	}

	events, err := log.Events(audit.SeverityHigh)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventAPIKeyRateLimited {
		t.Errorf("Expected one HIGH rate-limit event, got: %+v", events)
	}

	// Once the minute elapses from window start, requests flow again.
	current = current.Add(2 * time.Minute)
	if _, err := r.Verify(issued.APIKey); err != nil {
		t.Errorf("Expected request after window reset, got: %v", err)
	}
}

func TestVerify_DayWindowCeiling(t *testing.T) {
	r, _, _ := newTestRegistry(t, 1000, 2)

	current := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	issued, err := r.Issue(keyOwnerWallet, "Codex", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		current = current.Add(time.Hour)
		if _, err := r.Verify(issued.APIKey); err != nil {
			t.Fatalf("Verify %d failed: %v", i+1, err)
		}
	}
	current = current.Add(time.Hour)
	if _, err := r.Verify(issued.APIKey); !cerrors.Is(err, cerrors.ErrRateLimited) {
		t.Fatalf("Expected ErrRateLimited on day ceiling, got: %v", err)
	}

	current = current.Add(25 * time.Hour)
	if _, err := r.Verify(issued.APIKey); err != nil {
		t.Errorf("Expected request after day reset, got: %v", err)
	}
}

func TestKeysForWallet_OneTimeTokenReveal(t *testing.T) {
	r, backing, _ := newTestRegistry(t, 60, 10000)

	issued, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	keys, err := r.KeysForWallet(keyOwnerWallet)
	if err != nil {
		t.Fatalf("KeysForWallet failed: %v", err)
	}
	if len(keys) != 1 || keys[0].KeyID != issued.KeyID {
		t.Fatalf("Unexpected key listing: %+v", keys)
	}

	// Neither the listing structs nor the persisted document carry the raw
	// token.
	if strings.Contains(string(backing.Bytes()), issued.APIKey) {
		t.Errorf("Store leaks the raw bearer token")
	}
}

func TestKeysForWallet_ExcludesRevoked(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	first, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := r.Issue(keyOwnerWallet, "Qwen", "", nil); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := r.Revoke(keyOwnerWallet, first.KeyID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	keys, err := r.KeysForWallet(keyOwnerWallet)
	if err != nil {
		t.Fatalf("KeysForWallet failed: %v", err)
	}
	if len(keys) != 1 || keys[0].Agent != "Qwen" {
		t.Errorf("Expected only the active key, got: %+v", keys)
	}

	agents, err := r.AgentsForWallet(keyOwnerWallet)
	if err != nil {
		t.Fatalf("AgentsForWallet failed: %v", err)
	}
	if len(agents) != 1 || agents[0] != "Qwen" {
		t.Errorf("Expected only Qwen, got: %v", agents)
	}
}

func TestRevoke_UnknownAndAlreadyRevoked(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	if err := r.Revoke(keyOwnerWallet, "key_missing"); !cerrors.Is(err, cerrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got: %v", err)
	}

	issued, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := r.Revoke(keyOwnerWallet, issued.KeyID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if err := r.Revoke(keyOwnerWallet, issued.KeyID); !cerrors.Is(err, cerrors.ErrKeyRevoked) {
		t.Errorf("Expected ErrKeyRevoked on second revoke, got: %v", err)
	}
}

func TestRegenerate_CarriesScopeForward(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	perms := Permissions{Ceremony: true, Withdraw: true}
	old, err := r.Issue(keyOwnerWallet, "Gemini", "treasury agent", &perms)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	regenerated, err := r.Regenerate(keyOwnerWallet, old.KeyID)
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if regenerated.KeyID == old.KeyID || regenerated.APIKey == old.APIKey {
		t.Errorf("Expected fresh identifiers, got old ones")
	}
	if regenerated.Agent != "Gemini" || regenerated.Permissions != perms {
		t.Errorf("Expected carried-forward scope, got: %+v", regenerated)
	}

	// The old token is dead, the new one works.
	if _, err := r.Verify(old.APIKey); !cerrors.Is(err, cerrors.ErrKeyRevoked) {
		t.Errorf("Expected old token revoked, got: %v", err)
	}
	if _, err := r.Verify(regenerated.APIKey); err != nil {
		t.Errorf("Expected new token to verify, got: %v", err)
	}
}

func TestStatsForAgent_AggregatesAcrossWallets(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	otherWallet := "0xc0de000000000000000000000000000000000004"
	first, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	second, err := r.Issue(otherWallet, "gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := r.Verify(first.APIKey); err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
	}
	if _, err := r.Verify(second.APIKey); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	stats, err := r.StatsForAgent("GEMINI")
	if err != nil {
		t.Fatalf("StatsForAgent failed: %v", err)
	}
	if stats.TotalKeys != 2 || stats.TotalRequests != 4 || stats.ActiveWallets != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	if _, err := r.StatsForAgent("nobody"); !cerrors.Is(err, cerrors.ErrAgentNotFound) {
		t.Errorf("Expected ErrAgentNotFound, got: %v", err)
	}
}

func TestSetRateLimit_AppliesToVerify(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	issued, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := r.SetRateLimit(keyOwnerWallet, issued.KeyID, 1, 10000); err != nil {
		t.Fatalf("SetRateLimit failed: %v", err)
	}

	if _, err := r.Verify(issued.APIKey); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if _, err := r.Verify(issued.APIKey); !cerrors.Is(err, cerrors.ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited after tightened ceiling, got: %v", err)
	}

	if err := r.SetRateLimit(keyOwnerWallet, issued.KeyID, 0, 10); !cerrors.Is(err, cerrors.ErrMissingField) {
		t.Errorf("Expected validation error for non-positive ceiling, got: %v", err)
	}
}

func TestUpdatePermissions(t *testing.T) {
	r, _, _ := newTestRegistry(t, 60, 10000)

	issued, err := r.Issue(keyOwnerWallet, "Gemini", "", nil)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	granted := Permissions{Ceremony: true, Donations: true, BurnTrust: true, Withdraw: true}
	if err := r.UpdatePermissions(keyOwnerWallet, issued.KeyID, granted); err != nil {
		t.Fatalf("UpdatePermissions failed: %v", err)
	}

	scope, err := r.Verify(issued.APIKey)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if scope.Permissions != granted {
		t.Errorf("Expected updated permissions, got: %+v", scope.Permissions)
	}
}
