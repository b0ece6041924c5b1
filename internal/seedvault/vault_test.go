package seedvault

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/audit"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/store"
)

const (
	initiatorWallet = "0xdc20d621a88cb8908e8e7042431c55f0e9dac6fb"
	custodianWallet = "0x6628227c195dad7f7a8fd4f3d2ca3545a0d9cd22"
	partnerWallet   = "0x1111111111111111111111111111111111111111"
	strangerWallet  = "0x9999999999999999999999999999999999999999"

	// Standard all-zero-entropy test vector; valid BIP39.
	backupPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

type staticCustodians []string

func (s staticCustodians) IsCustodian(address string) bool {
	for _, c := range s {
		if strings.EqualFold(c, address) {
			return true
		}
	}
	return false
}

type staticPartners []string

func (s staticPartners) IsPartner(address string) bool {
	for _, p := range s {
		if strings.EqualFold(p, address) {
			return true
		}
	}
	return false
}

func newTestVault(t *testing.T) (*Vault, *store.MemStore, *audit.Log) {
	t.Helper()
	meta := store.NewMemStore()
	hot := store.NewMemStore()
	log := audit.New(hot, "")
	v := New(meta, filepath.Join(t.TempDir(), ".partner-seed.key"), log,
		staticCustodians{initiatorWallet, custodianWallet},
		staticPartners{partnerWallet})
	return v, meta, log
}

func TestGenerate_ProducesTwelveWords(t *testing.T) {
	v, _, _ := newTestVault(t)

	result, err := v.Generate(initiatorWallet)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	words := strings.Fields(result.Phrase)
	if len(words) != WordCount {
		t.Errorf("Expected %d words, got: %d", WordCount, len(words))
	}
	if result.GeneratedBy != initiatorWallet {
		t.Errorf("Expected generator %s, got: %s", initiatorWallet, result.GeneratedBy)
	}
}

func TestGenerate_SecondCallFails(t *testing.T) {
	v, _, _ := newTestVault(t)

	if _, err := v.Generate(initiatorWallet); err != nil {
		t.Fatalf("First Generate failed: %v", err)
	}
	// Regardless of caller.
	if _, err := v.Generate(custodianWallet); !cerrors.Is(err, cerrors.ErrSeedAlreadyGenerated) {
		t.Errorf("Expected ErrSeedAlreadyGenerated, got: %v", err)
	}
}

func TestGenerate_RejectsMalformedInitiator(t *testing.T) {
	v, _, _ := newTestVault(t)

	if _, err := v.Generate("0xnot-a-wallet"); !cerrors.Is(err, cerrors.ErrInvalidWallet) {
		t.Errorf("Expected ErrInvalidWallet, got: %v", err)
	}
}

func TestGenerate_MetadataIsRedacted(t *testing.T) {
	v, meta, _ := newTestVault(t)

	result, err := v.Generate(initiatorWallet)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	raw := string(meta.Bytes())
	if !strings.Contains(raw, "[REDACTED]") {
		t.Errorf("Expected redacted phrase in metadata, got: %s", raw)
	}
	if strings.Contains(raw, result.Phrase) {
		t.Fatalf("Metadata leaks the phrase: %s", raw)
	}
}

func TestGenerate_KeyFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}
	v, _, _ := newTestVault(t)

	if _, err := v.Generate(initiatorWallet); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	info, err := os.Stat(v.keyPath)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 key file, got: %v", info.Mode().Perm())
	}
}

func TestRetrieve_BeforeGeneration(t *testing.T) {
	v, _, _ := newTestVault(t)

	if _, err := v.Retrieve(initiatorWallet); !cerrors.Is(err, cerrors.ErrSeedNotGenerated) {
		t.Errorf("Expected ErrSeedNotGenerated, got: %v", err)
	}
}

func TestRetrieve_Authorization(t *testing.T) {
	v, _, log := newTestVault(t)
	generated, err := v.Generate(initiatorWallet)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, allowed := range []string{initiatorWallet, custodianWallet, partnerWallet} {
		result, err := v.Retrieve(allowed)
		if err != nil {
			t.Fatalf("Retrieve(%s) failed: %v", allowed, err)
		}
		if result.Phrase != generated.Phrase {
			t.Errorf("Retrieve(%s): phrase mismatch", allowed)
		}
	}

	if _, err := v.Retrieve(strangerWallet); !cerrors.Is(err, cerrors.ErrSeedAccessDenied) {
		t.Fatalf("Expected ErrSeedAccessDenied, got: %v", err)
	}

	// The denial left a HIGH-severity event.
	events, err := log.Events(audit.SeverityHigh)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventSeedAccessDenied {
		t.Errorf("Expected one HIGH denial event, got: %+v", events)
	}
}

func TestRestore_CustodianOnly(t *testing.T) {
	v, _, _ := newTestVault(t)
	if _, err := v.Generate(initiatorWallet); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := v.Restore(partnerWallet, backupPhrase, true); !cerrors.Is(err, cerrors.ErrCustodianOnly) {
		t.Errorf("Expected ErrCustodianOnly, got: %v", err)
	}
}

func TestRestore_RejectsInvalidMnemonic(t *testing.T) {
	v, _, _ := newTestVault(t)
	if _, err := v.Generate(initiatorWallet); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Right length, wrong words.
	bogus := strings.Repeat("zebra ", 11) + "zebra"
	if err := v.Restore(initiatorWallet, bogus, true); !cerrors.Is(err, cerrors.ErrInvalidMnemonic) {
		t.Errorf("Expected ErrInvalidMnemonic, got: %v", err)
	}
}

func TestRestore_RequiresConfirmationToOverwrite(t *testing.T) {
	v, _, _ := newTestVault(t)
	if _, err := v.Generate(initiatorWallet); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := v.Restore(initiatorWallet, backupPhrase, false); !cerrors.Is(err, cerrors.ErrRestoreNeedsConfirm) {
		t.Fatalf("Expected ErrRestoreNeedsConfirm, got: %v", err)
	}

	if err := v.Restore(initiatorWallet, backupPhrase, true); err != nil {
		t.Fatalf("Confirmed restore failed: %v", err)
	}

	result, err := v.Retrieve(initiatorWallet)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if result.Phrase != backupPhrase {
		t.Errorf("Expected restored phrase, got: %s", result.Phrase)
	}
}

func TestRestore_BeforeGenerationFails(t *testing.T) {
	v, _, _ := newTestVault(t)

	if err := v.Restore(initiatorWallet, backupPhrase, true); !cerrors.Is(err, cerrors.ErrSeedNotGenerated) {
		t.Errorf("Expected ErrSeedNotGenerated, got: %v", err)
	}
}

func TestVerifyPhrase(t *testing.T) {
	v, _, _ := newTestVault(t)
	generated, err := v.Generate(initiatorWallet)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	words := strings.Fields(generated.Phrase)

	ok, err := v.VerifyPhrase(words)
	if err != nil || !ok {
		t.Fatalf("Expected exact phrase to verify, got ok=%t err=%v", ok, err)
	}

	// Case and surrounding whitespace are ignored.
	shouted := make([]string, len(words))
	for i, w := range words {
		shouted[i] = " " + strings.ToUpper(w)
	}
	ok, err = v.VerifyPhrase(shouted)
	if err != nil || !ok {
		t.Fatalf("Expected case-insensitive verification, got ok=%t err=%v", ok, err)
	}

	// One wrong word fails.
	wrong := append([]string(nil), words...)
	wrong[4] = "zebra"
	ok, err = v.VerifyPhrase(wrong)
	if err != nil {
		t.Fatalf("VerifyPhrase failed: %v", err)
	}
	if ok {
		t.Errorf("Expected mismatched phrase to fail verification")
	}

	// Wrong word count is a validation error.
	if _, err := v.VerifyPhrase(words[:11]); !cerrors.Is(err, cerrors.ErrInvalidMnemonic) {
		t.Errorf("Expected ErrInvalidMnemonic for short phrase, got: %v", err)
	}
}

func TestStatus_ReflectsGeneration(t *testing.T) {
	v, _, _ := newTestVault(t)

	status, err := v.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.CreatedAt != nil {
		t.Errorf("Expected empty status before generation")
	}
	if v.Generated() {
		t.Errorf("Generated() should be false before generation")
	}

	if _, err := v.Generate(initiatorWallet); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	status, err = v.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.CreatedAt == nil || status.GeneratedBy != initiatorWallet {
		t.Errorf("Unexpected status after generation: %+v", status)
	}
	if status.Phrase != "[REDACTED]" {
		t.Errorf("Expected redacted phrase in status, got: %s", status.Phrase)
	}
	if !v.Generated() {
		t.Errorf("Generated() should be true after generation")
	}
}
