package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	testInitiator   = "0xdc20d621a88cb8908e8e7042431c55f0e9dac6fb"
	testCoCustodian = "0x6628227c195dad7f7a8fd4f3d2ca3545a0d9cd22"
	testPartner     = "0x1111111111111111111111111111111111111111"
	testStranger    = "0x2222222222222222222222222222222222222222"
)

func TestSeedLifecycle_GenerateShowOnce(t *testing.T) {
	setupTestEnvironment(t, testInitiator, testCoCustodian)

	output, err := runCovenant(t, "seed", "generate", "--initiator", testInitiator)
	if err != nil {
		t.Fatalf("seed generate failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recovery phrase generated") {
		t.Errorf("expected generation confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "checksum:") {
		t.Errorf("expected checksum in output, got:\n%s", output)
	}

	// Second generation must be refused.
	output, err = runCovenant(t, "seed", "generate", "--initiator", testCoCustodian)
	if err != nil {
		t.Fatalf("seed generate returned hard error: %v", err)
	}
	if !strings.Contains(output, "already been generated") {
		t.Errorf("expected one-time refusal, got:\n%s", output)
	}

	// Custodian can view; a stranger cannot.
	output, err = runCovenant(t, "seed", "show", "--wallet", testCoCustodian, "--format", "numbered")
	if err != nil {
		t.Fatalf("seed show failed: %v", err)
	}
	if !strings.Contains(output, " 1. ") || !strings.Contains(output, "12. ") {
		t.Errorf("expected numbered phrase, got:\n%s", output)
	}

	output, err = runCovenant(t, "seed", "show", "--wallet", testStranger)
	if err != nil {
		t.Fatalf("seed show returned hard error: %v", err)
	}
	if !strings.Contains(output, "not authorized") {
		t.Errorf("expected authorization refusal, got:\n%s", output)
	}
}

func TestPartnerJourney_EnrollThroughSeat(t *testing.T) {
	setupTestEnvironment(t, testInitiator, testCoCustodian)

	output, err := runCovenant(t, "partner", "enroll", testPartner, "--alias", "first-partner")
	if err != nil {
		t.Fatalf("partner enroll failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Enrolled") {
		t.Errorf("expected enrollment confirmation, got:\n%s", output)
	}

	// Seating before acknowledgement must be refused.
	output, err = runCovenant(t, "seat", "assign", testPartner, "seat-1")
	if err != nil {
		t.Fatalf("seat assign returned hard error: %v", err)
	}
	if !strings.Contains(output, "has not acknowledged") {
		t.Errorf("expected eligibility refusal, got:\n%s", output)
	}

	if _, err := runCovenant(t, "partner", "distribute", testPartner, "--by", testInitiator); err != nil {
		t.Fatalf("partner distribute failed: %v", err)
	}
	if _, err := runCovenant(t, "partner", "acknowledge", testPartner); err != nil {
		t.Fatalf("partner acknowledge failed: %v", err)
	}

	output, err = runCovenant(t, "seat", "assign", testPartner, "seat-1")
	if err != nil {
		t.Fatalf("seat assign failed: %v", err)
	}
	if !strings.Contains(output, "assigned to") || !strings.Contains(output, "credential token") {
		t.Errorf("expected seat assignment with credential token, got:\n%s", output)
	}

	output, err = runCovenant(t, "partner", "status")
	if err != nil {
		t.Fatalf("partner status failed: %v", err)
	}
	if !strings.Contains(output, "partners: 1 of 65") {
		t.Errorf("expected roster count, got:\n%s", output)
	}
	if !strings.Contains(output, "seated") {
		t.Errorf("expected seated partner in status, got:\n%s", output)
	}
}

func TestApikeyLifecycle_CreateVerifyRevoke(t *testing.T) {
	setupTestEnvironment(t, testInitiator, testCoCustodian)

	output, err := runCovenant(t, "apikey", "create", testPartner, "--agent", "claude-agent")
	if err != nil {
		t.Fatalf("apikey create failed: %v\n%s", err, output)
	}

	token := extractField(t, output, "token:")
	keyID := extractField(t, output, "key id:")

	output, err = runCovenant(t, "apikey", "verify", token)
	if err != nil {
		t.Fatalf("apikey verify failed: %v", err)
	}
	if !strings.Contains(output, "Token valid") || !strings.Contains(output, "claude-agent") {
		t.Errorf("expected valid token with agent scope, got:\n%s", output)
	}

	if _, err := runCovenant(t, "apikey", "revoke", testPartner, keyID); err != nil {
		t.Fatalf("apikey revoke failed: %v", err)
	}

	output, err = runCovenant(t, "apikey", "verify", token)
	if err != nil {
		t.Fatalf("apikey verify returned hard error: %v", err)
	}
	if !strings.Contains(output, "revoked") {
		t.Errorf("expected revocation refusal, got:\n%s", output)
	}
}

func TestAuditLog_CustodianOnly(t *testing.T) {
	dataDir := setupTestEnvironment(t, testInitiator, testCoCustodian)

	if _, err := runCovenant(t, "partner", "enroll", testPartner, "--alias", "first-partner"); err != nil {
		t.Fatalf("partner enroll failed: %v", err)
	}

	output, err := runCovenant(t, "audit", "log", "--wallet", testStranger)
	if err != nil {
		t.Fatalf("audit log returned hard error: %v", err)
	}
	if !strings.Contains(output, "Only custodians") {
		t.Errorf("expected custodian refusal, got:\n%s", output)
	}

	output, err = runCovenant(t, "audit", "log", "--wallet", testInitiator)
	if err != nil {
		t.Fatalf("audit log failed: %v", err)
	}
	if !strings.Contains(output, "PARTNER_ENROLLED") {
		t.Errorf("expected enrollment event, got:\n%s", output)
	}

	// The mutation must also land in the day-partitioned audit file.
	entries, err := os.ReadDir(filepath.Join(dataDir, "audit-logs"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected audit log files, err=%v", err)
	}
	if !strings.HasPrefix(entries[0].Name(), "governance-") {
		t.Errorf("unexpected audit file name %q", entries[0].Name())
	}
}

func TestCredentialFlow_AddGetRemove(t *testing.T) {
	setupTestEnvironment(t, testInitiator, testCoCustodian)

	output, err := runCovenant(t, "credential", "add", testPartner,
		"--role", "infrastructure-maintainer",
		"--server", "203.0.113.7", "--username", "deploy")
	if err != nil {
		t.Fatalf("credential add failed: %v\n%s", err, output)
	}

	output, err = runCovenant(t, "credential", "get", testPartner)
	if err != nil {
		t.Fatalf("credential get failed: %v", err)
	}
	if !strings.Contains(output, "203.0.113.7:22") || !strings.Contains(output, "deploy") {
		t.Errorf("expected decrypted payload, got:\n%s", output)
	}

	if _, err := runCovenant(t, "credential", "remove", testPartner); err != nil {
		t.Fatalf("credential remove failed: %v", err)
	}

	output, err = runCovenant(t, "credential", "get", testPartner)
	if err != nil {
		t.Fatalf("credential get returned hard error: %v", err)
	}
	if !strings.Contains(output, "No credentials stored") {
		t.Errorf("expected missing-member refusal, got:\n%s", output)
	}
}

// extractField pulls the value following a label from command output.
func extractField(t *testing.T, output, label string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if idx := strings.Index(line, label); idx >= 0 {
			value := strings.TrimSpace(line[idx+len(label):])
			if value != "" {
				return value
			}
		}
	}
	t.Fatalf("field %q not found in output:\n%s", label, output)
	return ""
}
