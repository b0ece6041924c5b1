package wallet

import (
	"testing"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

func TestNormalize_Lowercases(t *testing.T) {
	got, err := Normalize("0xDC20D621A88CB8908E8E7042431C55F0E9DAC6FB")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := "0xdc20d621a88cb8908e8e7042431c55f0e9dac6fb"
	if got != want {
		t.Errorf("Expected %s, got: %s", want, got)
	}
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	got, err := Normalize("  0xdc20d621a88cb8908e8e7042431c55f0e9dac6fb\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "0xdc20d621a88cb8908e8e7042431c55f0e9dac6fb" {
		t.Errorf("Unexpected normalized address: %s", got)
	}
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"0x123",
		"dc20d621a88cb8908e8e7042431c55f0e9dac6fb",          // missing prefix
		"0xdc20d621a88cb8908e8e7042431c55f0e9dac6f",         // 39 digits
		"0xdc20d621a88cb8908e8e7042431c55f0e9dac6fbb",       // 41 digits
		"0xzz20d621a88cb8908e8e7042431c55f0e9dac6fb",        // non-hex
		"0xdc20 d621a88cb8908e8e7042431c55f0e9dac6fb",       // interior space
	}
	for _, input := range cases {
		if _, err := Normalize(input); !cerrors.Is(err, cerrors.ErrInvalidWallet) {
			t.Errorf("Normalize(%q): expected ErrInvalidWallet, got: %v", input, err)
		}
	}
}

func TestShort(t *testing.T) {
	got := Short("0xDC20d621a88cb8908E8E7042431C55F0E9DAc6FB")
	if got != "0xdc20…c6fb" {
		t.Errorf("Expected abbreviated address, got: %s", got)
	}
	if Short("not-an-address") != "not-an-address" {
		t.Errorf("Expected invalid input returned unchanged")
	}
}
