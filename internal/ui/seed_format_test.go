package ui

import (
	"encoding/json"
	"strings"
	"testing"
)

func testWords() []string {
	return []string{
		"abandon", "abandon", "abandon", "abandon",
		"abandon", "abandon", "abandon", "abandon",
		"abandon", "abandon", "abandon", "about",
	}
}

func TestWordChecksum_KnownVector(t *testing.T) {
	// Position-weighted char sums: "abandon" is 723, "about" is 539,
	// so 723*(1+...+11) + 539*12 = 54186.
	got := WordChecksum(testWords())
	if got != "054186" {
		t.Errorf("WordChecksum = %q, want %q", got, "054186")
	}
}

func TestWordChecksum_PositionSensitive(t *testing.T) {
	words := testWords()
	swapped := testWords()
	swapped[0], swapped[11] = swapped[11], swapped[0]

	if WordChecksum(words) == WordChecksum(swapped) {
		t.Error("checksum should change when word order changes")
	}

	if len(WordChecksum(words)) != 6 {
		t.Errorf("checksum should be six digits, got %q", WordChecksum(words))
	}
}

func TestFormatSeed_Plain(t *testing.T) {
	out, err := FormatSeed(testWords(), SeedFormatPlain)
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("plain format should have 12 lines, got %d", len(lines))
	}
	if lines[0] != "abandon" || lines[11] != "about" {
		t.Errorf("plain format lines wrong: first %q, last %q", lines[0], lines[11])
	}
}

func TestFormatSeed_DefaultsToPlain(t *testing.T) {
	explicit, err := FormatSeed(testWords(), SeedFormatPlain)
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}
	implicit, err := FormatSeed(testWords(), "")
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}
	if explicit != implicit {
		t.Error("empty format should default to plain")
	}
}

func TestFormatSeed_Numbered(t *testing.T) {
	out, err := FormatSeed(testWords(), SeedFormatNumbered)
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}

	if !strings.Contains(out, " 1. abandon") {
		t.Errorf("numbered format missing first entry:\n%s", out)
	}
	if !strings.Contains(out, "12. about") {
		t.Errorf("numbered format missing last entry:\n%s", out)
	}
}

func TestFormatSeed_Grid(t *testing.T) {
	out, err := FormatSeed(testWords(), SeedFormatGrid)
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("grid format should have 3 rows, got %d", len(lines))
	}
	// Each row holds four numbered entries.
	if strings.Count(lines[0], ".") != 4 {
		t.Errorf("grid row should have 4 entries, got: %q", lines[0])
	}
	if !strings.Contains(lines[2], "12.about") {
		t.Errorf("grid last row missing word 12: %q", lines[2])
	}
}

func TestFormatSeed_Etch(t *testing.T) {
	out, err := FormatSeed(testWords(), SeedFormatEtch)
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}

	if !strings.Contains(out, "Word count: 12") {
		t.Errorf("etch format missing word count:\n%s", out)
	}
	if !strings.Contains(out, "Checksum:   054186") {
		t.Errorf("etch format missing checksum:\n%s", out)
	}
	if !strings.Contains(out, "12. about") {
		t.Errorf("etch format missing word 12:\n%s", out)
	}
}

func TestFormatSeed_JSON(t *testing.T) {
	out, err := FormatSeed(testWords(), SeedFormatJSON)
	if err != nil {
		t.Fatalf("FormatSeed: %v", err)
	}

	var export struct {
		WordCount int      `json:"wordCount"`
		Words     []string `json:"words"`
		Checksum  string   `json:"checksum"`
		Format    string   `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &export); err != nil {
		t.Fatalf("json format should be valid JSON: %v", err)
	}

	if export.WordCount != 12 || len(export.Words) != 12 {
		t.Errorf("json export word count wrong: %d words", len(export.Words))
	}
	if export.Checksum != "054186" {
		t.Errorf("json export checksum = %q, want %q", export.Checksum, "054186")
	}
	if export.Format != "BIP39 mnemonic" {
		t.Errorf("json export format = %q", export.Format)
	}
}

func TestFormatSeed_Errors(t *testing.T) {
	if _, err := FormatSeed(testWords(), "banner"); err == nil {
		t.Error("unknown format should be rejected")
	}
	if _, err := FormatSeed([]string{"abandon", "about"}, SeedFormatPlain); err == nil {
		t.Error("short word list should be rejected")
	}
}
