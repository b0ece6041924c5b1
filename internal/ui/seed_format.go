package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

// Seed display formats.
const (
	SeedFormatPlain    = "plain"
	SeedFormatNumbered = "numbered"
	SeedFormatGrid     = "grid"
	SeedFormatEtch     = "etch"
	SeedFormatJSON     = "json"
)

// SeedFormats returns the supported seed display formats in display order.
func SeedFormats() []string {
	return []string{SeedFormatPlain, SeedFormatNumbered, SeedFormatGrid, SeedFormatEtch, SeedFormatJSON}
}

// FormatSeed renders a 12-word mnemonic in the requested display format.
func FormatSeed(words []string, format string) (string, error) {
	if len(words) != 12 {
		return "", fmt.Errorf("%w: expected 12 words, got %d", cerrors.ErrInvalidMnemonic, len(words))
	}
	switch strings.ToLower(format) {
	case SeedFormatPlain, "":
		return formatPlain(words), nil
	case SeedFormatNumbered:
		return formatNumbered(words), nil
	case SeedFormatGrid:
		return formatGrid(words), nil
	case SeedFormatEtch:
		return formatEtch(words), nil
	case SeedFormatJSON:
		return formatJSON(words)
	default:
		return "", fmt.Errorf("unknown seed format %q (supported: %s)",
			format, strings.Join(SeedFormats(), ", "))
	}
}

// WordChecksum computes a positional checksum over the word list: the sum
// of each word's character values weighted by its 1-based position, modulo
// 999999, zero-padded to six digits. A transposed or mistyped word changes
// the result, so a transcribed phrase can be verified without revealing it.
func WordChecksum(words []string) string {
	var checksum int
	for i, word := range words {
		var value int
		for _, c := range word {
			value += int(c)
		}
		checksum += value * (i + 1)
	}
	return fmt.Sprintf("%06d", checksum%999999)
}

// formatPlain renders one word per line for easy transcription.
func formatPlain(words []string) string {
	return strings.Join(words, "\n") + "\n"
}

// formatNumbered renders a numbered list so word order can be verified.
func formatNumbered(words []string) string {
	var b strings.Builder
	for i, word := range words {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, word)
	}
	return b.String()
}

// formatGrid renders a 4x3 memorization grid, read left to right.
func formatGrid(words []string) string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			idx := row*4 + col
			fmt.Fprintf(&b, "%2d.%-10s ", idx+1, words[idx])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatEtch renders a large, boxed layout for physical etching, with a
// banner header and the positional checksum for offline verification.
func formatEtch(words []string) string {
	var b strings.Builder
	banner := figure.NewFigure("SEED", "alligator2", true)
	b.WriteString(banner.String())
	b.WriteString("\n")

	b.WriteString("╔══════════════════════════════════╗\n")
	for i, word := range words {
		fmt.Fprintf(&b, "║  %2d. %-26s ║\n", i+1, word)
	}
	b.WriteString("╚══════════════════════════════════╝\n")

	fmt.Fprintf(&b, "\nWord count: %d\n", len(words))
	fmt.Fprintf(&b, "Checksum:   %s\n", WordChecksum(words))
	return b.String()
}

type seedExport struct {
	WordCount int      `json:"wordCount"`
	Words     []string `json:"words"`
	Checksum  string   `json:"checksum"`
	Format    string   `json:"format"`
	Purpose   string   `json:"purpose"`
}

// formatJSON renders a structured export for encrypted cold storage.
func formatJSON(words []string) (string, error) {
	data, err := json.MarshalIndent(seedExport{
		WordCount: len(words),
		Words:     words,
		Checksum:  WordChecksum(words),
		Format:    "BIP39 mnemonic",
		Purpose:   "Partner governance collective",
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
