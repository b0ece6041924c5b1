// Package ui provides semantic text formatting for CLI output, plus
// display formats for the 12-word governance seed phrase.
//
// This package defines formatters for different types of content (code,
// wallets, errors, severities, etc.) that render appropriately based on
// terminal capabilities. When colors are available, content is colorized.
// When NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("covenant seed generate")   // Commands and code
//	ui.Path.Sprint("data/partner-governance.json") // File paths
//	ui.Wallet.Sprint("0xdc20...c6fb")          // Ethereum addresses
//	ui.Success.Sprint("✓")                      // Success indicators
//	ui.Error.Sprint("✗")                        // Error indicators
//	ui.Info.Sprint("→")                         // Informational hints
//	ui.Highlight.Sprint("claude-agent")        // User values
//	ui.Severity("CRITICAL").Sprint("CRITICAL") // Audit severity levels
//
// # Seed Display
//
// FormatSeed renders a mnemonic in one of several formats (plain, numbered,
// grid, etch, json) suited to transcription, memorization, or physical
// etching. The etch and json formats embed a positional checksum computed
// by WordChecksum so a transcribed phrase can be verified offline.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
