package wallet

import (
	"fmt"
	"regexp"
	"strings"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

// addressPattern matches a 0x-prefixed 40-digit hex address in either case.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Normalize validates an address and returns its canonical lowercase form.
// All identifiers entering a store pass through here first so lookups are
// case-insensitive by construction.
func Normalize(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !addressPattern.MatchString(address) {
		return "", fmt.Errorf("%w: %q", cerrors.ErrInvalidWallet, address)
	}
	return strings.ToLower(address), nil
}

// IsValid reports whether the address is well-formed, without normalizing.
func IsValid(address string) bool {
	return addressPattern.MatchString(strings.TrimSpace(address))
}

// Short returns an abbreviated form for display, e.g. 0xdc20…c6fb.
// Invalid input is returned unchanged.
func Short(address string) string {
	if !IsValid(address) {
		return address
	}
	address = strings.ToLower(strings.TrimSpace(address))
	return address[:6] + "…" + address[len(address)-4:]
}
