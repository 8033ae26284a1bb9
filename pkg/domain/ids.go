// Package domain defines the typed identifiers shared across modules.
//
// Keeping these as distinct types (instead of raw strings and byte slices)
// prevents accidental cross-assignment between accounts, identifiers, and
// opaque references at compile time.
package domain

import (
	"encoding/hex"
	"fmt"
)

// IdentifierSize is the fixed width of a name identifier in bytes.
const IdentifierSize = 32

// Identifier is the fixed-width hash of a registered name. It is the primary
// key for name records, stake records, and ownership tokens.
type Identifier [IdentifierSize]byte

// String renders the identifier as lowercase hex.
func (i Identifier) String() string {
	return hex.EncodeToString(i[:])
}

// IsZero reports whether the identifier is the all-zero value.
func (i Identifier) IsZero() bool {
	return i == Identifier{}
}

// ParseIdentifier decodes a 64-character hex string into an Identifier.
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("parse identifier: %w", err)
	}
	if len(b) != IdentifierSize {
		return id, fmt.Errorf("parse identifier: want %d bytes, got %d", IdentifierSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Account is an opaque, comparable reference to an account. The core never
// interprets its contents; authentication happens at the transport boundary.
type Account string

// ZeroAccount is the null account. Value must never be pushed to it.
const ZeroAccount Account = ""

// IsZero reports whether the account is the null account.
func (a Account) IsZero() bool {
	return a == ZeroAccount
}

func (a Account) String() string {
	return string(a)
}

// Quantity is an amount of the external value medium, in minor units.
type Quantity int64
