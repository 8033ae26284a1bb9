// Package namehash maps human-readable names to fixed-width identifiers.
package namehash

import (
	"golang.org/x/crypto/sha3"

	id "namevault/pkg/domain"
)

// Hash returns the Keccak-256 digest of the UTF-8 name. Deterministic and
// collision-resistant; distinct names are assumed to never collide, so no
// collision-handling path exists anywhere downstream.
func Hash(name string) id.Identifier {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	var out id.Identifier
	h.Sum(out[:0])
	return out
}
