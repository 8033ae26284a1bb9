package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "namevault/pkg/domain"
)

func TestIdentifierRoundTrip(t *testing.T) {
	var ident id.Identifier
	for i := range ident {
		ident[i] = byte(i)
	}

	s := ident.String()
	assert.Len(t, s, 64)
	assert.Equal(t, strings.ToLower(s), s)

	parsed, err := id.ParseIdentifier(s)
	require.NoError(t, err)
	assert.Equal(t, ident, parsed)
}

func TestParseIdentifierRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not hex", strings.Repeat("zz", 32)},
		{"too short", "deadbeef"},
		{"too long", strings.Repeat("ab", 33)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := id.ParseIdentifier(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestIdentifierIsZero(t *testing.T) {
	var zero id.Identifier
	assert.True(t, zero.IsZero())

	nonZero := zero
	nonZero[0] = 1
	assert.False(t, nonZero.IsZero())
}

func TestAccountIsZero(t *testing.T) {
	assert.True(t, id.ZeroAccount.IsZero())
	assert.True(t, id.Account("").IsZero())
	assert.False(t, id.Account("acct-a").IsZero())
}
