package token

import (
	"testing"

	"github.com/lhchen/toon/toonerr"
	"github.com/stretchr/testify/require"
)

func TestTypeStringKnownValues(t *testing.T) {
	require.Equal(t, "Colon", COLON.String())
	require.Equal(t, "Indent", INDENT.String())
	require.Equal(t, "Eof", EOF.String())
}

func TestTypeStringUnknownValue(t *testing.T) {
	require.Equal(t, "Type(999)", Type(999).String())
}

func TestTokenStringIncludesPosition(t *testing.T) {
	tok := Token{Type: IDENTIFIER, Text: "name", Line: 2, Column: 5}
	require.Equal(t, `Identifier("name")@2:5`, tok.String())
}

func TestErrorTokenCarriesKind(t *testing.T) {
	tok := Token{Type: ERROR, Text: "bad indent", ErrKind: toonerr.Structural}
	require.Equal(t, toonerr.Structural, tok.ErrKind)
}
