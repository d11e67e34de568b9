// Package token defines the tagged token vocabulary produced by the lexer.
package token

import (
	"fmt"

	"github.com/lhchen/toon/toonerr"
)

// Type identifies the category of a Token.
type Type int

const (
	EOF Type = iota
	ERROR

	NEWLINE
	INDENT
	DEDENT
	SAME_INDENT

	COLON
	COMMA
	PIPE
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	HYPHEN
	HTAB

	IDENTIFIER
	QUOTED_STRING
	NUMBER
	BOOLEAN
	NULL
)

var names = map[Type]string{
	EOF:           "Eof",
	ERROR:         "Error",
	NEWLINE:       "Newline",
	INDENT:        "Indent",
	DEDENT:        "Dedent",
	SAME_INDENT:   "SameIndent",
	COLON:         "Colon",
	COMMA:         "Comma",
	PIPE:          "Pipe",
	LBRACKET:      "LBracket",
	RBRACKET:      "RBracket",
	LBRACE:        "LBrace",
	RBRACE:        "RBrace",
	HYPHEN:        "Hyphen",
	HTAB:          "Htab",
	IDENTIFIER:    "Identifier",
	QUOTED_STRING: "QuotedString",
	NUMBER:        "Number",
	BOOLEAN:       "Boolean",
	NULL:          "Null",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Token is a single lexical unit. Text carries an identifier/quoted
// string's literal text, a number's raw digits, or an error's message.
// Fractional and BoolValue are only meaningful for NUMBER and BOOLEAN
// tokens respectively.
type Token struct {
	Type       Type
	Text       string
	Line       int
	Column     int
	Fractional bool
	BoolValue  bool
	ErrKind    toonerr.Kind // meaningful only when Type == ERROR
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Text, t.Line, t.Column)
}
