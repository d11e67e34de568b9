package lexer

import (
	"testing"

	"github.com/lhchen/toon/config"
	"github.com/lhchen/toon/token"
	"github.com/stretchr/testify/require"
)

func collectTypes(t *testing.T, l *Lexer) []token.Type {
	t.Helper()
	var got []token.Type
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == token.EOF {
			return got
		}
	}
}

// firstContent skips the SAME_INDENT token every line (including line 1)
// produces when its leading whitespace matches the current indent-stack
// top, returning the first token that actually carries content.
func firstContent(l *Lexer) token.Token {
	for {
		tok := l.NextToken()
		if tok.Type != token.SAME_INDENT {
			return tok
		}
	}
}

func TestSimpleFieldTokens(t *testing.T) {
	l := New("name: Alice")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{
		token.SAME_INDENT, token.IDENTIFIER, token.COLON, token.IDENTIFIER, token.EOF,
	}, got)
}

func TestIndentDedentAroundNestedField(t *testing.T) {
	l := New("user:\n  id: 1\nname: x")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{
		token.SAME_INDENT, token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENTIFIER, token.COLON, token.NUMBER, token.NEWLINE,
		token.DEDENT,
		token.IDENTIFIER, token.COLON, token.IDENTIFIER,
		token.EOF,
	}, got)
}

func TestSameIndentBetweenSiblingLines(t *testing.T) {
	l := New("a: 1\nb: 2")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{
		token.SAME_INDENT, token.IDENTIFIER, token.COLON, token.NUMBER, token.NEWLINE,
		token.SAME_INDENT, token.IDENTIFIER, token.COLON, token.NUMBER,
		token.EOF,
	}, got)
}

func TestMultiLevelDedentEmitsOneDedentPerLevel(t *testing.T) {
	l := New("a:\n  b:\n    c: v\nd: w", config.WithStrict(true))
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{
		token.SAME_INDENT, token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENTIFIER, token.COLON, token.IDENTIFIER, token.NEWLINE,
		token.DEDENT, token.DEDENT,
		token.IDENTIFIER, token.COLON, token.IDENTIFIER,
		token.EOF,
	}, got)
}

func TestStructuralSingleCharTokens(t *testing.T) {
	l := New("[2|]{a,b}:-")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{
		token.SAME_INDENT,
		token.LBRACKET, token.NUMBER, token.PIPE, token.RBRACKET,
		token.LBRACE, token.IDENTIFIER, token.COMMA, token.IDENTIFIER, token.RBRACE,
		token.COLON, token.IDENTIFIER, token.EOF,
	}, got)
}

func TestHyphenBeforeSpaceIsListMarker(t *testing.T) {
	l := New("- a")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{token.SAME_INDENT, token.HYPHEN, token.IDENTIFIER, token.EOF}, got)
}

func TestHyphenBeforeDigitIsNegativeNumber(t *testing.T) {
	tok := firstContent(New("-5"))
	require.Equal(t, token.NUMBER, tok.Type)
	require.Equal(t, "-5", tok.Text)
}

func TestHyphenPrefixedWordIsIdentifier(t *testing.T) {
	tok := firstContent(New("-rc1"))
	require.Equal(t, token.IDENTIFIER, tok.Type)
	require.Equal(t, "-rc1", tok.Text)
}

func TestNumberFractionalFlag(t *testing.T) {
	cases := []struct {
		in         string
		fractional bool
	}{
		{"42", false},
		{"-3", false},
		{"1.5", true},
		{"1e6", true},
		{"1.5e-3", true},
	}
	for _, c := range cases {
		tok := firstContent(New(c.in))
		require.Equal(t, token.NUMBER, tok.Type, c.in)
		require.Equal(t, c.fractional, tok.Fractional, c.in)
		require.Equal(t, c.in, tok.Text, c.in)
	}
}

func TestLeadingZeroReclassifiesAsIdentifier(t *testing.T) {
	tok := firstContent(New("007"))
	require.Equal(t, token.IDENTIFIER, tok.Type)
	require.Equal(t, "007", tok.Text)
}

func TestBareZeroIsStillNumber(t *testing.T) {
	tok := firstContent(New("0"))
	require.Equal(t, token.NUMBER, tok.Type)
	require.Equal(t, "0", tok.Text)
}

func TestKeywordsBooleanAndNull(t *testing.T) {
	trueTok := firstContent(New("true"))
	require.Equal(t, token.BOOLEAN, trueTok.Type)
	require.True(t, trueTok.BoolValue)

	falseTok := firstContent(New("false"))
	require.Equal(t, token.BOOLEAN, falseTok.Type)
	require.False(t, falseTok.BoolValue)

	nullTok := firstContent(New("null"))
	require.Equal(t, token.NULL, nullTok.Type)
}

func TestQuotedStringEscapes(t *testing.T) {
	tok := firstContent(New(`"a\nb\tc\"d\\e"`))
	require.Equal(t, token.QUOTED_STRING, tok.Type)
	require.Equal(t, "a\nb\tc\"d\\e", tok.Text)
}

func TestQuotedStringUnterminatedIsError(t *testing.T) {
	tok := firstContent(New(`"abc`))
	require.Equal(t, token.ERROR, tok.Type)
}

func TestStrictModeRejectsInvalidEscape(t *testing.T) {
	tok := firstContent(New(`"a\xb"`, config.WithStrict(true)))
	require.Equal(t, token.ERROR, tok.Type)
}

func TestLenientModePassesThroughInvalidEscapeLiterally(t *testing.T) {
	tok := firstContent(New(`"a\xb"`, config.WithLenient()))
	require.Equal(t, token.QUOTED_STRING, tok.Type)
	require.Equal(t, "axb", tok.Text)
}

func TestStrictModeRejectsTabInIndentation(t *testing.T) {
	l := New("a:\n\tb: 1", config.WithStrict(true))
	l.NextToken() // SameIndent
	l.NextToken() // Identifier "a"
	l.NextToken() // Colon
	l.NextToken() // Newline
	tok := l.NextToken()
	require.Equal(t, token.ERROR, tok.Type)
}

func TestStrictModeRejectsNonMultipleIndent(t *testing.T) {
	l := New("a:\n   b: 1", config.WithStrict(true), config.WithIndentSize(2))
	l.NextToken() // SameIndent
	l.NextToken() // Identifier "a"
	l.NextToken() // Colon
	l.NextToken() // Newline
	tok := l.NextToken()
	require.Equal(t, token.ERROR, tok.Type)
}

func TestLenientModeAcceptsMisalignedIndent(t *testing.T) {
	l := New("a:\n   b: 1", config.WithLenient())
	got := collectTypes(t, l)
	require.NotContains(t, got, token.ERROR)
}

func TestIndentLevelAccessor(t *testing.T) {
	l := New("a:\n  b: 1")
	require.Equal(t, 0, l.IndentLevel())
	l.NextToken() // SameIndent
	l.NextToken() // Identifier "a"
	l.NextToken() // Colon
	l.NextToken() // Newline
	l.NextToken() // Indent
	require.Equal(t, 1, l.IndentLevel())
}

func TestBlankLinesDoNotAffectIndentStack(t *testing.T) {
	l := New("a:\n\n  b: 1")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{
		token.SAME_INDENT, token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENTIFIER, token.COLON, token.NUMBER,
		token.DEDENT,
		token.EOF,
	}, got)
}

func TestEmptyInputIsJustEof(t *testing.T) {
	l := New("")
	tok := l.NextToken()
	require.Equal(t, token.EOF, tok.Type)
	tok = l.NextToken()
	require.Equal(t, token.EOF, tok.Type, "keeps returning Eof once reached")
}

func TestHtabDelimiterToken(t *testing.T) {
	l := New("a\tb")
	got := collectTypes(t, l)
	require.Equal(t, []token.Type{token.SAME_INDENT, token.IDENTIFIER, token.HTAB, token.IDENTIFIER, token.EOF}, got)
}
