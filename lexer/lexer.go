// Package lexer implements the indentation-driven tokenizer for TOON
// text. The shape (current/peek byte cursor, FIFO pending-token queue,
// indent stack, atLineStart flag) is carried over directly from the
// teacher's lexer/lexer.go, generalized from Haiku's token set to TOON's.
package lexer

import (
	"strings"

	"github.com/lhchen/toon/config"
	"github.com/lhchen/toon/token"
	"github.com/lhchen/toon/toonerr"
)

// Lexer turns TOON source text into a stream of tokens.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	column  int

	indentStack []int
	pending     []token.Token
	atLineStart bool

	cfg config.Options
}

// New constructs a Lexer over input, ready to produce its first token.
func New(input string, opts ...config.Option) *Lexer {
	return NewWithOptions(input, config.New(opts...))
}

// NewWithOptions constructs a Lexer with already-resolved Options, so
// that callers sharing a single config.Options across lexer/parser/
// generator construction (as parser.New does) need not re-apply options.
func NewWithOptions(input string, cfg config.Options) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		column:      -1,
		indentStack: []int{0},
		atLineStart: true,
		cfg:         cfg,
	}
	l.advance()
	return l
}

// IndentLevel reports the current depth of the indent stack (spec
// §4.1.7's "current indent level" accessor), i.e. the number of open
// Indent levels not yet matched by a Dedent.
func (l *Lexer) IndentLevel() int {
	return len(l.indentStack) - 1
}

// Line and Column report the cursor position of the character the lexer
// is about to scan.
func (l *Lexer) Line() int   { return l.line }
func (l *Lexer) Column() int { return l.column }

// NextToken returns the next token in the stream. Once Eof has been
// produced it keeps returning Eof.
func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}
	if l.atLineStart {
		l.atLineStart = false
		if tok, produced := l.scanIndentation(); produced {
			return tok
		}
	}
	return l.scanToken()
}

// --- character intake -------------------------------------------------

func (l *Lexer) advance() {
	l.pos = l.readPos
	if l.readPos < len(l.input) {
		l.ch = l.input[l.readPos]
	} else {
		l.ch = 0
	}
	l.readPos++
	l.column++
}

func (l *Lexer) consumeNewline() {
	l.advance()
	l.line++
	l.column = 0
}

func (l *Lexer) byteAt(offset int) byte {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

func (l *Lexer) peekByte() byte { return l.byteAt(1) }

// --- indentation handler (spec §4.1.3) ---------------------------------

func (l *Lexer) scanIndentation() (token.Token, bool) {
	for {
		line := l.line
		spaces := 0
		sawTab := false
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				sawTab = true
				spaces += l.cfg.IndentSize
			} else {
				spaces++
			}
			l.advance()
		}
		if l.ch == 0 {
			return l.finish(), true
		}
		if l.ch == '\n' {
			// blank line: layout noise, indent stack untouched.
			l.consumeNewline()
			continue
		}
		if sawTab && l.cfg.Strict {
			return l.errorToken(toonerr.Indentation, line, 0,
				"tab in indentation is not allowed in strict mode"), true
		}
		if l.cfg.Strict && spaces%l.cfg.IndentSize != 0 {
			return l.errorToken(toonerr.Indentation, line, 0,
				"invalid indentation at line %d: %d spaces is not a multiple of %d", line, spaces, l.cfg.IndentSize), true
		}
		top := l.indentStack[len(l.indentStack)-1]
		switch {
		case spaces > top:
			if len(l.indentStack) >= l.cfg.MaxNestingDepth {
				return l.errorToken(toonerr.Resource, line, 0, "nesting depth exceeded"), true
			}
			l.indentStack = append(l.indentStack, spaces)
			return token.Token{Type: token.INDENT, Line: line, Column: 0}, true
		case spaces < top:
			for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > spaces {
				l.indentStack = l.indentStack[:len(l.indentStack)-1]
				l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: line, Column: 0})
			}
			if l.indentStack[len(l.indentStack)-1] != spaces {
				if l.cfg.Strict {
					l.pending = l.pending[:0]
					return l.errorToken(toonerr.Indentation, line, 0,
						"misaligned dedent at line %d: no matching indentation level for %d spaces", line, spaces), true
				}
				l.indentStack = append(l.indentStack, spaces)
			}
			first := l.pending[0]
			l.pending = l.pending[1:]
			return first, true
		default:
			return token.Token{Type: token.SAME_INDENT, Line: line, Column: 0}, true
		}
	}
}

// finish synthesizes the remaining Dedents and the final Eof at end of
// input. Idempotent once the indent stack is fully unwound.
func (l *Lexer) finish() token.Token {
	if len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		return token.Token{Type: token.DEDENT, Line: l.line, Column: l.column}
	}
	return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
}

// --- main token scanning (spec §4.1.2) ---------------------------------

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' {
		l.advance()
	}
}

func (l *Lexer) scanToken() token.Token {
	l.skipSpaces()
	switch l.ch {
	case 0:
		return l.finish()
	case '\n':
		tok := token.Token{Type: token.NEWLINE, Line: l.line, Column: l.column}
		l.consumeNewline()
		l.atLineStart = true
		return tok
	case ':':
		return l.single(token.COLON)
	case ',':
		return l.single(token.COMMA)
	case '|':
		return l.single(token.PIPE)
	case '[':
		return l.single(token.LBRACKET)
	case ']':
		return l.single(token.RBRACKET)
	case '{':
		return l.single(token.LBRACE)
	case '}':
		return l.single(token.RBRACE)
	case '\t':
		return l.single(token.HTAB)
	case '-':
		if l.peekByte() == ' ' {
			return l.single(token.HYPHEN)
		}
		if isDigit(l.peekByte()) {
			return l.scanNumber()
		}
		return l.scanHyphenString()
	case '"':
		return l.scanQuotedString()
	default:
		if isDigit(l.ch) {
			return l.scanNumber()
		}
		if isIdentStart(l.ch) {
			return l.scanIdentifier()
		}
		return l.scanFallback()
	}
}

func (l *Lexer) single(tt token.Type) token.Token {
	line, col := l.line, l.column
	ch := l.ch
	l.advance()
	return token.Token{Type: tt, Text: string(ch), Line: line, Column: col}
}

func (l *Lexer) errorToken(kind toonerr.Kind, line, col int, format string, args ...any) token.Token {
	e := toonerr.New(kind, line, col, format, args...)
	return token.Token{Type: token.ERROR, Text: e.Message, Line: line, Column: col, ErrKind: kind}
}

// --- numbers (spec §4.1.5) ---------------------------------------------

func (l *Lexer) scanNumber() token.Token {
	line, col := l.line, l.column
	start := l.pos
	if l.ch == '-' {
		l.advance()
	}
	if l.ch == '0' {
		l.advance()
		if isDigit(l.ch) {
			// Leading zero followed by a digit: reclassify the whole
			// run as an unquoted string (preserves zero-padded ids).
			for isIdentChar(l.ch) {
				l.advance()
			}
			return token.Token{Type: token.IDENTIFIER, Text: l.input[start:l.pos], Line: line, Column: col}
		}
	} else {
		for isDigit(l.ch) {
			l.advance()
		}
	}
	fractional := false
	if l.ch == '.' && isDigit(l.byteAt(1)) {
		fractional = true
		l.advance()
		for isDigit(l.ch) {
			l.advance()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		n1 := l.byteAt(1)
		if isDigit(n1) {
			fractional = true
			l.advance()
			for isDigit(l.ch) {
				l.advance()
			}
		} else if (n1 == '+' || n1 == '-') && isDigit(l.byteAt(2)) {
			fractional = true
			l.advance()
			l.advance()
			for isDigit(l.ch) {
				l.advance()
			}
		}
	}
	text := l.input[start:l.pos]
	if len(text) > l.cfg.MaxNumberLength {
		return l.errorToken(toonerr.Resource, line, col,
			"numeric literal exceeds maximum length of %d characters", l.cfg.MaxNumberLength)
	}
	return token.Token{Type: token.NUMBER, Text: text, Line: line, Column: col, Fractional: fractional}
}

// --- identifiers and keywords (spec §4.1.6) -----------------------------

var keywords = map[string]token.Type{
	"true":  token.BOOLEAN,
	"false": token.BOOLEAN,
	"null":  token.NULL,
}

func (l *Lexer) scanIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.pos
	for isIdentChar(l.ch) {
		l.advance()
	}
	text := l.input[start:l.pos]
	if tt, ok := keywords[text]; ok {
		if tt == token.BOOLEAN {
			return token.Token{Type: token.BOOLEAN, Text: text, Line: line, Column: col, BoolValue: text == "true"}
		}
		return token.Token{Type: token.NULL, Text: text, Line: line, Column: col}
	}
	return token.Token{Type: token.IDENTIFIER, Text: text, Line: line, Column: col}
}

// scanHyphenString handles "-" not followed by a space or a digit: an
// unquoted string that happens to start with a hyphen.
func (l *Lexer) scanHyphenString() token.Token {
	line, col := l.line, l.column
	start := l.pos
	l.advance()
	for isIdentChar(l.ch) || l.ch == '-' {
		l.advance()
	}
	return token.Token{Type: token.IDENTIFIER, Text: l.input[start:l.pos], Line: line, Column: col}
}

// scanFallback handles any byte that starts neither a structural token,
// a quoted string, a number, nor an identifier. It scans as much of an
// unquoted string as it can; if nothing qualifies, it emits Error.
func (l *Lexer) scanFallback() token.Token {
	line, col := l.line, l.column
	start := l.pos
	for isIdentChar(l.ch) || l.ch == '-' {
		l.advance()
	}
	if l.pos == start {
		ch := l.ch
		l.advance()
		return l.errorToken(toonerr.Lexical, line, col, "unexpected character %q", rune(ch))
	}
	return token.Token{Type: token.IDENTIFIER, Text: l.input[start:l.pos], Line: line, Column: col}
}

// --- quoted strings (spec §4.1.4) ---------------------------------------

func (l *Lexer) scanQuotedString() token.Token {
	line, col := l.line, l.column
	l.advance() // opening quote
	var sb strings.Builder
	for {
		switch {
		case l.ch == 0, l.ch == '\n':
			return l.errorToken(toonerr.Lexical, line, col, "unterminated string")
		case l.ch == '"':
			l.advance()
			return token.Token{Type: token.QUOTED_STRING, Text: sb.String(), Line: line, Column: col}
		case l.ch == '\\':
			esc := l.byteAt(1)
			switch esc {
			case '\\':
				sb.WriteByte('\\')
				l.advance()
				l.advance()
			case '"':
				sb.WriteByte('"')
				l.advance()
				l.advance()
			case 'n':
				sb.WriteByte('\n')
				l.advance()
				l.advance()
			case 'r':
				sb.WriteByte('\r')
				l.advance()
				l.advance()
			case 't':
				sb.WriteByte('\t')
				l.advance()
				l.advance()
			default:
				if l.cfg.Strict {
					return l.errorToken(toonerr.Lexical, l.line, l.column, "invalid escape sequence \\%c", esc)
				}
				sb.WriteByte(esc)
				l.advance()
				l.advance()
			}
		default:
			sb.WriteByte(l.ch)
			l.advance()
		}
	}
}

// --- character classes ---------------------------------------------------

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '.'
}
