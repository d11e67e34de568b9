// Package parser turns a TOON token stream into the shared event
// vocabulary (spec §4.3). The shape — a 2-token lookahead (cur/peek)
// advanced via a single nextToken-style method, dispatch by a tagged
// context stack instead of recursive-descent call depth — generalizes
// the teacher's parser/parser_v2.go lookahead machinery. Unlike the
// teacher, which accumulates parse errors into a slice and keeps going,
// this parser aborts on the first error: every malformed token or shape
// mismatch is fatal here, so there is nothing to recover from locally.
package parser

import (
	"strconv"

	"github.com/lhchen/toon/config"
	"github.com/lhchen/toon/event"
	"github.com/lhchen/toon/lexer"
	"github.com/lhchen/toon/stack"
	"github.com/lhchen/toon/token"
	"github.com/lhchen/toon/toonerr"
)

// Parser consumes a Lexer and produces events one at a time via
// NextEvent. It keeps a context stack (stack.Frames) rather than an
// AST or a recursive call chain.
type Parser struct {
	lex *lexer.Lexer
	cfg config.Options

	cur  token.Token
	peek token.Token

	depth int

	stack *stack.Frames

	pending []event.Event

	rootResolved bool
	eofEmitted   bool
	done         bool
	err          error
}

// New constructs a Parser over input with the given options.
func New(input string, opts ...config.Option) *Parser {
	return NewWithOptions(input, config.New(opts...))
}

// NewWithOptions constructs a Parser with already-resolved Options,
// building its own Lexer so lexer/parser share one configuration.
func NewWithOptions(input string, cfg config.Options) *Parser {
	p := &Parser{
		lex:   lexer.NewWithOptions(input, cfg),
		cfg:   cfg,
		stack: stack.NewFrames(),
	}
	p.advance()
	p.advance()
	return p
}

// NextEvent returns the next event in the stream, or the first
// structural/lexical error encountered. Once Eof has been returned it
// keeps returning Eof, matching the lexer's NextToken convention.
func (p *Parser) NextEvent() (event.Event, error) {
	for len(p.pending) == 0 {
		if p.err != nil {
			return event.Event{}, p.err
		}
		if p.done {
			return event.Event{Kind: event.Eof}, nil
		}
		p.produce()
	}
	e := p.pending[0]
	p.pending = p.pending[1:]
	return e, nil
}

// --- driver loop --------------------------------------------------------

func (p *Parser) produce() {
	if p.err != nil || p.done {
		return
	}
	if !p.rootResolved {
		p.rootResolved = true
		p.resolveRoot()
	} else if p.stack.Len() > 0 {
		p.stepTop()
	}
	if p.err == nil && !p.done && p.stack.Len() == 0 && !p.eofEmitted {
		p.eofEmitted = true
		p.emit(event.Event{Kind: event.Eof})
		p.done = true
	}
}

func (p *Parser) stepTop() {
	top := p.stack.Top()
	switch top.Kind {
	case stack.Root, stack.Object, stack.ListItemObject:
		p.stepFieldContainer()
	case stack.ArrayInline:
		p.stepArrayInline()
	case stack.ArrayTabular:
		p.stepArrayTabular()
	case stack.ArrayList:
		p.stepArrayList()
	case stack.TabularRow:
		p.stepTabularRow()
	}
}

func (p *Parser) emit(e event.Event) {
	p.pending = append(p.pending, e)
}

func (p *Parser) fail(kind toonerr.Kind, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = toonerr.New(kind, p.cur.Line, p.cur.Column, format, args...)
	p.done = true
}

func (p *Parser) push(f stack.Frame) {
	if p.err != nil {
		return
	}
	if p.stack.Len() >= p.cfg.MaxNestingDepth || !p.stack.Push(f) {
		p.err = toonerr.New(toonerr.Resource, p.cur.Line, p.cur.Column, "nesting depth exceeded")
		p.done = true
	}
}

func (p *Parser) pop() {
	p.stack.Pop()
}

// --- token intake --------------------------------------------------------

func (p *Parser) advance() {
	switch p.cur.Type {
	case token.INDENT:
		p.depth++
	case token.DEDENT:
		p.depth--
	}
	p.cur = p.peek
	p.peek = p.lex.NextToken()
	if p.err == nil && p.cur.Type == token.ERROR {
		p.err = toonerr.New(p.cur.ErrKind, p.cur.Line, p.cur.Column, "%s", p.cur.Text)
		p.done = true
	}
}

func (p *Parser) skipLayout() {
	for p.cur.Type == token.NEWLINE || p.cur.Type == token.SAME_INDENT {
		p.advance()
	}
}

func isValueToken(t token.Type) bool {
	switch t {
	case token.IDENTIFIER, token.QUOTED_STRING, token.NUMBER, token.BOOLEAN, token.NULL:
		return true
	}
	return false
}

func delimTokenType(d byte) token.Type {
	switch d {
	case '\t':
		return token.HTAB
	case '|':
		return token.PIPE
	default:
		return token.COMMA
	}
}

// --- root form detection (spec §4.3.1) -----------------------------------

func (p *Parser) resolveRoot() {
	p.skipLayout()
	switch {
	case p.cur.Type == token.EOF:
		p.emit(event.Event{Kind: event.StartObject})
		p.push(stack.Frame{Kind: stack.Root})
	case p.cur.Type == token.LBRACKET:
		p.parseArrayHeader()
	case isValueToken(p.cur.Type) && p.peek.Type == token.EOF:
		p.emitPrimitive(p.cur)
		p.advance()
	default:
		p.emit(event.Event{Kind: event.StartObject})
		p.push(stack.Frame{Kind: stack.Root})
	}
}

// --- object / root / list-item-object field loops (spec §4.3.2) ---------

// stepFieldContainer drives Root, Object, and ListItemObject frames,
// which all share the same "FieldName, Colon, value" loop and close on
// EOF or Dedent (a ListItemObject without sibling fields also closes on
// the next Hyphen). A ListItemObject's first field is parsed on
// its hyphen line by startListItemObject before this loop ever sees it;
// this function only ever handles the remaining sibling fields.
func (p *Parser) stepFieldContainer() {
	top := p.stack.Top()
	for p.cur.Type == token.NEWLINE || p.cur.Type == token.SAME_INDENT {
		p.advance()
	}
	if p.cur.Type == token.INDENT {
		p.advance()
		top.Index++ // ListItemObject: sibling fields opened an indent level
	}
	// A ListItemObject with no sibling fields never consumed an Indent, so
	// the next Hyphen or Dedent belongs to the enclosing list.
	unindentedItem := top.Kind == stack.ListItemObject && top.Index == 0
	switch {
	case p.cur.Type == token.EOF,
		unindentedItem && (p.cur.Type == token.HYPHEN || p.cur.Type == token.DEDENT):
		p.emit(event.Event{Kind: event.EndObject})
		p.pop()
		return
	case p.cur.Type == token.DEDENT:
		p.advance()
		p.emit(event.Event{Kind: event.EndObject})
		p.pop()
		return
	}
	p.parseField()
}

func (p *Parser) parseField() {
	if !isValueToken(p.cur.Type) {
		p.fail(toonerr.Structural, "expected a field name")
		return
	}
	if p.cfg.Strict {
		switch p.cur.Type {
		case token.NUMBER, token.BOOLEAN, token.NULL:
			p.fail(toonerr.Structural, "unquoted %s cannot be used as a field name in strict mode", p.cur.Type)
			return
		}
	}
	name := p.cur.Text
	p.emit(event.Event{Kind: event.FieldName, Text: name})
	p.advance()
	if p.cur.Type == token.LBRACKET {
		// Array-valued field: the header owns the bracket and its own
		// trailing colon (`users[2]{id,name}:`, `tags[3]: a,b,c`), so
		// there is no separate "Colon after field name" to require here.
		p.parseArrayHeader()
		return
	}
	if p.cur.Type != token.COLON {
		p.fail(toonerr.Structural, "expected ':' after field name %q", name)
		return
	}
	p.advance()
	p.dispatchFieldValue()
}

// dispatchFieldValue handles what follows a field's Colon (spec
// §4.3.2.4): a nested array, a nested object, an empty object, or a
// primitive on the same line.
func (p *Parser) dispatchFieldValue() {
	switch {
	case p.cur.Type == token.NEWLINE:
		p.advance()
		if p.cur.Type == token.INDENT {
			p.advance()
			if p.cur.Type == token.LBRACKET {
				p.parseArrayHeader()
			} else {
				p.emit(event.Event{Kind: event.StartObject})
				p.push(stack.Frame{Kind: stack.Object})
			}
			return
		}
		p.emit(event.Event{Kind: event.StartObject})
		p.emit(event.Event{Kind: event.EndObject})
	case p.cur.Type == token.LBRACKET:
		p.parseArrayHeader()
	default:
		if !isValueToken(p.cur.Type) {
			p.fail(toonerr.Structural, "expected a value")
			return
		}
		p.emitPrimitive(p.cur)
		p.advance()
	}
}

// --- array header parsing (spec §4.3.3) ----------------------------------

// parseArrayHeader consumes `[ Number [DelimMarker] ] [{FieldList}] : `
// starting with cur == LBracket, then dispatches to the tabular, list,
// or inline body form (or an immediately-closed empty array) based on
// what follows. The caller is responsible for any FieldName event — an
// array header never emits one itself, since it is reachable both from
// object field values and from document-root parsing.
func (p *Parser) parseArrayHeader() {
	p.advance() // consume '['
	if p.cur.Type != token.NUMBER || p.cur.Fractional {
		p.fail(toonerr.Structural, "expected array length in header")
		return
	}
	n, convErr := strconv.ParseInt(p.cur.Text, 10, 64)
	if convErr != nil || n < 0 {
		p.fail(toonerr.Structural, "invalid array length %q", p.cur.Text)
		return
	}
	p.advance() // consume number

	delim := byte(',')
	switch p.cur.Type {
	case token.HTAB:
		delim = '\t'
		p.advance()
	case token.PIPE:
		delim = '|'
		p.advance()
	}

	if p.cur.Type != token.RBRACKET {
		p.fail(toonerr.Structural, "expected ']' closing array header")
		return
	}
	p.advance() // consume ']'

	var fieldNames []string
	hasFieldList := false
	if p.cur.Type == token.LBRACE {
		hasFieldList = true
		p.advance() // consume '{'
		delimTok := delimTokenType(delim)
		for {
			if !isValueToken(p.cur.Type) {
				p.fail(toonerr.Structural, "expected field name in array header")
				return
			}
			fieldNames = append(fieldNames, p.cur.Text)
			p.advance()
			if p.cur.Type != delimTok {
				break
			}
			p.advance()
		}
		if p.cur.Type != token.RBRACE {
			p.fail(toonerr.Structural, "expected '}' closing field list")
			return
		}
		p.advance() // consume '}'
	}

	if p.cur.Type != token.COLON {
		p.fail(toonerr.Structural, "expected ':' in array header")
		return
	}
	p.advance() // consume ':'

	if hasFieldList {
		if p.cur.Type != token.NEWLINE {
			p.fail(toonerr.Structural, "expected newline after tabular array header")
			return
		}
		p.advance()
		p.emit(event.Event{Kind: event.StartArray, HasSize: true, Int: n})
		if p.cur.Type != token.INDENT {
			if p.cfg.Strict && n != 0 {
				p.fail(toonerr.Structural, "array declares length %d but has no rows", n)
				return
			}
			p.emit(event.Event{Kind: event.EndArray})
			return
		}
		p.advance() // consume indent
		p.push(stack.Frame{Kind: stack.ArrayTabular, DeclaredLen: int(n), FieldNames: fieldNames, Delimiter: delim})
		return
	}

	if p.cur.Type != token.NEWLINE {
		// Same-line inline array: header and values share one physical
		// line (spec's own seed C contradicts its "Colon Newline"
		// grammar line; see DESIGN.md).
		p.emit(event.Event{Kind: event.StartArray, HasSize: true, Int: n})
		p.push(stack.Frame{Kind: stack.ArrayInline, DeclaredLen: int(n), Delimiter: delim, SameLine: true})
		return
	}
	p.advance() // consume newline

	if p.cur.Type != token.INDENT {
		if p.cfg.Strict && n != 0 {
			p.fail(toonerr.Structural, "array declares length %d but body is empty", n)
			return
		}
		p.emit(event.Event{Kind: event.StartArray, HasSize: true, Int: n})
		p.emit(event.Event{Kind: event.EndArray})
		return
	}
	p.advance() // consume indent

	if p.cur.Type == token.HYPHEN {
		p.emit(event.Event{Kind: event.StartArray, HasSize: true, Int: n})
		p.push(stack.Frame{Kind: stack.ArrayList, DeclaredLen: int(n), Delimiter: delim})
		return
	}
	p.emit(event.Event{Kind: event.StartArray, HasSize: true, Int: n})
	p.push(stack.Frame{Kind: stack.ArrayInline, DeclaredLen: int(n), Delimiter: delim})
}

// --- inline array body (spec §4.3.4) -------------------------------------

func (p *Parser) stepArrayInline() {
	top := p.stack.Top()
	if top.Index > 0 {
		want := delimTokenType(top.Delimiter)
		if p.cur.Type == want {
			p.advance()
		} else {
			p.closeInline(top)
			return
		}
	}
	if isValueToken(p.cur.Type) {
		p.emitPrimitive(p.cur)
		p.advance()
		top.Index++
		return
	}
	p.closeInline(top)
}

func (p *Parser) closeInline(f *stack.Frame) {
	if p.cfg.Strict && f.Index != f.DeclaredLen {
		p.fail(toonerr.Structural, "array declares length %d but found %d elements", f.DeclaredLen, f.Index)
		return
	}
	if f.SameLine {
		if p.cur.Type == token.NEWLINE {
			p.advance()
		}
		p.emit(event.Event{Kind: event.EndArray})
		p.pop()
		return
	}
	// A document has no trailing newline (spec §6.1), so an inline array
	// that ends the document runs straight into the EOF-synthesized
	// dedent(s) with no Newline token at all.
	if p.cur.Type == token.NEWLINE {
		p.advance()
	}
	if p.cur.Type != token.DEDENT {
		p.fail(toonerr.Structural, "expected dedent after inline array")
		return
	}
	p.advance()
	p.emit(event.Event{Kind: event.EndArray})
	p.pop()
}

// --- tabular array body (spec §4.3.5) ------------------------------------

func (p *Parser) stepArrayTabular() {
	top := p.stack.Top()
	if top.Index > 0 && p.cur.Type == token.SAME_INDENT {
		p.advance()
	}
	if p.cur.Type == token.DEDENT {
		p.advance()
		p.closeTabular(top)
		return
	}
	p.emit(event.Event{Kind: event.StartObject})
	top.Index++
	p.push(stack.Frame{Kind: stack.TabularRow, FieldNames: top.FieldNames, Delimiter: top.Delimiter})
}

func (p *Parser) closeTabular(f *stack.Frame) {
	if p.cfg.Strict && f.Index != f.DeclaredLen {
		p.fail(toonerr.Structural, "array declares length %d but found %d rows", f.DeclaredLen, f.Index)
		return
	}
	p.emit(event.Event{Kind: event.EndArray})
	p.pop()
}

// stepTabularRow interleaves FieldName/value pairs drawn from the
// row's field list. A missing value between two delimiters is treated
// as an empty string in both modes (DESIGN.md open question #2), not
// an error.
func (p *Parser) stepTabularRow() {
	row := p.stack.Top()
	if row.FieldIndex >= len(row.FieldNames) {
		// The last row of a document has no trailing Newline (spec
		// §6.1); leave a Dedent/Eof for the enclosing tabular array
		// frame's own close check to observe.
		switch p.cur.Type {
		case token.NEWLINE:
			p.advance()
		case token.DEDENT, token.EOF:
			// fall through without consuming
		default:
			if p.cfg.Strict {
				p.fail(toonerr.Structural, "expected newline after tabular row")
				return
			}
			// Lenient mode drops values beyond the field list.
			for p.err == nil && p.cur.Type != token.NEWLINE && p.cur.Type != token.DEDENT && p.cur.Type != token.EOF {
				p.advance()
			}
			if p.cur.Type == token.NEWLINE {
				p.advance()
			}
		}
		p.emit(event.Event{Kind: event.EndObject})
		p.pop()
		return
	}
	if row.FieldIndex > 0 {
		want := delimTokenType(row.Delimiter)
		if p.cur.Type != want {
			p.fail(toonerr.Structural, "expected delimiter between tabular fields")
			return
		}
		p.advance()
	}
	name := row.FieldNames[row.FieldIndex]
	p.emit(event.Event{Kind: event.FieldName, Text: name})
	if isValueToken(p.cur.Type) {
		p.emitPrimitive(p.cur)
		p.advance()
	} else {
		p.emit(event.Event{Kind: event.ValueString})
	}
	row.FieldIndex++
}

// --- list array body (spec §4.3.5) ---------------------------------------

func (p *Parser) stepArrayList() {
	top := p.stack.Top()
	if top.Index > 0 && p.cur.Type == token.SAME_INDENT {
		p.advance()
	}
	if p.cur.Type == token.DEDENT {
		p.advance()
		p.closeList(top)
		return
	}
	if p.cur.Type != token.HYPHEN {
		p.fail(toonerr.Structural, "expected '-' starting list element")
		return
	}
	p.advance() // consume '-'
	top.Index++
	switch {
	case p.cur.Type == token.LBRACKET:
		p.parseArrayHeader()
	case isValueToken(p.cur.Type) && p.peek.Type == token.COLON:
		p.startListItemObject()
	default:
		if !isValueToken(p.cur.Type) {
			p.fail(toonerr.Structural, "expected list element value")
			return
		}
		p.emitPrimitive(p.cur)
		p.advance()
		// The last element of a document has no trailing Newline (spec
		// §6.1); leave a Dedent/Eof for the enclosing list frame's own
		// close check to observe.
		switch p.cur.Type {
		case token.NEWLINE:
			p.advance()
		case token.DEDENT, token.EOF:
			// fall through without consuming
		default:
			p.fail(toonerr.Structural, "expected newline after list element")
			return
		}
	}
}

func (p *Parser) closeList(f *stack.Frame) {
	if p.cfg.Strict && f.Index != f.DeclaredLen {
		p.fail(toonerr.Structural, "array declares length %d but found %d elements", f.DeclaredLen, f.Index)
		return
	}
	p.emit(event.Event{Kind: event.EndArray})
	p.pop()
}

// startListItemObject handles a list element whose first field sits on
// the hyphen's own line; sibling fields one level deeper are parsed by
// the ordinary stepFieldContainer loop once the ListItemObject frame is
// pushed (spec §4.3.5's "first field parsed on the hyphen line" rule).
func (p *Parser) startListItemObject() {
	p.emit(event.Event{Kind: event.StartObject})
	p.push(stack.Frame{Kind: stack.ListItemObject})
	p.parseField()
}

// --- primitive emission (spec §4.3.6) -------------------------------------

func (p *Parser) emitPrimitive(t token.Token) {
	switch t.Type {
	case token.IDENTIFIER, token.QUOTED_STRING:
		p.emit(event.Event{Kind: event.ValueString, Text: t.Text})
	case token.NUMBER:
		if t.Fractional {
			f, convErr := strconv.ParseFloat(t.Text, 64)
			if convErr != nil {
				p.fail(toonerr.Lexical, "invalid numeric literal %q", t.Text)
				return
			}
			p.emit(event.Event{Kind: event.ValueFractional, Float: f})
		} else {
			n, convErr := strconv.ParseInt(t.Text, 10, 64)
			if convErr != nil {
				p.fail(toonerr.Lexical, "invalid numeric literal %q", t.Text)
				return
			}
			p.emit(event.Event{Kind: event.ValueIntegral, Int: n})
		}
	case token.BOOLEAN:
		if t.BoolValue {
			p.emit(event.Event{Kind: event.ValueTrue})
		} else {
			p.emit(event.Event{Kind: event.ValueFalse})
		}
	case token.NULL:
		p.emit(event.Event{Kind: event.ValueNull})
	}
}
