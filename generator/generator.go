// Package generator implements the event-driven TOON text generator
// (spec §4.4): the dual of package parser. It accepts the same event
// vocabulary (package event) and writes characters to an io.Writer,
// choosing array format (inline vs. list), quoting strings/keys, and
// canonicalizing numbers as it goes.
package generator

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lhchen/toon/config"
	"github.com/lhchen/toon/event"
)

type arrayFormat int

const (
	formatUnset arrayFormat = iota
	formatInline
	formatList
)

// wframe is one entry of the generator's own context stack (spec §3's
// "Generator context frame mirrors parser frames"), used only for the
// direct/streaming write path (arrays with a known size, spec §4.4.3).
type wframe struct {
	isArray bool

	// object fields
	indent          int
	pendingField    string
	hasPendingField bool

	// array fields
	arrayName string
	size      int64
	delim     byte
	index     int64
	format    arrayFormat

	// true when this frame's very first emitted content must not repeat
	// indentation, because a parent list "- " marker already positioned
	// the cursor on this line (spec §4.4.3's atomic header+name write,
	// generalized to nested list elements of any kind).
	skipIndentOnce bool
}

func (f *wframe) elemIndent() int { return f.indent + 1 }

// deliverySlot records where a buffering-mode array's completed value
// (package value.go's gval) must be rendered once its outermost EndArray
// arrives: at object field `name` at `level`, or continuing an
// already-written list "- " marker at `level`.
type deliverySlot struct {
	level      int
	continuing bool
	name       string
}

// Generator writes TOON text from a stream of events.
type Generator struct {
	w   *bufio.Writer
	cfg config.Options

	writeStack []*wframe
	pendingNL  bool

	bufferDepth int
	buildStack  []*gval
	deliverAt   []deliverySlot

	err  error
	done bool
}

// New constructs a Generator writing to w.
func New(w io.Writer, opts ...config.Option) *Generator {
	return &Generator{w: bufio.NewWriter(w), cfg: config.New(opts...)}
}

// Emit feeds one event to the generator. Once the Eof event has been
// emitted, or an error has occurred, further calls are no-ops (mirroring
// the lexer/parser's "keep returning Eof/err" convention).
func (g *Generator) Emit(e event.Event) error {
	if g.err != nil {
		return g.err
	}
	if g.done {
		return nil
	}
	if e.Kind == event.Eof {
		g.done = true
		return g.flush()
	}
	if g.bufferDepth > 0 {
		g.handleBuffered(e)
	} else {
		g.handleDirect(e)
	}
	if g.err != nil {
		return g.err
	}
	return nil
}

// Flush forces any buffered bytes to the underlying writer without
// requiring an Eof event; Emit(Eof) already does this.
func (g *Generator) Flush() error { return g.flush() }

func (g *Generator) flush() error {
	if err := g.w.Flush(); err != nil {
		return err
	}
	return nil
}

func (g *Generator) fail(format string, args ...any) {
	if g.err != nil {
		return
	}
	g.err = fmt.Errorf("toon: generator: "+format, args...)
	g.done = true
}

// --- low-level line discipline (spec §4.4.4) -----------------------------

// raw writes s, first flushing any pending newline from the previous
// logical line. No newline is ever written at the very end of the
// document: pendingNL is only flushed lazily, by the *next* write.
func (g *Generator) raw(s string) {
	if g.pendingNL {
		g.w.WriteByte('\n')
		g.pendingNL = false
	}
	g.w.WriteString(s)
}

func (g *Generator) nl() { g.pendingNL = true }

func (g *Generator) writeIndent(level int) {
	if level <= 0 {
		g.raw("")
		return
	}
	g.raw(strings.Repeat(strings.Repeat(" ", g.cfg.IndentSize), level))
}

// --- direct/streaming path (size-known arrays) ---------------------------

func (g *Generator) top() *wframe {
	if len(g.writeStack) == 0 {
		return nil
	}
	return g.writeStack[len(g.writeStack)-1]
}

func (g *Generator) push(f *wframe) { g.writeStack = append(g.writeStack, f) }

func (g *Generator) pop() *wframe {
	n := len(g.writeStack)
	f := g.writeStack[n-1]
	g.writeStack = g.writeStack[:n-1]
	return f
}

func (g *Generator) handleDirect(e event.Event) {
	switch e.Kind {
	case event.StartObject:
		g.directStartObject()
	case event.EndObject:
		g.pop()
	case event.StartArray:
		g.directStartArray(e)
	case event.EndArray:
		g.directEndArray()
	case event.FieldName:
		g.directFieldName(e)
	default:
		g.directValue(scalarFromEvent(e))
	}
}

func (g *Generator) directFieldName(e event.Event) {
	top := g.top()
	if top == nil || top.isArray {
		g.fail("unexpected field name outside an object")
		return
	}
	top.pendingField = e.Text
	top.hasPendingField = true
}

func (g *Generator) directStartObject() {
	top := g.top()
	if top == nil {
		g.push(&wframe{indent: 0})
		return
	}
	if !top.isArray {
		name := top.pendingField
		top.hasPendingField = false
		g.writeFieldKeyColon(top, name)
		g.nl()
		g.push(&wframe{indent: top.indent + 1})
		return
	}
	level, skipIndent, err := g.enterArrayElement(top, true)
	if err != nil {
		g.fail("%s", err)
		return
	}
	// level is the "- " marker's own indent; this object's fields nest one
	// level deeper than the marker, mirroring the non-array branch above.
	g.push(&wframe{indent: level + 1, skipIndentOnce: skipIndent})
}

func (g *Generator) writeFieldKeyColon(top *wframe, name string) {
	if top.skipIndentOnce {
		top.skipIndentOnce = false
	} else {
		g.writeIndent(top.indent)
	}
	g.raw(quoteKeyIfNeeded(name) + ":")
}

func (g *Generator) directStartArray(e event.Event) {
	top := g.top()
	var level int
	var name string
	var continuing bool
	switch {
	case top == nil:
		level, name, continuing = 0, "", false
	case !top.isArray:
		name = top.pendingField
		top.hasPendingField = false
		level = top.indent
	default:
		var skipIndent bool
		var err error
		level, skipIndent, err = g.enterArrayElement(top, true)
		if err != nil {
			g.fail("%s", err)
			return
		}
		name, continuing = "", skipIndent
	}

	if !e.HasSize {
		g.beginBuffering(deliverySlot{level: level, continuing: continuing, name: name})
		return
	}

	nf := &wframe{isArray: true, indent: level, arrayName: name, size: e.Int, delim: g.cfg.Delimiter, skipIndentOnce: continuing}
	g.push(nf)
}

// writeArrayKeyAndHeader writes the key (if any) and the "[N<delim>]:"
// header text for an array frame — atomically, per spec §4.4.3 — either
// because its first element just arrived or because it closed empty.
func (g *Generator) writeArrayKeyAndHeader(top *wframe) {
	if top.skipIndentOnce {
		top.skipIndentOnce = false
	} else {
		g.writeIndent(top.indent)
	}
	if top.arrayName != "" {
		g.raw(quoteKeyIfNeeded(top.arrayName))
	}
	g.raw(g.arrayHeaderSuffix(top))
}

func (g *Generator) directEndArray() {
	top := g.pop()
	switch top.format {
	case formatUnset:
		g.writeArrayKeyAndHeader(top)
		g.nl()
	case formatInline:
		g.nl()
	case formatList:
		// every element already wrote its own terminated line.
	}
}

func (g *Generator) arrayHeaderSuffix(top *wframe) string {
	return "[" + strconv.FormatInt(top.size, 10) + delimMarkerText(top.delim) + "]:"
}

// enterArrayElement decides (lazily, on the first element) the array's
// format per spec §4.4.3, writes its header the first time it is called,
// and returns the indent level and whether the very next write must skip
// its own indentation: true for list form, where this call already
// positioned the cursor after a "- " marker; false for inline form.
func (g *Generator) enterArrayElement(top *wframe, isComposite bool) (level int, skipIndentOnce bool, err error) {
	if top.format == formatUnset {
		if isComposite {
			top.format = formatList
			g.writeArrayKeyAndHeader(top)
			g.nl()
		} else {
			top.format = formatInline
			g.writeArrayKeyAndHeader(top)
		}
	}
	switch top.format {
	case formatList:
		g.writeIndent(top.elemIndent())
		g.raw("- ")
		top.index++
		return top.elemIndent(), true, nil
	case formatInline:
		if isComposite {
			return 0, false, fmt.Errorf("array format already fixed as inline; cannot emit a composite element")
		}
		if top.index == 0 {
			g.raw(" ")
		} else {
			g.raw(string(top.delim))
		}
		top.index++
		return top.indent, false, nil
	}
	return 0, false, nil
}

func (g *Generator) directValue(v gval) {
	top := g.top()
	if top == nil {
		// root primitive: no wrapping object, no trailing newline.
		g.raw(scalarText(v, 0, false))
		return
	}
	if !top.isArray {
		name := top.pendingField
		top.hasPendingField = false
		if top.skipIndentOnce {
			top.skipIndentOnce = false
		} else {
			g.writeIndent(top.indent)
		}
		g.raw(quoteKeyIfNeeded(name) + ": " + scalarText(v, 0, false))
		g.nl()
		return
	}
	_, skipIndent, err := g.enterArrayElement(top, false)
	if err != nil {
		g.fail("%s", err)
		return
	}
	g.raw(scalarText(v, top.delim, true))
	if skipIndent { // list form: this primitive is its own "- value" line.
		g.nl()
	}
}

// --- buffering path (size-unknown arrays, spec §4.4.3) -------------------

func (g *Generator) beginBuffering(slot deliverySlot) {
	g.bufferDepth++
	g.deliverAt = append(g.deliverAt, slot)
	g.buildStack = append(g.buildStack, &gval{kind: gvArray})
}

func (g *Generator) buildTop() *gval {
	return g.buildStack[len(g.buildStack)-1]
}

func (g *Generator) popBuild() gval {
	n := len(g.buildStack)
	v := g.buildStack[n-1]
	g.buildStack = g.buildStack[:n-1]
	return *v
}

func (g *Generator) attachBuilt(v gval) {
	if len(g.buildStack) == 0 {
		return
	}
	g.buildTop().attach(v)
}

func (g *Generator) handleBuffered(e event.Event) {
	switch e.Kind {
	case event.StartObject:
		g.buildStack = append(g.buildStack, &gval{kind: gvObject})
	case event.EndObject:
		g.attachBuilt(g.popBuild())
	case event.StartArray:
		g.bufferDepth++
		g.buildStack = append(g.buildStack, &gval{kind: gvArray, hasSize: e.HasSize, size: e.Int})
	case event.EndArray:
		v := g.popBuild()
		g.bufferDepth--
		if g.bufferDepth == 0 {
			slot := g.deliverAt[len(g.deliverAt)-1]
			g.deliverAt = g.deliverAt[:len(g.deliverAt)-1]
			g.deliverBuilt(v, slot)
		} else {
			g.attachBuilt(v)
		}
	case event.FieldName:
		top := g.buildTop()
		top.pendingField = e.Text
		top.hasPendingField = true
	default:
		g.attachBuilt(scalarFromEvent(e))
	}
}

// deliverBuilt writes a completed buffering-mode array value to the
// direct/streaming output at the point it was waiting for (spec §4.4.3:
// "pick up the pending field name of the enclosing object before the
// header so header + name are written atomically").
func (g *Generator) deliverBuilt(v gval, slot deliverySlot) {
	if !slot.continuing {
		g.writeIndent(slot.level)
	}
	if slot.name != "" {
		g.raw(quoteKeyIfNeeded(slot.name))
	}
	g.renderArrayHeaderAndBody(v, slot.level)
}

// --- scalar conversion ----------------------------------------------------

func scalarFromEvent(e event.Event) gval {
	switch e.Kind {
	case event.ValueString:
		return gval{kind: gvString, s: e.Text}
	case event.ValueIntegral:
		return gval{kind: gvInt, i: e.Int}
	case event.ValueFractional:
		return gval{kind: gvFloat, f: e.Float}
	case event.ValueTrue:
		return gval{kind: gvTrue}
	case event.ValueFalse:
		return gval{kind: gvFalse}
	case event.ValueNull:
		return gval{kind: gvNull}
	default:
		return gval{kind: gvNull}
	}
}

// Err returns the first error the generator encountered, if any.
func (g *Generator) Err() error { return g.err }
