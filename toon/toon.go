// Package toon is the public convenience API: Marshal/Unmarshal between Go
// values and TOON text, bridging package event's stream to `any` the way
// the reference decoder's Decode/DecodeString/NewDecoder surface does.
// The streaming core — lexer, parser, generator — does the real work;
// this package only walks a Go value tree into events (encode) or folds
// an event stream into a Go value tree (decode).
package toon

import (
	"strings"

	"github.com/lhchen/toon/config"
	"github.com/lhchen/toon/event"
	"github.com/lhchen/toon/generator"
	"github.com/lhchen/toon/parser"
)

// Option configures a Marshal/Unmarshal call. It is an alias of
// config.Option so callers never need to import package config directly.
type Option = config.Option

// re-exported for callers who only need the functional options, matching
// the reference decoder's DecoderOption re-export surface.
var (
	WithIndentSize      = config.WithIndentSize
	WithStrict          = config.WithStrict
	WithLenient         = config.WithLenient
	WithMaxNestingDepth = config.WithMaxNestingDepth
	WithMaxNumberLength = config.WithMaxNumberLength
	WithDelimiter       = config.WithDelimiter
)

// Marshal encodes a Go value as TOON text. v must be built from the types
// Unmarshal produces: map[string]any, []any, string, int64, float64, bool,
// or nil; int and float32 are also accepted (see emitValue).
func Marshal(v any, opts ...Option) (string, error) {
	var sb strings.Builder
	g := generator.New(&sb, opts...)
	if err := emitValue(g, v); err != nil {
		return "", err
	}
	if err := g.Emit(event.Event{Kind: event.Eof}); err != nil {
		return "", err
	}
	if err := g.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Unmarshal decodes TOON text into a generic Go value: an object becomes
// map[string]any, an array becomes []any, and scalars become string,
// int64, float64, bool, or nil.
func Unmarshal(doc string, opts ...Option) (any, error) {
	p := parser.New(doc, opts...)
	return foldValue(p)
}

// Decode is sugar for Unmarshal(string(data), opts...), mirroring the
// reference decoder's byte-slice entry point.
func Decode(data []byte, opts ...Option) (any, error) {
	return Unmarshal(string(data), opts...)
}

// DecodeString is an alias of Unmarshal, named to match the reference
// decoder's DecodeString.
func DecodeString(doc string, opts ...Option) (any, error) {
	return Unmarshal(doc, opts...)
}

// foldValue drives the parser's event stream into a single decoded Go
// value. The root is always a StartObject/StartArray/scalar event per
// the parser's root-detection rule; foldValue consumes exactly the
// events that make up the one root value, then the trailing Eof.
func foldValue(p *parser.Parser) (any, error) {
	e, err := p.NextEvent()
	if err != nil {
		return nil, err
	}
	v, err := foldOne(p, e)
	if err != nil {
		return nil, err
	}
	if tail, err := p.NextEvent(); err != nil {
		return nil, err
	} else if tail.Kind != event.Eof {
		return nil, errUnexpectedTrailingEvent(tail)
	}
	return v, nil
}

func foldOne(p *parser.Parser, e event.Event) (any, error) {
	switch e.Kind {
	case event.StartObject:
		return foldObject(p)
	case event.StartArray:
		return foldArray(p)
	case event.ValueString:
		return e.Text, nil
	case event.ValueIntegral:
		return e.Int, nil
	case event.ValueFractional:
		return e.Float, nil
	case event.ValueTrue:
		return true, nil
	case event.ValueFalse:
		return false, nil
	case event.ValueNull:
		return nil, nil
	default:
		return nil, errUnexpectedEvent(e)
	}
}

func foldObject(p *parser.Parser) (map[string]any, error) {
	obj := map[string]any{}
	for {
		e, err := p.NextEvent()
		if err != nil {
			return nil, err
		}
		if e.Kind == event.EndObject {
			return obj, nil
		}
		if e.Kind != event.FieldName {
			return nil, errUnexpectedEvent(e)
		}
		name := e.Text
		ve, err := p.NextEvent()
		if err != nil {
			return nil, err
		}
		v, err := foldOne(p, ve)
		if err != nil {
			return nil, err
		}
		obj[name] = v
	}
}

func foldArray(p *parser.Parser) ([]any, error) {
	var items []any
	for {
		e, err := p.NextEvent()
		if err != nil {
			return nil, err
		}
		if e.Kind == event.EndArray {
			return items, nil
		}
		v, err := foldOne(p, e)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func errUnexpectedEvent(e event.Event) error {
	return &unmarshalError{msg: "toon: unexpected event " + e.String()}
}

func errUnexpectedTrailingEvent(e event.Event) error {
	return &unmarshalError{msg: "toon: unexpected trailing content at " + e.String()}
}

type unmarshalError struct{ msg string }

func (e *unmarshalError) Error() string { return e.msg }
