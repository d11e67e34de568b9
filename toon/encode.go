package toon

import (
	"fmt"

	"github.com/lhchen/toon/event"
	"github.com/lhchen/toon/generator"
)

// emitValue walks a decoded-shape Go value (the same shapes Unmarshal
// produces: map[string]any, []any, string, int64, float64, bool, nil) and
// feeds the generator the events it describes. Plain int and float32 are
// also accepted and widened to int64/float64, so a caller building values
// by hand doesn't have to cast every literal; any other type, including
// other integer widths such as int32 or uint, is rejected with an error.
func emitValue(g *generator.Generator, v any) error {
	switch val := v.(type) {
	case map[string]any:
		return emitObject(g, val)
	case []any:
		return emitArray(g, val)
	case string:
		return g.Emit(event.Event{Kind: event.ValueString, Text: val})
	case bool:
		if val {
			return g.Emit(event.Event{Kind: event.ValueTrue})
		}
		return g.Emit(event.Event{Kind: event.ValueFalse})
	case nil:
		return g.Emit(event.Event{Kind: event.ValueNull})
	case int:
		return g.Emit(event.Event{Kind: event.ValueIntegral, Int: int64(val)})
	case int64:
		return g.Emit(event.Event{Kind: event.ValueIntegral, Int: val})
	case float32:
		return g.Emit(event.Event{Kind: event.ValueFractional, Float: float64(val)})
	case float64:
		return g.Emit(event.Event{Kind: event.ValueFractional, Float: val})
	default:
		return fmt.Errorf("toon: cannot marshal value of type %T", v)
	}
}

// emitObject always wraps the object in StartObject/EndObject, even at
// the document root: spec §4.4's root-level object is the same
// StartObject/EndObject pair the parser produces for "{}"-shaped input,
// no special-cased top-level form.
//
// Go map iteration order is unspecified; field order in the generated
// text for a map[string]any is therefore unspecified too. Callers who
// need deterministic field order should drive the generator's Emit
// directly with an ordered sequence of FieldName events instead of
// going through Marshal.
func emitObject(g *generator.Generator, obj map[string]any) error {
	if err := g.Emit(event.Event{Kind: event.StartObject}); err != nil {
		return err
	}
	for name, v := range obj {
		if err := g.Emit(event.Event{Kind: event.FieldName, Text: name}); err != nil {
			return err
		}
		if err := emitValue(g, v); err != nil {
			return err
		}
	}
	return g.Emit(event.Event{Kind: event.EndObject})
}

func emitArray(g *generator.Generator, items []any) error {
	if err := g.Emit(event.Event{Kind: event.StartArray, HasSize: true, Int: int64(len(items))}); err != nil {
		return err
	}
	for _, v := range items {
		if err := emitValue(g, v); err != nil {
			return err
		}
	}
	return g.Emit(event.Event{Kind: event.EndArray})
}
