// Package event defines the shared event vocabulary produced by the
// parser and consumed by the generator (spec §6.2).
package event

import "fmt"

// Kind tags an Event.
type Kind int

const (
	StartObject Kind = iota
	EndObject
	StartArray
	EndArray
	FieldName
	ValueString
	ValueIntegral
	ValueFractional
	ValueTrue
	ValueFalse
	ValueNull
	Eof
)

func (k Kind) String() string {
	switch k {
	case StartObject:
		return "StartObject"
	case EndObject:
		return "EndObject"
	case StartArray:
		return "StartArray"
	case EndArray:
		return "EndArray"
	case FieldName:
		return "FieldName"
	case ValueString:
		return "ValueString"
	case ValueIntegral:
		return "ValueIntegral"
	case ValueFractional:
		return "ValueFractional"
	case ValueTrue:
		return "ValueTrue"
	case ValueFalse:
		return "ValueFalse"
	case ValueNull:
		return "ValueNull"
	case Eof:
		return "Eof"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is a single unit of the parser<->generator vocabulary. Text holds
// a FieldName's name or a ValueString's text. Int/Float hold the parsed
// scalar for ValueIntegral/ValueFractional. HasSize/Int double as the
// optional size hint on a StartArray event (the "StartArray(size)
// surface" of spec §4.4.3); HasSize is false when the array's length is
// not known up front, in which case the generator buffers elements.
type Event struct {
	Kind    Kind
	Text    string
	Int     int64
	Float   float64
	HasSize bool
}

func (e Event) String() string {
	switch e.Kind {
	case FieldName, ValueString:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	case ValueIntegral:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Int)
	case ValueFractional:
		return fmt.Sprintf("%s(%g)", e.Kind, e.Float)
	case StartArray:
		if e.HasSize {
			return fmt.Sprintf("%s(%d)", e.Kind, e.Int)
		}
		return e.Kind.String()
	default:
		return e.Kind.String()
	}
}
