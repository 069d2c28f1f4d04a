package algebra

import (
	"encoding/json"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/term"
)

// The operation tree is the engine's external input (a plain nested-record
// structure), so it round-trips through a kind-discriminated JSON form.
// The same encoding doubles as the deterministic fingerprint the query
// result cache keys on.

type patternTermJSON struct {
	Variable string          `json:"variable,omitempty"`
	Term     json.RawMessage `json:"term,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (pt PatternTerm) MarshalJSON() ([]byte, error) {
	wire := patternTermJSON{Variable: pt.Variable}
	if pt.Term != nil {
		data, err := json.Marshal(pt.Term)
		if err != nil {
			return nil, err
		}
		wire.Term = data
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
func (pt *PatternTerm) UnmarshalJSON(data []byte) error {
	var wire patternTermJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.WrapInvalid(err, "PatternTerm", "UnmarshalJSON", "decoding")
	}

	pt.Variable = wire.Variable
	pt.Term = nil
	if len(wire.Term) > 0 {
		t, err := term.Unmarshal(wire.Term)
		if err != nil {
			return err
		}
		pt.Term = t
	}
	return nil
}

type operationJSON struct {
	Kind        OpKind             `json:"kind"`
	Pattern     *TriplePattern     `json:"pattern,omitempty"`
	Expr        *LogicalExpression `json:"expr,omitempty"`
	Left        *Operation         `json:"left,omitempty"`
	Right       *Operation         `json:"right,omitempty"`
	Child       *Operation         `json:"child,omitempty"`
	Variables   []string           `json:"variables,omitempty"`
	Comparators []Comparator       `json:"comparators,omitempty"`
	Offset      *int               `json:"offset,omitempty"`
	Limit       *int               `json:"limit,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (op *Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(operationJSON{
		Kind:        op.Kind,
		Pattern:     op.Pattern,
		Expr:        op.Expr,
		Left:        op.Left,
		Right:       op.Right,
		Child:       op.Child,
		Variables:   op.Variables,
		Comparators: op.Comparators,
		Offset:      op.Offset,
		Limit:       op.Limit,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Structural validation is a
// separate step: call Validate on the decoded tree before evaluating it.
func (op *Operation) UnmarshalJSON(data []byte) error {
	var wire operationJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.WrapInvalid(err, "Operation", "UnmarshalJSON", "decoding")
	}

	*op = Operation{
		Kind:        wire.Kind,
		Pattern:     wire.Pattern,
		Expr:        wire.Expr,
		Left:        wire.Left,
		Right:       wire.Right,
		Child:       wire.Child,
		Variables:   wire.Variables,
		Comparators: wire.Comparators,
		Offset:      wire.Offset,
		Limit:       wire.Limit,
	}
	return nil
}

// Fingerprint returns the canonical JSON encoding of the tree, used as a
// cache key. Two structurally identical trees produce identical
// fingerprints.
func (op *Operation) Fingerprint() (string, error) {
	data, err := json.Marshal(op)
	if err != nil {
		return "", errors.WrapInvalid(err, "Operation", "Fingerprint", "encoding")
	}
	return string(data), nil
}
