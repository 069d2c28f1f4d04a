package term

import (
	"encoding/json"
	"fmt"

	"github.com/c360/semgraph/errors"
)

// termJSON is the wire form shared by all three variants. The kind field
// discriminates; datatype and language only appear for literals.
type termJSON struct {
	Kind     Kind   `json:"kind"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Language string `json:"language,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (i IRI) MarshalJSON() ([]byte, error) {
	return json.Marshal(termJSON{Kind: KindIRI, Value: i.ID})
}

// MarshalJSON implements json.Marshaler.
func (b BlankNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(termJSON{Kind: KindBlank, Value: b.Label})
}

// MarshalJSON implements json.Marshaler.
func (l Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(termJSON{
		Kind:     KindLiteral,
		Value:    l.Val,
		Datatype: l.Datatype,
		Language: l.Language,
	})
}

// Unmarshal decodes a term from its kind-discriminated JSON form.
func Unmarshal(data []byte) (Term, error) {
	var tj termJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return nil, errors.WrapInvalid(err, "term", "Unmarshal", "JSON decoding")
	}
	return fromWire(tj)
}

func fromWire(tj termJSON) (Term, error) {
	switch tj.Kind {
	case KindIRI:
		if tj.Value == "" {
			return nil, errors.WrapInvalid(errors.ErrInvalidTerm, "term", "Unmarshal",
				"IRI with empty value")
		}
		return IRI{ID: tj.Value}, nil
	case KindBlank:
		if tj.Value == "" {
			return nil, errors.WrapInvalid(errors.ErrInvalidTerm, "term", "Unmarshal",
				"blank node with empty label")
		}
		return BlankNode{Label: tj.Value}, nil
	case KindLiteral:
		lit := Literal{Val: tj.Value, Datatype: tj.Datatype, Language: tj.Language}
		if err := lit.Validate(); err != nil {
			return nil, err
		}
		return lit, nil
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: kind %q", errors.ErrInvalidTerm, tj.Kind),
			"term", "Unmarshal", "kind dispatch")
	}
}
