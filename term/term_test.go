package term

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/vocabulary"
)

func TestIRIEquality(t *testing.T) {
	a := NewIRI("https://example.org/alice")
	b := NewIRI("https://example.org/alice")
	c := NewIRI("https://example.org/bob")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	// An IRI never equals a literal carrying the same string.
	assert.False(t, a.Equal(NewLiteral("https://example.org/alice")))
}

func TestBlankNodeEquality(t *testing.T) {
	a := NewBlankNodeWithLabel("b0")
	b := NewBlankNodeWithLabel("b0")
	c := NewBlankNodeWithLabel("b1")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(NewIRI("b0")))
}

func TestNewBlankNodeGeneratesUniqueLabels(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		bn := NewBlankNode()
		require.NotEmpty(t, bn.Label)
		assert.False(t, seen[bn.Label], "duplicate blank node label %q", bn.Label)
		seen[bn.Label] = true
	}
}

func TestLiteralEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b Literal
		want bool
	}{
		{"same plain", NewLiteral("x"), NewLiteral("x"), true},
		{"different value", NewLiteral("x"), NewLiteral("y"), false},
		{"plain vs typed", NewLiteral("5"), NewTypedLiteral("5", vocabulary.XSDInteger), false},
		{"same typed", NewTypedLiteral("5", vocabulary.XSDInteger), NewTypedLiteral("5", vocabulary.XSDInteger), true},
		{"different datatype", NewTypedLiteral("5", vocabulary.XSDInteger), NewTypedLiteral("5", vocabulary.XSDDecimal), false},
		{"same lang", NewLangLiteral("chat", "fr"), NewLangLiteral("chat", "fr"), true},
		{"different lang", NewLangLiteral("chat", "fr"), NewLangLiteral("chat", "en"), false},
		{"lang vs plain", NewLangLiteral("chat", "fr"), NewLiteral("chat"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestLiteralValidate(t *testing.T) {
	assert.NoError(t, NewLiteral("x").Validate())
	assert.NoError(t, NewTypedLiteral("5", vocabulary.XSDInteger).Validate())
	assert.NoError(t, NewLangLiteral("chat", "fr").Validate())

	both := Literal{Val: "x", Datatype: vocabulary.XSDString, Language: "en"}
	err := both.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestCanonicalForms(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"iri", NewIRI("https://example.org/alice"), "<https://example.org/alice>"},
		{"blank", NewBlankNodeWithLabel("b7"), "_:b7"},
		{"plain literal", NewLiteral("hello"), `"hello"`},
		{"typed literal", NewTypedLiteral("5", vocabulary.XSDInteger),
			`"5"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"lang literal", NewLangLiteral("chat", "fr"), `"chat"@fr`},
		{"escaped quotes", NewLiteral(`say "hi"`), `"say \"hi\""`},
		{"escaped newline", NewLiteral("a\nb"), `"a\nb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.Canonical())
		})
	}
}

func TestCanonicalDistinguishesVariants(t *testing.T) {
	// The same raw string must canonicalize differently per variant so
	// index keys never collide across kinds.
	forms := map[string]bool{
		NewIRI("x").Canonical():                true,
		NewBlankNodeWithLabel("x").Canonical(): true,
		NewLiteral("x").Canonical():            true,
	}
	assert.Len(t, forms, 3)
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		name    string
		term    Term
		want    float64
		numeric bool
	}{
		{"untyped numeric", NewLiteral("10"), 10, true},
		{"untyped decimal", NewLiteral("2.5"), 2.5, true},
		{"typed integer", NewInteger(42), 42, true},
		{"typed decimal", NewDecimal(1.25), 1.25, true},
		{"untyped non-numeric", NewLiteral("abc"), 0, false},
		{"string typed number", NewTypedLiteral("10", vocabulary.XSDString), 0, false},
		{"lang tagged number", NewLangLiteral("10", "en"), 0, false},
		{"iri", NewIRI("10"), 0, false},
		{"blank", NewBlankNodeWithLabel("10"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumericValue(tt.term)
			assert.Equal(t, tt.numeric, ok)
			if tt.numeric {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	// Numeric when both sides are numeric: 2 < 10.
	assert.Equal(t, -1, Compare(NewLiteral("2"), NewLiteral("10")))
	// Lexicographic otherwise: "10" < "2".
	assert.Equal(t, -1, Compare(NewLiteral("10"), NewLiteral("2x")))
	assert.Equal(t, 0, Compare(NewLiteral("a"), NewLiteral("a")))
	assert.Equal(t, 1, Compare(NewLiteral("b"), NewLiteral("a")))
}

func TestEqualNilTolerant(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(NewIRI("x"), nil))
	assert.False(t, Equal(nil, NewIRI("x")))
	assert.True(t, Equal(NewIRI("x"), NewIRI("x")))
}

func TestJSONRoundTrip(t *testing.T) {
	terms := []Term{
		NewIRI("https://example.org/alice"),
		NewBlankNodeWithLabel("b3"),
		NewLiteral("plain"),
		NewTypedLiteral("5", vocabulary.XSDInteger),
		NewLangLiteral("chat", "fr"),
	}

	for _, original := range terms {
		data, err := json.Marshal(original)
		require.NoError(t, err)

		decoded, err := Unmarshal(data)
		require.NoError(t, err)
		assert.True(t, original.Equal(decoded), "round trip changed %s", original.Canonical())
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", `{"kind":"variable","value":"x"}`},
		{"empty iri", `{"kind":"iri","value":""}`},
		{"empty blank label", `{"kind":"blank","value":""}`},
		{"datatype and language", `{"kind":"literal","value":"x","datatype":"d","language":"en"}`},
		{"not json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}
