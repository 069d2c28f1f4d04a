// Package term defines the closed set of RDF-style terms that appear in
// facts: IRI references, blank nodes, and literals. Terms are immutable
// value objects; equality and the canonical string form are the basis for
// store index keys and solution deduplication.
package term

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/vocabulary"
)

// Kind discriminates the three term variants.
type Kind string

const (
	// KindIRI is an absolute identifier reference. Equality is exact
	// string equality.
	KindIRI Kind = "iri"

	// KindBlank is a locally-scoped anonymous node. Equality is
	// identity-by-label within one store.
	KindBlank Kind = "blank"

	// KindLiteral is a value string with an optional datatype IRI or
	// language tag (mutually exclusive).
	KindLiteral Kind = "literal"
)

// Term is the closed interface over the three term variants. Only IRI,
// BlankNode, and Literal implement it.
type Term interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Value returns the identifier or literal value string.
	Value() string

	// Equal reports value equality with another term per the rules of
	// the variant.
	Equal(other Term) bool

	// Canonical returns the deterministic string form used as index keys
	// and in solution canonicalization. The encoding follows N-Triples:
	// <iri>, _:label, "value", "value"@lang, "value"^^<datatype>.
	Canonical() string

	sealed()
}

// IRI is an absolute identifier reference.
type IRI struct {
	ID string
}

// NewIRI creates an IRI term.
func NewIRI(id string) IRI {
	return IRI{ID: id}
}

func (i IRI) Kind() Kind    { return KindIRI }
func (i IRI) Value() string { return i.ID }
func (i IRI) sealed()       {}

// Equal reports exact identifier equality with another IRI.
func (i IRI) Equal(other Term) bool {
	o, ok := other.(IRI)
	return ok && o.ID == i.ID
}

// Canonical returns the N-Triples form "<iri>".
func (i IRI) Canonical() string {
	return "<" + i.ID + ">"
}

// String implements fmt.Stringer.
func (i IRI) String() string { return i.Canonical() }

// BlankNode is an anonymous node identified by a store-local label.
type BlankNode struct {
	Label string
}

// NewBlankNode generates a fresh blank node with a unique label.
func NewBlankNode() BlankNode {
	return BlankNode{Label: "b" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// NewBlankNodeWithLabel creates a blank node with an explicit label, for
// callers that manage their own label scopes (e.g., document loaders).
func NewBlankNodeWithLabel(label string) BlankNode {
	return BlankNode{Label: label}
}

func (b BlankNode) Kind() Kind    { return KindBlank }
func (b BlankNode) Value() string { return b.Label }
func (b BlankNode) sealed()       {}

// Equal reports label identity with another blank node.
func (b BlankNode) Equal(other Term) bool {
	o, ok := other.(BlankNode)
	return ok && o.Label == b.Label
}

// Canonical returns the N-Triples form "_:label".
func (b BlankNode) Canonical() string {
	return "_:" + b.Label
}

// String implements fmt.Stringer.
func (b BlankNode) String() string { return b.Canonical() }

// Literal is a value string with an optional datatype IRI or language tag.
type Literal struct {
	Val      string
	Datatype string
	Language string
}

// NewLiteral creates a plain literal with no datatype or language.
func NewLiteral(value string) Literal {
	return Literal{Val: value}
}

// NewTypedLiteral creates a literal with a datatype IRI.
func NewTypedLiteral(value, datatype string) Literal {
	return Literal{Val: value, Datatype: datatype}
}

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(value, language string) Literal {
	return Literal{Val: value, Language: language}
}

// NewInteger creates an xsd:integer literal from an int64.
func NewInteger(v int64) Literal {
	return Literal{Val: strconv.FormatInt(v, 10), Datatype: vocabulary.XSDInteger}
}

// NewDecimal creates an xsd:decimal literal from a float64.
func NewDecimal(v float64) Literal {
	return Literal{Val: strconv.FormatFloat(v, 'f', -1, 64), Datatype: vocabulary.XSDDecimal}
}

// NewBoolean creates an xsd:boolean literal.
func NewBoolean(v bool) Literal {
	return Literal{Val: strconv.FormatBool(v), Datatype: vocabulary.XSDBoolean}
}

func (l Literal) Kind() Kind    { return KindLiteral }
func (l Literal) Value() string { return l.Val }
func (l Literal) sealed()       {}

// Equal requires value, datatype, and language to all match.
func (l Literal) Equal(other Term) bool {
	o, ok := other.(Literal)
	return ok && o.Val == l.Val && o.Datatype == l.Datatype && o.Language == l.Language
}

// Canonical returns the N-Triples literal form with the value quoted and
// escaped, followed by @lang or ^^<datatype> when present.
func (l Literal) Canonical() string {
	var sb strings.Builder
	sb.WriteByte('"')
	sb.WriteString(escapeLiteral(l.Val))
	sb.WriteByte('"')
	if l.Language != "" {
		sb.WriteByte('@')
		sb.WriteString(l.Language)
	} else if l.Datatype != "" {
		sb.WriteString("^^<")
		sb.WriteString(l.Datatype)
		sb.WriteByte('>')
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (l Literal) String() string { return l.Canonical() }

// Validate checks the mutual exclusion of datatype and language tag.
func (l Literal) Validate() error {
	if l.Datatype != "" && l.Language != "" {
		return errors.WrapInvalid(errors.ErrInvalidTerm, "Literal", "Validate",
			"datatype and language tag are mutually exclusive")
	}
	return nil
}

// escapeLiteral applies the N-Triples string escapes needed for the
// canonical form to remain unambiguous.
func escapeLiteral(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r\t") {
		return s
	}
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// Equal is a nil-tolerant term comparison. Two nil terms are equal; a nil
// term never equals a non-nil term.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// NumericValue attempts to interpret a term as a number. Literals parse
// their value string; IRIs and blank nodes are never numeric. Untyped
// literals are numeric when their value parses, matching the evaluator's
// "numeric values compare numerically, otherwise lexicographically" rule.
func NumericValue(t Term) (float64, bool) {
	lit, ok := t.(Literal)
	if !ok {
		return 0, false
	}
	if lit.Language != "" {
		return 0, false
	}
	if lit.Datatype != "" && !vocabulary.IsNumericDatatype(lit.Datatype) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(lit.Val), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Compare orders two terms for ORDER BY evaluation: numeric comparison
// when both sides are numeric, lexicographic comparison of value strings
// otherwise. Returns -1, 0, or 1.
func Compare(a, b Term) int {
	an, aok := NumericValue(a)
	bn, bok := NumericValue(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.Value(), b.Value())
}
