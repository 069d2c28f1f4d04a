package graph

import (
	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/term"
)

// Fact is an immutable subject-predicate-object assertion. Facts are value
// objects: two facts are equal iff all three positions are equal. Facts
// never change in place; mutation is remove-then-add.
type Fact struct {
	Subject   term.Term
	Predicate term.Term
	Object    term.Term
}

// NewFact creates a fact after structural validation: the subject must be
// an IRI or blank node, the predicate an IRI, and the object any term.
// Literal objects additionally enforce the datatype/language exclusion.
func NewFact(subject, predicate, object term.Term) (Fact, error) {
	f := Fact{Subject: subject, Predicate: predicate, Object: object}
	if err := f.Validate(); err != nil {
		return Fact{}, err
	}
	return f, nil
}

// MustFact creates a fact and panics on structural invalidity. Intended
// for tests and static vocabularies where the inputs are known.
func MustFact(subject, predicate, object term.Term) Fact {
	f, err := NewFact(subject, predicate, object)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate checks the structural constraints on the fact's positions.
func (f Fact) Validate() error {
	switch {
	case f.Subject == nil:
		return errors.WrapInvalid(ErrNilSubject, "Fact", "Validate", "subject check")
	case f.Predicate == nil:
		return errors.WrapInvalid(ErrNilPredicate, "Fact", "Validate", "predicate check")
	case f.Object == nil:
		return errors.WrapInvalid(ErrNilObject, "Fact", "Validate", "object check")
	}

	if k := f.Subject.Kind(); k != term.KindIRI && k != term.KindBlank {
		return errors.WrapInvalid(ErrSubjectKind, "Fact", "Validate", "subject kind check")
	}
	if f.Predicate.Kind() != term.KindIRI {
		return errors.WrapInvalid(ErrPredicateKind, "Fact", "Validate", "predicate kind check")
	}

	if lit, ok := f.Object.(term.Literal); ok {
		if err := lit.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Equal reports value equality across all three positions.
func (f Fact) Equal(other Fact) bool {
	return term.Equal(f.Subject, other.Subject) &&
		term.Equal(f.Predicate, other.Predicate) &&
		term.Equal(f.Object, other.Object)
}

// Key returns the canonical encoding of the whole fact, used as the key of
// the canonical fact set and in consistency checks.
func (f Fact) Key() string {
	return f.Subject.Canonical() + " " + f.Predicate.Canonical() + " " + f.Object.Canonical()
}

// String implements fmt.Stringer with the N-Triples statement form.
func (f Fact) String() string {
	return f.Key() + " ."
}
