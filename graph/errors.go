// Package graph provides the indexed in-memory fact store.
package graph

import "errors"

// Sentinel errors for store operations. These are wrapped with behavioral
// classification (Invalid/Fatal) when returned from the store.

var (
	// ErrNilSubject indicates a fact with no subject term
	ErrNilSubject = errors.New("fact subject is nil")

	// ErrNilPredicate indicates a fact with no predicate term
	ErrNilPredicate = errors.New("fact predicate is nil")

	// ErrNilObject indicates a fact with no object term
	ErrNilObject = errors.New("fact object is nil")

	// ErrSubjectKind indicates a subject that is neither an IRI nor a blank node
	ErrSubjectKind = errors.New("fact subject must be an IRI or blank node")

	// ErrPredicateKind indicates a predicate that is not an IRI
	ErrPredicateKind = errors.New("fact predicate must be an IRI")

	// ErrSizeMismatch indicates the three indices disagree on fact count
	ErrSizeMismatch = errors.New("index sizes disagree")

	// ErrOrphanEntry indicates an index entry with no canonical fact,
	// or a canonical fact missing from an index
	ErrOrphanEntry = errors.New("orphan index entry")
)
