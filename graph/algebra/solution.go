// Package algebra defines the query plan handed to the evaluator: the
// closed set of operation node kinds and the solution mappings that flow
// between them.
package algebra

import (
	"sort"
	"strings"

	"github.com/c360/semgraph/term"
)

// Binding pairs a variable name with the term bound to it.
type Binding struct {
	Variable string
	Term     term.Term
}

// Solution is an ordered, variable-unique mapping from variable names to
// terms. Solutions are immutable once produced: combination steps return
// new solutions rather than mutating either input.
type Solution struct {
	bindings []Binding
}

// NewSolution creates an empty solution.
func NewSolution() *Solution {
	return &Solution{}
}

// Get returns the term bound to a variable, or false when unbound.
func (s *Solution) Get(variable string) (term.Term, bool) {
	for _, b := range s.bindings {
		if b.Variable == variable {
			return b.Term, true
		}
	}
	return nil, false
}

// Bind returns a new solution extended with the given binding. Binding a
// variable that is already bound to an equal term returns the receiver's
// bindings unchanged; binding it to a different term returns false, which
// callers treat as "this combination yields no row".
func (s *Solution) Bind(variable string, t term.Term) (*Solution, bool) {
	if existing, ok := s.Get(variable); ok {
		if term.Equal(existing, t) {
			return s, true
		}
		return nil, false
	}

	next := make([]Binding, len(s.bindings), len(s.bindings)+1)
	copy(next, s.bindings)
	next = append(next, Binding{Variable: variable, Term: t})
	return &Solution{bindings: next}, true
}

// Merge returns the union of bindings when the two solutions are
// merge-compatible: every shared variable bound to an equal term. An
// incompatible merge returns false; it is a data condition, not an error.
func (s *Solution) Merge(other *Solution) (*Solution, bool) {
	if other == nil {
		return s, true
	}

	merged := s
	for _, b := range other.bindings {
		next, ok := merged.Bind(b.Variable, b.Term)
		if !ok {
			return nil, false
		}
		merged = next
	}
	return merged, true
}

// Compatible reports merge-compatibility without building the merged
// solution.
func (s *Solution) Compatible(other *Solution) bool {
	if other == nil {
		return true
	}
	for _, b := range other.bindings {
		if existing, ok := s.Get(b.Variable); ok && !term.Equal(existing, b.Term) {
			return false
		}
	}
	return true
}

// Len returns the number of bindings.
func (s *Solution) Len() int {
	return len(s.bindings)
}

// Variables returns the bound variable names in insertion order.
func (s *Solution) Variables() []string {
	out := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		out[i] = b.Variable
	}
	return out
}

// Bindings returns a copy of the bindings in insertion order.
func (s *Solution) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// Project returns a new solution narrowed to the named variables,
// preserving their order of appearance in vars. Unbound names are simply
// absent from the result. Projection narrowing happens at result
// formatting, not during evaluation.
func (s *Solution) Project(vars []string) *Solution {
	out := NewSolution()
	for _, v := range vars {
		if t, ok := s.Get(v); ok {
			out, _ = out.Bind(v, t)
		}
	}
	return out
}

// CanonicalForm returns a deterministic encoding of the bindings: variable
// names sorted, each paired with its term's canonical string. Two
// solutions with identical bindings produce identical forms regardless of
// insertion order. Used by Distinct.
func (s *Solution) CanonicalForm() string {
	parts := make([]string, len(s.bindings))
	for i, b := range s.bindings {
		parts[i] = b.Variable + "=" + b.Term.Canonical()
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// JoinKey encodes the values of the named variables in the given order.
// Returns false when any of the variables is unbound, in which case the
// solution cannot be bucketed by the join's shared-variable index and
// must be checked pairwise instead.
func (s *Solution) JoinKey(vars []string) (string, bool) {
	var sb strings.Builder
	for _, v := range vars {
		t, ok := s.Get(v)
		if !ok {
			return "", false
		}
		sb.WriteString(t.Canonical())
		sb.WriteByte('|')
	}
	return sb.String(), true
}
