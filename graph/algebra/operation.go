package algebra

import (
	"fmt"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/term"
)

// OpKind tags the closed set of operation node kinds. The evaluator
// dispatches on the tag with an exhaustive switch; an unrecognized kind is
// a construction defect, not a data condition.
type OpKind string

const (
	OpPattern    OpKind = "pattern"
	OpFilter     OpKind = "filter"
	OpJoin       OpKind = "join"
	OpOptional   OpKind = "optional"
	OpUnion      OpKind = "union"
	OpProjection OpKind = "projection"
	OpOrder      OpKind = "order"
	OpSlice      OpKind = "slice"
	OpDistinct   OpKind = "distinct"
)

// PatternTerm is one slot of a triple pattern: either a variable name or a
// bound term, never both.
type PatternTerm struct {
	Variable string
	Term     term.Term
}

// Var creates a variable pattern slot.
func Var(name string) PatternTerm {
	return PatternTerm{Variable: name}
}

// Bound creates a bound pattern slot.
func Bound(t term.Term) PatternTerm {
	return PatternTerm{Term: t}
}

// IsVariable reports whether the slot is a variable.
func (pt PatternTerm) IsVariable() bool {
	return pt.Variable != ""
}

// TriplePattern is a triple template: some positions bound to terms,
// others left as variables.
type TriplePattern struct {
	Subject   PatternTerm `json:"subject"`
	Predicate PatternTerm `json:"predicate"`
	Object    PatternTerm `json:"object"`
}

// Comparator is one ORDER BY key: the variable whose bound value is
// compared, and the sort direction.
type Comparator struct {
	Variable   string `json:"variable"`
	Descending bool   `json:"descending,omitempty"`
}

// Operation is one node of the declarative query plan. The Kind tag
// selects the variant; only the fields belonging to that variant are set.
// The tree is read-only input to the evaluator and is never mutated during
// evaluation.
type Operation struct {
	Kind OpKind

	// Pattern
	Pattern *TriplePattern

	// Filter
	Expr *LogicalExpression

	// Join, Optional, Union
	Left  *Operation
	Right *Operation

	// Filter, Projection, Order, Slice, Distinct
	Child *Operation

	// Projection
	Variables []string

	// Order
	Comparators []Comparator

	// Slice; nil means unbounded
	Offset *int
	Limit  *int
}

// NewPattern creates a pattern leaf.
func NewPattern(subject, predicate, object PatternTerm) *Operation {
	return &Operation{
		Kind:    OpPattern,
		Pattern: &TriplePattern{Subject: subject, Predicate: predicate, Object: object},
	}
}

// NewFilter creates a filter over a child operation.
func NewFilter(expr LogicalExpression, child *Operation) *Operation {
	return &Operation{Kind: OpFilter, Expr: &expr, Child: child}
}

// NewJoin creates an inner join of two operations.
func NewJoin(left, right *Operation) *Operation {
	return &Operation{Kind: OpJoin, Left: left, Right: right}
}

// NewOptional creates a left outer join: left solutions survive even when
// nothing on the right is compatible.
func NewOptional(left, right *Operation) *Operation {
	return &Operation{Kind: OpOptional, Left: left, Right: right}
}

// NewUnion creates a union that concatenates both branches, preserving
// duplicates.
func NewUnion(left, right *Operation) *Operation {
	return &Operation{Kind: OpUnion, Left: left, Right: right}
}

// NewProjection names the variables that external formatting narrows to.
// During evaluation projection is a pass-through so downstream operations
// still see all bindings.
func NewProjection(variables []string, child *Operation) *Operation {
	return &Operation{Kind: OpProjection, Variables: variables, Child: child}
}

// NewOrder creates a multi-key ordering over a child operation.
func NewOrder(comparators []Comparator, child *Operation) *Operation {
	return &Operation{Kind: OpOrder, Comparators: comparators, Child: child}
}

// NewSlice creates an offset/limit window. Either bound may be nil.
func NewSlice(offset, limit *int, child *Operation) *Operation {
	return &Operation{Kind: OpSlice, Offset: offset, Limit: limit, Child: child}
}

// NewDistinct creates a deduplication pass over a child operation.
func NewDistinct(child *Operation) *Operation {
	return &Operation{Kind: OpDistinct, Child: child}
}

// Validate checks the structural well-formedness of the tree: every node
// carries the children and parameters its kind requires. Semantic
// conditions (empty matches, incompatible merges) are not errors and are
// not checked here.
func (op *Operation) Validate() error {
	if op == nil {
		return errors.WrapInvalid(errors.ErrNilOperation, "Operation", "Validate", "node check")
	}

	switch op.Kind {
	case OpPattern:
		if op.Pattern == nil {
			return invalidNode(op.Kind, "missing pattern")
		}
		for _, slot := range []PatternTerm{op.Pattern.Subject, op.Pattern.Predicate, op.Pattern.Object} {
			if slot.Variable == "" && slot.Term == nil {
				return invalidNode(op.Kind, "pattern slot has neither variable nor term")
			}
			if slot.Variable != "" && slot.Term != nil {
				return invalidNode(op.Kind, "pattern slot has both variable and term")
			}
		}
		return nil
	case OpFilter:
		if op.Expr == nil {
			return invalidNode(op.Kind, "missing expression")
		}
		return validateChild(op)
	case OpJoin, OpOptional, OpUnion:
		if op.Left == nil || op.Right == nil {
			return invalidNode(op.Kind, "missing child operation")
		}
		if err := op.Left.Validate(); err != nil {
			return err
		}
		return op.Right.Validate()
	case OpProjection, OpDistinct:
		return validateChild(op)
	case OpOrder:
		if len(op.Comparators) == 0 {
			return invalidNode(op.Kind, "missing comparators")
		}
		for _, c := range op.Comparators {
			if c.Variable == "" {
				return invalidNode(op.Kind, "comparator with empty variable")
			}
		}
		return validateChild(op)
	case OpSlice:
		if op.Offset != nil && *op.Offset < 0 {
			return invalidNode(op.Kind, "negative offset")
		}
		if op.Limit != nil && *op.Limit < 0 {
			return invalidNode(op.Kind, "negative limit")
		}
		return validateChild(op)
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrUnknownOperation, op.Kind),
			"Operation", "Validate", "kind dispatch")
	}
}

func validateChild(op *Operation) error {
	if op.Child == nil {
		return invalidNode(op.Kind, "missing child operation")
	}
	return op.Child.Validate()
}

func invalidNode(kind OpKind, detail string) error {
	return errors.WrapInvalid(
		fmt.Errorf("%s node: %s", kind, detail),
		"Operation", "Validate", "structure check")
}

// VisibleVariables returns the variable names a subtree can bind, in first
// appearance order. Used by the evaluator to compute the shared-variable
// set of a join statically, independent of the data.
func (op *Operation) VisibleVariables() []string {
	seen := make(map[string]bool)
	var out []string

	var walk func(*Operation)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	walk = func(node *Operation) {
		if node == nil {
			return
		}
		if node.Pattern != nil {
			add(node.Pattern.Subject.Variable)
			add(node.Pattern.Predicate.Variable)
			add(node.Pattern.Object.Variable)
		}
		walk(node.Left)
		walk(node.Right)
		walk(node.Child)
	}
	walk(op)
	return out
}

// SharedVariables returns the variables visible in both subtrees of a
// binary node, in the left subtree's appearance order.
func SharedVariables(left, right *Operation) []string {
	rightVars := make(map[string]bool)
	for _, v := range right.VisibleVariables() {
		rightVars[v] = true
	}

	var out []string
	for _, v := range left.VisibleVariables() {
		if rightVars[v] {
			out = append(out, v)
		}
	}
	return out
}
