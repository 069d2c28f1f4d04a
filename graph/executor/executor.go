// Package executor evaluates operation trees against a triple store
// using the pull-based iterator model. Each operation kind maps to an
// iterator; solutions flow upward one at a time so outer operations can
// stop consuming early.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/graph"
	"github.com/c360/semgraph/graph/algebra"
	"github.com/c360/semgraph/graph/expression"
	"github.com/c360/semgraph/term"
)

// Iterator is the pull-based stream of solutions produced by evaluating
// an operation. Next advances to the next solution; Solution returns the
// current one and is only valid after Next reports true. Err reports the
// first error encountered during iteration.
type Iterator interface {
	Next() bool
	Solution() *algebra.Solution
	Err() error
	Close() error
}

// MatchSource is the store capability the executor needs. Any position
// may be nil to act as a wildcard.
type MatchSource interface {
	Match(subject, predicate, object term.Term) []graph.Fact
}

// Executor turns operation trees into solution iterators.
type Executor struct {
	source    MatchSource
	evaluator *expression.Evaluator
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the executor's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an executor reading from the given source.
func New(source MatchSource, opts ...Option) *Executor {
	e := &Executor{
		source:    source,
		evaluator: expression.NewEvaluator(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns a lazy iterator over the solutions of the operation
// tree. The tree is validated before any iterator is built; a malformed
// tree is rejected up front rather than surfacing mid-stream.
func (e *Executor) Evaluate(op *algebra.Operation) (Iterator, error) {
	if op == nil {
		return nil, errors.WrapFatal(errors.ErrNilOperation, "Executor", "Evaluate", "operation check")
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	e.logger.Debug("evaluating operation", "kind", string(op.Kind))
	return e.createIterator(op)
}

// Collect evaluates the operation and drains the iterator into a slice,
// checking the context between solutions.
func (e *Executor) Collect(ctx context.Context, op *algebra.Operation) ([]*algebra.Solution, error) {
	iter, err := e.Evaluate(op)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var solutions []*algebra.Solution
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapTransient(err, "Executor", "Collect", "context check")
		}
		solutions = append(solutions, iter.Solution())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return solutions, nil
}

// createIterator dispatches on the operation kind. Validate has already
// run, so an unknown kind here is a construction defect.
func (e *Executor) createIterator(op *algebra.Operation) (Iterator, error) {
	switch op.Kind {
	case algebra.OpPattern:
		return e.createPatternIterator(op), nil

	case algebra.OpFilter:
		child, err := e.createIterator(op.Child)
		if err != nil {
			return nil, err
		}
		return &filterIterator{input: child, expr: *op.Expr, evaluator: e.evaluator}, nil

	case algebra.OpJoin:
		return e.createJoinIterator(op)

	case algebra.OpOptional:
		return e.createOptionalIterator(op)

	case algebra.OpUnion:
		left, err := e.createIterator(op.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.createIterator(op.Right)
		if err != nil {
			left.Close()
			return nil, err
		}
		return &unionIterator{left: left, right: right}, nil

	case algebra.OpProjection:
		child, err := e.createIterator(op.Child)
		if err != nil {
			return nil, err
		}
		// Projection is a pass-through during evaluation so downstream
		// operations still see every binding. Narrowing happens when
		// results are formatted.
		return &projectionIterator{input: child}, nil

	case algebra.OpOrder:
		child, err := e.createIterator(op.Child)
		if err != nil {
			return nil, err
		}
		return &orderIterator{input: child, comparators: op.Comparators}, nil

	case algebra.OpSlice:
		child, err := e.createIterator(op.Child)
		if err != nil {
			return nil, err
		}
		return &sliceIterator{input: child, offset: op.Offset, limit: op.Limit}, nil

	case algebra.OpDistinct:
		child, err := e.createIterator(op.Child)
		if err != nil {
			return nil, err
		}
		return &distinctIterator{input: child, seen: make(map[string]bool)}, nil

	default:
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %q", errors.ErrUnknownOperation, op.Kind),
			"Executor", "createIterator", "kind dispatch")
	}
}

func (e *Executor) createPatternIterator(op *algebra.Operation) Iterator {
	pattern := op.Pattern

	var subject, predicate, object term.Term
	if !pattern.Subject.IsVariable() {
		subject = pattern.Subject.Term
	}
	if !pattern.Predicate.IsVariable() {
		predicate = pattern.Predicate.Term
	}
	if !pattern.Object.IsVariable() {
		object = pattern.Object.Term
	}

	return &patternIterator{
		facts:   e.source.Match(subject, predicate, object),
		pattern: pattern,
	}
}

// createJoinIterator builds a hash join. The right side is materialized
// once and indexed by the statically computed shared variables, so the
// right subtree is never re-evaluated per left solution.
func (e *Executor) createJoinIterator(op *algebra.Operation) (Iterator, error) {
	left, err := e.createIterator(op.Left)
	if err != nil {
		return nil, err
	}
	return &joinIterator{
		left:       left,
		rightOp:    op.Right,
		executor:   e,
		sharedVars: algebra.SharedVariables(op.Left, op.Right),
	}, nil
}

// createOptionalIterator builds a left outer join over the same
// materialized right side as the inner join. Left solutions with no
// compatible right solution pass through unextended.
func (e *Executor) createOptionalIterator(op *algebra.Operation) (Iterator, error) {
	left, err := e.createIterator(op.Left)
	if err != nil {
		return nil, err
	}
	return &joinIterator{
		left:       left,
		rightOp:    op.Right,
		executor:   e,
		sharedVars: algebra.SharedVariables(op.Left, op.Right),
		leftOuter:  true,
	}, nil
}
