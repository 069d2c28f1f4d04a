package executor

import (
	"sort"

	"github.com/c360/semgraph/graph"
	"github.com/c360/semgraph/graph/algebra"
	"github.com/c360/semgraph/graph/expression"
	"github.com/c360/semgraph/term"
)

// patternIterator binds the pattern's variables against each matched
// fact. A variable repeated across positions must bind the same term in
// every position or the fact is skipped.
type patternIterator struct {
	facts    []graph.Fact
	pattern  *algebra.TriplePattern
	position int
	current  *algebra.Solution
}

func (it *patternIterator) Next() bool {
	for it.position < len(it.facts) {
		fact := it.facts[it.position]
		it.position++

		solution := algebra.NewSolution()
		valid := true

		for _, slot := range []struct {
			pt   algebra.PatternTerm
			term term.Term
		}{
			{it.pattern.Subject, fact.Subject},
			{it.pattern.Predicate, fact.Predicate},
			{it.pattern.Object, fact.Object},
		} {
			if !slot.pt.IsVariable() {
				continue
			}
			next, ok := solution.Bind(slot.pt.Variable, slot.term)
			if !ok {
				// Repeated variable bound to a different term.
				valid = false
				break
			}
			solution = next
		}

		if valid {
			it.current = solution
			return true
		}
	}
	return false
}

func (it *patternIterator) Solution() *algebra.Solution { return it.current }
func (it *patternIterator) Err() error                  { return nil }
func (it *patternIterator) Close() error                { return nil }

// filterIterator passes through solutions satisfying the expression.
// Evaluation errors stop the stream and surface through Err.
type filterIterator struct {
	input     Iterator
	expr      algebra.LogicalExpression
	evaluator *expression.Evaluator
	err       error
}

func (it *filterIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.input.Next() {
		ok, err := it.evaluator.Evaluate(it.input.Solution(), it.expr)
		if err != nil {
			it.err = err
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

func (it *filterIterator) Solution() *algebra.Solution { return it.input.Solution() }

func (it *filterIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.input.Err()
}

func (it *filterIterator) Close() error { return it.input.Close() }

// joinIterator implements the inner join and, with leftOuter set, the
// optional join. The right subtree is evaluated exactly once; its
// solutions are indexed by the join's shared variables so each left
// solution probes a bucket instead of rescanning the right side. Right
// solutions that leave a shared variable unbound cannot be bucketed and
// sit in a residual list checked pairwise.
type joinIterator struct {
	left       Iterator
	rightOp    *algebra.Operation
	executor   *Executor
	sharedVars []string
	leftOuter  bool

	built    bool
	buckets  map[string][]*algebra.Solution
	residual []*algebra.Solution
	rightAll []*algebra.Solution

	pending []*algebra.Solution
	current *algebra.Solution
	err     error
}

func (it *joinIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.built {
		if err := it.buildRightIndex(); err != nil {
			it.err = err
			return false
		}
		it.built = true
	}

	for {
		if len(it.pending) > 0 {
			it.current = it.pending[0]
			it.pending = it.pending[1:]
			return true
		}

		if !it.left.Next() {
			if err := it.left.Err(); err != nil {
				it.err = err
			}
			return false
		}

		leftSolution := it.left.Solution()
		candidates := it.candidatesFor(leftSolution)

		matched := false
		for _, rightSolution := range candidates {
			merged, ok := leftSolution.Merge(rightSolution)
			if !ok {
				continue
			}
			matched = true
			it.pending = append(it.pending, merged)
		}

		if !matched && it.leftOuter {
			it.pending = append(it.pending, leftSolution)
		}
	}
}

func (it *joinIterator) buildRightIndex() error {
	right, err := it.executor.createIterator(it.rightOp)
	if err != nil {
		return err
	}
	defer right.Close()

	it.buckets = make(map[string][]*algebra.Solution)
	for right.Next() {
		solution := right.Solution()
		it.rightAll = append(it.rightAll, solution)
		if key, ok := solution.JoinKey(it.sharedVars); ok {
			it.buckets[key] = append(it.buckets[key], solution)
		} else {
			it.residual = append(it.residual, solution)
		}
	}
	return right.Err()
}

// candidatesFor returns the right solutions worth merging against. When
// the left solution binds every shared variable the bucket plus the
// residual covers all possible matches; otherwise nothing can be ruled
// out and the full right side is scanned.
func (it *joinIterator) candidatesFor(left *algebra.Solution) []*algebra.Solution {
	key, ok := left.JoinKey(it.sharedVars)
	if !ok {
		return it.rightAll
	}
	bucket := it.buckets[key]
	if len(it.residual) == 0 {
		return bucket
	}
	candidates := make([]*algebra.Solution, 0, len(bucket)+len(it.residual))
	candidates = append(candidates, bucket...)
	candidates = append(candidates, it.residual...)
	return candidates
}

func (it *joinIterator) Solution() *algebra.Solution { return it.current }
func (it *joinIterator) Err() error                  { return it.err }
func (it *joinIterator) Close() error                { return it.left.Close() }

// unionIterator exhausts the left branch, then the right. Duplicates are
// preserved; Distinct is a separate operation.
type unionIterator struct {
	left     Iterator
	right    Iterator
	leftDone bool
	err      error
}

func (it *unionIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.leftDone {
		if it.left.Next() {
			return true
		}
		if err := it.left.Err(); err != nil {
			it.err = err
			return false
		}
		it.leftDone = true
	}
	if it.right.Next() {
		return true
	}
	if err := it.right.Err(); err != nil {
		it.err = err
	}
	return false
}

func (it *unionIterator) Solution() *algebra.Solution {
	if !it.leftDone {
		return it.left.Solution()
	}
	return it.right.Solution()
}

func (it *unionIterator) Err() error { return it.err }

func (it *unionIterator) Close() error {
	leftErr := it.left.Close()
	rightErr := it.right.Close()
	if leftErr != nil {
		return leftErr
	}
	return rightErr
}

// projectionIterator is a pass-through; narrowing to the projected
// variables happens at result formatting.
type projectionIterator struct {
	input Iterator
}

func (it *projectionIterator) Next() bool                  { return it.input.Next() }
func (it *projectionIterator) Solution() *algebra.Solution { return it.input.Solution() }
func (it *projectionIterator) Err() error                  { return it.input.Err() }
func (it *projectionIterator) Close() error                { return it.input.Close() }

// orderIterator materializes its input on the first Next and sorts it
// stably under the comparator list.
type orderIterator struct {
	input       Iterator
	comparators []algebra.Comparator

	built     bool
	solutions []*algebra.Solution
	position  int
	err       error
}

func (it *orderIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.built {
		for it.input.Next() {
			it.solutions = append(it.solutions, it.input.Solution())
		}
		if err := it.input.Err(); err != nil {
			it.err = err
			return false
		}
		it.sortSolutions()
		it.built = true
	}

	if it.position >= len(it.solutions) {
		return false
	}
	it.position++
	return true
}

func (it *orderIterator) sortSolutions() {
	sort.SliceStable(it.solutions, func(i, j int) bool {
		a, b := it.solutions[i], it.solutions[j]
		for _, comparator := range it.comparators {
			cmp := compareByVariable(a, b, comparator)
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

// compareByVariable orders two solutions under one comparator. An
// unbound variable sorts after every bound value in both directions, so
// the unbound check sits outside the descending negation.
func compareByVariable(a, b *algebra.Solution, comparator algebra.Comparator) int {
	aTerm, aBound := a.Get(comparator.Variable)
	bTerm, bBound := b.Get(comparator.Variable)

	switch {
	case !aBound && !bBound:
		return 0
	case !aBound:
		return 1
	case !bBound:
		return -1
	}

	cmp := compareTerms(aTerm, bTerm)
	if comparator.Descending {
		cmp = -cmp
	}
	return cmp
}

// compareTerms compares numerically when both terms carry numeric
// values, lexicographically on the value strings otherwise.
func compareTerms(a, b term.Term) int {
	aNum, aOK := term.NumericValue(a)
	bNum, bOK := term.NumericValue(b)
	if aOK && bOK {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		default:
			return 0
		}
	}

	aVal, bVal := a.Value(), b.Value()
	switch {
	case aVal < bVal:
		return -1
	case aVal > bVal:
		return 1
	default:
		return 0
	}
}

func (it *orderIterator) Solution() *algebra.Solution {
	if it.position > 0 && it.position <= len(it.solutions) {
		return it.solutions[it.position-1]
	}
	return nil
}

func (it *orderIterator) Err() error   { return it.err }
func (it *orderIterator) Close() error { return it.input.Close() }

// sliceIterator skips offset solutions, then yields at most limit. A nil
// bound means unbounded. The limit short-circuits without draining the
// input.
type sliceIterator struct {
	input   Iterator
	offset  *int
	limit   *int
	skipped int
	emitted int
}

func (it *sliceIterator) Next() bool {
	if it.offset != nil {
		for it.skipped < *it.offset {
			if !it.input.Next() {
				return false
			}
			it.skipped++
		}
	}

	if it.limit != nil && it.emitted >= *it.limit {
		return false
	}

	if !it.input.Next() {
		return false
	}
	it.emitted++
	return true
}

func (it *sliceIterator) Solution() *algebra.Solution { return it.input.Solution() }
func (it *sliceIterator) Err() error                  { return it.input.Err() }
func (it *sliceIterator) Close() error                { return it.input.Close() }

// distinctIterator deduplicates on the solutions' canonical forms.
type distinctIterator struct {
	input Iterator
	seen  map[string]bool
}

func (it *distinctIterator) Next() bool {
	for it.input.Next() {
		key := it.input.Solution().CanonicalForm()
		if !it.seen[key] {
			it.seen[key] = true
			return true
		}
	}
	return false
}

func (it *distinctIterator) Solution() *algebra.Solution { return it.input.Solution() }
func (it *distinctIterator) Err() error                  { return it.input.Err() }
func (it *distinctIterator) Close() error                { return it.input.Close() }
