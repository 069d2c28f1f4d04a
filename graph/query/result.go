package query

import (
	"github.com/c360/semgraph/graph/algebra"
)

// Result is a fully materialized query outcome. Solutions are narrowed
// to the result variables; the variable list comes from the outermost
// projection, or every visible variable when the tree has none.
type Result struct {
	Variables []string
	Solutions []*algebra.Solution

	// Truncated is set when MaxResults cut the stream short.
	Truncated bool

	// Cached is set when the result was served from the result cache.
	Cached bool
}

// Len returns the number of solutions.
func (r *Result) Len() int {
	return len(r.Solutions)
}

// resultVariables finds the variable list for an operation tree: the
// outermost projection wins, otherwise all visible variables.
func resultVariables(op *algebra.Operation) []string {
	for node := op; node != nil; node = node.Child {
		if node.Kind == algebra.OpProjection {
			return node.Variables
		}
		// Binary nodes end the outermost spine.
		if node.Child == nil {
			break
		}
	}
	return op.VisibleVariables()
}

// projectSolutions narrows each solution to the result variables.
func projectSolutions(solutions []*algebra.Solution, variables []string) []*algebra.Solution {
	out := make([]*algebra.Solution, len(solutions))
	for i, s := range solutions {
		out[i] = s.Project(variables)
	}
	return out
}
