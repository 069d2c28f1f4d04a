package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/graph"
	"github.com/c360/semgraph/graph/algebra"
	"github.com/c360/semgraph/term"
)

var (
	alice = term.NewIRI("https://example.org/alice")
	bob   = term.NewIRI("https://example.org/bob")
	carol = term.NewIRI("https://example.org/carol")
	knows = term.NewIRI("https://example.org/knows")
	name  = term.NewIRI("https://example.org/name")
	age   = term.NewIRI("https://example.org/age")
)

// socialStore builds the fixture used across the executor tests: three
// people with names, two with ages, and a small knows graph.
func socialStore(t *testing.T) *graph.Store {
	t.Helper()
	store := graph.NewStore()
	facts := []graph.Fact{
		graph.MustFact(alice, name, term.NewLiteral("Alice")),
		graph.MustFact(bob, name, term.NewLiteral("Bob")),
		graph.MustFact(carol, name, term.NewLiteral("Carol")),
		graph.MustFact(alice, age, term.NewInteger(30)),
		graph.MustFact(bob, age, term.NewInteger(25)),
		graph.MustFact(alice, knows, bob),
		graph.MustFact(alice, knows, carol),
		graph.MustFact(bob, knows, carol),
	}
	result := store.AddBatch(facts)
	require.Empty(t, result.Errors)
	return store
}

func collect(t *testing.T, exec *Executor, op *algebra.Operation) []*algebra.Solution {
	t.Helper()
	solutions, err := exec.Collect(context.Background(), op)
	require.NoError(t, err)
	return solutions
}

func boundValue(t *testing.T, solution *algebra.Solution, variable string) string {
	t.Helper()
	tm, ok := solution.Get(variable)
	require.True(t, ok, "variable %s should be bound", variable)
	return tm.Value()
}

func TestPatternEvaluation(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	t.Run("fully bound pattern yields empty solution per match", func(t *testing.T) {
		op := algebra.NewPattern(
			algebra.Bound(alice), algebra.Bound(knows), algebra.Bound(bob))
		solutions := collect(t, exec, op)
		require.Len(t, solutions, 1)
		assert.Equal(t, 0, solutions[0].Len())
	})

	t.Run("variable object binds each match", func(t *testing.T) {
		op := algebra.NewPattern(
			algebra.Bound(alice), algebra.Bound(knows), algebra.Var("who"))
		solutions := collect(t, exec, op)
		require.Len(t, solutions, 2)

		var values []string
		for _, s := range solutions {
			values = append(values, boundValue(t, s, "who"))
		}
		assert.ElementsMatch(t,
			[]string{bob.Value(), carol.Value()}, values)
	})

	t.Run("all variables scans every fact", func(t *testing.T) {
		op := algebra.NewPattern(
			algebra.Var("s"), algebra.Var("p"), algebra.Var("o"))
		solutions := collect(t, exec, op)
		assert.Len(t, solutions, store.Count())
	})

	t.Run("no match yields empty stream not error", func(t *testing.T) {
		op := algebra.NewPattern(
			algebra.Bound(carol), algebra.Bound(knows), algebra.Var("who"))
		solutions := collect(t, exec, op)
		assert.Empty(t, solutions)
	})

	t.Run("repeated variable requires identical terms", func(t *testing.T) {
		store := graph.NewStore()
		self := term.NewIRI("https://example.org/self")
		require.NoError(t, store.Add(graph.MustFact(alice, self, alice)))
		require.NoError(t, store.Add(graph.MustFact(alice, self, bob)))
		exec := New(store)

		op := algebra.NewPattern(
			algebra.Var("x"), algebra.Bound(self), algebra.Var("x"))
		solutions := collect(t, exec, op)
		require.Len(t, solutions, 1)
		assert.Equal(t, alice.Value(), boundValue(t, solutions[0], "x"))
	})
}

func TestFilterEvaluation(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	agePattern := algebra.NewPattern(
		algebra.Var("person"), algebra.Bound(age), algebra.Var("age"))

	t.Run("numeric condition narrows solutions", func(t *testing.T) {
		op := algebra.NewFilter(
			algebra.And(algebra.Cond("age", algebra.OpGreaterThan, 26)),
			agePattern)
		solutions := collect(t, exec, op)
		require.Len(t, solutions, 1)
		assert.Equal(t, alice.Value(), boundValue(t, solutions[0], "person"))
	})

	t.Run("condition on unbound variable filters out", func(t *testing.T) {
		op := algebra.NewFilter(
			algebra.And(algebra.Cond("missing", algebra.OpEqual, "x")),
			agePattern)
		solutions := collect(t, exec, op)
		assert.Empty(t, solutions)
	})

	t.Run("invalid regex surfaces as error", func(t *testing.T) {
		op := algebra.NewFilter(
			algebra.And(algebra.Cond("age", algebra.OpRegexMatch, "[unclosed")),
			agePattern)
		_, err := exec.Collect(context.Background(), op)
		require.Error(t, err)
	})
}

func TestJoinEvaluation(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	t.Run("join on shared variable is complete", func(t *testing.T) {
		// ?a knows ?b  JOIN  ?b age ?n
		op := algebra.NewJoin(
			algebra.NewPattern(algebra.Var("a"), algebra.Bound(knows), algebra.Var("b")),
			algebra.NewPattern(algebra.Var("b"), algebra.Bound(age), algebra.Var("n")))
		solutions := collect(t, exec, op)

		// Only alice knows bob produces a row: carol has no age.
		require.Len(t, solutions, 1)
		assert.Equal(t, alice.Value(), boundValue(t, solutions[0], "a"))
		assert.Equal(t, bob.Value(), boundValue(t, solutions[0], "b"))
		assert.Equal(t, "25", boundValue(t, solutions[0], "n"))
	})

	t.Run("join without shared variables is a cross product", func(t *testing.T) {
		op := algebra.NewJoin(
			algebra.NewPattern(algebra.Var("x"), algebra.Bound(age), algebra.Var("xa")),
			algebra.NewPattern(algebra.Var("y"), algebra.Bound(name), algebra.Var("yn")))
		solutions := collect(t, exec, op)
		assert.Len(t, solutions, 2*3)
	})

	t.Run("join with incompatible sides is empty", func(t *testing.T) {
		op := algebra.NewJoin(
			algebra.NewPattern(algebra.Bound(carol), algebra.Bound(age), algebra.Var("n")),
			algebra.NewPattern(algebra.Var("p"), algebra.Bound(name), algebra.Var("nm")))
		solutions := collect(t, exec, op)
		assert.Empty(t, solutions)
	})
}

func TestOptionalEvaluation(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	// ?p name ?n  OPTIONAL  ?p age ?a
	op := algebra.NewOptional(
		algebra.NewPattern(algebra.Var("p"), algebra.Bound(name), algebra.Var("n")),
		algebra.NewPattern(algebra.Var("p"), algebra.Bound(age), algebra.Var("a")))
	solutions := collect(t, exec, op)

	// Every left solution survives: alice and bob extended, carol bare.
	require.Len(t, solutions, 3)

	byPerson := make(map[string]*algebra.Solution)
	for _, s := range solutions {
		byPerson[boundValue(t, s, "p")] = s
	}

	aliceRow := byPerson[alice.Value()]
	require.NotNil(t, aliceRow)
	assert.Equal(t, "30", boundValue(t, aliceRow, "a"))

	carolRow := byPerson[carol.Value()]
	require.NotNil(t, carolRow)
	_, bound := carolRow.Get("a")
	assert.False(t, bound, "carol has no age, the optional side stays unbound")
}

func TestUnionEvaluation(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	t.Run("union concatenates left then right preserving duplicates", func(t *testing.T) {
		branch := algebra.NewPattern(
			algebra.Var("p"), algebra.Bound(age), algebra.Var("v"))
		op := algebra.NewUnion(branch, branch)
		solutions := collect(t, exec, op)
		assert.Len(t, solutions, 4)
	})

	t.Run("distinct over union removes duplicates", func(t *testing.T) {
		branch := algebra.NewPattern(
			algebra.Var("p"), algebra.Bound(age), algebra.Var("v"))
		op := algebra.NewDistinct(algebra.NewUnion(branch, branch))
		solutions := collect(t, exec, op)
		assert.Len(t, solutions, 2)
	})
}

func TestOrderEvaluation(t *testing.T) {
	t.Run("numeric values order numerically not lexically", func(t *testing.T) {
		store := graph.NewStore()
		value := term.NewIRI("https://example.org/value")
		for i, v := range []int64{10, 1, 2} {
			subject := term.NewIRI("https://example.org/n" + string(rune('a'+i)))
			require.NoError(t, store.Add(graph.MustFact(subject, value, term.NewInteger(v))))
		}
		exec := New(store)

		op := algebra.NewOrder(
			[]algebra.Comparator{{Variable: "v"}},
			algebra.NewPattern(algebra.Var("s"), algebra.Bound(value), algebra.Var("v")))
		solutions := collect(t, exec, op)

		var got []string
		for _, s := range solutions {
			got = append(got, boundValue(t, s, "v"))
		}
		assert.Equal(t, []string{"1", "2", "10"}, got)
	})

	t.Run("descending reverses bound values", func(t *testing.T) {
		store := socialStore(t)
		exec := New(store)

		op := algebra.NewOrder(
			[]algebra.Comparator{{Variable: "n", Descending: true}},
			algebra.NewPattern(algebra.Var("p"), algebra.Bound(name), algebra.Var("n")))
		solutions := collect(t, exec, op)

		var got []string
		for _, s := range solutions {
			got = append(got, boundValue(t, s, "n"))
		}
		assert.Equal(t, []string{"Carol", "Bob", "Alice"}, got)
	})

	t.Run("unbound sorts last in both directions", func(t *testing.T) {
		store := socialStore(t)
		exec := New(store)

		optional := algebra.NewOptional(
			algebra.NewPattern(algebra.Var("p"), algebra.Bound(name), algebra.Var("n")),
			algebra.NewPattern(algebra.Var("p"), algebra.Bound(age), algebra.Var("a")))

		for _, descending := range []bool{false, true} {
			op := algebra.NewOrder(
				[]algebra.Comparator{{Variable: "a", Descending: descending}},
				optional)
			solutions := collect(t, exec, op)
			require.Len(t, solutions, 3)

			last := solutions[len(solutions)-1]
			_, bound := last.Get("a")
			assert.False(t, bound, "unbound row must sort last, descending=%v", descending)
		}
	})

	t.Run("tie falls through to next comparator", func(t *testing.T) {
		store := graph.NewStore()
		group := term.NewIRI("https://example.org/group")
		label := term.NewIRI("https://example.org/label")
		for _, row := range []struct{ id, g, l string }{
			{"r1", "b", "x"},
			{"r2", "a", "z"},
			{"r3", "a", "y"},
		} {
			subject := term.NewIRI("https://example.org/" + row.id)
			require.NoError(t, store.Add(graph.MustFact(subject, group, term.NewLiteral(row.g))))
			require.NoError(t, store.Add(graph.MustFact(subject, label, term.NewLiteral(row.l))))
		}
		exec := New(store)

		op := algebra.NewOrder(
			[]algebra.Comparator{{Variable: "g"}, {Variable: "l"}},
			algebra.NewJoin(
				algebra.NewPattern(algebra.Var("s"), algebra.Bound(group), algebra.Var("g")),
				algebra.NewPattern(algebra.Var("s"), algebra.Bound(label), algebra.Var("l"))))
		solutions := collect(t, exec, op)
		require.Len(t, solutions, 3)

		var got []string
		for _, s := range solutions {
			got = append(got, boundValue(t, s, "g")+"/"+boundValue(t, s, "l"))
		}
		assert.Equal(t, []string{"a/y", "a/z", "b/x"}, got)
	})
}

func TestSliceEvaluation(t *testing.T) {
	store := graph.NewStore()
	value := term.NewIRI("https://example.org/value")
	for i := 0; i < 10; i++ {
		subject := term.NewIRI("https://example.org/row" + string(rune('a'+i)))
		require.NoError(t, store.Add(graph.MustFact(subject, value, term.NewInteger(int64(i)))))
	}
	exec := New(store)

	ordered := algebra.NewOrder(
		[]algebra.Comparator{{Variable: "v"}},
		algebra.NewPattern(algebra.Var("s"), algebra.Bound(value), algebra.Var("v")))

	intp := func(v int) *int { return &v }

	t.Run("offset then limit windows the stream", func(t *testing.T) {
		op := algebra.NewSlice(intp(3), intp(4), ordered)
		solutions := collect(t, exec, op)
		require.Len(t, solutions, 4)

		var got []string
		for _, s := range solutions {
			got = append(got, boundValue(t, s, "v"))
		}
		assert.Equal(t, []string{"3", "4", "5", "6"}, got)
	})

	t.Run("nil bounds pass everything through", func(t *testing.T) {
		op := algebra.NewSlice(nil, nil, ordered)
		solutions := collect(t, exec, op)
		assert.Len(t, solutions, 10)
	})

	t.Run("offset beyond stream yields empty", func(t *testing.T) {
		op := algebra.NewSlice(intp(50), nil, ordered)
		solutions := collect(t, exec, op)
		assert.Empty(t, solutions)
	})

	t.Run("zero limit yields empty", func(t *testing.T) {
		op := algebra.NewSlice(nil, intp(0), ordered)
		solutions := collect(t, exec, op)
		assert.Empty(t, solutions)
	})
}

func TestProjectionIsPassThrough(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	// Downstream operations still see variables the projection drops.
	op := algebra.NewFilter(
		algebra.And(algebra.Cond("a", algebra.OpGreaterThan, 26)),
		algebra.NewProjection([]string{"p"},
			algebra.NewPattern(algebra.Var("p"), algebra.Bound(age), algebra.Var("a"))))
	solutions := collect(t, exec, op)
	require.Len(t, solutions, 1)
	assert.Equal(t, alice.Value(), boundValue(t, solutions[0], "p"))
	assert.Equal(t, "30", boundValue(t, solutions[0], "a"))
}

func TestEvaluateRejectsMalformedTrees(t *testing.T) {
	exec := New(graph.NewStore())

	t.Run("nil operation", func(t *testing.T) {
		_, err := exec.Evaluate(nil)
		require.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := exec.Evaluate(&algebra.Operation{Kind: "teleport"})
		require.Error(t, err)
	})

	t.Run("pattern slot with neither variable nor term", func(t *testing.T) {
		_, err := exec.Evaluate(&algebra.Operation{
			Kind:    algebra.OpPattern,
			Pattern: &algebra.TriplePattern{},
		})
		require.Error(t, err)
	})
}

func TestCollectHonorsContext(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := algebra.NewPattern(algebra.Var("s"), algebra.Var("p"), algebra.Var("o"))
	_, err := exec.Collect(ctx, op)
	require.Error(t, err)
}

func TestEndToEndQuery(t *testing.T) {
	store := socialStore(t)
	exec := New(store)

	// Names of everyone alice knows, ordered ascending.
	intp := func(v int) *int { return &v }
	op := algebra.NewSlice(nil, intp(10),
		algebra.NewOrder(
			[]algebra.Comparator{{Variable: "n"}},
			algebra.NewProjection([]string{"n"},
				algebra.NewJoin(
					algebra.NewPattern(algebra.Bound(alice), algebra.Bound(knows), algebra.Var("who")),
					algebra.NewPattern(algebra.Var("who"), algebra.Bound(name), algebra.Var("n"))))))

	solutions := collect(t, exec, op)
	require.Len(t, solutions, 2)
	assert.Equal(t, "Bob", boundValue(t, solutions[0], "n"))
	assert.Equal(t, "Carol", boundValue(t, solutions[1], "n"))
}
