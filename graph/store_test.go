package graph

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/term"
)

const ns = "https://example.org/"

func iri(local string) term.IRI {
	return term.NewIRI(ns + local)
}

func fact(s, p, o string) Fact {
	return MustFact(iri(s), iri(p), iri(o))
}

func requireAgreement(t *testing.T, s *Store) {
	t.Helper()
	stats := s.Statistics()
	assert.Equal(t, stats.Facts, stats.SPOEntries, "spo size")
	assert.Equal(t, stats.Facts, stats.POSEntries, "pos size")
	assert.Equal(t, stats.Facts, stats.OSPEntries, "osp size")
	report := s.ValidateConsistency()
	assert.True(t, report.Valid, "violation: %s", report.Violation)
}

func TestAddRemoveKeepsIndexAgreement(t *testing.T) {
	s := NewStore()
	requireAgreement(t, s)

	facts := []Fact{
		fact("alice", "knows", "bob"),
		fact("bob", "knows", "carol"),
		fact("alice", "likes", "carol"),
		fact("carol", "knows", "alice"),
	}

	for _, f := range facts {
		require.NoError(t, s.Add(f))
		requireAgreement(t, s)
	}
	assert.Equal(t, 4, s.Count())

	for _, f := range facts {
		require.NoError(t, s.Remove(f))
		requireAgreement(t, s)
	}
	assert.Equal(t, 0, s.Count())
}

func TestAddIdempotent(t *testing.T) {
	s := NewStore()
	f := fact("alice", "knows", "bob")

	require.NoError(t, s.Add(f))
	require.NoError(t, s.Add(f))
	assert.Equal(t, 1, s.Count())
	requireAgreement(t, s)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := NewStore()
	f := fact("alice", "knows", "bob")

	require.NoError(t, s.Remove(f))
	assert.Equal(t, 0, s.Count())

	require.NoError(t, s.Add(f))
	require.NoError(t, s.Remove(f))
	require.NoError(t, s.Remove(f))
	assert.Equal(t, 0, s.Count())
	requireAgreement(t, s)
}

func TestAddRejectsMalformedFact(t *testing.T) {
	s := NewStore()
	err := s.Add(Fact{Subject: iri("alice"), Predicate: iri("knows")})
	require.Error(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestAddBatchPerItemIndependence(t *testing.T) {
	s := NewStore()
	batch := []Fact{
		fact("alice", "knows", "bob"),
		{Subject: term.NewLiteral("broken"), Predicate: iri("knows"), Object: iri("bob")},
		fact("bob", "knows", "carol"),
	}

	result := s.AddBatch(batch)
	assert.False(t, result.OK())
	assert.Equal(t, 2, result.Applied)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Error(t, result.Errors[0].Err)

	assert.Equal(t, 2, s.Count())
	requireAgreement(t, s)
}

func TestMatchAllCombinations(t *testing.T) {
	s := NewStore()
	ab := fact("alice", "knows", "bob")
	bc := fact("bob", "knows", "carol")
	al := MustFact(iri("alice"), iri("name"), term.NewLiteral("Alice"))
	require.True(t, s.AddBatch([]Fact{ab, bc, al}).OK())

	tests := []struct {
		name    string
		s, p, o term.Term
		want    []Fact
	}{
		{"fully unbound", nil, nil, nil, []Fact{ab, bc, al}},
		{"subject bound", iri("alice"), nil, nil, []Fact{ab, al}},
		{"predicate bound", nil, iri("knows"), nil, []Fact{ab, bc}},
		{"object bound", nil, nil, iri("bob"), []Fact{ab}},
		{"subject+predicate", iri("alice"), iri("knows"), nil, []Fact{ab}},
		{"predicate+object", nil, iri("knows"), iri("carol"), []Fact{bc}},
		{"subject+object", iri("alice"), nil, iri("bob"), []Fact{ab}},
		{"fully bound", iri("bob"), iri("knows"), iri("carol"), []Fact{bc}},
		{"fully bound absent", iri("alice"), iri("knows"), iri("carol"), nil},
		{"unknown subject", iri("dave"), nil, nil, nil},
		{"unknown predicate", nil, iri("hates"), nil, nil},
		{"unknown object", nil, nil, iri("dave"), nil},
		{"literal object bound", nil, nil, term.NewLiteral("Alice"), []Fact{al}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Match(tt.s, tt.p, tt.o)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestMatchDistinguishesTermKinds(t *testing.T) {
	s := NewStore()
	withIRI := MustFact(iri("doc"), iri("ref"), term.NewIRI("x"))
	withLit := MustFact(iri("doc"), iri("ref"), term.NewLiteral("x"))
	require.True(t, s.AddBatch([]Fact{withIRI, withLit}).OK())

	assert.ElementsMatch(t, []Fact{withIRI}, s.Match(nil, nil, term.NewIRI("x")))
	assert.ElementsMatch(t, []Fact{withLit}, s.Match(nil, nil, term.NewLiteral("x")))
}

func TestClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(fact("alice", "knows", "bob")))
	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Match(nil, nil, nil))
	requireAgreement(t, s)

	// Store remains usable after Clear.
	require.NoError(t, s.Add(fact("bob", "knows", "carol")))
	assert.Equal(t, 1, s.Count())
}

func TestValidateConsistencyDetectsCorruption(t *testing.T) {
	t.Run("orphan index entry", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add(fact("alice", "knows", "bob")))

		stray := fact("mallory", "knows", "eve")
		s.spo.insert(stray.Subject.Canonical(), stray.Predicate.Canonical(), stray.Object.Canonical(), stray)

		report := s.ValidateConsistency()
		assert.False(t, report.Valid)
		assert.Contains(t, report.Violation, "index sizes disagree")
	})

	t.Run("canonical fact missing from index", func(t *testing.T) {
		s := NewStore()
		f := fact("alice", "knows", "bob")
		require.NoError(t, s.Add(f))

		// Swap an index entry so sizes still agree but the canonical
		// fact is no longer reachable through POS.
		stray := fact("mallory", "knows", "eve")
		s.pos.remove(f.Predicate.Canonical(), f.Object.Canonical(), f.Subject.Canonical())
		s.pos.insert(stray.Predicate.Canonical(), stray.Object.Canonical(), stray.Subject.Canonical(), stray)

		report := s.ValidateConsistency()
		assert.False(t, report.Valid)
		assert.Contains(t, report.Violation, "orphan index entry")
	})

	t.Run("validation does not mutate", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add(fact("alice", "knows", "bob")))
		stray := fact("mallory", "knows", "eve")
		s.osp.insert(stray.Object.Canonical(), stray.Subject.Canonical(), stray.Predicate.Canonical(), stray)

		before := s.Statistics()
		_ = s.ValidateConsistency()
		assert.Equal(t, before, s.Statistics())
	})
}

// TestMatchIndexRouting pins which index answers each bound-position
// combination by emptying the two indices the pattern must not consult.
func TestMatchIndexRouting(t *testing.T) {
	f := fact("alice", "knows", "bob")

	t.Run("subject and object without predicate reads object-first", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add(f))
		delete(s.spo, f.Subject.Canonical())
		delete(s.pos, f.Predicate.Canonical())

		got := s.Match(f.Subject, nil, f.Object)
		require.Len(t, got, 1)
		assert.Equal(t, f, got[0])
		assert.Empty(t, s.Match(f.Subject, nil, iri("carol")))
	})

	t.Run("bound subject with predicate reads subject-first", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add(f))
		delete(s.pos, f.Predicate.Canonical())
		delete(s.osp, f.Object.Canonical())

		require.Len(t, s.Match(f.Subject, f.Predicate, f.Object), 1)
		require.Len(t, s.Match(f.Subject, f.Predicate, nil), 1)
		require.Len(t, s.Match(f.Subject, nil, nil), 1)
	})

	t.Run("bound predicate reads predicate-first", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Add(f))
		delete(s.spo, f.Subject.Canonical())
		delete(s.osp, f.Object.Canonical())

		require.Len(t, s.Match(nil, f.Predicate, f.Object), 1)
		require.Len(t, s.Match(nil, f.Predicate, nil), 1)
	})
}

func TestStoreRecordsMetrics(t *testing.T) {
	m := metric.NewMetrics()
	s := NewStore(WithMetrics(m))

	require.NoError(t, s.Add(fact("alice", "knows", "bob")))
	require.NoError(t, s.Add(fact("alice", "knows", "carol")))
	require.NoError(t, s.Remove(fact("alice", "knows", "bob")))
	require.Error(t, s.Add(Fact{}))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.StoreOperations.WithLabelValues("add", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("add", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("remove", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreFacts))

	s.Clear()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("clear", "success")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.StoreFacts))
}

func TestStatisticsTracksMutation(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(fact(fmt.Sprintf("s%d", i), "p", "o")))
	}

	stats := s.Statistics()
	assert.Equal(t, Statistics{Facts: 5, SPOEntries: 5, POSEntries: 5, OSPEntries: 5}, stats)
}
