package algebra

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/term"
	"github.com/c360/semgraph/vocabulary"
)

// The canonical form is the deduplication key for Distinct and must stay
// byte-stable across refactors; a drifting encoding silently changes which
// solutions a query returns. Golden files pin the exact bytes.
//
// Regenerate with:
//
//	go test ./graph/algebra -run TestCanonicalFormGolden -update
func TestCanonicalFormGolden(t *testing.T) {
	solutions := []*Solution{
		func() *Solution {
			s := mustBind(t, NewSolution(), "x", term.NewIRI("https://example.org/alice"))
			return mustBind(t, s, "name", term.NewLiteral("Alice"))
		}(),
		func() *Solution {
			s := mustBind(t, NewSolution(), "node", term.NewBlankNodeWithLabel("b1"))
			return mustBind(t, s, "n", term.NewTypedLiteral("10", vocabulary.XSDInteger))
		}(),
		mustBind(t, NewSolution(), "greeting", term.NewLangLiteral("bonjour", "fr")),
		mustBind(t, NewSolution(), "quote", term.NewLiteral(`say "hi"`)),
		NewSolution(),
	}

	var sb strings.Builder
	for _, s := range solutions {
		sb.WriteString(s.CanonicalForm())
		sb.WriteByte('\n')
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "canonical_forms", []byte(sb.String()))
}

// Fingerprints key the query result cache; they must be equally stable.
func TestFingerprintGolden(t *testing.T) {
	tree := NewSlice(intp(0), intp(10),
		NewOrder([]Comparator{{Variable: "n", Descending: true}},
			NewJoin(
				NewPattern(Var("a"), Bound(term.NewIRI("https://example.org/knows")), Var("b")),
				NewPattern(Var("b"), Bound(term.NewIRI("https://example.org/age")), Var("n")),
			)))

	fp, err := tree.Fingerprint()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "operation_fingerprint", []byte(fp+"\n"))
}
