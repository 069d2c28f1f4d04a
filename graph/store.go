package graph

import (
	"fmt"
	"log/slog"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/term"
)

// index is a three-level nested mapping over canonical term strings. A
// bound leading key turns a scan into a direct lookup, which is the whole
// point of keeping three orderings of the same facts.
type index map[string]map[string]map[string]Fact

func (ix index) insert(a, b, c string, f Fact) {
	second, ok := ix[a]
	if !ok {
		second = make(map[string]map[string]Fact)
		ix[a] = second
	}
	third, ok := second[b]
	if !ok {
		third = make(map[string]Fact)
		second[b] = third
	}
	third[c] = f
}

func (ix index) remove(a, b, c string) {
	second, ok := ix[a]
	if !ok {
		return
	}
	third, ok := second[b]
	if !ok {
		return
	}
	delete(third, c)
	if len(third) == 0 {
		delete(second, b)
	}
	if len(second) == 0 {
		delete(ix, a)
	}
}

// size counts leaf entries.
func (ix index) size() int {
	n := 0
	for _, second := range ix {
		for _, third := range second {
			n += len(third)
		}
	}
	return n
}

// Store holds the current fact set under three orderings: by
// subject-predicate-object, predicate-object-subject, and
// object-subject-predicate. Any pattern with at least one bound position
// is answered without a full scan.
//
// The store performs no internal locking: the surrounding application is
// responsible for serializing mutation against concurrent evaluation.
type Store struct {
	facts map[string]Fact

	spo index
	pos index
	osp index

	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger used for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the engine metrics updated on store mutations: the
// fact gauge and the per-operation counters.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(s *Store) {
		s.metrics = metrics
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		facts:  make(map[string]Fact),
		spo:    make(index),
		pos:    make(index),
		osp:    make(index),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts a fact into all three indices. Adding a fact already present
// is a no-op; Add never fails for well-formed input.
func (s *Store) Add(f Fact) error {
	if err := f.Validate(); err != nil {
		s.recordMutation("add", false)
		return err
	}

	key := f.Key()
	if _, exists := s.facts[key]; exists {
		s.recordMutation("add", true)
		return nil
	}

	sub, pred, obj := f.Subject.Canonical(), f.Predicate.Canonical(), f.Object.Canonical()
	s.facts[key] = f
	s.spo.insert(sub, pred, obj, f)
	s.pos.insert(pred, obj, sub, f)
	s.osp.insert(obj, sub, pred, f)
	s.recordMutation("add", true)
	return nil
}

// Remove deletes a fact from all three indices. Removing an absent fact is
// a no-op that does not error.
func (s *Store) Remove(f Fact) error {
	if err := f.Validate(); err != nil {
		s.recordMutation("remove", false)
		return err
	}

	key := f.Key()
	if _, exists := s.facts[key]; !exists {
		s.recordMutation("remove", true)
		return nil
	}

	sub, pred, obj := f.Subject.Canonical(), f.Predicate.Canonical(), f.Object.Canonical()
	delete(s.facts, key)
	s.spo.remove(sub, pred, obj)
	s.pos.remove(pred, obj, sub)
	s.osp.remove(obj, sub, pred)
	s.recordMutation("remove", true)
	return nil
}

// BatchError records the failure of a single fact within a batch.
type BatchError struct {
	Index int
	Err   error
}

// BatchResult reports the per-item outcome of AddBatch.
type BatchResult struct {
	Applied int
	Errors  []BatchError
}

// OK reports whether every fact in the batch was applied.
func (r BatchResult) OK() bool {
	return len(r.Errors) == 0
}

// AddBatch applies Add for each fact. The contract is best effort with
// per-item independence, not all-or-nothing: a malformed fact is reported
// and the rest of the batch still inserts. Idempotent inserts leave no
// rollback need.
func (s *Store) AddBatch(facts []Fact) BatchResult {
	var result BatchResult
	for i, f := range facts {
		if err := s.Add(f); err != nil {
			result.Errors = append(result.Errors, BatchError{
				Index: i,
				Err:   errors.WrapInvalid(err, "Store", "AddBatch", fmt.Sprintf("fact %d", i)),
			})
			continue
		}
		result.Applied++
	}

	if len(result.Errors) > 0 {
		s.logger.Warn("batch insert completed with failures",
			"applied", result.Applied,
			"failed", len(result.Errors),
			"total", len(facts))
	} else {
		s.logger.Debug("batch insert completed",
			"applied", result.Applied)
	}
	return result
}

// Match answers a pattern query; any nil position is a wildcard. The index
// whose leading keys correspond to the bound positions is chosen so the
// lookup narrows before any scan: subject-first when the subject and
// predicate are bound (or the subject alone), predicate-first when only
// the predicate (and optionally the object) is bound, object-first when
// the object (and optionally the subject) is bound without a predicate.
// A fully unbound pattern scans the canonical set once.
func (s *Store) Match(subject, predicate, object term.Term) []Fact {
	switch {
	case subject != nil && predicate == nil && object != nil:
		return s.matchObjectFirst(object, subject)
	case subject != nil:
		return s.matchSubjectFirst(subject, predicate, object)
	case predicate != nil:
		return s.matchPredicateFirst(predicate, object)
	case object != nil:
		return s.matchObjectFirst(object, nil)
	default:
		out := make([]Fact, 0, len(s.facts))
		for _, f := range s.facts {
			out = append(out, f)
		}
		return out
	}
}

func (s *Store) matchSubjectFirst(subject, predicate, object term.Term) []Fact {
	second, ok := s.spo[subject.Canonical()]
	if !ok {
		return nil
	}

	var out []Fact
	if predicate != nil {
		third, ok := second[predicate.Canonical()]
		if !ok {
			return nil
		}
		if object != nil {
			if f, ok := third[object.Canonical()]; ok {
				out = append(out, f)
			}
			return out
		}
		for _, f := range third {
			out = append(out, f)
		}
		return out
	}

	for _, third := range second {
		for _, f := range third {
			out = append(out, f)
		}
	}
	return out
}

func (s *Store) matchPredicateFirst(predicate, object term.Term) []Fact {
	second, ok := s.pos[predicate.Canonical()]
	if !ok {
		return nil
	}

	var out []Fact
	if object != nil {
		third, ok := second[object.Canonical()]
		if !ok {
			return nil
		}
		for _, f := range third {
			out = append(out, f)
		}
		return out
	}
	for _, third := range second {
		for _, f := range third {
			out = append(out, f)
		}
	}
	return out
}

func (s *Store) matchObjectFirst(object, subject term.Term) []Fact {
	second, ok := s.osp[object.Canonical()]
	if !ok {
		return nil
	}

	var out []Fact
	if subject != nil {
		third, ok := second[subject.Canonical()]
		if !ok {
			return nil
		}
		for _, f := range third {
			out = append(out, f)
		}
		return out
	}
	for _, third := range second {
		for _, f := range third {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of facts in the canonical set.
func (s *Store) Count() int {
	return len(s.facts)
}

// Clear empties all indices.
func (s *Store) Clear() {
	s.facts = make(map[string]Fact)
	s.spo = make(index)
	s.pos = make(index)
	s.osp = make(index)
	s.recordMutation("clear", true)
	s.logger.Debug("store cleared")
}

func (s *Store) recordMutation(operation string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(operation, success, len(s.facts))
	}
}
