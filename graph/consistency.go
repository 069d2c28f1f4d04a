package graph

import "fmt"

// Statistics reports current per-index counts. The three index sizes must
// always agree with the canonical fact count; Statistics surfaces them
// independently so drift is observable rather than papered over.
type Statistics struct {
	Facts      int `json:"facts"`
	SPOEntries int `json:"spo_entries"`
	POSEntries int `json:"pos_entries"`
	OSPEntries int `json:"osp_entries"`
}

// Statistics recomputes the current counts.
func (s *Store) Statistics() Statistics {
	return Statistics{
		Facts:      len(s.facts),
		SPOEntries: s.spo.size(),
		POSEntries: s.pos.size(),
		OSPEntries: s.osp.size(),
	}
}

// ConsistencyReport is the diagnostic result of ValidateConsistency.
// Violations are reported, never silently corrected.
type ConsistencyReport struct {
	Valid     bool   `json:"valid"`
	Violation string `json:"violation,omitempty"`
}

// ValidateConsistency recomputes the store invariants without mutating
// state: the three indices report identical counts, no index holds an
// entry for a fact outside the canonical set, and no canonical fact is
// missing from any index. The first violation found is reported.
func (s *Store) ValidateConsistency() ConsistencyReport {
	stats := s.Statistics()
	if stats.SPOEntries != stats.Facts || stats.POSEntries != stats.Facts || stats.OSPEntries != stats.Facts {
		report := ConsistencyReport{
			Violation: fmt.Sprintf("%v: facts=%d spo=%d pos=%d osp=%d",
				ErrSizeMismatch, stats.Facts, stats.SPOEntries, stats.POSEntries, stats.OSPEntries),
		}
		s.logger.Warn("consistency violation", "violation", report.Violation)
		return report
	}

	for name, ix := range map[string]index{"spo": s.spo, "pos": s.pos, "osp": s.osp} {
		for _, second := range ix {
			for _, third := range second {
				for _, f := range third {
					if _, ok := s.facts[f.Key()]; !ok {
						report := ConsistencyReport{
							Violation: fmt.Sprintf("%v: %s index holds %s", ErrOrphanEntry, name, f.Key()),
						}
						s.logger.Warn("consistency violation", "violation", report.Violation)
						return report
					}
				}
			}
		}
	}

	for key, f := range s.facts {
		sub, pred, obj := f.Subject.Canonical(), f.Predicate.Canonical(), f.Object.Canonical()
		if !indexHas(s.spo, sub, pred, obj) || !indexHas(s.pos, pred, obj, sub) || !indexHas(s.osp, obj, sub, pred) {
			report := ConsistencyReport{
				Violation: fmt.Sprintf("%v: canonical fact missing from an index: %s", ErrOrphanEntry, key),
			}
			s.logger.Warn("consistency violation", "violation", report.Violation)
			return report
		}
	}

	return ConsistencyReport{Valid: true}
}

func indexHas(ix index, a, b, c string) bool {
	second, ok := ix[a]
	if !ok {
		return false
	}
	third, ok := second[b]
	if !ok {
		return false
	}
	_, ok = third[c]
	return ok
}
