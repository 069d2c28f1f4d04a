// Package errors provides standardized error handling patterns for SemGraph.
//
// # Overview
//
// The package implements a three-class error classification system:
// Invalid (bad input, non-retryable), Fatal (programming defect, stop
// processing), and Transient (temporary, retryable). The engine draws a
// hard line between structural errors and data conditions: malformed
// facts and unrecognized operation kinds are errors, while incompatible
// merges, unbound variables, and empty result sets are ordinary results
// and never surface through this package.
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Return standard error variables for known conditions:
//
//	if pattern.Subject == nil {
//	    return errors.ErrMissingPosition
//	}
//
// Wrap errors with component context:
//
//	if err := store.Add(fact); err != nil {
//	    return errors.WrapInvalid(err, "Store", "AddBatch", "fact insertion")
//	}
//
// Check classification at the call site:
//
//	if errors.IsFatal(err) {
//	    return err // construction defect, do not continue
//	}
package errors
