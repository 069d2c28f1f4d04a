// Package vocabulary provides semantic vocabulary definitions and IRI helpers.
package vocabulary

import (
	"strings"
)

// IsAbsoluteIRI reports whether s looks like an absolute IRI: a scheme
// followed by a colon, with no whitespace or angle brackets. This is a
// structural sanity check, not full RFC 3987 validation; the store accepts
// any non-empty identifier and this helper exists for callers that want to
// lint their vocabularies.
func IsAbsoluteIRI(s string) bool {
	if s == "" {
		return false
	}

	colon := strings.Index(s, ":")
	if colon <= 0 {
		return false
	}

	// Scheme must be alphanumeric starting with a letter.
	scheme := s[:colon]
	for i, r := range scheme {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit && r != '+' && r != '-' && r != '.' {
			return false
		}
	}

	return !strings.ContainsAny(s, " \t\n<>\"{}|\\^`")
}

// LocalName returns the fragment or final path segment of an IRI, the part
// after the last '#' or '/'. Returns the input unchanged when neither
// separator is present.
//
// Example:
//
//	LocalName("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")  // "type"
//	LocalName("https://example.org/people/alice")                 // "alice"
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}

// Namespace returns the portion of an IRI up to and including the last
// '#' or '/'. Returns the empty string when neither separator is present.
func Namespace(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[:i+1]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[:i+1]
	}
	return ""
}
