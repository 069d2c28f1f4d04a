// Package vocabulary provides W3C namespace constants, XSD datatype IRIs,
// and small IRI helpers used across the engine.
//
// The term model consults IsNumericDatatype when deciding whether a typed
// literal participates in numeric comparison; everything else here is
// convenience for callers assembling facts and vocabularies.
package vocabulary
