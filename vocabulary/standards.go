package vocabulary

// Standard Vocabulary IRIs
//
// These constants provide the W3C namespaces and datatype IRIs used by the
// term model and the evaluator's typed comparisons. SemGraph stores IRIs
// verbatim; these constants exist so callers and tests do not scatter
// string literals.
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - RDFS: https://www.w3.org/TR/rdf-schema/
// - XSD: https://www.w3.org/TR/xmlschema11-2/

// Core namespaces
const (
	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFSNamespace is the RDF Schema namespace.
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	// XSDNamespace is the XML Schema datatype namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// RDF and RDFS terms
const (
	// RDFType relates a resource to its class.
	// Example: (alice, rdf:type, Person)
	RDFType = RDFNamespace + "type"

	// RDFLangString is the datatype of language-tagged literals. A literal
	// carrying a language tag implicitly has this datatype; the term model
	// therefore rejects an explicit datatype alongside a language tag.
	RDFLangString = RDFNamespace + "langString"

	// RDFSLabel provides a human-readable name for a resource.
	RDFSLabel = RDFSNamespace + "label"

	// RDFSComment provides a human-readable description of a resource.
	RDFSComment = RDFSNamespace + "comment"
)

// XSD datatype IRIs
const (
	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDInteger  = XSDNamespace + "integer"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDDouble   = XSDNamespace + "double"
	XSDFloat    = XSDNamespace + "float"
	XSDDate     = XSDNamespace + "date"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDDuration = XSDNamespace + "duration"
	XSDAnyURI   = XSDNamespace + "anyURI"
)

// numericDatatypes holds the XSD datatypes whose values compare numerically
// in ORDER BY and filter expressions.
var numericDatatypes = map[string]bool{
	XSDInteger: true,
	XSDDecimal: true,
	XSDDouble:  true,
	XSDFloat:   true,
}

// IsNumericDatatype reports whether the datatype IRI denotes an XSD numeric
// type. Untyped literals are not numeric by datatype but may still parse as
// numbers; the comparison layer handles that case separately.
func IsNumericDatatype(datatype string) bool {
	return numericDatatypes[datatype]
}
