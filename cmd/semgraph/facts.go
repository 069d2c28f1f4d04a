package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/semgraph/graph"
	"github.com/c360/semgraph/term"
)

// factDocument is the on-disk fact format. YAML and JSON both parse;
// JSON is a YAML subset.
type factDocument struct {
	Facts []factSpec `yaml:"facts"`
}

// factSpec is one triple. Subject and predicate are IRIs, with a "_:"
// prefix marking a blank node subject. The object accepts a bare scalar
// (a plain literal) or a mapping selecting the term kind.
type factSpec struct {
	Subject   string     `yaml:"subject"`
	Predicate string     `yaml:"predicate"`
	Object    objectSpec `yaml:"object"`
}

type objectSpec struct {
	IRI      string `yaml:"iri"`
	Blank    string `yaml:"blank"`
	Value    string `yaml:"value"`
	Datatype string `yaml:"datatype"`
	Language string `yaml:"language"`

	scalar    string
	hasScalar bool
}

func (o *objectSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.scalar = node.Value
		o.hasScalar = true
		return nil
	}

	type plain objectSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = objectSpec(p)
	return nil
}

func (o *objectSpec) term() (term.Term, error) {
	switch {
	case o.hasScalar:
		if strings.HasPrefix(o.scalar, "_:") {
			return term.NewBlankNodeWithLabel(strings.TrimPrefix(o.scalar, "_:")), nil
		}
		return term.NewLiteral(o.scalar), nil
	case o.IRI != "":
		return term.NewIRI(o.IRI), nil
	case o.Blank != "":
		return term.NewBlankNodeWithLabel(o.Blank), nil
	case o.Language != "":
		return term.NewLangLiteral(o.Value, o.Language), nil
	case o.Datatype != "":
		return term.NewTypedLiteral(o.Value, o.Datatype), nil
	case o.Value != "":
		return term.NewLiteral(o.Value), nil
	default:
		return nil, fmt.Errorf("object must be a scalar or set one of iri, blank, value")
	}
}

// subjectTerm resolves a subject or predicate position string.
func subjectTerm(s string) term.Term {
	if strings.HasPrefix(s, "_:") {
		return term.NewBlankNodeWithLabel(strings.TrimPrefix(s, "_:"))
	}
	return term.NewIRI(s)
}

// loadFacts reads a fact document and builds a populated store.
func loadFacts(path string, opts ...graph.Option) (*graph.Store, error) {
	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read facts file: %w", err)
	}

	var doc factDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse facts file: %w", err)
	}
	if len(doc.Facts) == 0 {
		return nil, fmt.Errorf("facts file %s contains no facts", path)
	}

	facts := make([]graph.Fact, 0, len(doc.Facts))
	for i, spec := range doc.Facts {
		object, err := spec.Object.term()
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
		fact, err := graph.NewFact(subjectTerm(spec.Subject), term.NewIRI(spec.Predicate), object)
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
		facts = append(facts, fact)
	}

	store := graph.NewStore(opts...)
	result := store.AddBatch(facts)
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		return nil, fmt.Errorf("fact %d rejected: %w", first.Index, first.Err)
	}
	return store, nil
}
