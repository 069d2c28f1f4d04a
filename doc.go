// Package semgraph provides an embedded graph-pattern query engine: an
// in-memory triple store maintained under multiple orderings for fast
// lookup, paired with an evaluator that executes a tree of graph-algebra
// operations and produces streams of variable-binding solutions.
//
// # Architecture
//
// SemGraph is organized as two cooperating subsystems plus supporting
// infrastructure:
//
//	┌─────────────────────────────────────┐
//	│         graph/query.Manager         │  Orchestration: timeouts,
//	│   (Execute, Evaluate, result cache) │  metrics, result shaping
//	└─────────────────────────────────────┘
//	           ↓ evaluates via
//	┌─────────────────────────────────────┐
//	│       graph/executor.Executor       │  Pull-based iterator per
//	│  (pattern, join, optional, union,   │  algebra node kind
//	│   filter, order, slice, distinct)   │
//	└─────────────────────────────────────┘
//	           ↓ matches patterns against
//	┌─────────────────────────────────────┐
//	│           graph.Store               │  Triple-indexed fact set
//	│      (SPO / POS / OSP indices)      │  add, remove, match, batch
//	└─────────────────────────────────────┘
//
// The operation tree (graph/algebra) is a closed tagged union handed to
// the executor once; patterns pull facts from the store, every other node
// operates purely on streams of solution mappings. Any store satisfying
// the executor's Match contract can be substituted, including a remote or
// persistent one.
//
// # Package Layout
//
//   - term: IRI, blank node, and literal terms with canonical encodings
//   - graph: the indexed fact store and its consistency guarantees
//   - graph/algebra: operation tree nodes and solution mappings
//   - graph/expression: boolean filter expression evaluation
//   - graph/executor: the lazy algebra evaluator
//   - graph/query: query orchestration with metrics and caching
//   - vocabulary: RDF and XSD namespace constants and helpers
//   - errors, metric, config, pkg/cache: shared infrastructure
//
// # Scope
//
// SemGraph is deliberately embedded and single-process. It does not
// persist facts, replicate them, or parse a textual query language; the
// operation tree arrives already built. The surrounding application is
// responsible for serializing mutation against concurrent evaluation.
package semgraph
