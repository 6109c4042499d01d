// Package io reads and writes diagram declarations as JSON, YAML or TOML.
//
// # Overview
//
// The built-in architecture is declared in Go, but the same description can
// be exported to a file, edited, and rendered again with --from. All three
// formats share one document shape:
//
//	title: Checkout
//	direction: LR
//	filename: generated-diagrams/checkout
//	format: png
//	graph_attr:
//	  bgcolor: white
//	clusters:
//	  - id: app
//	    label: Application
//	nodes:
//	  - id: api
//	    label: API Gateway
//	    category: network
//	  - id: fn
//	    label: Handler
//	    category: compute
//	    cluster: app
//	edges:
//	  - from: api
//	    to: fn
//	    label: invoke
//
// # Validation
//
// Decoding is strict: unknown keys are rejected, and the decoded diagram is
// rebuilt through the same checks as a Go declaration. Clusters are added
// first, then nodes, then edges, so an edge naming a node that is not in the
// node list fails with [diagram.ErrUnknownSourceNode] or
// [diagram.ErrUnknownTargetNode].
//
// # Files
//
// [Import] and [Export] pick the format from the file extension (.json,
// .yaml, .yml, .toml). [Read] and [Write] work on streams with an explicit
// format.
//
// [diagram.ErrUnknownSourceNode]: github.com/matzehuels/archdiagram/pkg/diagram.ErrUnknownSourceNode
// [diagram.ErrUnknownTargetNode]: github.com/matzehuels/archdiagram/pkg/diagram.ErrUnknownTargetNode
package io
