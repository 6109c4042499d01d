// Package diagram describes cloud architecture diagrams as plain data.
//
// # Overview
//
// A [Diagram] is a titled list of [Node] values, optionally grouped into
// [Cluster] boxes, connected by directed [Edge] values. Nothing here lays
// out or draws anything: the description is handed to the render package,
// which delegates to Graphviz.
//
// # Declaration Order
//
// Nodes, clusters and edges keep the order in which they were declared, and
// that order is what the renderer emits. Because an edge may only reference
// nodes that were added before it, a diagram can never contain a dangling
// edge:
//
//	d := diagram.New("Checkout", diagram.Options{})
//	_ = d.AddNode(diagram.Node{ID: "api", Label: "API", Category: diagram.CategoryNetwork})
//	_ = d.AddNode(diagram.Node{ID: "fn", Label: "Handler", Category: diagram.CategoryCompute})
//	_ = d.AddEdge(diagram.Edge{From: "api", To: "fn"})
//
// # Builder
//
// [Builder] wraps a Diagram for long literal declarations. It records the
// first error and turns every later call into a no-op, so a declaration
// reads as a flat list and is checked once at [Builder.Build]:
//
//	b := diagram.NewBuilder("Checkout", diagram.Options{Direction: diagram.LeftToRight})
//	b.Node("api", "API", diagram.CategoryNetwork, "aws.APIGateway")
//	b.Cluster("app", "Application", func() {
//	    b.Node("fn", "Handler", diagram.CategoryCompute, "aws.Lambda")
//	})
//	b.Chain("api", "fn")
//	d, err := b.Build()
//
// # Categories
//
// Every node carries a [Category] tag (compute, storage, security, ...).
// Categories only drive visual grouping such as fill colour.
package diagram
