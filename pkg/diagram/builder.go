package diagram

import (
	"errors"
	"fmt"

	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
)

// ErrNestedCluster is recorded by [Builder.Cluster] when clusters are nested.
// Clusters are a single level of visual grouping.
var ErrNestedCluster = errors.New("nested clusters are not supported")

// Builder declares a diagram as a flat sequence of calls.
//
// It keeps the first error and ignores every call after it, so callers can
// write a long declaration without checking each step. [Builder.Build]
// returns that error, if any.
type Builder struct {
	d       *Diagram
	current string // cluster that new nodes are placed in
	err     error
}

// NewBuilder starts a declaration for a diagram with the given title.
func NewBuilder(title string, opts Options) *Builder {
	b := &Builder{d: New(title, opts)}
	if !b.d.opts.Direction.Valid() {
		b.err = fmt.Errorf("%w: %q", ErrInvalidDirection, b.d.opts.Direction)
	}
	return b
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error { return b.err }

// Cluster declares a cluster and places every node declared inside fn in it.
func (b *Builder) Cluster(id, label string, fn func()) {
	if b.err != nil {
		return
	}
	if b.current != "" {
		b.err = fmt.Errorf("cluster %s inside %s: %w", id, b.current, ErrNestedCluster)
		return
	}
	if b.err = b.d.AddCluster(Cluster{ID: id, Label: label}); b.err != nil {
		return
	}
	b.current = id
	defer func() { b.current = "" }()
	fn()
}

// Node declares a node in the current cluster.
func (b *Builder) Node(id, label string, cat Category, service string) {
	if b.err != nil {
		return
	}
	b.err = b.d.AddNode(Node{ID: id, Label: label, Category: cat, Service: service, Cluster: b.current})
}

// Connect declares an unlabeled edge.
func (b *Builder) Connect(from, to string) {
	b.ConnectLabeled(from, to, "")
}

// ConnectLabeled declares an edge with a text label.
func (b *Builder) ConnectLabeled(from, to, label string) {
	if b.err != nil {
		return
	}
	b.err = b.d.AddEdge(Edge{From: from, To: to, Label: label})
}

// Chain connects consecutive pairs: Chain(a, b, c) declares a->b and b->c.
func (b *Builder) Chain(ids ...string) {
	for i := 1; i < len(ids); i++ {
		b.Connect(ids[i-1], ids[i])
	}
}

// FanOut connects one node to each of the targets, in order.
func (b *Builder) FanOut(from string, to ...string) {
	for _, t := range to {
		b.Connect(from, t)
	}
}

// FanIn connects each of the sources to one node, in order.
func (b *Builder) FanIn(to string, from ...string) {
	for _, f := range from {
		b.Connect(f, to)
	}
}

// Build returns the finished diagram, or the first declaration error
// wrapped with ErrCodeInvalidDiagram.
func (b *Builder) Build() (*Diagram, error) {
	if b.err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, b.err, "declare %q", b.d.title)
	}
	return b.d, nil
}
