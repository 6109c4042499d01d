package io

import (
	"github.com/matzehuels/archdiagram/pkg/diagram"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
)

type document struct {
	Title     string            `json:"title" yaml:"title" toml:"title"`
	Direction string            `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	Filename  string            `json:"filename,omitempty" yaml:"filename,omitempty" toml:"filename,omitempty"`
	Format    string            `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	GraphAttr map[string]string `json:"graph_attr,omitempty" yaml:"graph_attr,omitempty" toml:"graph_attr,omitempty"`
	NodeAttr  map[string]string `json:"node_attr,omitempty" yaml:"node_attr,omitempty" toml:"node_attr,omitempty"`
	EdgeAttr  map[string]string `json:"edge_attr,omitempty" yaml:"edge_attr,omitempty" toml:"edge_attr,omitempty"`
	Clusters  []cluster         `json:"clusters,omitempty" yaml:"clusters,omitempty" toml:"clusters,omitempty"`
	Nodes     []node            `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges     []edge            `json:"edges" yaml:"edges" toml:"edges"`
}

type cluster struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

type node struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Label    string `json:"label" yaml:"label" toml:"label"`
	Category string `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Service  string `json:"service,omitempty" yaml:"service,omitempty" toml:"service,omitempty"`
	Cluster  string `json:"cluster,omitempty" yaml:"cluster,omitempty" toml:"cluster,omitempty"`
}

type edge struct {
	From  string `json:"from" yaml:"from" toml:"from"`
	To    string `json:"to" yaml:"to" toml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

func fromDiagram(d *diagram.Diagram) document {
	opts := d.Options()
	doc := document{
		Title:     d.Title(),
		Direction: string(opts.Direction),
		Filename:  opts.Filename,
		Format:    opts.Format,
		GraphAttr: opts.GraphAttr,
		NodeAttr:  opts.NodeAttr,
		EdgeAttr:  opts.EdgeAttr,
		Nodes:     make([]node, 0, d.NodeCount()),
		Edges:     make([]edge, 0, d.EdgeCount()),
	}
	for _, c := range d.Clusters() {
		doc.Clusters = append(doc.Clusters, cluster{ID: c.ID, Label: c.Label})
	}
	for _, n := range d.Nodes() {
		doc.Nodes = append(doc.Nodes, node{
			ID:       n.ID,
			Label:    n.Label,
			Category: string(n.Category),
			Service:  n.Service,
			Cluster:  n.Cluster,
		})
	}
	for _, e := range d.Edges() {
		doc.Edges = append(doc.Edges, edge{From: e.From, To: e.To, Label: e.Label})
	}
	return doc
}

// toDiagram rebuilds a diagram, applying every declaration check.
func (doc document) toDiagram() (*diagram.Diagram, error) {
	if doc.Title == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidDiagram, "title is required")
	}
	d := diagram.New(doc.Title, diagram.Options{
		Direction: diagram.Direction(doc.Direction),
		Filename:  doc.Filename,
		Format:    doc.Format,
		GraphAttr: doc.GraphAttr,
		NodeAttr:  doc.NodeAttr,
		EdgeAttr:  doc.EdgeAttr,
	})
	for _, c := range doc.Clusters {
		if err := d.AddCluster(diagram.Cluster{ID: c.ID, Label: c.Label}); err != nil {
			return nil, invalid(doc.Title, err)
		}
	}
	for _, n := range doc.Nodes {
		err := d.AddNode(diagram.Node{
			ID:       n.ID,
			Label:    n.Label,
			Category: diagram.Category(n.Category),
			Service:  n.Service,
			Cluster:  n.Cluster,
		})
		if err != nil {
			return nil, invalid(doc.Title, err)
		}
	}
	for _, e := range doc.Edges {
		if err := d.AddEdge(diagram.Edge{From: e.From, To: e.To, Label: e.Label}); err != nil {
			return nil, invalid(doc.Title, err)
		}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func invalid(title string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "diagram %q", title)
}
