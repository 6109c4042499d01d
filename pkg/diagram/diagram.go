package diagram

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
)

var (
	// ErrInvalidNodeID is returned by [Diagram.AddNode] when the node ID is
	// empty or not a valid identifier.
	ErrInvalidNodeID = errors.New("invalid node ID")

	// ErrDuplicateNodeID is returned by [Diagram.AddNode] when a node with the
	// same ID was already declared.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidLabel is returned when a node or cluster label is empty or
	// contains control characters other than newlines.
	ErrInvalidLabel = errors.New("invalid label")

	// ErrInvalidCategory is returned when a node carries an unknown category tag.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrDuplicateCluster is returned by [Diagram.AddCluster] when a cluster
	// with the same ID was already declared.
	ErrDuplicateCluster = errors.New("duplicate cluster ID")

	// ErrUnknownCluster is returned by [Diagram.AddNode] when the node names a
	// cluster that has not been declared.
	ErrUnknownCluster = errors.New("unknown cluster")

	// ErrUnknownSourceNode is returned by [Diagram.AddEdge] when the From node
	// has not been declared.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Diagram.AddEdge] when the To node
	// has not been declared.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidDirection is returned when Options.Direction is not one of
	// TB, BT, LR or RL.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidAttr is returned when a graph, node or edge attribute name is
	// not a plain Graphviz identifier.
	ErrInvalidAttr = errors.New("invalid attribute name")
)

// Category tags a node for visual grouping.
type Category string

const (
	CategoryClient      Category = "client"
	CategoryNetwork     Category = "network"
	CategoryCompute     Category = "compute"
	CategoryIntegration Category = "integration"
	CategoryML          Category = "ml"
	CategoryDatabase    Category = "database"
	CategoryStorage     Category = "storage"
	CategorySecurity    Category = "security"
	CategoryManagement  Category = "management"
	CategoryGeneral     Category = "general"
)

var validCategories = map[Category]bool{
	CategoryClient:      true,
	CategoryNetwork:     true,
	CategoryCompute:     true,
	CategoryIntegration: true,
	CategoryML:          true,
	CategoryDatabase:    true,
	CategoryStorage:     true,
	CategorySecurity:    true,
	CategoryManagement:  true,
	CategoryGeneral:     true,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return validCategories[c] }

// Direction is the Graphviz rank direction of the diagram.
type Direction string

const (
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
)

// Valid reports whether d is a supported rank direction.
func (d Direction) Valid() bool {
	switch d {
	case TopToBottom, BottomToTop, LeftToRight, RightToLeft:
		return true
	}
	return false
}

// Attrs holds raw Graphviz attributes. Values are emitted quoted; names
// must match [A-Za-z_][A-Za-z0-9_]* and are emitted as is.
type Attrs map[string]string

var attrNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (a Attrs) validate(kind string) error {
	for _, k := range slices.Sorted(maps.Keys(a)) {
		if !attrNamePattern.MatchString(k) {
			return fmt.Errorf("%w: %s %q", ErrInvalidAttr, kind, k)
		}
	}
	return nil
}

const (
	// DefaultDirection matches the left-to-right flow of request paths.
	DefaultDirection = LeftToRight
	// DefaultFormat is the output image format.
	DefaultFormat = "png"
)

// Options configures how a diagram is presented and where it is written.
type Options struct {
	Direction Direction // Rank direction (default LR)
	GraphAttr Attrs     // Overrides for graph-level attributes
	NodeAttr  Attrs     // Overrides for node defaults
	EdgeAttr  Attrs     // Overrides for edge defaults
	Filename  string    // Output path without extension (default: derived from title)
	Format    string    // Output format (default png)
}

// Cluster is a labeled visual grouping of nodes.
type Cluster struct {
	ID    string
	Label string
}

// Node is one labeled box in the diagram.
type Node struct {
	ID       string   // Unique identifier, used only inside the diagram source
	Label    string   // Display text, may contain newlines
	Category Category // Visual grouping tag
	Service  string   // Provider service name, e.g. "aws.Lambda" (informational)
	Cluster  string   // Enclosing cluster ID, empty for top level
}

// Edge is a directed, optionally labeled connector between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
}

// Diagram is an ordered declaration of clusters, nodes and edges.
//
// The zero value is not usable; use [New]. A Diagram is built once and
// then only read; it is not safe for concurrent mutation.
type Diagram struct {
	title      string
	opts       Options
	clusters   []Cluster
	clusterIdx map[string]int
	nodes      []Node
	nodeIdx    map[string]int
	edges      []Edge
}

// New creates an empty diagram. Zero-valued options are filled with
// defaults: direction LR, format png, and a filename derived from the title.
func New(title string, opts Options) *Diagram {
	if opts.Direction == "" {
		opts.Direction = DefaultDirection
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if opts.Filename == "" {
		opts.Filename = filenameFromTitle(title)
	}
	return &Diagram{
		title:      title,
		opts:       opts,
		clusterIdx: make(map[string]int),
		nodeIdx:    make(map[string]int),
	}
}

// filenameFromTitle joins the title's words with underscores and lowercases them.
func filenameFromTitle(title string) string {
	name := strings.ToLower(strings.Join(strings.Fields(title), "_"))
	if name == "" {
		return "diagram"
	}
	return name
}

// Title returns the diagram title.
func (d *Diagram) Title() string { return d.title }

// Options returns a copy of the diagram options with defaults applied.
func (d *Diagram) Options() Options {
	opts := d.opts
	opts.GraphAttr = maps.Clone(d.opts.GraphAttr)
	opts.NodeAttr = maps.Clone(d.opts.NodeAttr)
	opts.EdgeAttr = maps.Clone(d.opts.EdgeAttr)
	return opts
}

// SetDirection overrides the rank direction.
func (d *Diagram) SetDirection(dir Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	d.opts.Direction = dir
	return nil
}

// OutputPath returns the file the rendered diagram is written to:
// Filename with the format appended as extension.
func (d *Diagram) OutputPath() string {
	return filepath.FromSlash(d.opts.Filename) + "." + d.opts.Format
}

// AddCluster declares a cluster. Returns ErrDuplicateCluster if the ID is
// already taken.
func (d *Diagram) AddCluster(c Cluster) error {
	if err := apperrors.ValidateIdentifier(c.ID); err != nil {
		return fmt.Errorf("cluster %q: %w", c.ID, err)
	}
	if err := apperrors.ValidateLabel(c.Label); err != nil {
		return fmt.Errorf("cluster %s: %w: %w", c.ID, ErrInvalidLabel, err)
	}
	if _, exists := d.clusterIdx[c.ID]; exists {
		return fmt.Errorf("cluster %s: %w", c.ID, ErrDuplicateCluster)
	}
	d.clusterIdx[c.ID] = len(d.clusters)
	d.clusters = append(d.clusters, c)
	return nil
}

// AddNode declares a node. The node's cluster, if any, must already exist.
// An empty category defaults to CategoryGeneral.
func (d *Diagram) AddNode(n Node) error {
	if err := apperrors.ValidateIdentifier(n.ID); err != nil {
		return fmt.Errorf("node %q: %w: %w", n.ID, ErrInvalidNodeID, err)
	}
	if _, exists := d.nodeIdx[n.ID]; exists {
		return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNodeID)
	}
	if err := apperrors.ValidateLabel(n.Label); err != nil {
		return fmt.Errorf("node %s: %w: %w", n.ID, ErrInvalidLabel, err)
	}
	if n.Category == "" {
		n.Category = CategoryGeneral
	}
	if !n.Category.Valid() {
		return fmt.Errorf("node %s: %w: %q", n.ID, ErrInvalidCategory, n.Category)
	}
	if n.Cluster != "" {
		if _, ok := d.clusterIdx[n.Cluster]; !ok {
			return fmt.Errorf("node %s: %w: %q", n.ID, ErrUnknownCluster, n.Cluster)
		}
	}
	d.nodeIdx[n.ID] = len(d.nodes)
	d.nodes = append(d.nodes, n)
	return nil
}

// AddEdge declares a directed edge between two previously declared nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode otherwise.
// Parallel edges are allowed.
func (d *Diagram) AddEdge(e Edge) error {
	if _, ok := d.nodeIdx[e.From]; !ok {
		return fmt.Errorf("edge %s -> %s: %w", e.From, e.To, ErrUnknownSourceNode)
	}
	if _, ok := d.nodeIdx[e.To]; !ok {
		return fmt.Errorf("edge %s -> %s: %w", e.From, e.To, ErrUnknownTargetNode)
	}
	d.edges = append(d.edges, e)
	return nil
}

// Nodes returns a copy of all nodes in declaration order.
func (d *Diagram) Nodes() []Node { return slices.Clone(d.nodes) }

// Edges returns a copy of all edges in declaration order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// Clusters returns a copy of all clusters in declaration order.
func (d *Diagram) Clusters() []Cluster { return slices.Clone(d.clusters) }

// Node returns the node with the given ID.
func (d *Diagram) Node(id string) (Node, bool) {
	i, ok := d.nodeIdx[id]
	if !ok {
		return Node{}, false
	}
	return d.nodes[i], true
}

// Cluster returns the cluster with the given ID.
func (d *Diagram) Cluster(id string) (Cluster, bool) {
	i, ok := d.clusterIdx[id]
	if !ok {
		return Cluster{}, false
	}
	return d.clusters[i], true
}

// NodesInCluster returns the nodes declared inside the given cluster, in
// declaration order. An empty id returns the top-level nodes.
func (d *Diagram) NodesInCluster(id string) []Node {
	var out []Node
	for _, n := range d.nodes {
		if n.Cluster == id {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// ClusterCount returns the number of clusters.
func (d *Diagram) ClusterCount() int { return len(d.clusters) }

// Categories returns the distinct categories in use, sorted.
func (d *Diagram) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, n := range d.nodes {
		if !seen[n.Category] {
			seen[n.Category] = true
			out = append(out, n.Category)
		}
	}
	slices.Sort(out)
	return out
}

// Validate re-checks every declaration invariant over the whole diagram:
// valid options and attribute names, unique well-formed identifiers, known clusters and
// categories, and edges that only reference declared nodes. The returned
// error carries ErrCodeInvalidDiagram and wraps the sentinel describing the first problem.
func (d *Diagram) Validate() error {
	if err := d.validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "diagram %q", d.title)
	}
	return nil
}

func (d *Diagram) validate() error {
	if !d.opts.Direction.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, d.opts.Direction)
	}
	if err := apperrors.ValidateOutputPath(d.OutputPath()); err != nil {
		return err
	}
	if err := d.opts.GraphAttr.validate("graph_attr"); err != nil {
		return err
	}
	if err := d.opts.NodeAttr.validate("node_attr"); err != nil {
		return err
	}
	if err := d.opts.EdgeAttr.validate("edge_attr"); err != nil {
		return err
	}

	fresh := New(d.title, d.opts)
	for _, c := range d.clusters {
		if err := fresh.AddCluster(c); err != nil {
			return err
		}
	}
	for _, n := range d.nodes {
		if err := fresh.AddNode(n); err != nil {
			return err
		}
	}
	for _, e := range d.edges {
		if err := fresh.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}
