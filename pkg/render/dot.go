package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/archdiagram/pkg/diagram"
)

// Default attributes. Values follow the look of the python "diagrams"
// library so that regenerated images match the existing ones.
var (
	defaultGraphAttrs = diagram.Attrs{
		"pad":       "2.0",
		"splines":   "ortho",
		"nodesep":   "0.60",
		"ranksep":   "0.75",
		"fontname":  "Sans-Serif",
		"fontsize":  "15",
		"fontcolor": "#2D3436",
		"labelloc":  "t",
	}

	defaultNodeAttrs = diagram.Attrs{
		"shape":     "box",
		"style":     "rounded,filled",
		"fontname":  "Sans-Serif",
		"fontsize":  "13",
		"fontcolor": "#2D3436",
		"margin":    "0.25,0.12",
		"penwidth":  "1.5",
	}

	defaultEdgeAttrs = diagram.Attrs{
		"color":    "#7B8894",
		"fontname": "Sans-Serif",
		"fontsize": "11",
	}

	clusterAttrs = diagram.Attrs{
		"shape":     "box",
		"style":     "rounded",
		"labeljust": "l",
		"pencolor":  "#AEB6BE",
		"bgcolor":   "#E5F5FD",
		"fontname":  "Sans-Serif",
		"fontsize":  "12",
	}
)

// categoryStyle is the fill, border and shape of one node category.
type categoryStyle struct {
	fill  string
	pen   string
	shape string
}

var categoryStyles = map[diagram.Category]categoryStyle{
	diagram.CategoryClient:      {fill: "#F1F2F6", pen: "#2D3436", shape: "ellipse"},
	diagram.CategoryNetwork:     {fill: "#EDE4FF", pen: "#8C4FFF"},
	diagram.CategoryCompute:     {fill: "#FDE7D3", pen: "#ED7100"},
	diagram.CategoryIntegration: {fill: "#FCE1EE", pen: "#E7157B"},
	diagram.CategoryML:          {fill: "#D5F2ED", pen: "#01A88D"},
	diagram.CategoryDatabase:    {fill: "#E3ECFB", pen: "#3B48CC", shape: "cylinder"},
	diagram.CategoryStorage:     {fill: "#E6F2D3", pen: "#7AA116"},
	diagram.CategorySecurity:    {fill: "#FBDDE1", pen: "#DD344C"},
	diagram.CategoryManagement:  {fill: "#FDE1EA", pen: "#E7157B"},
	diagram.CategoryGeneral:     {fill: "#ECEFF1", pen: "#7B8894"},
}

// ToDOT converts a diagram to Graphviz DOT source.
//
// The output is deterministic: attributes are sorted by key, and nodes,
// clusters and edges appear in declaration order. A cluster is emitted at
// the position of its first member node. Clusters with no nodes are omitted.
func ToDOT(d *diagram.Diagram) string {
	opts := d.Options()

	graphAttrs := merge(defaultGraphAttrs, diagram.Attrs{
		"rankdir": string(opts.Direction),
		"label":   d.Title(),
	}, opts.GraphAttr)
	nodeAttrs := merge(defaultNodeAttrs, opts.NodeAttr)
	edgeAttrs := merge(defaultEdgeAttrs, opts.EdgeAttr)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(d.Title()))
	fmt.Fprintf(&buf, "  graph [%s];\n", fmtAttrs(graphAttrs))
	fmt.Fprintf(&buf, "  node [%s];\n", fmtAttrs(nodeAttrs))
	fmt.Fprintf(&buf, "  edge [%s];\n", fmtAttrs(edgeAttrs))
	buf.WriteString("\n")

	emitted := make(map[string]bool)
	for _, n := range d.Nodes() {
		if n.Cluster == "" {
			writeNode(&buf, "  ", n)
			continue
		}
		if emitted[n.Cluster] {
			continue
		}
		emitted[n.Cluster] = true
		c, _ := d.Cluster(n.Cluster)
		writeCluster(&buf, c, d.NodesInCluster(c.ID))
	}

	buf.WriteString("\n")
	// splines=ortho drops plain edge labels; xlabel is placed after routing.
	for _, e := range d.Edges() {
		if e.Label == "" {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [xlabel=%s];\n", quote(e.From), quote(e.To), quote(e.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, c diagram.Cluster, nodes []diagram.Node) {
	fmt.Fprintf(buf, "  subgraph %s {\n", quote("cluster_"+c.ID))
	fmt.Fprintf(buf, "    graph [%s];\n", fmtAttrs(merge(clusterAttrs, diagram.Attrs{"label": c.Label})))
	for _, n := range nodes {
		writeNode(buf, "    ", n)
	}
	buf.WriteString("  }\n")
}

func writeNode(buf *bytes.Buffer, indent string, n diagram.Node) {
	fmt.Fprintf(buf, "%s%s [%s];\n", indent, quote(n.ID), fmtAttrs(nodeAttrs(n)))
}

// nodeAttrs returns the per-node attributes: label, category styling and the
// provider service as tooltip.
func nodeAttrs(n diagram.Node) diagram.Attrs {
	attrs := diagram.Attrs{"label": n.Label}
	style, ok := categoryStyles[n.Category]
	if !ok {
		style = categoryStyles[diagram.CategoryGeneral]
	}
	attrs["fillcolor"] = style.fill
	attrs["color"] = style.pen
	if style.shape != "" {
		attrs["shape"] = style.shape
		attrs["style"] = "filled"
	}
	if n.Service != "" {
		attrs["tooltip"] = n.Service
	}
	return attrs
}

// merge returns a new map with later maps overriding earlier ones.
func merge(layers ...diagram.Attrs) diagram.Attrs {
	out := diagram.Attrs{}
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

func fmtAttrs(attrs diagram.Attrs) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, k+"="+quote(attrs[k]))
	}
	return strings.Join(parts, ", ")
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote returns s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
