package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/archdiagram/pkg/diagram"
)

// ToMermaid converts a diagram to a Mermaid flowchart.
//
// Clusters become subgraphs, categories become classDefs using the same
// colours as the Graphviz output. Like [ToDOT], the output follows
// declaration order and is deterministic.
func ToMermaid(d *diagram.Diagram) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "---\ntitle: %s\n---\n", d.Title())
	fmt.Fprintf(&buf, "flowchart %s\n", d.Options().Direction)

	ids := mermaidIDs(d)
	emitted := make(map[string]bool)
	for _, n := range d.Nodes() {
		if n.Cluster == "" {
			fmt.Fprintf(&buf, "  %s[%s]\n", ids[n.ID], mermaidText(n.Label))
			continue
		}
		if emitted[n.Cluster] {
			continue
		}
		emitted[n.Cluster] = true
		c, _ := d.Cluster(n.Cluster)
		fmt.Fprintf(&buf, "  subgraph %s[%s]\n", ids[c.ID], mermaidText(c.Label))
		for _, m := range d.NodesInCluster(c.ID) {
			fmt.Fprintf(&buf, "    %s[%s]\n", ids[m.ID], mermaidText(m.Label))
		}
		buf.WriteString("  end\n")
	}

	for _, e := range d.Edges() {
		if e.Label == "" {
			fmt.Fprintf(&buf, "  %s --> %s\n", ids[e.From], ids[e.To])
			continue
		}
		fmt.Fprintf(&buf, "  %s -->|%s| %s\n", ids[e.From], mermaidText(e.Label), ids[e.To])
	}

	for _, cat := range d.Categories() {
		style := categoryStyles[cat]
		fmt.Fprintf(&buf, "  classDef %s fill:%s,stroke:%s\n", cat, style.fill, style.pen)
		var members []string
		for _, n := range d.Nodes() {
			if n.Category == cat {
				members = append(members, ids[n.ID])
			}
		}
		fmt.Fprintf(&buf, "  class %s %s\n", strings.Join(members, ","), cat)
	}
	return buf.String()
}

// mermaidKeywords cannot be used as bare node or subgraph IDs. Mermaid
// matches them case-insensitively.
var mermaidKeywords = map[string]bool{
	"end": true, "graph": true, "flowchart": true, "subgraph": true,
	"direction": true, "style": true, "class": true, "classdef": true,
	"click": true, "linkstyle": true, "call": true, "href": true,
	"default": true,
}

// mermaidIDs maps every cluster and node ID to the ID written to Mermaid.
// Keywords get an "n_" prefix, repeated until it clashes with no declared ID.
func mermaidIDs(d *diagram.Diagram) map[string]string {
	ids := make(map[string]string)
	for _, c := range d.Clusters() {
		ids[c.ID] = c.ID
	}
	for _, n := range d.Nodes() {
		ids[n.ID] = n.ID
	}
	taken := make(map[string]bool, len(ids))
	for id := range ids {
		taken[id] = true
	}
	for id := range ids {
		if !mermaidKeywords[strings.ToLower(id)] {
			continue
		}
		alias := "n_" + id
		for taken[alias] {
			alias = "n_" + alias
		}
		taken[alias] = true
		ids[id] = alias
	}
	return ids
}

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "\n", "<br/>")

// mermaidText quotes a label for use inside [...] or |...|.
func mermaidText(s string) string {
	return `"` + mermaidEscaper.Replace(s) + `"`
}
