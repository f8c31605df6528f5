package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
)

var relationColors = map[model.RelationKind]string{
	model.RelContainment: "steelblue",
	model.RelAggregation: "darkgreen",
	model.RelNesting:     "darkorange",
	model.RelVoids:       "firebrick",
	model.RelFills:       "purple",
	model.RelProjects:    "sienna",
}

// ToDOT converts the placement graph of g to Graphviz DOT.
//
// Placements that no object or placement references are filled red so
// orphans stand out.
func ToDOT(g Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph placements {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, o := range g.Objects() {
		fmt.Fprintf(&buf, "  %q [%s];\n", objectNode(o.ID), strings.Join(objectAttrs(o, opts.Detailed), ", "))
	}
	for _, p := range g.Placements() {
		orphan := len(g.ReferencesTo(p.ID)) == 0
		fmt.Fprintf(&buf, "  %q [%s];\n", placementNode(p.ID), strings.Join(placementAttrs(p, orphan, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, o := range g.Objects() {
		if o.HasPlacement() {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", objectNode(o.ID), placementNode(o.Placement))
		}
	}
	for _, p := range g.Placements() {
		if !p.IsAbsolute() {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"rel\"];\n", placementNode(p.ID), placementNode(p.RelTo))
		}
	}
	for _, r := range g.Relations() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, color=%s, fontcolor=%s, constraint=false];\n",
			objectNode(r.Related), objectNode(r.Relating), r.Kind.String(), relationColors[r.Kind], relationColors[r.Kind])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func objectAttrs(o model.Object, detailed bool) []string {
	lines := []string{o.ID.String() + " " + string(o.Class)}
	if o.Name != "" {
		lines = append(lines, o.Name)
	}
	if detailed && o.GlobalID != "" {
		lines = append(lines, o.GlobalID)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", strings.Join(lines, "\n")),
		"shape=box",
		"style=\"rounded,filled\"",
	}
	if o.Class.Placeable() {
		attrs = append(attrs, "fillcolor=white")
	} else {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

func placementAttrs(p model.Placement, orphan, detailed bool) []string {
	label := p.ID.String()
	if detailed {
		label += "\nat " + geom.FormatVec3(p.Local.Origin)
	}
	fill := "lightyellow"
	if orphan {
		fill = "mistyrose"
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		"shape=ellipse",
		"style=filled",
		"fillcolor=" + fill,
	}
}
