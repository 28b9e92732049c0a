package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/comalice/hscx"
)

// Visualizer renders a chart's structure and a live configuration.
type Visualizer interface {
	ExportDOT(chart *hscx.StateChart, configuration []string) string
	ExportJSON(chart *hscx.StateChart) ([]byte, error)
}

// DefaultVisualizer is the stdlib-only implementation of Visualizer.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for chart, highlighting the
// states named in configuration.
func (v *DefaultVisualizer) ExportDOT(chart *hscx.StateChart, configuration []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Statechart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	active := make(map[string]bool, len(configuration))
	for _, s := range configuration {
		active[s] = true
	}

	if chart.Root() != "" {
		renderState(&buf, chart, chart.Root(), active)
	}

	names := chart.States()
	sort.Strings(names)
	for _, name := range names {
		for _, t := range chart.TransitionsFrom(name) {
			if t.Target == "" {
				continue
			}
			label := t.Event
			if label == "" {
				label = "(eventless)"
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.Source, t.Target, label)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// exportableChart is the JSON-friendly projection of a StateChart:
// function-valued fields (guards, actions, entry/exit bodies) can't
// marshal, so ExportJSON ships structure only.
type exportableChart struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Root        string                 `json:"root"`
	States      map[string]exportState `json:"states"`
}

type exportState struct {
	Kind     string   `json:"kind"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
	Initial  string   `json:"initial,omitempty"`
	Memory   string   `json:"memory,omitempty"`
}

// ExportJSON serializes chart's structure (states, hierarchy, kinds) to
// JSON; callback closures are necessarily omitted.
func (v *DefaultVisualizer) ExportJSON(chart *hscx.StateChart) ([]byte, error) {
	out := exportableChart{
		Name:        chart.Name,
		Description: chart.Description,
		Root:        chart.Root(),
		States:      make(map[string]exportState),
	}
	for _, name := range chart.States() {
		s := chart.StateFor(name)
		out.States[name] = exportState{
			Kind:     s.Kind.String(),
			Parent:   chart.ParentFor(name),
			Children: chart.ChildrenFor(name),
			Initial:  s.Initial,
			Memory:   s.Memory,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// renderState recursively renders name and its descendants as nested DOT
// clusters, one per composite state.
func renderState(buf *bytes.Buffer, chart *hscx.StateChart, name string, active map[string]bool) {
	children := chart.ChildrenFor(name)
	state := chart.StateFor(name)

	if len(children) == 0 {
		style := ""
		if active[name] {
			style = " style=filled fillcolor=lightgreen"
		}
		fmt.Fprintf(buf, "  %q [label=%q%s];\n", name, name, style)
		return
	}

	fmt.Fprintf(buf, "  subgraph cluster_%s {\n", sanitize(name))
	style := ""
	if active[name] {
		style = " style=filled fillcolor=orange"
	} else if state.Kind == hscx.Orthogonal {
		style = " style=filled fillcolor=lightblue"
	}
	fmt.Fprintf(buf, "    label=%q%s;\n", fmt.Sprintf("%s (%s)", name, state.Kind), style)

	for _, child := range children {
		renderState(buf, chart, child, active)
	}

	buf.WriteString("  }\n")
}

func sanitize(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '.' || c == '-' || c == ' ' {
			out[i] = '_'
		} else {
			out[i] = c
		}
	}
	return string(out)
}
