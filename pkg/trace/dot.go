package trace

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a navigation timeline to Graphviz DOT format.
// Events become nodes in arrival order connected by sequence edges, so the
// rendered diagram reads top to bottom as the transition history. Degraded
// requests (drops, exhausted retries, no-ops) are rendered dashed and grey to
// stand out from the applied transitions.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(events []Event) string {
	var buf bytes.Buffer
	buf.WriteString("digraph trace {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("\n")

	for _, e := range events {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(e), strings.Join(nodeAttrs(e), ", "))
	}

	buf.WriteString("\n")
	for i := 1; i < len(events); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(events[i-1]), nodeID(events[i]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(e Event) string {
	return fmt.Sprintf("e%d", e.Seq)
}

func nodeAttrs(e Event) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmt.Sprintf("%d: %s", e.Seq, e.Label()))}
	switch e.Kind {
	case KindDropped, KindRetryExhausted, KindNoOp:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case KindQueued, KindRetry:
		attrs = append(attrs, "fillcolor=lightyellow")
	case KindDismissed:
		if !e.Animated {
			attrs = append(attrs, "fillcolor=lightblue")
		}
	}
	return attrs
}

// RenderSVG renders a DOT timeline to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT timeline to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
