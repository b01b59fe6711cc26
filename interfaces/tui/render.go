// Package tui renders exploration state for the terminal. Node colors come
// straight from the graph's distance palette, so the terminal view and a
// force-directed rendering agree on what every hue means.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"soundmap/domain/exploration"
	"soundmap/domain/graph"
	"soundmap/domain/snapshot"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)
	centerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	memoStyle   = lipgloss.NewStyle().Italic(true)
)

func nodeStyle(n graph.Node) lipgloss.Style {
	color := n.Color
	if color == "" {
		color = graph.ColorFor(n.DistanceGroup)
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if n.IsFixed {
		s = s.Inherit(centerStyle)
	}
	return s
}

// RenderState draws the full exploration view: breadcrumb, graph nodes
// grouped by distance, link count, now-playing line and any error.
func RenderState(st exploration.State) string {
	var b strings.Builder

	if len(st.Path) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(st.Path, " > ")))
		b.WriteString("\n")
	}

	switch st.Phase {
	case exploration.PhaseIdle:
		b.WriteString(dimStyle.Render("search for an artist to begin"))
		b.WriteString("\n")
		return b.String()
	case exploration.PhaseSearching:
		b.WriteString(dimStyle.Render("loading..."))
		b.WriteString("\n")
		return b.String()
	case exploration.PhaseError:
		b.WriteString(errorStyle.Render(st.LastError))
		b.WriteString("\n")
		if st.Graph.IsEmpty() {
			return b.String()
		}
		// fall through to the last good graph
	}

	b.WriteString(titleStyle.Render(st.CenterArtist))
	b.WriteString("\n")
	renderGraph(&b, st.Graph)

	linkCount := len(st.Graph.Edges)
	links := fmt.Sprintf("%d links", linkCount)
	if st.ShowAllLinks {
		links += " (all shown)"
	}
	b.WriteString(dimStyle.Render(links))
	b.WriteString("\n")

	if st.NowPlaying != nil {
		b.WriteString(memoStyle.Render("now playing: " + st.NowPlaying.Title))
		b.WriteString("\n")
	}
	if st.JustSaved {
		b.WriteString(dimStyle.Render("saved"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderGraph(b *strings.Builder, g graph.Graph) {
	byGroup := make(map[int][]graph.Node)
	var groups []int
	for _, n := range g.Nodes {
		if _, seen := byGroup[n.DistanceGroup]; !seen {
			groups = append(groups, n.DistanceGroup)
		}
		byGroup[n.DistanceGroup] = append(byGroup[n.DistanceGroup], n)
	}
	sort.Ints(groups)

	for _, group := range groups {
		nodes := byGroup[group]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

		labels := make([]string, 0, len(nodes))
		for _, n := range nodes {
			labels = append(labels, nodeStyle(n).Render(n.ID))
		}
		prefix := fmt.Sprintf("  %d hop  ", group)
		if group == 0 {
			prefix = "  center "
		}
		b.WriteString(dimStyle.Render(prefix))
		b.WriteString(strings.Join(labels, "  "))
		b.WriteString("\n")
	}
}

// RenderSnapshots draws the saved-network library as a numbered list.
func RenderSnapshots(rows []snapshot.Snapshot) string {
	if len(rows) == 0 {
		return dimStyle.Render("no saved networks") + "\n"
	}

	var b strings.Builder
	for _, row := range rows {
		line := fmt.Sprintf("#%d  %s", row.ID, titleStyle.Render(row.CenterArtist))
		if !row.CreatedAt.IsZero() {
			line += dimStyle.Render("  " + row.CreatedAt.Format("2006-01-02 15:04"))
		}
		b.WriteString(line)
		b.WriteString("\n")
		if row.Memo != "" {
			b.WriteString(memoStyle.Render("    " + row.Memo))
			b.WriteString("\n")
		}
		if len(row.Path) > 0 {
			b.WriteString(dimStyle.Render("    " + strings.Join(row.Path, " > ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}
