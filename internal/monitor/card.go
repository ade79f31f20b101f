package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// frame draws a bordered box with optional titles embedded in its top and
// bottom edges. Every render produces exactly height lines of width cells.
type frame struct {
	width, height int
	border        lipgloss.Border
	borderStyle   lipgloss.Style
	fill          lipgloss.Style
	left          string // styled, placed after the top-left corner
	right         string // styled, right-aligned on the top edge
	bottom        string // styled, right-aligned on the bottom edge
}

// render wraps body in the frame. Body lines are padded or truncated to the
// interior width; missing lines are blank.
func (f frame) render(body []string) []string {
	if f.width <= 0 || f.height <= 0 {
		return nil
	}
	if f.width < 2 || f.height < 2 {
		return blankLines(f.width, f.height, f.fill)
	}

	inner := f.width - 2
	lines := make([]string, 0, f.height)
	lines = append(lines, f.edge(f.border.TopLeft, f.border.Top, f.border.TopRight, f.left, f.right, inner))

	for i := 0; i < f.height-2; i++ {
		var content string
		if i < len(body) {
			content = body[i]
		}
		lines = append(lines,
			f.borderStyle.Render(f.border.Left)+padLine(content, inner, f.fill)+f.borderStyle.Render(f.border.Right))
	}

	lines = append(lines, f.edge(f.border.BottomLeft, f.border.Bottom, f.border.BottomRight, "", f.bottom, inner))
	return lines
}

// edge builds a horizontal border line with a left and a right title. When
// space runs out a lone title is truncated; with two titles the right one is
// dropped first.
func (f frame) edge(leftCorner, fillChar, rightCorner, left, right string, inner int) string {
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if lw+rw > inner {
		if lw == 0 {
			right = ansi.Truncate(right, inner, "")
			rw = lipgloss.Width(right)
		} else {
			right, rw = "", 0
		}
	}
	if lw > inner {
		left = ansi.Truncate(left, inner, "")
		lw = lipgloss.Width(left)
	}

	gap := inner - lw - rw
	return f.borderStyle.Render(leftCorner) +
		left +
		f.borderStyle.Render(strings.Repeat(fillChar, gap)) +
		right +
		f.borderStyle.Render(rightCorner)
}

// padLine fits a styled line to exactly width cells.
func padLine(line string, width int, fill lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	if w == width {
		return line
	}
	return line + fill.Render(strings.Repeat(" ", width-w))
}

func blankLines(width, height int, fill lipgloss.Style) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	blank := fill.Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}
	return lines
}

// titleLabel renders " <bold prefix><rest> " the way every frame title is drawn.
func titleLabel(prefix, rest string, bold, plain lipgloss.Style) string {
	s := bold.Bold(true).Render(" " + prefix)
	if rest != "" {
		s += plain.Render(rest)
	}
	return s + plain.Render(" ")
}

// plainLabel renders " <text> ".
func plainLabel(text string, style lipgloss.Style) string {
	return style.Render(" " + text + " ")
}

// friendlyName returns the display name for an interface given its alias.
// An alias that already names the device is used as is; otherwise the
// device name is appended in parentheses.
func friendlyName(name, alias string) string {
	if alias == "" {
		return name
	}
	if alias == name || strings.Contains(alias, "("+name+")") {
		return alias
	}
	return alias + " (" + name + ")"
}

// renderTile draws one interface tile: the name and per-direction rates on
// the left of the top edge, the total rate on the right, and the graph inside.
func (m Model) renderTile(state *InterfaceState, r Rect) []string {
	bits := m.settings.ShowBits
	right := FormatRate(state.TotalRate(), bits)
	rates := "  RX " + FormatRate(state.RxRate, bits) + "  TX " + FormatRate(state.TxRate, bits)

	// Prefer the alias when the whole left title still fits beside the total.
	name := state.Name
	if alias, ok := m.aliases[state.Name]; ok {
		friendly := friendlyName(state.Name, alias)
		available := max(r.Width-2, 0)
		maxLeft := max(available-(lipgloss.Width(right)+2+1), 0)
		if lipgloss.Width(friendly+rates)+2 <= maxLeft {
			name = friendly
		}
	}

	f := frame{
		width:       r.Width,
		height:      r.Height,
		border:      lipgloss.NormalBorder(),
		borderStyle: m.styles.Tile,
		fill:        m.styles.Base,
		left:        titleLabel(name, rates, m.styles.Tile, m.styles.Text),
		right:       plainLabel(right, m.styles.Text),
	}

	inner := r.Inner()
	graph := RenderGraph(state.RxHistory.Newest(inner.Width), state.TxHistory.Newest(inner.Width),
		inner.Width, inner.Height, m.settings.ShowSplit, m.styles)
	return f.render(splitLines(graph))
}

// renderOverview draws the aggregate section across all interfaces.
func (m Model) renderOverview(r Rect) []string {
	agg := m.engine.Aggregate()
	bits := m.settings.ShowBits
	details := " RX " + FormatRate(agg.RxRate, bits) + "  TX " + FormatRate(agg.TxRate, bits)

	f := frame{
		width:       r.Width,
		height:      r.Height,
		border:      lipgloss.ThickBorder(),
		borderStyle: m.styles.Pane,
		fill:        m.styles.Base,
		left:        titleLabel("All Interfaces", details, m.styles.Pane, m.styles.Text),
		right:       plainLabel("Total "+FormatRate(agg.TotalRate(), bits), m.styles.Text),
	}

	inner := r.Inner()
	graph := RenderGraph(agg.RxHistory.Newest(inner.Width), agg.TxHistory.Newest(inner.Width),
		inner.Width, inner.Height, m.settings.ShowSplit, m.styles)
	return f.render(splitLines(graph))
}

// renderGroup draws a group section and its tile grid.
func (m Model) renderGroup(group Group, r Rect) []string {
	inner := r.Inner()
	sel := m.engine.Select(group, SelectOptions{
		Width:        inner.Width,
		ShowInactive: m.settings.ShowInactive,
		ShowLoopback: m.settings.ShowLoopback,
		Sort:         m.sortMode,
	})

	f := frame{
		width:       r.Width,
		height:      r.Height,
		border:      lipgloss.ThickBorder(),
		borderStyle: m.styles.Pane,
		fill:        m.styles.Base,
		left: titleLabel(group.String(),
			fmt.Sprintf(" (%d/%d)", len(sel.Interfaces), sel.Total), m.styles.Pane, m.styles.Text),
		right: plainLabel("Total "+FormatRate(sel.TotalRate(), m.settings.ShowBits), m.styles.Text),
	}

	if len(sel.Interfaces) == 0 {
		placeholder := lipgloss.PlaceHorizontal(inner.Width, lipgloss.Center,
			m.styles.Muted.Render("No active interfaces"),
			lipgloss.WithWhitespaceBackground(Themes[m.themeIdx].Background))
		return f.render([]string{placeholder})
	}

	return f.render(m.renderTiles(sel.Interfaces, inner))
}

// renderTiles lays out tiles in a grid filling area, row by row.
func (m Model) renderTiles(states []*InterfaceState, area Rect) []string {
	rects := Grid(area, len(states))
	if rects == nil {
		return nil
	}

	lines := make([]string, 0, area.Height)
	for i := 0; i < len(rects); {
		rowY := rects[i].Y
		rowHeight := rects[i].Height
		row := make([]string, rowHeight)
		for ; i < len(rects) && rects[i].Y == rowY; i++ {
			tile := m.renderTile(states[i], rects[i])
			for y := range row {
				row[y] += tile[y]
			}
		}
		for y := range row {
			lines = append(lines, padLine(row[y], area.Width, m.styles.Base))
		}
	}
	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
