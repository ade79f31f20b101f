package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/ifmon/internal/errors"
)

// AppName is shown in the outer frame next to the version.
const AppName = "ifmon"

// renderDashboard renders the complete dashboard view: an outer frame
// holding the overview, physical and virtual sections as equal-height bands.
func (m Model) renderDashboard() string {
	area := Rect{Width: m.width, Height: m.height}
	inner := area.Inner()

	var sections []func(Rect) []string
	if m.settings.ShowOverview {
		sections = append(sections, m.renderOverview)
	}
	sections = append(sections, func(r Rect) []string { return m.renderGroup(GroupPhysical, r) })
	if m.settings.ShowVirtual {
		sections = append(sections, func(r Rect) []string { return m.renderGroup(GroupVirtual, r) })
	}

	var body []string
	for i, band := range SplitBands(inner, len(sections)) {
		body = append(body, sections[i](band)...)
	}

	outer := frame{
		width:       area.Width,
		height:      area.Height,
		border:      lipgloss.NormalBorder(),
		borderStyle: m.styles.Outer,
		fill:        m.styles.Base,
		left:        titleLabel(m.hostname, "", m.styles.Outer, m.styles.Text),
		right:       plainLabel(fmt.Sprintf("%s v%s", AppName, m.version), m.styles.Text),
		bottom:      m.renderFooter(),
	}
	return strings.Join(outer.render(body), "\n")
}

// renderFooter renders the command legend shown on the bottom border. The
// first letter of each command is its key.
func (m Model) renderFooter() string {
	s := m.settings
	items := []string{
		"quit",
		"theme: " + Themes[m.themeIdx].Name,
		pick(s.ShowSplit, "graph: split", "graph: total"),
		pick(s.ShowBits, "bits: b/s", "bytes: B/s"),
		// Names the mode the key switches to.
		pick(m.sortMode == SortByBandwidth, "sort: name", "sort: rate"),
		"all interfaces " + marker(s.ShowOverview),
		"inactive " + marker(s.ShowInactive),
		"virtual " + marker(s.ShowVirtual),
		"loopback " + marker(s.ShowLoopback),
		"refresh names",
		fmt.Sprintf("+/- %dms", s.IntervalMS),
	}

	parts := make([]string, 0, len(items)+2)
	for _, item := range items {
		parts = append(parts, m.commandLabel(item))
	}
	if m.sampleErr != nil {
		parts = append(parts, m.styles.Text.Render("error: "+errors.Summary(m.sampleErr)))
	}
	if m.aliasErr != nil {
		parts = append(parts, m.styles.Text.Render("names: "+errors.Summary(m.aliasErr)))
	}

	sep := m.styles.Text.Render("  ")
	return m.styles.Text.Render(" ") + strings.Join(parts, sep) + m.styles.Text.Render(" ")
}

// commandLabel highlights the first rune of label as the command key.
func (m Model) commandLabel(label string) string {
	if label == "" {
		return ""
	}
	r := []rune(label)
	return m.styles.Key.Render(string(r[0])) + m.styles.Text.Render(string(r[1:]))
}

func marker(on bool) string {
	return pick(on, "●", "○")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
