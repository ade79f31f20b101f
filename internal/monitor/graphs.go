package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barLevels are the nine vertical fill levels of a cell, from empty to full.
var barLevels = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// barGlyph returns the glyph for a fill level in eighths, clamped to 0..8.
func barGlyph(level uint64) rune {
	if level >= 8 {
		return barLevels[8]
	}
	return barLevels[level]
}

// cellKind says which style a plotted cell is drawn with.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellRX
	cellTX // drawn with the reversed TX style
)

// graphCell is one plotted terminal cell.
type graphCell struct {
	glyph rune
	kind  cellKind
}

// sparklineData returns exactly width values, newest first. Missing older
// values repeat the oldest available one; an empty history plots as zeros.
func sparklineData(history []uint64, width int) []uint64 {
	if width <= 0 {
		return nil
	}

	data := make([]uint64, width)
	if len(history) == 0 {
		return data
	}

	n := copy(data, history)
	pad := data[n-1]
	for i := n; i < width; i++ {
		data[i] = pad
	}
	return data
}

// scaleUnits maps value onto totalUnits eighth-cells relative to max,
// rounding up. Any non-zero value gets at least one unit.
func scaleUnits(value, maxValue, totalUnits uint64) uint64 {
	if totalUnits == 0 || maxValue == 0 {
		return 0
	}
	scaled := uint64(math.Ceil(float64(value) / float64(maxValue) * float64(totalUnits)))
	if value > 0 && scaled == 0 {
		return 1
	}
	return min(scaled, totalUnits)
}

// rowLevel returns how many eighths of the given row (0 = nearest the
// baseline) are filled by a bar of units eighths.
func rowLevel(units uint64, row int) uint64 {
	base := uint64(row) * 8
	if units >= base+8 {
		return 8
	}
	return saturatingSub(units, base)
}

func maxOf(data []uint64) uint64 {
	var m uint64
	for _, v := range data {
		m = max(m, v)
	}
	return m
}

func newCellGrid(width, height int) [][]graphCell {
	grid := make([][]graphCell, height)
	for y := range grid {
		grid[y] = make([]graphCell, width)
		for x := range grid[y] {
			grid[y][x] = graphCell{glyph: ' '}
		}
	}
	return grid
}

// plotSplit draws RX bars growing up from a center baseline and TX bars
// growing down from it, each scaled to its own maximum. The newest sample
// is in the rightmost column.
func plotSplit(rx, tx []uint64, width, height int) [][]graphCell {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := newCellGrid(width, height)

	rxData := sparklineData(rx, width)
	txData := sparklineData(tx, width)
	maxRx := max(maxOf(rxData), 1)
	maxTx := max(maxOf(txData), 1)

	upRows := height / 2
	downRows := height - upRows
	baseline := upRows
	upUnits := uint64(upRows) * 8
	downUnits := uint64(downRows) * 8

	for i := 0; i < width; i++ {
		x := width - 1 - i
		rxUnits := scaleUnits(rxData[i], maxRx, upUnits)
		txUnits := scaleUnits(txData[i], maxTx, downUnits)

		for row := 0; row < upRows; row++ {
			level := rowLevel(rxUnits, row)
			if level == 0 {
				continue
			}
			grid[baseline-1-row][x] = graphCell{glyph: barGlyph(level), kind: cellRX}
		}

		for row := 0; row < downRows; row++ {
			level := rowLevel(txUnits, row)
			if level == 0 {
				continue
			}
			// The reversed style paints the unfilled lower part in the
			// background color, so the bar appears to hang from the baseline.
			grid[baseline+row][x] = graphCell{glyph: barGlyph(8 - level), kind: cellTX}
		}
	}
	return grid
}

// plotCombined draws RX+TX as a single bottom-up sparkline, newest on the right.
func plotCombined(rx, tx []uint64, width, height int) [][]graphCell {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := newCellGrid(width, height)

	rxData := sparklineData(rx, width)
	txData := sparklineData(tx, width)
	data := make([]uint64, width)
	for i := range data {
		data[i] = rxData[i] + txData[i]
	}
	maxVal := max(maxOf(data), 1)
	units := uint64(height) * 8

	for i, v := range data {
		x := width - 1 - i
		n := scaleUnits(v, maxVal, units)
		for row := 0; row < height; row++ {
			level := rowLevel(n, row)
			if level == 0 {
				continue
			}
			grid[height-1-row][x] = graphCell{glyph: barGlyph(level), kind: cellRX}
		}
	}
	return grid
}

// RenderGraph renders an interface or aggregate history as a block of
// exactly height lines, each width cells wide.
func RenderGraph(rx, tx []uint64, width, height int, split bool, styles Styles) string {
	var grid [][]graphCell
	if split {
		grid = plotSplit(rx, tx, width, height)
	} else {
		grid = plotCombined(rx, tx, width, height)
	}
	if grid == nil {
		return ""
	}

	lines := make([]string, len(grid))
	for y, row := range grid {
		lines[y] = renderCells(row, styles)
	}
	return strings.Join(lines, "\n")
}

// renderCells renders one row, styling runs of same-kind cells together.
func renderCells(row []graphCell, styles Styles) string {
	var b strings.Builder
	var run strings.Builder
	kind := cellEmpty

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(cellStyle(kind, styles).Render(run.String()))
		run.Reset()
	}

	for i, c := range row {
		if i == 0 || c.kind != kind {
			flush()
			kind = c.kind
		}
		run.WriteRune(c.glyph)
	}
	flush()
	return b.String()
}

func cellStyle(kind cellKind, styles Styles) lipgloss.Style {
	switch kind {
	case cellRX:
		return styles.RX
	case cellTX:
		return styles.TX
	default:
		return styles.Base
	}
}
