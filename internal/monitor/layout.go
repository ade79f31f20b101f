package monitor

// Rect is a cell-aligned screen region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner returns the rect shrunk by a one-cell border on every side.
func (r Rect) Inner() Rect {
	inner := Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}

// SplitBands divides area vertically into n bands of equal ratio. Rounding
// remainders are spread so the band heights always sum to area.Height.
func SplitBands(area Rect, n int) []Rect {
	if n <= 0 {
		return nil
	}

	bands := make([]Rect, n)
	y := area.Y
	for i := range bands {
		h := (i+1)*area.Height/n - i*area.Height/n
		bands[i] = Rect{X: area.X, Y: y, Width: area.Width, Height: h}
		y += h
	}
	return bands
}

// GridDims returns the column and row count for laying out count tiles in a
// region of the given width.
func GridDims(count, width int) (cols, rows int) {
	if count <= 0 {
		return 0, 0
	}
	cols = min(count, max(width/MinTileWidth, 1))
	rows = (count + cols - 1) / cols
	return cols, rows
}

// RowHeights splits height across rows. The first height%rows rows get one
// extra cell. Returns nil when any row would be zero cells tall.
func RowHeights(height, rows int) []int {
	if rows <= 0 {
		return nil
	}
	base := height / rows
	if base == 0 {
		return nil
	}

	extra := height % rows
	heights := make([]int, rows)
	for i := range heights {
		heights[i] = base
		if i < extra {
			heights[i]++
		}
	}
	return heights
}

// ColumnWidths splits width across cols. The last column absorbs the remainder.
func ColumnWidths(width, cols int) []int {
	if cols <= 0 {
		return nil
	}
	per := width / cols
	widths := make([]int, cols)
	remaining := width
	for i := range widths {
		if i == cols-1 {
			widths[i] = remaining
			break
		}
		widths[i] = per
		remaining -= per
	}
	return widths
}

// Grid lays out count tiles in row-major order within area. Degenerate
// inputs (no tiles, no room, or rows that would be zero cells tall) produce
// no tiles.
func Grid(area Rect, count int) []Rect {
	if count <= 0 || area.Empty() {
		return nil
	}

	cols, rows := GridDims(count, area.Width)
	heights := RowHeights(area.Height, rows)
	if heights == nil {
		return nil
	}
	widths := ColumnWidths(area.Width, cols)

	tiles := make([]Rect, 0, count)
	y := area.Y
	for _, h := range heights {
		x := area.X
		for _, w := range widths {
			if len(tiles) == count {
				return tiles
			}
			tiles = append(tiles, Rect{X: x, Y: y, Width: w, Height: h})
			x += w
		}
		y += h
	}
	return tiles
}
