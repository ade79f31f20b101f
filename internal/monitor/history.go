package monitor

// History is a fixed-capacity rolling buffer of rate samples. Index 0 is
// always the most recent value; once full, the oldest value is dropped.
type History struct {
	data  []uint64
	head  int // next write position
	count int
}

// NewHistory creates a history holding at most size values.
func NewHistory(size int) *History {
	if size <= 0 {
		size = HistoryLen
	}
	return &History{data: make([]uint64, size)}
}

// Push prepends a value, evicting the oldest value when full.
func (h *History) Push(value uint64) {
	h.data[h.head] = value
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Len returns the number of stored values.
func (h *History) Len() int {
	return h.count
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return len(h.data)
}

// At returns the i-th newest value (0 = most recent). Out-of-range indexes return 0.
func (h *History) At(i int) uint64 {
	if i < 0 || i >= h.count {
		return 0
	}
	// head points to the next write position, so the newest value is at head-1.
	idx := (h.head - 1 - i + 2*len(h.data)) % len(h.data)
	return h.data[idx]
}

// Newest returns up to n values, newest first.
func (h *History) Newest(n int) []uint64 {
	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	result := make([]uint64, n)
	for i := range result {
		result[i] = h.At(i)
	}
	return result
}

// Values returns every stored value, newest first.
func (h *History) Values() []uint64 {
	return h.Newest(h.count)
}

// Reset drops all values.
func (h *History) Reset() {
	h.head = 0
	h.count = 0
}
