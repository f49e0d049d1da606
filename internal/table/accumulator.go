// Package table reassembles recognized table cells into dense grids.
package table

import "sync"

// entry holds the sparse cells recorded so far for one table.
type entry struct {
	cells  map[[2]int]string
	maxRow int
	maxCol int
}

// Accumulator merges recognized cell text into per-table sparse grids.
// Record may be called concurrently; Finalize must only be called after
// every contributing cell has been recorded.
type Accumulator struct {
	mu     sync.Mutex
	tables map[string]*entry
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{tables: make(map[string]*entry)}
}

// Record inserts or overwrites the cell at (row, col) for the given table
// and updates the running maxima.
func (a *Accumulator) Record(tableID string, row, col int, text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.tables[tableID]
	if !ok {
		e = &entry{cells: make(map[[2]int]string)}
		a.tables[tableID] = e
	}
	e.cells[[2]int{row, col}] = text
	if row > e.maxRow {
		e.maxRow = row
	}
	if col > e.maxCol {
		e.maxCol = col
	}
}

// Finalize converts the sparse cells of tableID into a dense
// (maxRow+1) x (maxCol+1) grid. Cells never recorded come back as empty
// strings. Returns nil if the table was never recorded.
func (a *Accumulator) Finalize(tableID string) [][]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.tables[tableID]
	if !ok {
		return nil
	}

	grid := make([][]string, e.maxRow+1)
	for r := range grid {
		grid[r] = make([]string, e.maxCol+1)
	}
	for pos, text := range e.cells {
		grid[pos[0]][pos[1]] = text
	}
	return grid
}

// Len returns the number of distinct tables recorded so far.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tables)
}
