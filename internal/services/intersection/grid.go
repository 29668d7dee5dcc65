package intersection

import "github.com/mcoot/vocabgrid/internal/model"

// Grid is a sparse letter grid keyed by position.
// Coordinates may be negative; the occupied extent is recomputed on demand.
type Grid struct {
	cells map[model.Position]rune
}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{cells: make(map[model.Position]rune)}
}

// Get returns the letter at the given position, or 0 if empty
func (g *Grid) Get(pos model.Position) rune {
	return g.cells[pos]
}

// Set writes a letter at the given position
func (g *Grid) Set(pos model.Position, letter rune) {
	g.cells[pos] = letter
}

// IsEmpty returns true if nothing has been written at the position
func (g *Grid) IsEmpty(pos model.Position) bool {
	_, ok := g.cells[pos]
	return !ok
}

// Len returns the number of occupied cells
func (g *Grid) Len() int {
	return len(g.cells)
}

// Positions returns every occupied position (unordered)
func (g *Grid) Positions() []model.Position {
	result := make([]model.Position, 0, len(g.cells))
	for pos := range g.cells {
		result = append(result, pos)
	}
	return result
}

// BoundingBox returns the tight inclusive bounds of all occupied cells.
// ok is false for an empty grid.
func (g *Grid) BoundingBox() (bounds Bounds, ok bool) {
	first := true
	for pos := range g.cells {
		if first {
			bounds = Bounds{MinRow: pos.Row, MaxRow: pos.Row, MinCol: pos.Col, MaxCol: pos.Col}
			first = false
			continue
		}
		bounds.MinRow = min(bounds.MinRow, pos.Row)
		bounds.MaxRow = max(bounds.MaxRow, pos.Row)
		bounds.MinCol = min(bounds.MinCol, pos.Col)
		bounds.MaxCol = max(bounds.MaxCol, pos.Col)
	}
	return bounds, !first
}

// Bounds is an inclusive rectangular region of the grid
type Bounds struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// SquareBounds returns a side x side region with its top-left corner at the origin
func SquareBounds(side int) Bounds {
	return Bounds{MinRow: 0, MinCol: 0, MaxRow: side - 1, MaxCol: side - 1}
}

// Contains returns true if the position lies inside the bounds
func (b Bounds) Contains(pos model.Position) bool {
	return pos.Row >= b.MinRow && pos.Row <= b.MaxRow && pos.Col >= b.MinCol && pos.Col <= b.MaxCol
}

// Rows returns the number of rows covered
func (b Bounds) Rows() int {
	return b.MaxRow - b.MinRow + 1
}

// Cols returns the number of columns covered
func (b Bounds) Cols() int {
	return b.MaxCol - b.MinCol + 1
}
