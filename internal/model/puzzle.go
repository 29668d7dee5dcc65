package model

import "fmt"

// Position identifies a cell on the grid
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Offset returns the position moved by the given row and column deltas
func (p Position) Offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Direction is the orientation of a word on the grid
type Direction string

const (
	Horizontal Direction = "horizontal" // left-to-right
	Vertical   Direction = "vertical"   // top-to-bottom
)

// Delta returns the row and column step for one letter in this direction
func (d Direction) Delta() (int, int) {
	if d == Vertical {
		return 1, 0
	}
	return 0, 1
}

// Perpendicular returns the other direction
func (d Direction) Perpendicular() Direction {
	if d == Vertical {
		return Horizontal
	}
	return Vertical
}

// Cell is a single square of a generated layout
type Cell struct {
	ID            string
	Letter        rune // 0 means the cell is not part of any word
	IsPreFilled   bool
	IsCrossPoint  bool
	OwningWordIDs []VocabID
	Position      Position
}

// IsEmpty returns true if the cell holds no letter
func (c Cell) IsEmpty() bool {
	return c.Letter == 0
}

// CellID returns the stable identifier for the cell at a position
func CellID(pos Position) string {
	return fmt.Sprintf("r%d-c%d", pos.Row, pos.Col)
}

// PuzzleWord is a word placed on the grid
type PuzzleWord struct {
	ID        VocabID
	Spelling  string
	Direction Direction
	Start     Position
	Cells     []Position // in letter order
}

// GridSize is the dimensions of a layout grid
type GridSize struct {
	Rows int
	Cols int
}

// PuzzleLayout is the result of a successful generation attempt
type PuzzleLayout struct {
	ID    string
	Grid  [][]Cell // Row-major: Grid[row][col]
	Words []PuzzleWord
	Size  GridSize
	// AllLetters is the sorted multiset of letters the player must place.
	AllLetters []rune
}

// IsValidPosition returns true if the position is within the grid
func (l *PuzzleLayout) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < l.Size.Rows && pos.Col >= 0 && pos.Col < l.Size.Cols
}

// CellAt returns the cell at the given position, or nil if out of bounds
func (l *PuzzleLayout) CellAt(pos Position) *Cell {
	if !l.IsValidPosition(pos) {
		return nil
	}
	return &l.Grid[pos.Row][pos.Col]
}

// LetterCellCount returns the number of non-null cells
func (l *PuzzleLayout) LetterCellCount() int {
	count := 0
	for _, row := range l.Grid {
		for _, cell := range row {
			if !cell.IsEmpty() {
				count++
			}
		}
	}
	return count
}

// CrossPoints returns every cell shared by more than one word
func (l *PuzzleLayout) CrossPoints() []Cell {
	var result []Cell
	for _, row := range l.Grid {
		for _, cell := range row {
			if cell.IsCrossPoint {
				result = append(result, cell)
			}
		}
	}
	return result
}

// Word returns the placed word with the given id, or nil if not present
func (l *PuzzleLayout) Word(id VocabID) *PuzzleWord {
	for i := range l.Words {
		if l.Words[i].ID == id {
			return &l.Words[i]
		}
	}
	return nil
}
