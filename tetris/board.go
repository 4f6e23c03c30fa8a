package tetris

type Point struct {
	X int
	Y int
}

// Cell is either Empty or a piece kind stored as kind+1.
type Cell uint8

const Empty Cell = 0

func CellOf(kind Kind) Cell {
	return Cell(kind) + 1
}

func (c Cell) Empty() bool {
	return c == Empty
}

func (c Cell) Kind() (Kind, bool) {
	if c == Empty {
		return 0, false
	}
	return Kind(c - 1), true
}

// Board is a fixed size grid addressed as cells[y][x], row 0 at the top.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.cells = make([][]Cell, height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, width)
	}
	return b
}

func (b *Board) Width() int { return b.width }
func (b *Board) Height() int { return b.height }

// At returns Empty for coordinates outside the board.
func (b *Board) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

func (b *Board) Set(x, y int, c Cell) {
	if b.inBounds(x, y) {
		b.cells[y][x] = c
	}
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range rows {
		rows[y] = append([]Cell(nil), b.cells[y]...)
	}
	return rows
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Collides reports whether shape placed at pos would leave the board through
// a wall or the floor, or overlap a filled cell. Rows above the board are
// open space so pieces may spawn partly off screen.
func (b *Board) Collides(shape Shape, pos Point) bool {
	for _, p := range shape.Cells() {
		bx := pos.X + p.X
		by := pos.Y + p.Y
		if by >= b.height || bx < 0 || bx >= b.width {
			return true
		}
		if by >= 0 && b.cells[by][bx] != Empty {
			return true
		}
	}
	return false
}

// Lock writes kind into every in-bounds cell covered by shape at pos.
func (b *Board) Lock(shape Shape, pos Point, kind Kind) {
	for _, p := range shape.Cells() {
		bx := pos.X + p.X
		by := pos.Y + p.Y
		if b.inBounds(bx, by) {
			b.cells[by][bx] = CellOf(kind)
		}
	}
}

// CompleteRows returns the indices of full rows, top to bottom.
func (b *Board) CompleteRows() []int {
	var rows []int
	for y, row := range b.cells {
		if rowFull(row) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearLines removes every full row, shifts the remaining rows down keeping
// their order and refills the top with empty rows. It returns the number of
// rows removed.
func (b *Board) ClearLines() int {
	complete := b.CompleteRows()
	if len(complete) == 0 {
		return 0
	}
	kept := make([][]Cell, 0, b.height)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}
	cells := make([][]Cell, 0, b.height)
	for range complete {
		cells = append(cells, make([]Cell, b.width))
	}
	b.cells = append(cells, kept...)
	return len(complete)
}

func rowFull(row []Cell) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}
