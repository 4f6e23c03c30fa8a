package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, y int, kind Kind) {
	for x := 0; x < b.Width(); x++ {
		b.Set(x, y, CellOf(kind))
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := NewBoard(10, 20)
	require.Len(t, b.Rows(), 20)
	for _, row := range b.Rows() {
		require.Len(t, row, 10)
		for _, c := range row {
			assert.True(t, c.Empty())
		}
	}
}

func TestSpawnDoesNotCollideOnEmptyBoard(t *testing.T) {
	b := NewBoard(10, 20)
	for _, kind := range Kinds {
		shape := kind.Shape()
		pos := Point{X: (b.Width() - shape.Width()) / 2, Y: 0}
		assert.False(t, b.Collides(shape, pos), "%s at %v", kind, pos)
	}
}

func TestCollides(t *testing.T) {
	b := NewBoard(10, 20)
	b.Set(5, 10, CellOf(Z))
	o := O.Shape()

	tests := []struct {
		name string
		pos  Point
		want bool
	}{
		{"open", Point{X: 0, Y: 0}, false},
		{"left wall", Point{X: -1, Y: 0}, true},
		{"right wall", Point{X: 9, Y: 0}, true},
		{"touching right wall", Point{X: 8, Y: 0}, false},
		{"floor", Point{X: 0, Y: 19}, true},
		{"resting on floor", Point{X: 0, Y: 18}, false},
		{"above the top", Point{X: 0, Y: -2}, false},
		{"straddling the top", Point{X: 0, Y: -1}, false},
		{"filled cell", Point{X: 4, Y: 9}, true},
		{"next to filled cell", Point{X: 6, Y: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Collides(o, tt.pos))
		})
	}
}

func TestCollidesIgnoresEmptyShapeCells(t *testing.T) {
	b := NewBoard(10, 20)
	// Row 0 of the I shape is empty, so the bar sits on row y+1.
	assert.False(t, b.Collides(I.Shape(), Point{X: 0, Y: 18}))
	assert.True(t, b.Collides(I.Shape(), Point{X: 0, Y: 19}))
	// Only column 1 of the vertical I is filled.
	assert.False(t, b.Collides(ShapeAt(I, 3), Point{X: -1, Y: 0}))
}

func TestLockClampsToBoard(t *testing.T) {
	b := NewBoard(10, 20)
	b.Lock(O.Shape(), Point{X: 3, Y: -1}, O)

	assert.Equal(t, CellOf(O), b.At(3, 0))
	assert.Equal(t, CellOf(O), b.At(4, 0))
	filled := 0
	for _, row := range b.Rows() {
		for _, c := range row {
			if !c.Empty() {
				filled++
			}
		}
	}
	assert.Equal(t, 2, filled)
}

func TestCellKind(t *testing.T) {
	kind, ok := CellOf(S).Kind()
	assert.True(t, ok)
	assert.Equal(t, S, kind)

	_, ok = Empty.Kind()
	assert.False(t, ok)
	assert.Equal(t, Empty, NewBoard(2, 2).At(5, 5))
}

func TestClearLinesRemovesCompleteRows(t *testing.T) {
	b := NewBoard(10, 20)
	for y := 0; y < b.Height(); y++ {
		if y == 2 || y == 5 {
			fillRow(b, y, I)
			continue
		}
		// Partial rows carry their index in column 0 so order can be checked.
		b.Set(0, y, CellOf(Kind(y%len(Kinds))))
		b.Set(1, y, CellOf(Kind(y%len(Kinds))))
	}
	before := b.Rows()

	assert.Equal(t, []int{2, 5}, b.CompleteRows())
	assert.Equal(t, 2, b.ClearLines())

	after := b.Rows()
	require.Len(t, after, 20)
	for y := 0; y < 2; y++ {
		assert.Equal(t, make([]Cell, 10), after[y], "row %d should be empty", y)
	}
	var kept [][]Cell
	for y, row := range before {
		if y != 2 && y != 5 {
			kept = append(kept, row)
		}
	}
	assert.Equal(t, kept, after[2:])

	assert.Equal(t, 0, b.ClearLines())
	assert.Equal(t, after, b.Rows())
}

func TestClearLinesNoCompleteRows(t *testing.T) {
	b := NewBoard(4, 4)
	b.Set(0, 3, CellOf(T))
	before := b.Rows()

	assert.Equal(t, 0, b.ClearLines())
	assert.Equal(t, before, b.Rows())
	assert.Empty(t, b.CompleteRows())
}

func TestClearLinesWholeBoard(t *testing.T) {
	b := NewBoard(3, 3)
	for y := 0; y < 3; y++ {
		fillRow(b, y, J)
	}
	assert.Equal(t, 3, b.ClearLines())
	assert.Equal(t, NewBoard(3, 3).Rows(), b.Rows())
}
