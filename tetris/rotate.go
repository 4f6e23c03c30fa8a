package tetris

import "strings"

// Shape is a row-major grid of occupied cells.
type Shape [][]bool

// Rotate turns shape 90° clockwise. An N×M input yields an M×N output with
// out[j][N-1-i] = in[i][j]. The input is left untouched.
func Rotate(shape Shape) Shape {
	rows := len(shape)
	if rows == 0 {
		return Shape{}
	}
	cols := len(shape[0])
	rotated := make(Shape, cols)
	for j := range rotated {
		rotated[j] = make([]bool, rows)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rotated[j][rows-1-i] = shape[i][j]
		}
	}
	return rotated
}

func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

func (s Shape) Height() int {
	return len(s)
}

func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Cells lists the occupied cells as offsets from the top left corner.
func (s Shape) Cells() []Point {
	cells := make([]Point, 0, 4)
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

func (s Shape) String() string {
	var b strings.Builder
	for i, row := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
