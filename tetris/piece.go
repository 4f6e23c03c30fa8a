package tetris

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every piece kind in catalog order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

var kindNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Color returns the display color of the kind as a hex triplet.
func (k Kind) Color() string {
	if !k.Valid() {
		return ""
	}
	return kindColors[k]
}

// Shape returns a copy of the unrotated catalog shape.
func (k Kind) Shape() Shape {
	if !k.Valid() {
		return nil
	}
	return baseShapes[k].Clone()
}

var kindColors = [...]string{
	I: "#00f0f0",
	O: "#f0f000",
	T: "#a000f0",
	S: "#00f000",
	Z: "#f00000",
	J: "#0000f0",
	L: "#f0a000",
}

// baseShapes is read only. Every accessor hands out clones.
var baseShapes = [...]Shape{
	I: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	O: {
		{true, true},
		{true, true},
	},
	T: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	S: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	Z: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	J: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	L: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
}

// ShapeAt derives the shape of kind after rotation clockwise quarter turns.
func ShapeAt(kind Kind, rotation int) Shape {
	shape := kind.Shape()
	for i := 0; i < normalizeRotation(rotation); i++ {
		shape = Rotate(shape)
	}
	return shape
}

func normalizeRotation(rotation int) int {
	return ((rotation % 4) + 4) % 4
}
