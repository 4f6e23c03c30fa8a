package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBagDealsEveryKindOncePerBag(t *testing.T) {
	r := NewBag(42)
	for round := 0; round < 5; round++ {
		seen := map[Kind]int{}
		for i := 0; i < len(Kinds); i++ {
			seen[r.Next()]++
		}
		assert.Len(t, seen, len(Kinds), "round %d", round)
		for kind, n := range seen {
			assert.Equal(t, 1, n, "kind %s in round %d", kind, round)
		}
	}
}

func TestUniformIsDeterministicForSeed(t *testing.T) {
	a := NewUniform(7)
	b := NewUniform(7)
	counts := map[Kind]int{}
	for i := 0; i < 700; i++ {
		k := a.Next()
		assert.Equal(t, k, b.Next())
		assert.True(t, k.Valid())
		counts[k]++
	}
	assert.Len(t, counts, len(Kinds))
}
