package tetris

import (
	"math/rand"
	"time"
)

// Randomizer supplies the kind of the next lookahead piece.
type Randomizer interface {
	Next() Kind
}

type uniform struct {
	rng *rand.Rand
}

// NewUniform draws every kind with equal probability. A zero seed uses the
// clock.
func NewUniform(seed int64) Randomizer {
	return &uniform{rng: newRand(seed)}
}

func (u *uniform) Next() Kind {
	return Kinds[u.rng.Intn(len(Kinds))]
}

type bag struct {
	rng   *rand.Rand
	items []Kind
}

// NewBag deals the seven kinds in shuffled bags so each appears once per
// seven draws.
func NewBag(seed int64) Randomizer {
	return &bag{rng: newRand(seed)}
}

func (b *bag) Next() Kind {
	if len(b.items) == 0 {
		b.refill()
	}
	kind := b.items[0]
	b.items = b.items[1:]
	return kind
}

func (b *bag) refill() {
	items := Kinds
	b.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	b.items = items[:]
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
