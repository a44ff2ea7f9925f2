package core

import (
	"math/rand"
	"time"
)

// NewRand returns a seeded RNG. A zero seed means "seed from the clock",
// which is what interactive play wants; tests pass a fixed seed for
// reproducible boards.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomFreeCell picks a uniformly random cell on a width×height board that
// is not in the occupied set. The second return is false when every cell is
// occupied; callers treat that as a game condition, never an error.
func RandomFreeCell(rng *rand.Rand, width, height int, occupied map[Cell]bool) (Cell, bool) {
	free := make([]Cell, 0, width*height-len(occupied))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Cell{X: x, Y: y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}

// ShuffledPairs returns a shuffled deck of 2*pairs symbol ids where each id
// in [0, pairs) appears exactly twice. Used to lay out the memory board.
func ShuffledPairs(rng *rand.Rand, pairs int) []int {
	deck := make([]int, 0, pairs*2)
	for s := 0; s < pairs; s++ {
		deck = append(deck, s, s)
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Perm returns a random permutation of [0, n). Thin wrapper kept so that
// every board-layout decision goes through this package.
func Perm(rng *rand.Rand, n int) []int {
	return rng.Perm(n)
}
