package reflex

import "math/rand"

// Place picks a uniformly random top-left corner for a targetW x targetH box
// so that it fits inside an arenaW x arenaH area. When the target is larger
// than the arena on an axis, that coordinate is 0.
func Place(rng *rand.Rand, arenaW, arenaH, targetW, targetH int) (int, int) {
	maxX := max(0, arenaW-targetW)
	maxY := max(0, arenaH-targetH)
	return rng.Intn(maxX + 1), rng.Intn(maxY + 1)
}
