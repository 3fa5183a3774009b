package simulation

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// TrialSeed derives the seed of trial index from the harness seed. Seeds depend
// only on (base, index), so trials can run on any worker in any order.
func TrialSeed(base uint64, index int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(index))
	return xxh3.HashSeed(buf[:], base)
}
