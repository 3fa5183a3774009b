// Package dice provides seeded random sources and dice rolling for the simulator.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidDie is returned when a die has fewer than two faces.
var ErrInvalidDie = errors.New("die must have at least 2 faces")

// Die describes one physical die by its number of faces.
type Die struct {
	Faces int
}

// Face is one rolled die: which die it is and the value it shows.
type Face struct {
	Faces int // number of faces on the die that produced this value
	Value int
}

// IsMax reports whether the die shows its highest face.
func (f Face) IsMax(minFace int) bool {
	return f.Value == minFace+f.Faces-1
}

// Roll is the ordered result of rolling every die still in play.
// It is only valid until the next roll.
type Roll []Face

// Source produces uniformly distributed die faces.
// A Source is owned by a single trial and is not safe for concurrent use.
type Source struct {
	pcg *rand.PCG
	rng *rand.Rand
}

const seedMix = 0x9e3779b97f4a7c15

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) *Source {
	pcg := rand.NewPCG(seed, seed^seedMix)
	return &Source{pcg: pcg, rng: rand.New(pcg)}
}

// Reseed resets the source to the state NewSource(seed) starts in.
func (s *Source) Reseed(seed uint64) {
	s.pcg.Seed(seed, seed^seedMix)
}

// NewEntropySource returns a source seeded from crypto/rand.
func NewEntropySource() (*Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSource(seed), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Intn returns a uniform value in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.IntN(n)
}

// RollInto rolls every die in pool and writes the faces into dst, reusing its capacity.
// Face values run from minFace to minFace+Faces-1.
func (s *Source) RollInto(dst Roll, pool []Die, minFace int) Roll {
	dst = dst[:0]
	for _, d := range pool {
		dst = append(dst, Face{Faces: d.Faces, Value: minFace + s.rng.IntN(d.Faces)})
	}
	return dst
}

// Expand turns (faces, count) groups into a flat pool, in order.
func Expand(groups []Spec) ([]Die, error) {
	var pool []Die
	for _, g := range groups {
		if g.Faces < 2 || g.Count < 1 {
			return nil, fmt.Errorf("%w: %dd%d", ErrInvalidDie, g.Count, g.Faces)
		}
		for i := 0; i < g.Count; i++ {
			pool = append(pool, Die{Faces: g.Faces})
		}
	}
	return pool, nil
}

// Spec is a group of identical dice, e.g. 12d6.
type Spec struct {
	Faces int `yaml:"faces" json:"faces"`
	Count int `yaml:"count" json:"count"`
}
