package prefab

import (
	"math/rand"
	"strings"
	"time"
)

// IDLength is the number of glyphs in a generated object id.
const IDLength = 16

// idAlphabet is the glyph set the editor itself draws ids from.
var idAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"~!@#$%^&*_+{}|:<>?,./;'[]" +
	"▓▒░▐▆▉☰☱☲☳☴☵☶☷►▼◄▬▩▨▧▦▥▤▣▢□■¤ÿòèµ¶™ßÃ®¾ð¥œ⁕(◠‿◠✿)")

// IDGenerator produces random object ids from an injected source.
// It is not safe for concurrent use; give each document its own.
type IDGenerator struct {
	rng *rand.Rand
}

// NewIDGenerator returns a generator drawing from src.
func NewIDGenerator(src rand.Source) *IDGenerator {
	return &IDGenerator{rng: rand.New(src)}
}

// NewSeededIDGenerator returns a generator seeded with seed. A zero
// seed uses the current time.
func NewSeededIDGenerator(seed int64) *IDGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewIDGenerator(rand.NewSource(seed))
}

// Generate returns a fresh id for which taken reports false. A nil
// taken accepts the first candidate.
func (g *IDGenerator) Generate(taken func(id string) bool) string {
	for {
		id := g.candidate()
		if taken == nil || !taken(id) {
			return id
		}
	}
}

func (g *IDGenerator) candidate() string {
	var b strings.Builder
	for i := 0; i < IDLength; i++ {
		b.WriteRune(idAlphabet[g.rng.Intn(len(idAlphabet))])
	}
	return b.String()
}
