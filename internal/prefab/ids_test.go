package prefab

import (
	"math/rand"
	"testing"
	"unicode/utf8"
)

func TestIDGeneratorShape(t *testing.T) {
	t.Parallel()
	g := NewIDGenerator(rand.NewSource(1))
	alphabet := make(map[rune]bool, len(idAlphabet))
	for _, r := range idAlphabet {
		alphabet[r] = true
	}

	for i := 0; i < 100; i++ {
		id := g.Generate(nil)
		if n := utf8.RuneCountInString(id); n != IDLength {
			t.Fatalf("id %q has %d glyphs, want %d", id, n, IDLength)
		}
		for _, r := range id {
			if !alphabet[r] {
				t.Fatalf("id %q contains %q outside the alphabet", id, r)
			}
		}
	}
}

func TestIDGeneratorDeterministic(t *testing.T) {
	t.Parallel()
	a := NewIDGenerator(rand.NewSource(99))
	b := NewIDGenerator(rand.NewSource(99))
	for i := 0; i < 10; i++ {
		if x, y := a.Generate(nil), b.Generate(nil); x != y {
			t.Fatalf("same seed diverged at %d: %q != %q", i, x, y)
		}
	}
}

func TestIDGeneratorAvoidsTaken(t *testing.T) {
	t.Parallel()

	// Pre-populate with the ids a same-seeded generator would produce
	// first, so the generator under test is forced to retry.
	seed := int64(7)
	shadow := NewIDGenerator(rand.NewSource(seed))
	taken := make(map[string]bool)
	for i := 0; i < 500; i++ {
		taken[shadow.Generate(nil)] = true
	}

	g := NewIDGenerator(rand.NewSource(seed))
	for i := 0; i < 10000; i++ {
		id := g.Generate(func(id string) bool { return taken[id] })
		if taken[id] {
			t.Fatalf("trial %d: Generate returned taken id %q", i, id)
		}
		taken[id] = true
	}
}
