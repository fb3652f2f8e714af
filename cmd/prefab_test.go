package cmd

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/papapumpkin/prefab/internal/codec"
	"github.com/papapumpkin/prefab/internal/config"
	"github.com/papapumpkin/prefab/internal/logging"
	"github.com/papapumpkin/prefab/internal/prefab"
	"github.com/papapumpkin/prefab/internal/ui"
)

func testEnv(cfg config.Config) *env {
	return &env{
		cfg:   cfg,
		log:   logging.Nop(),
		codec: codec.New(cfg.CodecFlags()),
	}
}

func TestProceduralBomb(t *testing.T) {
	t.Parallel()

	doc := proceduralBomb(prefab.WithSeed(3))
	if doc.Len() != demoBullets+1 {
		t.Fatalf("Len = %d, want %d", doc.Len(), demoBullets+1)
	}
	if rep := prefab.Validate(doc, prefab.WithParentChecks()); !rep.OK() {
		t.Fatalf("demo invalid: %v", rep.Err())
	}

	base := doc.Objects()[0]
	if base.Kind != prefab.KindEmpty || doc.ChildCount(base.ID()) != demoBullets {
		t.Errorf("base kind %v with %d children", base.Kind, doc.ChildCount(base.ID()))
	}

	bullet := doc.Object(doc.Children(base.ID())[2])
	end := bullet.Position.At(1)
	if end.Time != demoFlight {
		t.Errorf("flight time = %v", end.Time)
	}
	// Bullet 2 flies straight up.
	if math.Abs(float64(end.Value.X)) > 1e-4 || math.Abs(float64(end.Value.Y)-demoDistance) > 1e-4 {
		t.Errorf("bullet 2 end = %+v, want (0, %d)", end.Value, demoDistance)
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct{ dir, src, want string }{
		{".", "recipes/ring.toml", "ring.lsp"},
		{"out", "bomb.yaml", filepath.Join("out", "bomb.lsp")},
	}
	for _, tt := range tests {
		if got := outputPath(tt.dir, tt.src); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.dir, tt.src, got, tt.want)
		}
	}
}

func TestBuildRecipe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "pair.yaml")
	data := "name: Pair\nobjects:\n  - {key: a, id: A, name: Parent}\n  - {id: B, name: Child, parent: a}\n"
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	e := testEnv(config.Config{Validate: config.ValidateConfig{StrictParents: true}})
	out := outputPath(filepath.Join(dir, "out"), src)
	if err := e.build(ui.NewTo(io.Discard), src, out); err != nil {
		t.Fatalf("build: %v", err)
	}

	doc, err := e.loadDocument(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if p, ok := doc.Parent("B"); !ok || p.ID() != "A" {
		t.Errorf("parent of B = %v, %v", p, ok)
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "empty.toml")
	if err := os.WriteFile(src, []byte("name = \"Empty\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := testEnv(config.Config{})
	out := filepath.Join(dir, "empty.lsp")
	if err := e.build(ui.NewTo(io.Discard), src, out); err == nil {
		t.Fatal("build of an empty prefab succeeded")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite validation failure: %v", err)
	}
}

func TestBuildAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var srcs []string
	for _, name := range []string{"one", "two", "three"} {
		src := filepath.Join(dir, name+".yaml")
		data := "name: " + name + "\nobjects:\n  - {name: Square}\n"
		if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		srcs = append(srcs, src)
	}

	e := testEnv(config.Config{})
	outDir := filepath.Join(dir, "out")
	if err := e.buildAll(ui.NewTo(io.Discard), srcs, outDir); err != nil {
		t.Fatalf("buildAll: %v", err)
	}
	for _, src := range srcs {
		doc, err := e.loadDocument(outputPath(outDir, src))
		if err != nil {
			t.Fatalf("reading output of %s: %v", src, err)
		}
		if doc.Len() != 1 {
			t.Errorf("%s: Len = %d, want 1", src, doc.Len())
		}
	}
}

func TestBuildAllReportsFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("name: Good\nobjects:\n  - {name: A}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("name: Bad\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := testEnv(config.Config{})
	if err := e.buildAll(ui.NewTo(io.Discard), []string{bad, good}, dir); err == nil {
		t.Fatal("buildAll succeeded with an invalid recipe")
	}
	if _, err := os.Stat(outputPath(dir, good)); err != nil {
		t.Errorf("good recipe not built: %v", err)
	}
}
