package ui

import (
	"strings"
	"testing"

	"github.com/papapumpkin/prefab/internal/prefab"
)

func mustAdd(t *testing.T, doc *prefab.Document, id, name string) *prefab.Object {
	t.Helper()
	obj := prefab.NewObject(id, name)
	if err := doc.AddObject(obj); err != nil {
		t.Fatalf("AddObject(%s): %v", id, err)
	}
	return obj
}

func TestRenderTree(t *testing.T) {
	doc := prefab.NewDocument("Bomb", prefab.CategoryBombs)
	base := mustAdd(t, doc, "base", "Base")
	mustAdd(t, doc, "b1", "Bullet 1")
	mustAdd(t, doc, "b2", "Bullet 2")
	mustAdd(t, doc, "spark", "Spark")
	mustAdd(t, doc, "stray", "Stray")
	for _, id := range []string{"b1", "b2"} {
		if err := doc.SetParent(id, base); err != nil {
			t.Fatal(err)
		}
	}
	if err := doc.SetParentID("spark", "b2"); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetParentID("stray", "gone"); err != nil {
		t.Fatal(err)
	}

	got := RenderTree(doc, TreeOptions{})
	want := strings.Join([]string{
		"Bomb [Bombs] 5 object(s)",
		"├── Base base",
		"│   ├── Bullet 1 b1",
		"│   └── Bullet 2 b2",
		"│       └── Spark spark",
		"└── Stray stray (parent gone missing)",
		"",
	}, "\n")
	if got != want {
		t.Errorf("RenderTree mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTree_Cycle(t *testing.T) {
	doc := prefab.NewDocument("Loop", prefab.CategoryMisc1)
	mustAdd(t, doc, "a", "A")
	mustAdd(t, doc, "b", "B")
	if err := doc.SetParentID("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetParentID("b", "a"); err != nil {
		t.Fatal(err)
	}

	got := RenderTree(doc, TreeOptions{})
	if !strings.Contains(got, "cycle: └── A a") {
		t.Errorf("cycle not marked:\n%s", got)
	}
	if strings.Count(got, "B b") != 1 {
		t.Errorf("cycle member rendered more than once:\n%s", got)
	}
}

func TestRenderTree_Details(t *testing.T) {
	doc := prefab.NewDocument("D", prefab.CategoryBombs)
	obj := mustAdd(t, doc, "x", "X")
	obj.Shape = prefab.ShapeCircle
	obj.StartTime = 1.5
	obj.Position.Insert(prefab.Keyframe[prefab.Vec2]{Time: 2})

	got := RenderTree(doc, TreeOptions{Details: true})
	if !strings.Contains(got, "Normal/Circle st=1.5 keys=2/1/1/1") {
		t.Errorf("details missing:\n%s", got)
	}
}
