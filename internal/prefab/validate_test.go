package prefab

import (
	"errors"
	"testing"
)

func hasCategory(errs []ValidationError, cat ValidationCategory) bool {
	for _, e := range errs {
		if e.Category == cat {
			return true
		}
	}
	return false
}

func TestValidate_ValidDocument(t *testing.T) {
	t.Parallel()
	d := newTestDoc(t, "a", "b")
	_ = d.SetParent("b", d.Object("a"))

	r := Validate(d, WithParentChecks())
	if !r.OK() {
		t.Fatalf("unexpected errors: %v", r.Err())
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		build   func(t *testing.T) *Document
		wantCat ValidationCategory
		wantErr error
		wantObj string
	}{
		{
			name:    "no objects",
			build:   func(t *testing.T) *Document { return newTestDoc(t) },
			wantCat: ValCatEmptyDocument,
			wantErr: ErrEmptyDocument,
		},
		{
			name: "duplicate id",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a", "b")
				// Simulate a document assembled outside AddObject.
				d.order = append(d.order, "a")
				return d
			},
			wantCat: ValCatDuplicateID,
			wantErr: ErrDuplicateID,
			wantObj: "a",
		},
		{
			name: "empty position timeline",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a")
				d.Object("a").Position = Timeline[Vec2]{}
				return d
			},
			wantCat: ValCatEmptyTimeline,
			wantErr: ErrEmptyTimeline,
			wantObj: "a",
		},
		{
			name: "text shape without text",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a")
				d.Object("a").Shape = ShapeText
				return d
			},
			wantCat: ValCatMissingField,
			wantErr: ErrMissingField,
			wantObj: "a",
		},
		{
			name: "negative keyframe time",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a")
				d.Object("a").Rotation.Append(Keyframe[float32]{Time: -1})
				return d
			},
			wantCat: ValCatBoundsViolation,
			wantErr: ErrNegativeTime,
			wantObj: "a",
		},
		{
			name: "unknown easing",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a")
				d.Object("a").Color.Append(Keyframe[int32]{Time: 1, Easing: Easing(99)})
				return d
			},
			wantCat: ValCatInvalidEnum,
			wantErr: ErrUnknownEasing,
			wantObj: "a",
		},
		{
			name: "bad shape",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a")
				d.Object("a").Shape = Shape(42)
				return d
			},
			wantCat: ValCatInvalidEnum,
			wantErr: ErrInvalidEnum,
			wantObj: "a",
		},
		{
			name: "dangling parent",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a")
				_ = d.SetParentID("a", "gone")
				return d
			},
			wantCat: ValCatDanglingParent,
			wantErr: ErrDanglingParent,
			wantObj: "a",
		},
		{
			name: "parent cycle",
			build: func(t *testing.T) *Document {
				d := newTestDoc(t, "a", "b")
				_ = d.SetParent("a", d.Object("b"))
				_ = d.SetParent("b", d.Object("a"))
				return d
			},
			wantCat: ValCatCycle,
			wantErr: ErrParentCycle,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Validate(tt.build(t), WithParentChecks())
			if r.OK() {
				t.Fatal("Validate reported no errors")
			}
			if !hasCategory(r.Errors, tt.wantCat) {
				t.Errorf("categories %v missing %q", r.Errors, tt.wantCat)
			}
			if !errors.Is(r.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", r.Err(), tt.wantErr)
			}
			if tt.wantObj != "" {
				found := false
				for _, e := range r.Errors {
					if e.ObjectID == tt.wantObj {
						found = true
					}
				}
				if !found {
					t.Errorf("no error names object %q: %v", tt.wantObj, r.Errors)
				}
			}
		})
	}
}

func TestValidate_CycleReportedOnce(t *testing.T) {
	t.Parallel()
	d := newTestDoc(t, "a", "b", "c")
	_ = d.SetParent("a", d.Object("b"))
	_ = d.SetParent("b", d.Object("c"))
	_ = d.SetParent("c", d.Object("a"))

	r := Validate(d, WithParentChecks())
	n := 0
	for _, e := range r.Errors {
		if e.Category == ValCatCycle {
			n++
		}
	}
	if n != 1 {
		t.Errorf("cycle reported %d times, want 1: %v", n, r.Errors)
	}
}

func TestValidate_ParentChecksOptIn(t *testing.T) {
	t.Parallel()
	d := newTestDoc(t, "a")
	_ = d.SetParentID("a", "gone")
	if r := Validate(d); !r.OK() {
		t.Errorf("permissive Validate reported %v", r.Err())
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()
	d := newTestDoc(t, "a")
	d.Name = ""
	d.Object("a").Name = ""

	r := Validate(d)
	if !r.OK() {
		t.Fatalf("unexpected errors: %v", r.Err())
	}
	if len(r.Warnings) != 2 {
		t.Errorf("got %d warnings, want 2: %v", len(r.Warnings), r.Warnings)
	}
}

func TestValidate_SortsTimelines(t *testing.T) {
	t.Parallel()
	d := newTestDoc(t, "a")
	obj := d.Object("a")
	obj.Position.Append(Keyframe[Vec2]{Time: 5})
	obj.Position.Append(Keyframe[Vec2]{Time: 2})
	obj.Rotation.Append(Keyframe[float32]{Time: 3, Value: 30})
	obj.Rotation.Append(Keyframe[float32]{Time: 1, Value: 10})

	r := Validate(d)
	if !r.OK() {
		t.Fatalf("unexpected errors: %v", r.Err())
	}
	if !obj.Position.Sorted() || !obj.Rotation.Sorted() {
		t.Fatal("Validate left a timeline unsorted")
	}
	if got := obj.Rotation.At(1).Value; got != 10 {
		t.Errorf("Rotation.At(1).Value = %v, want 10", got)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()
	e := ValidationError{ObjectID: "X", Field: "events.pos", Err: ErrEmptyTimeline}
	if got, want := e.Error(), "object X: events.pos: timeline has no keyframes"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	doc := ValidationError{Field: "objects", Err: ErrEmptyDocument}
	if got, want := doc.Error(), "prefab: objects: prefab has no objects"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
