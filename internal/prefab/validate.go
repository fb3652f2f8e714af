package prefab

import (
	"errors"
	"fmt"
)

// Report is the outcome of Validate. Warnings never block encoding.
type Report struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether validation found no errors.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Err joins all errors, or returns nil when there are none.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// ValidateOption tunes Validate.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	parentChecks bool
}

// WithParentChecks also reports parent ids that do not resolve and
// parent chains that loop. The graph itself accepts both.
func WithParentChecks() ValidateOption {
	return func(c *validateConfig) { c.parentChecks = true }
}

// Validate checks doc for structural correctness before encoding:
// document metadata, unique ids, required object fields, enum ranges,
// keyframe times and non-empty timelines.
//
// Validate sorts every timeline by time (stable). That is the only
// change it makes to doc.
func Validate(doc *Document, opts ...ValidateOption) Report {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	v := &validator{doc: doc}

	if doc.Name == "" {
		v.warn("", "name", fmt.Errorf("%w: prefab has no name", ErrMissingField), ValCatMissingField)
	}
	if !doc.Category.Valid() {
		v.fail("", "type", fmt.Errorf("%w: category %d", ErrInvalidEnum, int(doc.Category)), ValCatInvalidEnum)
	}
	if doc.Len() == 0 {
		v.fail("", "objects", ErrEmptyDocument, ValCatEmptyDocument)
		return v.report
	}

	v.checkIDs()
	for _, id := range doc.order {
		obj := doc.objects[id]
		if obj == nil {
			continue
		}
		v.checkObject(obj)
	}
	if cfg.parentChecks {
		v.checkParents()
	}
	return v.report
}

type validator struct {
	doc    *Document
	report Report
}

func (v *validator) fail(objID, field string, err error, cat ValidationCategory) {
	v.report.Errors = append(v.report.Errors, ValidationError{Category: cat, ObjectID: objID, Field: field, Err: err})
}

func (v *validator) warn(objID, field string, err error, cat ValidationCategory) {
	v.report.Warnings = append(v.report.Warnings, ValidationError{Category: cat, ObjectID: objID, Field: field, Err: err})
}

// checkIDs re-checks uniqueness over the ordered object list and its
// agreement with the id map, independent of AddObject's guard.
func (v *validator) checkIDs() {
	seen := make(map[string]bool, len(v.doc.order))
	for _, id := range v.doc.order {
		if id == "" {
			v.fail("", "id", fmt.Errorf("%w: object id", ErrMissingField), ValCatMissingField)
			continue
		}
		if seen[id] {
			v.fail(id, "id", fmt.Errorf("%w: %q", ErrDuplicateID, id), ValCatDuplicateID)
			continue
		}
		seen[id] = true
		obj := v.doc.objects[id]
		if obj == nil {
			v.fail(id, "id", fmt.Errorf("%w: %q listed but not stored", ErrUnknownID, id), ValCatMissingField)
		} else if obj.id != id {
			v.fail(id, "id", fmt.Errorf("%w: %q stored under %q", ErrDuplicateID, obj.id, id), ValCatDuplicateID)
		}
	}
}

func (v *validator) checkObject(obj *Object) {
	id := obj.id
	if obj.Name == "" {
		v.warn(id, "name", fmt.Errorf("%w: object has no name", ErrMissingField), ValCatMissingField)
	}
	if obj.Shape == ShapeText && obj.Text == "" {
		v.fail(id, "text", fmt.Errorf("%w: text shape without text", ErrMissingField), ValCatMissingField)
	}
	if !obj.Kind.Valid() {
		v.fail(id, "ot", fmt.Errorf("%w: object kind %d", ErrInvalidEnum, int(obj.Kind)), ValCatInvalidEnum)
	}
	if !obj.Shape.Valid() {
		v.fail(id, "shape", fmt.Errorf("%w: shape %d", ErrInvalidEnum, int(obj.Shape)), ValCatInvalidEnum)
	}
	if !obj.Autokill.Kind.Valid() {
		v.fail(id, "akt", fmt.Errorf("%w: autokill kind %d", ErrInvalidEnum, int(obj.Autokill.Kind)), ValCatInvalidEnum)
	}

	checkTimeline(v, id, "pos", &obj.Position)
	checkTimeline(v, id, "sca", &obj.Scale)
	checkTimeline(v, id, "rot", &obj.Rotation)
	checkTimeline(v, id, "col", &obj.Color)
}

func checkTimeline[V Value](v *validator, objID, channel string, t *Timeline[V]) {
	field := "events." + channel
	if t.Len() == 0 {
		v.fail(objID, field, ErrEmptyTimeline, ValCatEmptyTimeline)
		return
	}
	for i, kf := range t.keyframes {
		kfField := fmt.Sprintf("%s[%d]", field, i)
		if kf.Time < 0 {
			v.fail(objID, kfField, fmt.Errorf("%w: got %g", ErrNegativeTime, kf.Time), ValCatBoundsViolation)
		}
		if !kf.Easing.Valid() {
			v.fail(objID, kfField+".ct", fmt.Errorf("%w: %d", ErrUnknownEasing, int(kf.Easing)), ValCatInvalidEnum)
		}
		if kf.Random != nil && !kf.Random.Mode.Valid() {
			v.fail(objID, kfField+".r", fmt.Errorf("%w: random mode %d", ErrInvalidEnum, int(kf.Random.Mode)), ValCatInvalidEnum)
		}
	}
	t.Sort()
}

// checkParents reports dangling parent ids and cycles. Each object has
// at most one parent, so a chain walk with a visited set finds loops.
func (v *validator) checkParents() {
	reported := make(map[string]bool)
	for _, id := range v.doc.order {
		obj := v.doc.objects[id]
		if obj == nil || obj.parent == "" {
			continue
		}
		if _, ok := v.doc.objects[obj.parent]; !ok {
			v.fail(id, "p", fmt.Errorf("%w: %q", ErrDanglingParent, obj.parent), ValCatDanglingParent)
			continue
		}

		visited := map[string]bool{id: true}
		cur := obj.parent
		for cur != "" {
			if visited[cur] {
				if !reported[cur] {
					v.markCycle(cur, reported)
					v.fail(cur, "p", fmt.Errorf("%w: chain from %q returns to %q", ErrParentCycle, id, cur), ValCatCycle)
				}
				break
			}
			visited[cur] = true
			next, ok := v.doc.objects[cur]
			if !ok {
				break
			}
			cur = next.parent
		}
	}
}

// markCycle flags every member of the loop that passes through start.
func (v *validator) markCycle(start string, reported map[string]bool) {
	for cur := start; !reported[cur]; {
		reported[cur] = true
		next, ok := v.doc.objects[cur]
		if !ok {
			return
		}
		cur = next.parent
	}
}
