package recipe

import (
	"fmt"

	"github.com/papapumpkin/prefab/internal/prefab"
)

// Build creates a document from r through the document API. A non-zero
// recipe seed makes generated ids reproducible; opts are applied after
// it and may override it.
func Build(r *Recipe, opts ...prefab.Option) (*prefab.Document, error) {
	cat := prefab.CategoryBombs
	if r.Category != "" {
		var err error
		if cat, err = prefab.ParseCategory(r.Category); err != nil {
			return nil, fmt.Errorf("category: %w", err)
		}
	}
	if r.Seed != 0 {
		opts = append([]prefab.Option{prefab.WithSeed(r.Seed)}, opts...)
	}
	doc := prefab.NewDocument(r.Name, cat, opts...)
	doc.Offset = r.Offset

	byKey := make(map[string]*prefab.Object, len(r.Objects))
	built := make([]*prefab.Object, len(r.Objects))
	for i := range r.Objects {
		spec := &r.Objects[i]
		obj, err := buildObject(doc, spec)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", spec.label(i), err)
		}
		if key := spec.key(); key != "" {
			if _, dup := byKey[key]; dup {
				return nil, fmt.Errorf("object %s: %w: %s", spec.label(i), ErrDuplicateKey, key)
			}
			byKey[key] = obj
		}
		built[i] = obj
	}

	// Parents are linked once every object exists so keys may be
	// referenced before they are declared.
	for i, spec := range r.Objects {
		if spec.Parent == "" {
			continue
		}
		parent, ok := byKey[spec.Parent]
		if !ok {
			return nil, fmt.Errorf("object %s: %w: %s", spec.label(i), ErrUnknownParent, spec.Parent)
		}
		if err := doc.SetParent(built[i].ID(), parent); err != nil {
			return nil, fmt.Errorf("object %s: %w", spec.label(i), err)
		}
	}
	return doc, nil
}

// key is the name other objects use to reference this one.
func (s *ObjectSpec) key() string {
	if s.Key != "" {
		return s.Key
	}
	return s.ID
}

func (s *ObjectSpec) label(i int) string {
	if k := s.key(); k != "" {
		return fmt.Sprintf("%q", k)
	}
	return fmt.Sprintf("#%d", i)
}

func buildObject(doc *prefab.Document, s *ObjectSpec) (*prefab.Object, error) {
	var obj *prefab.Object
	if s.ID != "" {
		obj = prefab.NewObject(s.ID, s.Name)
		if err := doc.AddObject(obj); err != nil {
			return nil, err
		}
	} else {
		obj = doc.CreateObject(s.Name)
	}

	var err error
	if s.Kind != "" {
		if obj.Kind, err = prefab.ParseObjectKind(s.Kind); err != nil {
			return nil, fmt.Errorf("kind: %w", err)
		}
	}
	if s.Shape != "" {
		if obj.Shape, err = prefab.ParseShape(s.Shape); err != nil {
			return nil, fmt.Errorf("shape: %w", err)
		}
	}
	if s.Autokill != "" {
		if obj.Autokill.Kind, err = prefab.ParseAutokillKind(s.Autokill); err != nil {
			return nil, fmt.Errorf("autokill: %w", err)
		}
	}
	obj.ShapeOption = s.ShapeOption
	obj.Text = s.Text
	obj.StartTime = s.Start
	obj.Autokill.Offset = s.AutokillOffset
	if s.Depth != nil {
		obj.Depth = *s.Depth
	}
	if err := applyParenting(obj, s); err != nil {
		return nil, err
	}
	if len(s.Origin) > 0 {
		if len(s.Origin) != 2 {
			return nil, fmt.Errorf("origin: want [x, y], got %d values", len(s.Origin))
		}
		obj.Origin = prefab.Vec2{X: s.Origin[0], Y: s.Origin[1]}
	}
	obj.Editor = prefab.EditorMeta(s.Editor)

	if err := insertKeys(&obj.Position, "position", s.Position, vecKeyframe); err != nil {
		return nil, err
	}
	if err := insertKeys(&obj.Scale, "scale", s.Scale, vecKeyframe); err != nil {
		return nil, err
	}
	if err := insertKeys(&obj.Rotation, "rotation", s.Rotation, angleKeyframe); err != nil {
		return nil, err
	}
	if err := insertKeys(&obj.Color, "color", s.Color, colorKeyframe); err != nil {
		return nil, err
	}
	return obj, nil
}

func applyParenting(obj *prefab.Object, s *ObjectSpec) error {
	if pl := s.ParentLink; pl != nil {
		if pl.Position != nil {
			obj.ParentLink.Position = *pl.Position
		}
		if pl.Scale != nil {
			obj.ParentLink.Scale = *pl.Scale
		}
		if pl.Rotation != nil {
			obj.ParentLink.Rotation = *pl.Rotation
		}
	}
	if len(s.ParentOffset) > 3 {
		return fmt.Errorf("parent_offset: want at most 3 values, got %d", len(s.ParentOffset))
	}
	offsets := []*float32{&obj.ParentOffset.Position, &obj.ParentOffset.Scale, &obj.ParentOffset.Rotation}
	for i, v := range s.ParentOffset {
		*offsets[i] = v
	}
	return nil
}

// insertKeys adds keys to t in recipe order. A key at time zero
// replaces the rest keyframe.
func insertKeys[K any, V prefab.Value](t *prefab.Timeline[V], channel string, keys []K, conv func(K) (prefab.Keyframe[V], error)) error {
	for i, k := range keys {
		kf, err := conv(k)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", channel, i, err)
		}
		if kf.Time < 0 {
			return fmt.Errorf("%s[%d]: %w: %v", channel, i, prefab.ErrNegativeTime, kf.Time)
		}
		t.Insert(kf)
	}
	return nil
}

func parseEase(name string) (prefab.Easing, error) {
	if name == "" {
		return prefab.EaseLinear, nil
	}
	return prefab.ParseEasing(name)
}

func parseRandomMode(name string) (prefab.RandomMode, error) {
	if name == "" {
		return prefab.RandomRange, nil
	}
	return prefab.ParseRandomMode(name)
}

func vecKeyframe(k VecKey) (prefab.Keyframe[prefab.Vec2], error) {
	ease, err := parseEase(k.Ease)
	if err != nil {
		return prefab.Keyframe[prefab.Vec2]{}, err
	}
	kf := prefab.Keyframe[prefab.Vec2]{Time: k.T, Value: prefab.Vec2{X: k.X, Y: k.Y}, Easing: ease}
	if r := k.Random; r != nil {
		mode, err := parseRandomMode(r.Mode)
		if err != nil {
			return kf, err
		}
		kf.Random = &prefab.Random[prefab.Vec2]{Mode: mode, Value: prefab.Vec2{X: r.X, Y: r.Y}, Interval: r.Interval}
	}
	return kf, nil
}

func angleKeyframe(k AngleKey) (prefab.Keyframe[float32], error) {
	ease, err := parseEase(k.Ease)
	if err != nil {
		return prefab.Keyframe[float32]{}, err
	}
	kf := prefab.Keyframe[float32]{Time: k.T, Value: k.Angle, Easing: ease}
	if r := k.Random; r != nil {
		mode, err := parseRandomMode(r.Mode)
		if err != nil {
			return kf, err
		}
		kf.Random = &prefab.Random[float32]{Mode: mode, Value: r.Angle, Interval: r.Interval}
	}
	return kf, nil
}

func colorKeyframe(k ColorKey) (prefab.Keyframe[int32], error) {
	ease, err := parseEase(k.Ease)
	if err != nil {
		return prefab.Keyframe[int32]{}, err
	}
	kf := prefab.Keyframe[int32]{Time: k.T, Value: k.Color, Easing: ease}
	if r := k.Random; r != nil {
		mode, err := parseRandomMode(r.Mode)
		if err != nil {
			return kf, err
		}
		kf.Random = &prefab.Random[int32]{Mode: mode, Value: r.Color, Interval: r.Interval}
	}
	return kf, nil
}
