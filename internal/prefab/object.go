package prefab

// ParentLink selects which channels an object inherits from its parent.
type ParentLink struct {
	Position bool
	Scale    bool
	Rotation bool
}

// ParentOffset is the per-channel time lag behind the parent, in seconds.
type ParentOffset struct {
	Position float32
	Scale    float32
	Rotation float32
}

// Autokill is the rule that removes an object during playback.
type Autokill struct {
	Kind   AutokillKind
	Offset float32
}

// EditorMeta is cosmetic editor state. It never affects playback.
type EditorMeta struct {
	Locked    bool
	Collapsed bool
	Bin       int32
	Layer     int32
}

// DefaultDepth is the render depth new objects start with.
const DefaultDepth int32 = 15

// DefaultParentLink is the parenting a new object starts with.
var DefaultParentLink = ParentLink{Position: true, Scale: false, Rotation: true}

// Object is a single animated shape in a prefab.
//
// The id is fixed at construction. The parent is held as an id and
// resolved through the owning Document; it may dangle if the parent
// was removed by other means.
type Object struct {
	id     string
	parent string
	doc    *Document

	Name         string
	ParentLink   ParentLink
	ParentOffset ParentOffset
	Depth        int32
	Kind         ObjectKind
	Shape        Shape
	ShapeOption  int32
	Text         string // only written when Shape is ShapeText
	StartTime    float32
	Autokill     Autokill
	Origin       Vec2
	Editor       EditorMeta

	Position Timeline[Vec2]
	Scale    Timeline[Vec2]
	Rotation Timeline[float32]
	Color    Timeline[int32]
}

// NewObject returns a detached object with default settings and one
// rest keyframe per channel. Register it with Document.AddObject.
func NewObject(id, name string) *Object {
	return &Object{
		id:         id,
		Name:       name,
		ParentLink: DefaultParentLink,
		Depth:      DefaultDepth,
		Autokill:   Autokill{Kind: AutokillLastKeyframe},
		Position:   NewTimeline(Vec2{}),
		Scale:      NewTimeline(Vec2{X: 1, Y: 1}),
		Rotation:   NewTimeline[float32](0),
		Color:      NewTimeline[int32](0),
	}
}

// ID returns the object's immutable id.
func (o *Object) ID() string { return o.id }

// ParentID returns the parent's id, or "" when the object has no parent.
func (o *Object) ParentID() string { return o.parent }

// Document returns the owning document, or nil for a detached object.
func (o *Object) Document() *Document { return o.doc }
