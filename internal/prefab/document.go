// Package prefab models animated prefabs: a document of objects linked
// by parent ids, each carrying four keyframe timelines (position,
// scale, rotation, color). It also provides the id generator and the
// pre-encode validator.
package prefab

import (
	"fmt"
	"sort"
)

// Document is a prefab: metadata plus the objects it owns.
//
// Objects are kept in an id map with an insertion-order list and a
// reverse parent index, and all three change together. A Document is
// not safe for concurrent use.
type Document struct {
	Name     string
	Category Category
	Offset   float32

	objects  map[string]*Object
	order    []string
	children map[string][]string // parent id → child ids, insertion order
	ids      *IDGenerator
}

// Option configures a Document at construction.
type Option func(*Document)

// WithIDGenerator sets the generator CreateObject draws ids from.
func WithIDGenerator(g *IDGenerator) Option {
	return func(d *Document) { d.ids = g }
}

// WithSeed seeds the document's id generator, making CreateObject
// ids reproducible.
func WithSeed(seed int64) Option {
	return func(d *Document) { d.ids = NewSeededIDGenerator(seed) }
}

// NewDocument returns an empty prefab with the given name and category.
func NewDocument(name string, category Category, opts ...Option) *Document {
	d := &Document{
		Name:     name,
		Category: category,
		objects:  make(map[string]*Object),
		children: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.ids == nil {
		d.ids = NewSeededIDGenerator(0)
	}
	return d
}

// CreateObject makes an object with a fresh id and registers it.
func (d *Document) CreateObject(name string) *Object {
	obj := NewObject(d.ids.Generate(d.Contains), name)
	// A generated id is never taken, so AddObject cannot fail here.
	_ = d.AddObject(obj)
	return obj
}

// AddObject registers obj under its id. It returns ErrDuplicateID if
// the id is taken and ErrForeignObject if obj already has an owner.
// A parent id already set on obj is indexed as-is, dangling or not.
func (d *Document) AddObject(obj *Object) error {
	if obj.doc != nil {
		return fmt.Errorf("%w: %s", ErrForeignObject, obj.id)
	}
	if _, exists := d.objects[obj.id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, obj.id)
	}
	obj.doc = d
	d.objects[obj.id] = obj
	d.order = append(d.order, obj.id)
	if obj.parent != "" {
		d.children[obj.parent] = append(d.children[obj.parent], obj.id)
	}
	return nil
}

// RemoveObject unparents the object's direct children, then removes
// the object. Children are not deleted.
func (d *Document) RemoveObject(id string) error {
	obj, ok := d.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownID, id)
	}
	for _, childID := range d.children[id] {
		if child, ok := d.objects[childID]; ok {
			child.parent = ""
		}
	}
	delete(d.children, id)
	d.unlink(obj)

	delete(d.objects, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	obj.doc = nil
	return nil
}

// Object returns the object with the given id, or nil.
func (d *Document) Object(id string) *Object {
	return d.objects[id]
}

// Contains reports whether id is registered.
func (d *Document) Contains(id string) bool {
	_, ok := d.objects[id]
	return ok
}

// Len returns the number of objects.
func (d *Document) Len() int { return len(d.order) }

// Objects returns the objects in insertion order.
func (d *Document) Objects() []*Object {
	out := make([]*Object, 0, len(d.order))
	for _, id := range d.order {
		if obj, ok := d.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out
}

// ObjectsByStartTime returns the objects ordered by start time,
// keeping insertion order among equal start times.
func (d *Document) ObjectsByStartTime() []*Object {
	out := d.Objects()
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

// Parent resolves the parent of the object with the given id. It
// returns false when the object is unknown, has no parent, or its
// parent id does not resolve.
func (d *Document) Parent(id string) (*Object, bool) {
	obj, ok := d.objects[id]
	if !ok || obj.parent == "" {
		return nil, false
	}
	p, ok := d.objects[obj.parent]
	return p, ok
}

// Children returns the ids of objects whose parent is id, in the order
// they were attached.
func (d *Document) Children(id string) []string {
	kids := d.children[id]
	out := make([]string, len(kids))
	copy(out, kids)
	return out
}

// ChildCount returns the number of objects whose parent is id.
func (d *Document) ChildCount(id string) int {
	return len(d.children[id])
}

// SetParent makes parent the parent of the object childID. A nil
// parent detaches the child. The parent must belong to this document.
func (d *Document) SetParent(childID string, parent *Object) error {
	if parent != nil && parent.doc != d {
		return fmt.Errorf("%w: %s", ErrCrossDocumentParent, parent.id)
	}
	parentID := ""
	if parent != nil {
		parentID = parent.id
	}
	return d.SetParentID(childID, parentID)
}

// SetParentID sets the parent of childID to a raw id. The id is not
// resolved, so it may dangle; Validate with WithParentChecks reports
// dangling ids and cycles.
func (d *Document) SetParentID(childID, parentID string) error {
	child, ok := d.objects[childID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownID, childID)
	}
	d.unlink(child)
	child.parent = parentID
	if parentID != "" {
		d.children[parentID] = append(d.children[parentID], childID)
	}
	return nil
}

// unlink drops obj from its current parent's child list.
func (d *Document) unlink(obj *Object) {
	if obj.parent == "" {
		return
	}
	kids := d.children[obj.parent]
	for i, k := range kids {
		if k == obj.id {
			kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		delete(d.children, obj.parent)
	} else {
		d.children[obj.parent] = kids
	}
}
