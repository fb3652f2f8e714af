// Package codec converts prefab documents to and from the canonical
// text form read by the game: JSON with abbreviated keys in which
// every numeric leaf is written as a decimal string.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/papapumpkin/prefab/internal/logging"
	"github.com/papapumpkin/prefab/internal/prefab"
)

// Flags select output ordering and the rotation wire form. Encoding is
// deterministic for a given document and Flags.
type Flags struct {
	// SortObjects orders objects by start time instead of insertion order.
	SortObjects bool
	// SortKeyframes orders every channel's keyframes by time.
	SortKeyframes bool
	// CumulativeRotation writes rotation keyframes as increments over
	// the running sum of earlier angles. Decoding must use the same flag.
	CumulativeRotation bool
}

func (f Flags) rotationMode() RotationMode {
	if f.CumulativeRotation {
		return RotationCumulative
	}
	return RotationVerbatim
}

// DecodeError reports a decode failure with the offending object id
// (when known) and field path.
type DecodeError struct {
	ObjectID string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.ObjectID != "" {
		b.WriteString(": object " + e.ObjectID)
	}
	if e.Field != "" {
		b.WriteString(": " + e.Field)
	}
	b.WriteString(": " + e.Err.Error())
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Codec encodes and decodes prefab documents.
type Codec struct {
	flags  Flags
	indent string
	log    *logging.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger makes the codec log the defaults it applies while decoding.
func WithLogger(l *logging.Logger) Option {
	return func(c *Codec) { c.log = l }
}

// WithIndent pretty-prints encoded output using indent per level.
func WithIndent(indent string) Option {
	return func(c *Codec) { c.indent = indent }
}

// New returns a Codec using flags.
func New(flags Flags, opts ...Option) *Codec {
	c := &Codec{flags: flags, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode renders doc with flags and default options.
func Encode(doc *prefab.Document, flags Flags) (string, error) {
	return New(flags).Encode(doc)
}

// Decode parses text with flags and default options.
func Decode(text string, flags Flags) (*prefab.Document, error) {
	return New(flags).Decode(text)
}

// Encode renders doc in canonical form. It does not validate doc and
// does not modify it; sorting flags act on copies.
func (c *Codec) Encode(doc *prefab.Document) (string, error) {
	objs := doc.Objects()
	if c.flags.SortObjects {
		objs = doc.ObjectsByStartTime()
	}

	wd := wireDocument{
		Name:    doc.Name,
		Type:    formatInt(doc.Category),
		Offset:  formatFloat(doc.Offset),
		Objects: make([]wireObject, 0, len(objs)),
	}
	for _, obj := range objs {
		wo, err := c.encodeObject(obj)
		if err != nil {
			return "", fmt.Errorf("encode: object %s: %w", obj.ID(), err)
		}
		wd.Objects = append(wd.Objects, wo)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // ids use <, > and &
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	if err := enc.Encode(wd); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (c *Codec) encodeObject(obj *prefab.Object) (wireObject, error) {
	name := obj.Name
	wo := wireObject{
		ID:     obj.ID(),
		Name:   &name,
		Parent: obj.ParentID(),
		PT:     ptr(encodeParentLink(obj.ParentLink)),
		PO: []scalar{
			formatFloat(obj.ParentOffset.Position),
			formatFloat(obj.ParentOffset.Scale),
			formatFloat(obj.ParentOffset.Rotation),
		},
		Depth:    ptr(formatInt(obj.Depth)),
		Kind:     formatInt(obj.Kind),
		Shape:    formatInt(obj.Shape),
		Option:   formatInt(obj.ShapeOption),
		Start:    formatFloat(obj.StartTime),
		Autokill: ptr(formatInt(obj.Autokill.Kind)),
		AKOffset: formatFloat(obj.Autokill.Offset),
		Origin:   &wireVec{X: formatFloat(obj.Origin.X), Y: formatFloat(obj.Origin.Y)},
		Editor: &wireEditor{
			Locked: formatBool(obj.Editor.Locked),
			Shrink: formatBool(obj.Editor.Collapsed),
			Bin:    formatInt(obj.Editor.Bin),
			Layer:  formatInt(obj.Editor.Layer),
		},
	}
	if obj.Shape == prefab.ShapeText {
		text := obj.Text
		wo.Text = &text
	}

	pos, sca := obj.Position.Keyframes(), obj.Scale.Keyframes()
	rot, col := obj.Rotation.Keyframes(), obj.Color.Keyframes()
	if c.flags.SortKeyframes {
		sortByTime(pos)
		sortByTime(sca)
		sortByTime(col)
	}
	// Running sums are only meaningful in time order.
	if c.flags.SortKeyframes || c.flags.CumulativeRotation {
		sortByTime(rot)
	}
	rot = EncodeRotation(rot, c.flags.rotationMode())

	events := &wireEvents{}
	var err error
	if events.Pos, err = encodeChannel("pos", pos, vec2Codec); err != nil {
		return wo, err
	}
	if events.Sca, err = encodeChannel("sca", sca, vec2Codec); err != nil {
		return wo, err
	}
	if events.Rot, err = encodeChannel("rot", rot, angleCodec); err != nil {
		return wo, err
	}
	if events.Col, err = encodeChannel("col", col, colorCodec); err != nil {
		return wo, err
	}
	wo.Events = events
	return wo, nil
}

func encodeParentLink(pl prefab.ParentLink) scalar {
	bit := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	return scalar(bit(pl.Position) + bit(pl.Scale) + bit(pl.Rotation))
}

// Decode parses canonical text into a new document. Absent optional
// groups fall back to defaults; a missing events group or object
// id/name fails. On error no document is returned. Decode does not
// validate.
func (c *Codec) Decode(text string) (*prefab.Document, error) {
	var wd wireDocument
	if err := json.Unmarshal([]byte(text), &wd); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("parsing prefab: %w", err)}
	}

	cat, err := parseInt(wd.Type)
	if err != nil {
		return nil, &DecodeError{Field: "type", Err: err}
	}
	offset, err := parseFloat(wd.Offset)
	if err != nil {
		return nil, &DecodeError{Field: "offset", Err: err}
	}

	doc := prefab.NewDocument(wd.Name, prefab.Category(cat))
	doc.Offset = offset
	log := c.log.With("prefab", wd.Name)

	for i, wo := range wd.Objects {
		obj, err := c.decodeObject(i, wo, log)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) && de.ObjectID == "" {
				de.ObjectID = wo.ID
			}
			return nil, err
		}
		if err := doc.AddObject(obj); err != nil {
			return nil, &DecodeError{ObjectID: wo.ID, Field: "id", Err: err}
		}
		if wo.Parent != "" {
			// The object was just added, so this cannot fail.
			_ = doc.SetParentID(wo.ID, wo.Parent)
		}
	}
	return doc, nil
}

func (c *Codec) decodeObject(index int, wo wireObject, log *logging.Logger) (*prefab.Object, error) {
	if wo.ID == "" {
		return nil, &DecodeError{Field: fmt.Sprintf("objects[%d].id", index), Err: prefab.ErrMissingField}
	}
	if wo.Name == nil {
		return nil, &DecodeError{Field: "name", Err: prefab.ErrMissingField}
	}
	if wo.Events == nil {
		return nil, &DecodeError{Field: "events", Err: prefab.ErrMissingField}
	}
	log = log.With("object", wo.ID)
	obj := prefab.NewObject(wo.ID, *wo.Name)

	var err error
	if wo.PT == nil || *wo.PT == "" {
		log.Debug("pt absent, using default parenting")
	} else if obj.ParentLink, err = decodeParentLink(*wo.PT); err != nil {
		return nil, &DecodeError{Field: "pt", Err: err}
	}

	if len(wo.PO) == 0 {
		log.Debug("po absent, using zero parent offsets")
	}
	offsets := []*float32{&obj.ParentOffset.Position, &obj.ParentOffset.Scale, &obj.ParentOffset.Rotation}
	for i := 0; i < len(wo.PO) && i < len(offsets); i++ {
		if *offsets[i], err = parseFloat(wo.PO[i]); err != nil {
			return nil, &DecodeError{Field: fmt.Sprintf("po[%d]", i), Err: err}
		}
	}

	if wo.Depth == nil {
		log.Debug("d absent, using default depth", "depth", prefab.DefaultDepth)
	} else if obj.Depth, err = parseInt(*wo.Depth); err != nil {
		return nil, &DecodeError{Field: "d", Err: err}
	}

	if err := decodeEnums(obj, wo); err != nil {
		return nil, err
	}
	if obj.ShapeOption, err = parseInt(wo.Option); err != nil {
		return nil, &DecodeError{Field: "so", Err: err}
	}
	if wo.Text != nil {
		obj.Text = *wo.Text
	}
	if obj.StartTime, err = parseFloat(wo.Start); err != nil {
		return nil, &DecodeError{Field: "st", Err: err}
	}
	if obj.Autokill.Offset, err = parseFloat(wo.AKOffset); err != nil {
		return nil, &DecodeError{Field: "ako", Err: err}
	}

	if wo.Origin != nil {
		if obj.Origin.X, err = parseFloat(wo.Origin.X); err != nil {
			return nil, &DecodeError{Field: "o.x", Err: err}
		}
		if obj.Origin.Y, err = parseFloat(wo.Origin.Y); err != nil {
			return nil, &DecodeError{Field: "o.y", Err: err}
		}
	}

	if wo.Editor == nil {
		log.Debug("ed absent, using empty editor state")
	} else if obj.Editor, err = decodeEditor(wo.Editor); err != nil {
		return nil, err
	}

	if err := c.decodeEvents(obj, wo.Events); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeEnums(obj *prefab.Object, wo wireObject) error {
	kind, err := parseInt(wo.Kind)
	if err != nil {
		return &DecodeError{Field: "ot", Err: err}
	}
	shape, err := parseInt(wo.Shape)
	if err != nil {
		return &DecodeError{Field: "shape", Err: err}
	}
	obj.Kind = prefab.ObjectKind(kind)
	obj.Shape = prefab.Shape(shape)
	if wo.Autokill != nil {
		akt, err := parseInt(*wo.Autokill)
		if err != nil {
			return &DecodeError{Field: "akt", Err: err}
		}
		obj.Autokill.Kind = prefab.AutokillKind(akt)
	}
	return nil
}

func decodeParentLink(s scalar) (prefab.ParentLink, error) {
	str := string(s)
	if len(str) != 3 {
		return prefab.ParentLink{}, fmt.Errorf("%w: parent flags %q are not three digits", prefab.ErrMalformedNumber, str)
	}
	return prefab.ParentLink{
		Position: str[0] != '0',
		Scale:    str[1] != '0',
		Rotation: str[2] != '0',
	}, nil
}

func decodeEditor(we *wireEditor) (prefab.EditorMeta, error) {
	var ed prefab.EditorMeta
	var err error
	if ed.Locked, err = parseBool(we.Locked); err != nil {
		return ed, &DecodeError{Field: "ed.locked", Err: err}
	}
	if ed.Collapsed, err = parseBool(we.Shrink); err != nil {
		return ed, &DecodeError{Field: "ed.shrink", Err: err}
	}
	if ed.Bin, err = parseInt(we.Bin); err != nil {
		return ed, &DecodeError{Field: "ed.bin", Err: err}
	}
	if ed.Layer, err = parseInt(we.Layer); err != nil {
		return ed, &DecodeError{Field: "ed.layer", Err: err}
	}
	return ed, nil
}

func (c *Codec) decodeEvents(obj *prefab.Object, ev *wireEvents) error {
	pos, err := decodeChannel("pos", ev.Pos, vec2Codec)
	if err != nil {
		return err
	}
	sca, err := decodeChannel("sca", ev.Sca, vec2Codec)
	if err != nil {
		return err
	}
	rot, err := decodeChannel("rot", ev.Rot, angleCodec)
	if err != nil {
		return err
	}
	col, err := decodeChannel("col", ev.Col, colorCodec)
	if err != nil {
		return err
	}
	obj.Position = prefab.TimelineOf(pos...)
	obj.Scale = prefab.TimelineOf(sca...)
	obj.Rotation = prefab.TimelineOf(DecodeRotation(rot, c.flags.rotationMode())...)
	obj.Color = prefab.TimelineOf(col...)
	return nil
}
