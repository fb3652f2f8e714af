package prefab

import (
	"fmt"
	"strings"
)

// Category is the prefab type shown in the editor's prefab list.
type Category int

const (
	CategoryBombs Category = iota
	CategoryBullets
	CategoryBeams
	CategorySpinners
	CategoryPulses
	CategoryCharacters
	CategoryMisc1
	CategoryMisc2
	CategoryMisc3
	CategoryMisc4
)

var categoryNames = []string{
	"Bombs", "Bullets", "Beams", "Spinners", "Pulses",
	"Characters", "Misc1", "Misc2", "Misc3", "Misc4",
}

// ObjectKind controls how the editor and the game treat an object.
type ObjectKind int

const (
	KindNormal ObjectKind = iota
	KindHelper
	KindDecoration
	KindEmpty
)

var kindNames = []string{"Normal", "Helper", "Decoration", "Empty"}

// Shape is the primitive an object is drawn with.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeTriangle
	ShapeArrowUp
	ShapeText
	ShapeHexagon
)

var shapeNames = []string{"Square", "Circle", "Triangle", "ArrowUp", "Text", "Hexagon"}

// Shape option indices. The meaning of ShapeOption depends on Shape.
const (
	SquareSolid       int32 = 0
	SquareHollowThick int32 = 1
	SquareHollowThin  int32 = 2

	CircleSolid             int32 = 0
	CircleHollowThick       int32 = 1
	CircleHalfSolid         int32 = 2
	CircleHalfHollow        int32 = 3
	CircleHollowThin        int32 = 4
	CircleQuarterSolid      int32 = 5
	CircleQuarterHollow     int32 = 6
	CircleHalfQuarterSolid  int32 = 7
	CircleHalfQuarterHollow int32 = 8

	TriangleSolid             int32 = 0
	TriangleHollow            int32 = 1
	TriangleRightAngledSolid  int32 = 2
	TriangleRightAngledHollow int32 = 3

	ArrowNormal int32 = 0
	ArrowHead   int32 = 1

	HexagonSolid           int32 = 0
	HexagonHollowThick     int32 = 1
	HexagonHollowThin      int32 = 2
	HexagonHalf            int32 = 3
	HexagonHalfHollowThick int32 = 4
	HexagonHalfHollowThin  int32 = 5
)

// AutokillKind determines when an object is removed during playback.
type AutokillKind int

const (
	AutokillNone AutokillKind = iota
	AutokillLastKeyframe
	AutokillLastKeyframeOffset
	AutokillFixed
	AutokillSongTime
)

var autokillNames = []string{"None", "LastKeyframe", "LastKeyframeOffset", "Fixed", "SongTime"}

// RandomMode selects how a keyframe's random value is applied.
// Values match the game's integers; 2 is unused.
type RandomMode int

const (
	RandomNone   RandomMode = 0
	RandomRange  RandomMode = 1
	RandomSelect RandomMode = 3
	RandomScale  RandomMode = 4
)

var randomModeNames = []string{"None", "Range", "", "Select", "Scale"}

func (c Category) String() string     { return enumName(categoryNames, int(c)) }
func (k ObjectKind) String() string   { return enumName(kindNames, int(k)) }
func (s Shape) String() string        { return enumName(shapeNames, int(s)) }
func (a AutokillKind) String() string { return enumName(autokillNames, int(a)) }
func (m RandomMode) String() string   { return enumName(randomModeNames, int(m)) }

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool     { return enumValid(categoryNames, int(c)) }
func (k ObjectKind) Valid() bool   { return enumValid(kindNames, int(k)) }
func (s Shape) Valid() bool        { return enumValid(shapeNames, int(s)) }
func (a AutokillKind) Valid() bool { return enumValid(autokillNames, int(a)) }
func (m RandomMode) Valid() bool   { return enumValid(randomModeNames, int(m)) }

// ParseCategory resolves a category by name. Matching ignores case,
// underscores, dashes and spaces, so "misc_1" and "Misc1" are equal.
func ParseCategory(s string) (Category, error) {
	v, err := parseEnum("category", categoryNames, s)
	return Category(v), err
}

// ParseObjectKind resolves an object kind by name.
func ParseObjectKind(s string) (ObjectKind, error) {
	v, err := parseEnum("object kind", kindNames, s)
	return ObjectKind(v), err
}

// ParseShape resolves a shape by name.
func ParseShape(s string) (Shape, error) {
	v, err := parseEnum("shape", shapeNames, s)
	return Shape(v), err
}

// ParseAutokillKind resolves an autokill kind by name.
func ParseAutokillKind(s string) (AutokillKind, error) {
	v, err := parseEnum("autokill kind", autokillNames, s)
	return AutokillKind(v), err
}

// ParseRandomMode resolves a random mode by name.
func ParseRandomMode(s string) (RandomMode, error) {
	v, err := parseEnum("random mode", randomModeNames, s)
	return RandomMode(v), err
}

func enumValid(names []string, v int) bool {
	return v >= 0 && v < len(names) && names[v] != ""
}

func enumName(names []string, v int) string {
	if !enumValid(names, v) {
		return fmt.Sprintf("Unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(kind string, names []string, s string) (int, error) {
	want := foldName(s)
	for i, n := range names {
		if n != "" && foldName(n) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidEnum, kind, s)
}

func foldName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
