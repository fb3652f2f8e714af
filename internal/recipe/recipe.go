// Package recipe reads prefab authoring recipes written in TOML or YAML
// and builds documents from them.
package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat indicates a recipe file extension that is not TOML or YAML.
	ErrUnknownFormat = errors.New("unknown recipe format")
	// ErrDuplicateKey indicates two objects in a recipe share a key.
	ErrDuplicateKey = errors.New("duplicate object key")
	// ErrUnknownParent indicates a parent key that names no object in the recipe.
	ErrUnknownParent = errors.New("unknown parent key")
)

// Format is a recipe serialization.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// IsRecipe reports whether path has a recipe extension.
func IsRecipe(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Recipe describes a prefab by name. Objects refer to each other by
// key; ids are generated unless fixed.
type Recipe struct {
	Name     string       `toml:"name" yaml:"name"`
	Category string       `toml:"category" yaml:"category"`
	Offset   float32      `toml:"offset" yaml:"offset"`
	Seed     int64        `toml:"seed" yaml:"seed"`
	Objects  []ObjectSpec `toml:"objects" yaml:"objects"`
}

// ObjectSpec is one object in a recipe. Zero fields take the object
// defaults.
type ObjectSpec struct {
	Key            string          `toml:"key" yaml:"key"`
	ID             string          `toml:"id" yaml:"id"`
	Name           string          `toml:"name" yaml:"name"`
	Parent         string          `toml:"parent" yaml:"parent"`
	ParentLink     *ParentLinkSpec `toml:"parent_link" yaml:"parent_link"`
	ParentOffset   []float32       `toml:"parent_offset" yaml:"parent_offset"`
	Depth          *int32          `toml:"depth" yaml:"depth"`
	Kind           string          `toml:"kind" yaml:"kind"`
	Shape          string          `toml:"shape" yaml:"shape"`
	ShapeOption    int32           `toml:"shape_option" yaml:"shape_option"`
	Text           string          `toml:"text" yaml:"text"`
	Start          float32         `toml:"start" yaml:"start"`
	Autokill       string          `toml:"autokill" yaml:"autokill"`
	AutokillOffset float32         `toml:"autokill_offset" yaml:"autokill_offset"`
	Origin         []float32       `toml:"origin" yaml:"origin"`
	Editor         EditorSpec      `toml:"editor" yaml:"editor"`

	Position []VecKey   `toml:"position" yaml:"position"`
	Scale    []VecKey   `toml:"scale" yaml:"scale"`
	Rotation []AngleKey `toml:"rotation" yaml:"rotation"`
	Color    []ColorKey `toml:"color" yaml:"color"`
}

// ParentLinkSpec overrides individual inherited channels.
type ParentLinkSpec struct {
	Position *bool `toml:"position" yaml:"position"`
	Scale    *bool `toml:"scale" yaml:"scale"`
	Rotation *bool `toml:"rotation" yaml:"rotation"`
}

type EditorSpec struct {
	Locked    bool  `toml:"locked" yaml:"locked"`
	Collapsed bool  `toml:"collapsed" yaml:"collapsed"`
	Bin       int32 `toml:"bin" yaml:"bin"`
	Layer     int32 `toml:"layer" yaml:"layer"`
}

// VecKey is a position or scale keyframe.
type VecKey struct {
	T      float32    `toml:"t" yaml:"t"`
	X      float32    `toml:"x" yaml:"x"`
	Y      float32    `toml:"y" yaml:"y"`
	Ease   string     `toml:"ease" yaml:"ease"`
	Random *VecRandom `toml:"random" yaml:"random"`
}

type VecRandom struct {
	Mode     string  `toml:"mode" yaml:"mode"`
	X        float32 `toml:"x" yaml:"x"`
	Y        float32 `toml:"y" yaml:"y"`
	Interval float32 `toml:"interval" yaml:"interval"`
}

// AngleKey is a rotation keyframe in absolute degrees.
type AngleKey struct {
	T      float32      `toml:"t" yaml:"t"`
	Angle  float32      `toml:"angle" yaml:"angle"`
	Ease   string       `toml:"ease" yaml:"ease"`
	Random *AngleRandom `toml:"random" yaml:"random"`
}

type AngleRandom struct {
	Mode     string  `toml:"mode" yaml:"mode"`
	Angle    float32 `toml:"angle" yaml:"angle"`
	Interval float32 `toml:"interval" yaml:"interval"`
}

// ColorKey is a color keyframe holding a packed RGB value.
type ColorKey struct {
	T      float32      `toml:"t" yaml:"t"`
	Color  int32        `toml:"color" yaml:"color"`
	Ease   string       `toml:"ease" yaml:"ease"`
	Random *ColorRandom `toml:"random" yaml:"random"`
}

type ColorRandom struct {
	Mode     string  `toml:"mode" yaml:"mode"`
	Color    int32   `toml:"color" yaml:"color"`
	Interval float32 `toml:"interval" yaml:"interval"`
}

// Load reads and parses the recipe at path.
func Load(path string) (*Recipe, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	r, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// Parse decodes recipe data in the given format.
func Parse(data []byte, format Format) (*Recipe, error) {
	var r Recipe
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing TOML recipe: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing YAML recipe: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &r, nil
}
