package prefab

import "fmt"

// Easing is the interpolation curve between a keyframe and its predecessor.
type Easing int

const (
	EaseLinear Easing = iota
	EaseInstant
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseInBack
	EaseOutBack
	EaseInOutBack
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
)

// easingNames are the exact curve names written to the "ct" field.
var easingNames = []string{
	"Linear", "Instant",
	"InSine", "OutSine", "InOutSine",
	"InElastic", "OutElastic", "InOutElastic",
	"InBack", "OutBack", "InOutBack",
	"InBounce", "OutBounce", "InOutBounce",
	"InQuad", "OutQuad", "InOutQuad",
	"InCirc", "OutCirc", "InOutCirc",
	"InExpo", "OutExpo", "InOutExpo",
}

var easingByName = func() map[string]Easing {
	m := make(map[string]Easing, len(easingNames))
	for i, n := range easingNames {
		m[n] = Easing(i)
	}
	return m
}()

func (e Easing) String() string { return enumName(easingNames, int(e)) }

// Valid reports whether e is one of the 23 known curves.
func (e Easing) Valid() bool { return enumValid(easingNames, int(e)) }

// ParseEasing resolves an exact curve name as written on the wire.
func ParseEasing(name string) (Easing, error) {
	e, ok := easingByName[name]
	if !ok {
		return EaseLinear, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return e, nil
}
