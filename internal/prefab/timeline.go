package prefab

import (
	"fmt"
	"sort"
)

// Vec2 is a 2D vector used by position, scale and origin values.
type Vec2 struct {
	X float32
	Y float32
}

// Value is the set of channel value types a timeline can hold:
// Vec2 for position and scale, float32 for rotation, packed RGB
// int32 for color.
type Value interface {
	Vec2 | float32 | int32
}

// Random describes per-keyframe randomisation. A nil *Random on a
// keyframe means randomisation is off.
type Random[V Value] struct {
	Mode     RandomMode
	Value    V
	Interval float32
}

// Keyframe is a timestamped channel value plus the curve used to reach it.
type Keyframe[V Value] struct {
	Time   float32
	Value  V
	Easing Easing
	Random *Random[V]
}

// Timeline is the ordered keyframe sequence for one animation channel.
// A timeline made with NewTimeline always holds a keyframe at time 0
// (the channel's rest state); that slot is overwritten, never removed.
// The zero Timeline is empty and is rejected by Validate.
type Timeline[V Value] struct {
	keyframes []Keyframe[V]
}

// NewTimeline returns a timeline holding a single Linear keyframe at
// time 0 with the given rest value.
func NewTimeline[V Value](rest V) Timeline[V] {
	return Timeline[V]{keyframes: []Keyframe[V]{{Value: rest}}}
}

// TimelineOf returns a timeline holding kfs exactly as given. No
// ordering is applied; decoders use it to preserve wire order.
func TimelineOf[V Value](kfs ...Keyframe[V]) Timeline[V] {
	out := make([]Keyframe[V], len(kfs))
	copy(out, kfs)
	return Timeline[V]{keyframes: out}
}

// Len returns the number of keyframes.
func (t *Timeline[V]) Len() int { return len(t.keyframes) }

// At returns the keyframe at index i. It panics if i is out of range.
func (t *Timeline[V]) At(i int) Keyframe[V] { return t.keyframes[i] }

// Keyframes returns a copy of the keyframes in timeline order.
func (t *Timeline[V]) Keyframes() []Keyframe[V] {
	out := make([]Keyframe[V], len(t.keyframes))
	copy(out, t.keyframes)
	return out
}

// Insert places kf so the timeline stays sorted by time.
//
// A keyframe at time 0 replaces index 0. A keyframe later than the
// last one is appended. Otherwise the insertion point is found by
// binary search, after any keyframes with an equal time.
func (t *Timeline[V]) Insert(kf Keyframe[V]) {
	n := len(t.keyframes)
	switch {
	case kf.Time == 0 && n > 0:
		t.keyframes[0] = kf
		return
	case n == 0 || kf.Time > t.keyframes[n-1].Time:
		t.keyframes = append(t.keyframes, kf)
		return
	}

	i := sort.Search(n, func(i int) bool { return t.keyframes[i].Time > kf.Time })
	t.keyframes = append(t.keyframes, Keyframe[V]{})
	copy(t.keyframes[i+1:], t.keyframes[i:])
	t.keyframes[i] = kf
}

// Append adds kf at the end without keeping time order, the way
// hand-assembled keyframe lists are authored. Validate sorts the
// timeline afterwards.
func (t *Timeline[V]) Append(kf Keyframe[V]) {
	t.keyframes = append(t.keyframes, kf)
}

// RemoveAt deletes the keyframe at index i. Index 0 holds the rest
// state and is refused with ErrRestKeyframe.
func (t *Timeline[V]) RemoveAt(i int) error {
	if i == 0 {
		return ErrRestKeyframe
	}
	if i < 0 || i >= len(t.keyframes) {
		return fmt.Errorf("keyframe index %d out of range [0,%d)", i, len(t.keyframes))
	}
	t.keyframes = append(t.keyframes[:i], t.keyframes[i+1:]...)
	return nil
}

// Sort orders keyframes by time, keeping the relative order of
// keyframes with equal times.
func (t *Timeline[V]) Sort() {
	sort.SliceStable(t.keyframes, func(i, j int) bool {
		return t.keyframes[i].Time < t.keyframes[j].Time
	})
}

// Sorted reports whether keyframe times are non-decreasing.
func (t *Timeline[V]) Sorted() bool {
	return sort.SliceIsSorted(t.keyframes, func(i, j int) bool {
		return t.keyframes[i].Time < t.keyframes[j].Time
	})
}
