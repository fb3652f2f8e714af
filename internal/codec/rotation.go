package codec

import "github.com/papapumpkin/prefab/internal/prefab"

// RotationMode selects how rotation keyframes are written to the wire.
type RotationMode int

const (
	// RotationVerbatim writes each keyframe's absolute angle unchanged.
	RotationVerbatim RotationMode = iota
	// RotationCumulative writes each angle minus the sum of all earlier
	// absolute angles, so a player that accumulates the stored values
	// reproduces the absolute angles.
	RotationCumulative
)

// EncodeRotation converts absolute angles to their wire form under
// mode. Random values are shifted by the same running sum as the
// keyframe they belong to. kfs is not modified.
func EncodeRotation(kfs []prefab.Keyframe[float32], mode RotationMode) []prefab.Keyframe[float32] {
	out := copyRotation(kfs)
	if mode != RotationCumulative {
		return out
	}
	var sum float32
	for i := range out {
		abs := out[i].Value
		out[i].Value = abs - sum
		if out[i].Random != nil {
			out[i].Random.Value -= sum
		}
		sum += abs
	}
	return out
}

// DecodeRotation is the inverse of EncodeRotation.
func DecodeRotation(kfs []prefab.Keyframe[float32], mode RotationMode) []prefab.Keyframe[float32] {
	out := copyRotation(kfs)
	if mode != RotationCumulative {
		return out
	}
	var sum float32
	for i := range out {
		abs := out[i].Value + sum
		out[i].Value = abs
		if out[i].Random != nil {
			out[i].Random.Value += sum
		}
		sum += abs
	}
	return out
}

func copyRotation(kfs []prefab.Keyframe[float32]) []prefab.Keyframe[float32] {
	out := make([]prefab.Keyframe[float32], len(kfs))
	copy(out, kfs)
	for i := range out {
		if r := out[i].Random; r != nil {
			rc := *r
			out[i].Random = &rc
		}
	}
	return out
}
