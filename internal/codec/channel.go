package codec

import (
	"fmt"
	"sort"

	"github.com/papapumpkin/prefab/internal/prefab"
)

// valueCodec describes how one channel's value type maps onto the
// keyframe's x (and optionally y) wire fields. The same shape applies
// to the random value in rx/ry.
type valueCodec[V prefab.Value] struct {
	hasY   bool
	encode func(V) (x, y scalar)
	decode func(x, y scalar) (V, error)
}

var vec2Codec = valueCodec[prefab.Vec2]{
	hasY: true,
	encode: func(v prefab.Vec2) (scalar, scalar) {
		return formatFloat(v.X), formatFloat(v.Y)
	},
	decode: func(x, y scalar) (prefab.Vec2, error) {
		fx, err := parseFloat(x)
		if err != nil {
			return prefab.Vec2{}, err
		}
		fy, err := parseFloat(y)
		if err != nil {
			return prefab.Vec2{}, err
		}
		return prefab.Vec2{X: fx, Y: fy}, nil
	},
}

var angleCodec = valueCodec[float32]{
	encode: func(v float32) (scalar, scalar) { return formatFloat(v), "" },
	decode: func(x, _ scalar) (float32, error) { return parseFloat(x) },
}

var colorCodec = valueCodec[int32]{
	encode: func(v int32) (scalar, scalar) { return formatInt(v), "" },
	decode: func(x, _ scalar) (int32, error) { return parseInt(x) },
}

// sortByTime stably orders keyframes by time.
func sortByTime[V prefab.Value](kfs []prefab.Keyframe[V]) {
	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time })
}

func encodeChannel[V prefab.Value](channel string, kfs []prefab.Keyframe[V], vc valueCodec[V]) ([]wireKeyframe, error) {
	out := make([]wireKeyframe, 0, len(kfs))
	for i, kf := range kfs {
		if !kf.Easing.Valid() {
			return nil, fmt.Errorf("events.%s[%d].ct: %w: %d", channel, i, prefab.ErrUnknownEasing, int(kf.Easing))
		}
		x, y := vc.encode(kf.Value)
		w := wireKeyframe{T: formatFloat(kf.Time), X: x, CT: kf.Easing.String()}
		if vc.hasY {
			w.Y = ptr(y)
		}
		if r := kf.Random; r != nil && r.Mode != prefab.RandomNone {
			rx, ry := vc.encode(r.Value)
			w.R = ptr(formatInt(r.Mode))
			w.RX = ptr(rx)
			if vc.hasY {
				w.RY = ptr(ry)
			}
			w.RZ = ptr(formatFloat(r.Interval))
		}
		out = append(out, w)
	}
	return out, nil
}

func decodeChannel[V prefab.Value](channel string, wkfs []wireKeyframe, vc valueCodec[V]) ([]prefab.Keyframe[V], error) {
	out := make([]prefab.Keyframe[V], 0, len(wkfs))
	for i, w := range wkfs {
		field := fmt.Sprintf("events.%s[%d]", channel, i)
		fail := func(sub string, err error) error {
			return &DecodeError{Field: field + "." + sub, Err: err}
		}

		var kf prefab.Keyframe[V]
		var err error
		if kf.Time, err = parseFloat(w.T); err != nil {
			return nil, fail("t", err)
		}
		if kf.Value, err = vc.decode(w.X, deref(w.Y)); err != nil {
			return nil, fail("x", err)
		}
		if w.CT != "" {
			if kf.Easing, err = prefab.ParseEasing(w.CT); err != nil {
				return nil, fail("ct", err)
			}
		}

		if w.R != nil {
			mode, err := parseInt(*w.R)
			if err != nil {
				return nil, fail("r", err)
			}
			if m := prefab.RandomMode(mode); m != prefab.RandomNone {
				if !m.Valid() {
					return nil, fail("r", fmt.Errorf("%w: random mode %d", prefab.ErrInvalidEnum, mode))
				}
				r := &prefab.Random[V]{Mode: m}
				if r.Value, err = vc.decode(deref(w.RX), deref(w.RY)); err != nil {
					return nil, fail("rx", err)
				}
				if r.Interval, err = parseFloat(deref(w.RZ)); err != nil {
					return nil, fail("rz", err)
				}
				kf.Random = r
			}
		}
		out = append(out, kf)
	}
	return out, nil
}

func deref(s *scalar) scalar {
	if s == nil {
		return ""
	}
	return *s
}
