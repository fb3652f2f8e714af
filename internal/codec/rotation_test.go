package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/papapumpkin/prefab/internal/prefab"
)

func rotationKeys(times, angles []float32) []prefab.Keyframe[float32] {
	kfs := make([]prefab.Keyframe[float32], len(times))
	for i := range times {
		kfs[i] = prefab.Keyframe[float32]{Time: times[i], Value: angles[i]}
	}
	return kfs
}

func values(kfs []prefab.Keyframe[float32]) []float32 {
	out := make([]float32, len(kfs))
	for i, kf := range kfs {
		out[i] = kf.Value
	}
	return out
}

func TestEncodeRotation(t *testing.T) {
	t.Parallel()

	times := []float32{0, 2.5, 4}
	tests := []struct {
		name   string
		mode   RotationMode
		angles []float32
		want   []float32
	}{
		{"verbatim", RotationVerbatim, []float32{0, 90, 10}, []float32{0, 90, 10}},
		{"cumulative", RotationCumulative, []float32{0, 90, 10}, []float32{0, 90, -80}},
		{"cumulative nonzero rest", RotationCumulative, []float32{30, 90, 10}, []float32{30, 60, -110}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := rotationKeys(times, tt.angles)
			got := values(EncodeRotation(in, tt.mode))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EncodeRotation mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.angles, values(in)); diff != "" {
				t.Errorf("input modified (-want +got):\n%s", diff)
			}

			back := values(DecodeRotation(EncodeRotation(in, tt.mode), tt.mode))
			if diff := cmp.Diff(tt.angles, back, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRotationCumulative(t *testing.T) {
	t.Parallel()

	got := values(DecodeRotation(rotationKeys([]float32{0, 2.5, 4}, []float32{0, 90, -80}), RotationCumulative))
	if diff := cmp.Diff([]float32{0, 90, 10}, got); diff != "" {
		t.Errorf("DecodeRotation mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRotationShiftsRandomValue(t *testing.T) {
	t.Parallel()

	in := rotationKeys([]float32{0, 1}, []float32{90, 120})
	in[1].Random = &prefab.Random[float32]{Mode: prefab.RandomRange, Value: 180, Interval: 5}

	out := EncodeRotation(in, RotationCumulative)
	if out[1].Random.Value != 90 {
		t.Errorf("random value = %v, want 90", out[1].Random.Value)
	}
	if out[1].Random.Interval != 5 {
		t.Errorf("interval = %v, want 5", out[1].Random.Interval)
	}
	if in[1].Random.Value != 180 {
		t.Errorf("input random value changed to %v", in[1].Random.Value)
	}

	back := DecodeRotation(out, RotationCumulative)
	if back[1].Random.Value != 180 {
		t.Errorf("decoded random value = %v, want 180", back[1].Random.Value)
	}
}
