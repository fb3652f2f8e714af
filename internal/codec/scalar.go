package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/papapumpkin/prefab/internal/prefab"
)

// scalar is a leaf value on the wire. It always encodes as a JSON
// string, which is what the game's parser expects for numbers. On
// decode it also accepts bare numbers and booleans.
type scalar string

func (s scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = scalar(str)
	case string(b) == "null":
		*s = ""
	default:
		*s = scalar(b)
	}
	return nil
}

func ptr(s scalar) *scalar { return &s }

// formatFloat writes the shortest decimal that reads back as the same
// float32. Magnitudes outside [1e-4, 1e15) use exponent form.
func formatFloat(f float32) scalar {
	if f == 0 {
		return "0" // also folds -0
	}
	abs := math.Abs(float64(f))
	if abs >= 1e-4 && abs < 1e15 {
		return scalar(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	return scalar(strconv.FormatFloat(float64(f), 'G', -1, 32))
}

func formatInt[I ~int | ~int32](n I) scalar {
	return scalar(strconv.FormatInt(int64(n), 10))
}

func formatBool(b bool) scalar {
	if b {
		return "True"
	}
	return "False"
}

// parseFloat reads a float literal. An empty literal is zero.
func parseFloat(s scalar) (float32, error) {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(str, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", prefab.ErrMalformedNumber, str)
	}
	return float32(f), nil
}

// parseInt reads an integer literal, accepting integral floats such
// as "3.0". An empty literal is zero.
func parseInt(s scalar) (int32, error) {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(str, 10, 32); err == nil {
		return int32(n), nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q is not an int32", prefab.ErrMalformedNumber, str)
	}
	return int32(f), nil
}

// parseBool reads "True"/"False" in any case, 1/0 and t/f. An empty
// literal is false.
func parseBool(s scalar) (bool, error) {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		if strings.EqualFold(str, "true") {
			return true, nil
		}
		if strings.EqualFold(str, "false") {
			return false, nil
		}
		return false, fmt.Errorf("%w: %q is not a boolean", prefab.ErrMalformedNumber, str)
	}
	return b, nil
}
