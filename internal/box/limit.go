// Package box implements draggable/resizable boxes.
package box

import (
	"encoding/json"
	"fmt"
	"math"
)

// Limit is a size or gap bound that may be infinite. It encodes infinities as
// the JSON strings "inf" and "-inf"; YAML uses the native .inf / -.inf.
type Limit float64

// Inf returns positive infinity as a Limit.
func Inf() Limit { return Limit(math.Inf(1)) }

// NegInf returns negative infinity as a Limit.
func NegInf() Limit { return Limit(math.Inf(-1)) }

// MarshalJSON implements json.Marshaler.
func (l Limit) MarshalJSON() ([]byte, error) {
	v := float64(l)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-inf"`), nil
	case math.IsNaN(v):
		return nil, fmt.Errorf("box: NaN limit")
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler. null leaves the value untouched.
func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "inf", "+inf", "Infinity":
			*l = Inf()
		case "-inf", "-Infinity":
			*l = NegInf()
		default:
			return fmt.Errorf("box: invalid limit %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("box: invalid limit: %w", err)
	}
	*l = Limit(v)
	return nil
}
