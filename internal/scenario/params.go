package scenario

import (
	"fmt"
	"strconv"
)

// Params are the flags of a single step, as decoded from YAML.
type Params map[string]interface{}

func (p Params) String(key, defaultVal string) string {
	if v, ok := p[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML may decode names like 1 or true as numbers or bools
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// Float returns the numeric value of key. ok is false when the key is absent.
func (p Params) Float(key string) (v float32, ok bool, err error) {
	raw, present := p[key]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch n := raw.(type) {
	case int:
		return float32(n), true, nil
	case int64:
		return float32(n), true, nil
	case float64:
		return float32(n), true, nil
	case string:
		f, err := strconv.ParseFloat(n, 32)
		if err != nil {
			return 0, true, fmt.Errorf("%s: %w", key, err)
		}
		return float32(f), true, nil
	default:
		return 0, true, fmt.Errorf("%s: expected a number, got %T", key, raw)
	}
}

func (p Params) Bool(key string, defaultVal bool) bool {
	if v, ok := p[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
