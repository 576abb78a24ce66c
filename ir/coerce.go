package ir

import (
	"strconv"
	"strings"
)

// Coerce infers a native value from the text form of a scalar: booleans
// (case-insensitive true/false), integers, floats, then comma-separated
// lists of recursively coerced elements. Anything else comes back as the
// input string, so Coerce never fails.
func Coerce(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		res := make([]any, len(parts))
		for i, part := range parts {
			res[i] = Coerce(strings.TrimSpace(part))
		}
		return res
	}
	return raw
}

// Retype re-infers a string node's type in place through the Coerce
// ladder: the node becomes a bool, number, or array node when its text
// reads as one, and stays a string otherwise. Non-string nodes are left
// alone.
func (y *Node) Retype() {
	if y.Type != StringType {
		return
	}
	switch v := Coerce(y.String).(type) {
	case bool:
		y.Type = BoolType
		y.Bool = v
		y.String = ""
	case int64:
		y.Type = NumberType
		y.Int64 = &v
		y.String = ""
	case float64:
		y.Type = NumberType
		y.Float64 = &v
		y.String = ""
	case []any:
		arr, err := FromAny(v)
		if err != nil {
			return
		}
		y.Type = ArrayType
		y.String = ""
		y.Values = arr.Values
		for i, elt := range y.Values {
			elt.Parent = y
			elt.ParentIndex = i
		}
	}
}
