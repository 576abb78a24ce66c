// Package keypath splits and joins dotted config keys. The separator is
// '.', and a literal dot inside a segment is written "\.".
package keypath

import (
	"errors"
	"strings"
)

var ErrEmptyKey = errors.New("empty key")

// Split splits key on every unescaped dot.
//
// Examples:
//   - Split("a.b.c") → ["a", "b", "c"]
//   - Split(`a\.b.c`) → ["a.b", "c"]
//   - Split("a") → ["a"]
//   - Split("") → ErrEmptyKey
func Split(key string) ([]string, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	var (
		segs    []string
		buf     strings.Builder
		escaped bool
	)
	for _, r := range key {
		switch {
		case escaped:
			if r != '.' {
				buf.WriteByte('\\')
			}
			buf.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			segs = append(segs, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	if escaped {
		// trailing lone backslash is literal
		buf.WriteByte('\\')
	}
	return append(segs, buf.String()), nil
}

// IsDotted reports whether key contains an unescaped dot, i.e. whether
// Split would produce more than one segment.
func IsDotted(key string) bool {
	escaped := false
	for _, r := range key {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '.':
			return true
		}
	}
	return false
}

// Escape renders a single segment so that Split treats its dots as
// literal.
func Escape(seg string) string {
	return strings.ReplaceAll(seg, ".", `\.`)
}

// Unescape turns an escaped single segment back into its literal form.
func Unescape(seg string) string {
	return strings.ReplaceAll(seg, `\.`, ".")
}

// Join is the inverse of Split.
func Join(segs []string) string {
	escaped := make([]string, len(segs))
	for i, seg := range segs {
		escaped[i] = Escape(seg)
	}
	return strings.Join(escaped, ".")
}
