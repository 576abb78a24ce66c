package keypath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		segs []string
	}{
		{in: "a", segs: []string{"a"}},
		{in: "a.b.c", segs: []string{"a", "b", "c"}},
		{in: `a\.b.c`, segs: []string{"a.b", "c"}},
		{in: `a\.b\.c`, segs: []string{"a.b.c"}},
		{in: `a\b`, segs: []string{`a\b`}},
		{in: `a\`, segs: []string{`a\`}},
		{in: "a..b", segs: []string{"a", "", "b"}},
		{in: "a.", segs: []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			segs, err := Split(tt.in)
			if err != nil {
				t.Fatalf("Split(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.segs, segs); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitEmpty(t *testing.T) {
	if _, err := Split(""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Split(\"\") = %v, want ErrEmptyKey", err)
	}
}

func TestIsDotted(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "a", want: false},
		{in: "a.b", want: true},
		{in: `a\.b`, want: false},
		{in: `a\.b.c`, want: true},
		{in: `a\`, want: false},
		{in: "", want: false},
	}
	for _, tt := range tests {
		if got := IsDotted(tt.in); got != tt.want {
			t.Errorf("IsDotted(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEscapeUnescape(t *testing.T) {
	for _, seg := range []string{"a", "a.b", "a.b.c", "", "no-dots"} {
		if got := Unescape(Escape(seg)); got != seg {
			t.Errorf("Unescape(Escape(%q)) = %q", seg, got)
		}
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	tests := [][]string{
		{"a"},
		{"a", "b", "c"},
		{"a.b", "c"},
		{"a.b.c"},
	}
	for _, segs := range tests {
		key := Join(segs)
		got, err := Split(key)
		if err != nil {
			t.Fatalf("Split(Join(%v)): %v", segs, err)
		}
		if diff := cmp.Diff(segs, got); diff != "" {
			t.Errorf("Split(Join(%v)) mismatch (-want +got):\n%s", segs, diff)
		}
	}
}
