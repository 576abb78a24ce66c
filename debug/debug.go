package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lookup bool
	Patch  bool
	File   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lookup = boolEnv("CONFDOT_DEBUG_LOOKUP")
	d.Patch = boolEnv("CONFDOT_DEBUG_PATCH")
	d.File = boolEnv("CONFDOT_DEBUG_FILE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lookup() bool {
	return d.Lookup
}
func Patch() bool {
	return d.Patch
}
func File() bool {
	return d.File
}
