package confdot

import (
	"errors"
	"io/fs"
	"os"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the difference between the file's current on-disk text
// and the in-memory tree's serialized form. An empty result means there
// are no unsaved changes; a file missing from disk diffs against empty.
func (c *ConfigFile) Diff() (string, error) {
	cur, err := c.Stringify()
	if err != nil {
		return "", err
	}
	disk, err := os.ReadFile(c.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if string(disk) == cur {
		return "", nil
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(disk), cur, false)
	return dmp.DiffPrettyText(diffs), nil
}
