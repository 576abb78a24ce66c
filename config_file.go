package confdot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/confdot/confdot/debug"
	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/ir"
	"github.com/confdot/confdot/parser"
)

// ConfigFile gives dotted-key access to one config file on disk. It
// parses the file once at construction and works on the in-memory tree
// from then on; nothing is written back until Save.
type ConfigFile struct {
	path   string
	parser *parser.Parser
	dirty  bool
}

type fileOpts struct {
	contents *string
	parser   *parser.Parser
	format   *format.Format
}

type FileOption func(*fileOpts)

// WithContents supplies the initial file text, so the file itself need
// not exist yet; it is created by the first Save.
func WithContents(s string) FileOption {
	return func(o *fileOpts) { o.contents = &s }
}

// WithParser injects a ready adapter instead of selecting one by file
// extension and parsing the file's contents.
func WithParser(p *parser.Parser) FileOption {
	return func(o *fileOpts) { o.parser = p }
}

// WithFormat overrides extension-based format detection.
func WithFormat(f format.Format) FileOption {
	return func(o *fileOpts) { o.format = &f }
}

// New opens the config file at path. A leading "~" expands to the
// user's home directory. Without WithContents, a missing file is an
// error wrapping fs.ErrNotExist; malformed content fails here.
func New(path string, options ...FileOption) (*ConfigFile, error) {
	o := &fileOpts{}
	for _, f := range options {
		f(o)
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if debug.File() {
		debug.Logf("open %s\n", resolved)
	}
	if o.parser != nil {
		return &ConfigFile{path: resolved, parser: o.parser}, nil
	}
	var raw []byte
	if o.contents != nil {
		raw = []byte(*o.contents)
	} else {
		raw, err = os.ReadFile(resolved)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("the specified config file %s does not exist: %w", resolved, fs.ErrNotExist)
			}
			return nil, err
		}
	}
	var f format.Format
	if o.format != nil {
		f = *o.format
	} else {
		f, err = format.FromPath(resolved)
		if err != nil {
			return nil, err
		}
	}
	p, err := parser.New(f, raw)
	if err != nil {
		return nil, err
	}
	return &ConfigFile{path: resolved, parser: p}, nil
}

func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// Path returns the resolved file path.
func (c *ConfigFile) Path() string { return c.path }

// Format returns the file's format.
func (c *ConfigFile) Format() format.Format { return c.parser.Format() }

// HasUnsavedChanges reports whether the in-memory tree has been mutated
// since the last Save (or since construction).
func (c *ConfigFile) HasUnsavedChanges() bool { return c.dirty }

// Get retrieves a value by key. When WithDefault was given, any lookup
// failure returns the default instead; otherwise failures surface
// wrapping ErrMissingKey.
func (c *ConfigFile) Get(key string, options ...Option) (any, error) {
	o := collectOpts(options)
	res, err := c.parser.Get(key, o.parserOpts...)
	if err != nil {
		if o.hasDefault {
			return o.def, nil
		}
		if errors.Is(err, ir.ErrMissingKey) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ir.ErrMissingKey, err)
	}
	return res, nil
}

// Set assigns value at key in the in-memory tree.
func (c *ConfigFile) Set(key string, value any, options ...Option) error {
	o := collectOpts(options)
	if err := c.parser.Set(key, value, o.parserOpts...); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// Delete removes the entry at key from the in-memory tree.
func (c *ConfigFile) Delete(key string, options ...Option) error {
	o := collectOpts(options)
	if err := c.parser.Delete(key, o.parserOpts...); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// Has reports whether key is present.
func (c *ConfigFile) Has(key string) bool {
	return c.parser.Has(key)
}

// Stringify serializes the in-memory tree without touching disk.
func (c *ConfigFile) Stringify() (string, error) {
	return c.parser.Stringify()
}

// Save writes the serialized tree to the config path.
func (c *ConfigFile) Save() error {
	text, err := c.parser.Stringify()
	if err != nil {
		return err
	}
	if debug.File() {
		debug.Logf("save %s\n", c.path)
	}
	if err := os.WriteFile(c.path, []byte(text), 0644); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// BackupPath returns where Backup snapshots the file.
func (c *ConfigFile) BackupPath() string { return c.path + ".orig" }

// Backup copies the on-disk file to BackupPath.
func (c *ConfigFile) Backup() error {
	d, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("the specified config file %s does not exist: %w", c.path, fs.ErrNotExist)
		}
		return err
	}
	if debug.File() {
		debug.Logf("backup %s -> %s\n", c.path, c.BackupPath())
	}
	return os.WriteFile(c.BackupPath(), d, 0644)
}

// RestoreOriginal copies the backup over the config file and reparses
// it, discarding any unsaved changes.
func (c *ConfigFile) RestoreOriginal() error {
	d, err := os.ReadFile(c.BackupPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("the specified config file backup %s does not exist: %w", c.BackupPath(), fs.ErrNotExist)
		}
		return err
	}
	if err := os.WriteFile(c.path, d, 0644); err != nil {
		return err
	}
	if err := c.parser.Reparse(d); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
