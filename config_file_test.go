package confdot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/parser"
)

const jsonFixture = `{
    "name": "app",
    "calendar": "gregorian",
    "db": {
        "user": "dbuser",
        "port": "5432"
    }
}`

func writeFixture(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nosuch.json")
	_, err := New(path)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("New(missing) = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "does not exist") || !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestNewWithContents(t *testing.T) {
	// the file need not exist until Save
	path := filepath.Join(t.TempDir(), "new.json")
	c, err := New(path, WithContents(`{"a": 1}`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("New wrote the file: %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Save did not create the file: %v", err)
	}
}

func TestNewWithParser(t *testing.T) {
	p, err := parser.New(format.YAMLFormat, []byte("a: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	// the path is not read when a parser is injected
	c, err := New(filepath.Join(t.TempDir(), "nosuch.yaml"), WithParser(p))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v, err := c.Get("a"); err != nil || v != int64(1) {
		t.Errorf("Get(a) = %v, %v", v, err)
	}
	if c.Format() != format.YAMLFormat {
		t.Errorf("Format() = %s", c.Format())
	}
}

func TestNewBadExtension(t *testing.T) {
	path := writeFixture(t, "conf.xml", "<a/>")
	if _, err := New(path); !errors.Is(err, ErrBadFormat) {
		t.Errorf("New(conf.xml) = %v, want ErrBadFormat", err)
	}
	// WithFormat overrides extension detection
	path = writeFixture(t, "conf.txt", `{"a": 1}`)
	c, err := New(path, WithFormat(format.JSONFormat))
	if err != nil {
		t.Fatalf("New with format override: %v", err)
	}
	if v, _ := c.Get("a"); v != int64(1) {
		t.Errorf("a = %v", v)
	}
}

func TestResolvePathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got, err := resolvePath("~/x/conf.json")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x", "conf.json") {
		t.Errorf("resolvePath(~/x/conf.json) = %q", got)
	}
	got, err = resolvePath("relative/conf.json")
	if err != nil {
		t.Fatal(err)
	}
	if got != "relative/conf.json" {
		t.Errorf("resolvePath left non-tilde paths alone? got %q", got)
	}
}

func TestGetWithDefault(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Get("absent", WithDefault("fallback"))
	if err != nil {
		t.Fatalf("Get(absent, default): %v", err)
	}
	if v != "fallback" {
		t.Errorf("default = %v", v)
	}
	// a path blocked by a scalar also falls back
	v, err = c.Get("calendar.missing", WithDefault(int64(7)))
	if err != nil {
		t.Fatalf("Get(calendar.missing, default): %v", err)
	}
	if v != int64(7) {
		t.Errorf("default through scalar = %v", v)
	}
	// present keys ignore the default
	v, err = c.Get("name", WithDefault("x"))
	if err != nil || v != "app" {
		t.Errorf("Get(name) = %v, %v", v, err)
	}
}

func TestGetErrorsWrapMissingKey(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"absent", "db.absent", "calendar.missing"} {
		if _, err := c.Get(key); !errors.Is(err, ErrMissingKey) {
			t.Errorf("Get(%q) = %v, want ErrMissingKey", key, err)
		}
	}
}

func TestSetSaveReload(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.HasUnsavedChanges() {
		t.Error("fresh file reports unsaved changes")
	}
	if err := c.Set("db.port", "9000"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !c.HasUnsavedChanges() {
		t.Error("Set did not mark the file dirty")
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if c.HasUnsavedChanges() {
		t.Error("Save left the file dirty")
	}
	reloaded, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := reloaded.Get("db.port"); v != "9000" {
		t.Errorf("db.port after reload = %v", v)
	}
}

func TestDeleteThenHas(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Has("db.user") {
		t.Fatal("db.user should exist")
	}
	if err := c.Delete("db.user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if c.Has("db.user") {
		t.Error("db.user survives delete")
	}
	if err := c.Delete("db.user"); !errors.Is(err, ErrMissingKey) {
		t.Errorf("second Delete = %v, want ErrMissingKey", err)
	}
}

func TestBackupRestore(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Backup(); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if c.BackupPath() != path+".orig" {
		t.Errorf("BackupPath() = %q", c.BackupPath())
	}
	if err := c.Set("name", "changed"); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}
	if err := c.RestoreOriginal(); err != nil {
		t.Fatalf("RestoreOriginal: %v", err)
	}
	if v, _ := c.Get("name"); v != "app" {
		t.Errorf("name after restore = %v", v)
	}
	if c.HasUnsavedChanges() {
		t.Error("restore left the file dirty")
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(jsonFixture, string(d)); diff != "" {
		t.Errorf("on-disk text after restore (-want +got):\n%s", diff)
	}
}

func TestRestoreWithoutBackup(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	err = c.RestoreOriginal()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("RestoreOriginal = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "does not exist") || !strings.Contains(err.Error(), c.BackupPath()) {
		t.Errorf("error %q does not name the backup", err)
	}
}

func TestINIEndToEnd(t *testing.T) {
	path := writeFixture(t, "settings.ini", `top = here

[server]
host = localhost
port = 8080

[calendar]
sunday_index = 0
`)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Format() != format.INIFormat {
		t.Fatalf("Format() = %s", c.Format())
	}
	if v, _ := c.Get("server.port", ParseTypes(true)); v != int64(8080) {
		t.Errorf("server.port = %v", v)
	}
	if v, _ := c.Get("calendar.sunday_index", ParseTypes(true)); v != int64(0) {
		t.Errorf("calendar.sunday_index coerced = %v (%T)", v, v)
	}
	if v, _ := c.Get("calendar.sunday_index"); v != "0" {
		t.Errorf("calendar.sunday_index raw = %v (%T)", v, v)
	}
	if err := c.Set("server.host", "0.0.0.0"); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}
	reloaded, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := reloaded.Get("server.host"); v != "0.0.0.0" {
		t.Errorf("server.host after reload = %v", v)
	}
	if v, _ := reloaded.Get("top"); v != "here" {
		t.Errorf("top after reload = %v", v)
	}
}

func TestDiff(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	d, err := c.Diff()
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if d != "" {
		t.Errorf("clean file diffs: %q", d)
	}
	if err := c.Set("name", "other"); err != nil {
		t.Fatal(err)
	}
	d, err = c.Diff()
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(d, "other") {
		t.Errorf("diff %q does not show the change", d)
	}
}

func TestQuery(t *testing.T) {
	path := writeFixture(t, "c.json", `{
    "calendar": {
        "sunday_index": 6
    },
    "threshold": 10
}`)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Query("calendar.sunday_index + 1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if v != int64(7) {
		t.Errorf("Query = %v (%T), want 7", v, v)
	}
	v, err = c.Query("threshold > 5")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if v != true {
		t.Errorf("Query = %v, want true", v)
	}
}

func TestMergePatch(t *testing.T) {
	path := writeFixture(t, "c.json", jsonFixture)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	patch := `{"db": {"port": "9000"}, "calendar": null, "added": true}`
	if err := c.MergePatch([]byte(patch)); err != nil {
		t.Fatalf("MergePatch: %v", err)
	}
	if v, _ := c.Get("db.port"); v != "9000" {
		t.Errorf("db.port = %v", v)
	}
	if v, _ := c.Get("db.user"); v != "dbuser" {
		t.Errorf("db.user = %v, want untouched", v)
	}
	if c.Has("calendar") {
		t.Error("null in the patch should remove calendar")
	}
	if v, _ := c.Get("added"); v != true {
		t.Errorf("added = %v", v)
	}
	if !c.HasUnsavedChanges() {
		t.Error("MergePatch did not mark the file dirty")
	}
}

func TestConvertTo(t *testing.T) {
	path := writeFixture(t, "c.json", `{
    "server": {
        "host": "localhost"
    }
}`)
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	text, err := c.ConvertTo(format.YAMLFormat)
	if err != nil {
		t.Fatalf("ConvertTo(yaml): %v", err)
	}
	want := "server:\n  host: localhost\n"
	if diff := cmp.Diff(want, text); diff != "" {
		t.Errorf("yaml conversion mismatch (-want +got):\n%s", diff)
	}
	// converting does not change the file's own format
	if c.Format() != format.JSONFormat {
		t.Errorf("Format() = %s after convert", c.Format())
	}
}
