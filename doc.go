// Package confdot reads, edits, and writes INI, JSON, YAML, and TOML
// config files through one dotted-key API.
//
// Keys address nested values with '.' separators ("a.b.c"); a literal
// dot in a key is escaped as "\.". Operations can also run in
// all-occurrences mode, matching every entry with a given name at any
// depth. Values read from text-only formats can be coerced to native
// types on the way out.
//
//	cfg, err := confdot.New("~/app/config.ini")
//	v, err := cfg.Get("calendar.sunday_index", confdot.ParseTypes(true))
//	err = cfg.Set("calendar.sunday_index", 1)
//	err = cfg.Save()
//
// A ConfigFile never writes to disk on its own: Set and Delete mutate
// the parsed tree in memory and Save persists it. Backup and
// RestoreOriginal snapshot and recover the on-disk file.
package confdot
