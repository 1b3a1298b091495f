// Package schema is the registry of recognized Engine Library schema
// versions. For each version it knows how to create the two stores'
// tables and indexes from scratch (it inserts no rows; the storage
// package seeds the Information rows), and how to validate that
// an existing pair of stores matches the reference definition exactly,
// column by column and index by index.
package schema

import "github.com/xsco/libengineprime/semver"

// Column describes one column of a table, at the level of detail
// PRAGMA table_info reports it.
type Column struct {
	Name     string
	Type     string // declared SQL type, e.g. "INTEGER", "TEXT", "REAL", "NUMERIC", "BLOB"
	NotNull  bool
	Default  string // literal SQL default expression, "" if none
	PKRank   int    // 1-based rank within the table's primary key, 0 if not part of it
}

// Index describes one index, at the level of detail PRAGMA index_list
// and PRAGMA index_info report it.
type Index struct {
	Name    string
	Unique  bool
	Origin  string // "c" (CREATE INDEX), "u" (UNIQUE constraint) or "pk" (primary key)
	Partial bool
	Columns []string // in rank order
}

// Table describes one table.
type Table struct {
	Name    string
	Columns []Column
	Indexes []Index
}

// Descriptor is the full schema — music store and performance store —
// for one recognized version.
type Descriptor struct {
	Version     semver.Version
	MusicTables Tables
	PerfTables  Tables
}

// Tables is a named table list, so it can carry a lookup method.
type Tables []Table

// Find looks up a table by name.
func (t Tables) Find(name string) (Table, bool) {
	for _, tbl := range t {
		if tbl.Name == name {
			return tbl, true
		}
	}
	return Table{}, false
} // func (t Tables) Find(name string) (Table, bool)
