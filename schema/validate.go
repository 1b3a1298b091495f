package schema

import (
	"database/sql"
	"fmt"
	"sort"
)

// DatabaseInconsistency is returned by Validate, naming the first
// catalog object found not to match the reference definition exactly.
type DatabaseInconsistency struct {
	Detail string
}

func (e *DatabaseInconsistency) Error() string {
	return "database inconsistency: " + e.Detail
} // func (e *DatabaseInconsistency) Error() string

func inconsistent(format string, args ...interface{}) error {
	detail := fmt.Sprintf(format, args...)
	logger.Printf("[ERROR] Database inconsistency: %s\n", detail)
	return &DatabaseInconsistency{Detail: detail}
} // func inconsistent(format string, args ...interface{}) error

// Validate confirms that every table tables names exists within
// schemaName and matches the reference definition exactly, column by
// column and index by index, in the canonical name-ordering the
// on-disk catalog is compared in. Tables present in schemaName but not
// named in tables (e.g. crate/playlist tables, outside this package's
// scope) are ignored. The first mismatch is returned, naming the
// diverging object.
func Validate(db *sql.DB, schemaName string, tables Tables) error {
	logger.Printf("[DEBUG] Validate %d tables against schema %s\n", len(tables), schemaName)

	observed, err := observedTables(db, schemaName)
	if err != nil {
		return err
	}

	present := make(map[string]bool, len(observed))
	for _, name := range observed {
		present[name] = true
	}

	var expected = append(Tables{}, tables...)
	sort.Slice(expected, func(i, j int) bool { return expected[i].Name < expected[j].Name })

	for _, want := range expected {
		if !present[want.Name] {
			return inconsistent("table %s missing from %s", want.Name, schemaName)
		}

		if err = validateColumns(db, schemaName, want); err != nil {
			return err
		}
		if err = validateIndexes(db, schemaName, want); err != nil {
			return err
		}
	}

	return nil
} // func Validate(db *sql.DB, schemaName string, tables Tables) error

func observedTables(db *sql.DB, schemaName string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf(
		"SELECT name FROM %s.sqlite_master WHERE type = 'table' ORDER BY name", schemaName))
	if err != nil {
		return nil, fmt.Errorf("schema: list tables in %s: %w", schemaName, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("schema: scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
} // func observedTables(db *sql.DB, schemaName string) ([]string, error)

type observedColumn struct {
	name       string
	colType    string
	notNull    bool
	defaultVal string
	pkRank     int
}

func validateColumns(db *sql.DB, schemaName string, want Table) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA %s.table_info(%s)", schemaName, want.Name))
	if err != nil {
		return fmt.Errorf("schema: table_info(%s.%s): %w", schemaName, want.Name, err)
	}
	defer rows.Close()

	var observed []observedColumn
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err = rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("schema: scan table_info row: %w", err)
		}
		observed = append(observed, observedColumn{
			name:       name,
			colType:    colType,
			notNull:    notNull != 0,
			defaultVal: dflt.String,
			pkRank:     pk,
		})
	}
	if err = rows.Err(); err != nil {
		return err
	}

	sort.Slice(observed, func(i, j int) bool { return observed[i].name < observed[j].name })

	var expected = append([]Column{}, want.Columns...)
	sort.Slice(expected, func(i, j int) bool { return expected[i].Name < expected[j].Name })

	tableName := want.Name
	oi := 0
	for _, want := range expected {
		if oi >= len(observed) {
			return inconsistent("column %s missing from table %s", want.Name, tableName)
		}
		o := observed[oi]
		if o.name != want.Name {
			return inconsistent("column %s on table %s in wrong order, found %s instead",
				want.Name, tableName, o.name)
		}
		oi++

		if o.colType != want.Type {
			return inconsistent("column %s on table %s has wrong type: %s, expected %s",
				want.Name, tableName, o.colType, want.Type)
		}
		if o.notNull != want.NotNull {
			return inconsistent("column %s on table %s has wrong nullability", want.Name, tableName)
		}
		if o.defaultVal != want.Default {
			return inconsistent("column %s on table %s has wrong default value: %q, expected %q",
				want.Name, tableName, o.defaultVal, want.Default)
		}
		if o.pkRank != want.PKRank {
			return inconsistent("column %s on table %s has wrong PK membership", want.Name, tableName)
		}
	}

	if oi != len(observed) {
		return inconsistent("table %s has more columns than expected", want.Name)
	}

	return nil
} // func validateColumns(db *sql.DB, schemaName string, want Table) error

type observedIndex struct {
	name    string
	unique  bool
	origin  string
	partial bool
}

func validateIndexes(db *sql.DB, schemaName string, want Table) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA %s.index_list(%s)", schemaName, want.Name))
	if err != nil {
		return fmt.Errorf("schema: index_list(%s.%s): %w", schemaName, want.Name, err)
	}
	defer rows.Close()

	var observed []observedIndex
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err = rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return fmt.Errorf("schema: scan index_list row: %w", err)
		}
		observed = append(observed, observedIndex{
			name:    name,
			unique:  unique != 0,
			origin:  origin,
			partial: partial != 0,
		})
	}
	if err = rows.Err(); err != nil {
		return err
	}

	sort.Slice(observed, func(i, j int) bool { return observed[i].name < observed[j].name })

	var expected = expectedIndexes(want)
	sort.Slice(expected, func(i, j int) bool { return expected[i].Name < expected[j].Name })

	oi := 0
	for _, want := range expected {
		if oi >= len(observed) {
			return inconsistent("index %s missing", want.Name)
		}
		o := observed[oi]
		if o.name != want.Name {
			return inconsistent("index %s in wrong order, found %s instead", want.Name, o.name)
		}
		oi++

		if o.unique != want.Unique {
			return inconsistent("index %s has wrong uniqueness", want.Name)
		}
		if o.origin != want.Origin {
			return inconsistent("index %s has wrong creation method: %q, expected %q",
				want.Name, o.origin, want.Origin)
		}
		if o.partial != want.Partial {
			return inconsistent("index %s has wrong partiality", want.Name)
		}

		if err = validateIndexColumns(db, schemaName, want); err != nil {
			return err
		}
	}

	if oi != len(observed) {
		return inconsistent("table %s has more indexes than expected", want.Name)
	}

	return nil
} // func validateIndexes(db *sql.DB, schemaName string, want Table) error

// expectedIndexes derives the full set of indexes a table's
// definition implies, including the automatic index SQLite creates
// behind a composite PRIMARY KEY.
func expectedIndexes(t Table) []Index {
	var idxs = append([]Index{}, t.Indexes...)

	var pkCols []string
	for _, c := range t.Columns {
		if c.PKRank > 0 {
			for len(pkCols) < c.PKRank {
				pkCols = append(pkCols, "")
			}
			pkCols[c.PKRank-1] = c.Name
		}
	}

	singleIntegerPK := len(pkCols) == 1
	if singleIntegerPK {
		for _, c := range t.Columns {
			if c.PKRank == 1 && c.Type != "INTEGER" {
				singleIntegerPK = false
			}
		}
	}

	if len(pkCols) > 1 {
		idxs = append(idxs, Index{
			Name:    fmt.Sprintf("sqlite_autoindex_%s_1", t.Name),
			Unique:  true,
			Origin:  "pk",
			Columns: pkCols,
		})
	}

	return idxs
} // func expectedIndexes(t Table) []Index

func validateIndexColumns(db *sql.DB, schemaName string, want Index) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA %s.index_info(%s)", schemaName, want.Name))
	if err != nil {
		return fmt.Errorf("schema: index_info(%s.%s): %w", schemaName, want.Name, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var (
			seqno int
			cid   int
			name  string
		)
		if err = rows.Scan(&seqno, &cid, &name); err != nil {
			return fmt.Errorf("schema: scan index_info row: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	if len(names) != len(want.Columns) {
		return inconsistent("index %s has %d columns, expected %d", want.Name, len(names), len(want.Columns))
	}
	for i, n := range names {
		if n != want.Columns[i] {
			return inconsistent("column %s in index %s in wrong position (rank %d), expected %s",
				n, want.Name, i, want.Columns[i])
		}
	}

	return nil
} // func validateIndexColumns(db *sql.DB, schemaName string, want Index) error
