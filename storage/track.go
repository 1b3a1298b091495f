package storage

import (
	"database/sql"
	"fmt"

	"github.com/xsco/libengineprime/storage/query"
)

// trackColumnValue returns the value t holds for column name, boxed in
// the database/sql Null* wrapper appropriate to that column's type, so
// that a nil pointer field becomes a SQL NULL.
func trackColumnValue(t *Track, name string) interface{} {
	switch name {
	case "playOrder":
		return nullInt64(t.PlayOrder)
	case "length":
		return nullInt64(t.Length)
	case "lengthCalculated":
		return nullInt64(t.LengthCalculated)
	case "bpm":
		return nullInt64(t.Bpm)
	case "year":
		return nullInt64(t.Year)
	case "path":
		return nullString(t.Path)
	case "filename":
		return nullString(t.Filename)
	case "bitrate":
		return nullInt64(t.Bitrate)
	case "bpmAnalyzed":
		return nullFloat64(t.BpmAnalyzed)
	case "trackType":
		return nullInt64(t.TrackType)
	case "isExternalTrack":
		return nullBool(t.IsExternalTrack)
	case "uidOfExternalDatabase":
		return nullString(t.UUIDOfExternalDatabase)
	case "idTrackInExternalDatabase":
		return nullInt64(t.IDTrackInExternalDatabase)
	case "idAlbumArt":
		return nullInt64(t.IDAlbumArt)
	case "fileBytes":
		return nullInt64(t.FileBytes)
	case "pdbImportKey":
		return nullInt64(t.PdbImportKey)
	case "uri":
		return nullString(t.URI)
	case "isBeatGridLocked":
		return nullBool(t.IsBeatGridLocked)
	default:
		panic(fmt.Sprintf("storage: unknown Track column %q", name))
	}
} // func trackColumnValue(t *Track, name string) interface{}

// trackColumnScanTarget returns a pointer suitable for Scan to read
// column name into, and a closure that copies the scanned value back
// onto t once Scan has run.
func trackColumnScanTarget(t *Track, name string) (interface{}, func()) {
	switch name {
	case "playOrder":
		var v sql.NullInt64
		return &v, func() { t.PlayOrder = int64PtrFromNull(v) }
	case "length":
		var v sql.NullInt64
		return &v, func() { t.Length = int64PtrFromNull(v) }
	case "lengthCalculated":
		var v sql.NullInt64
		return &v, func() { t.LengthCalculated = int64PtrFromNull(v) }
	case "bpm":
		var v sql.NullInt64
		return &v, func() { t.Bpm = int64PtrFromNull(v) }
	case "year":
		var v sql.NullInt64
		return &v, func() { t.Year = int64PtrFromNull(v) }
	case "path":
		var v sql.NullString
		return &v, func() { t.Path = stringPtrFromNull(v) }
	case "filename":
		var v sql.NullString
		return &v, func() { t.Filename = stringPtrFromNull(v) }
	case "bitrate":
		var v sql.NullInt64
		return &v, func() { t.Bitrate = int64PtrFromNull(v) }
	case "bpmAnalyzed":
		var v sql.NullFloat64
		return &v, func() { t.BpmAnalyzed = float64PtrFromNull(v) }
	case "trackType":
		var v sql.NullInt64
		return &v, func() { t.TrackType = int64PtrFromNull(v) }
	case "isExternalTrack":
		var v sql.NullBool
		return &v, func() { t.IsExternalTrack = boolPtrFromNull(v) }
	case "uidOfExternalDatabase":
		var v sql.NullString
		return &v, func() { t.UUIDOfExternalDatabase = stringPtrFromNull(v) }
	case "idTrackInExternalDatabase":
		var v sql.NullInt64
		return &v, func() { t.IDTrackInExternalDatabase = int64PtrFromNull(v) }
	case "idAlbumArt":
		var v sql.NullInt64
		return &v, func() { t.IDAlbumArt = int64PtrFromNull(v) }
	case "fileBytes":
		var v sql.NullInt64
		return &v, func() { t.FileBytes = int64PtrFromNull(v) }
	case "pdbImportKey":
		var v sql.NullInt64
		return &v, func() { t.PdbImportKey = int64PtrFromNull(v) }
	case "uri":
		var v sql.NullString
		return &v, func() { t.URI = stringPtrFromNull(v) }
	case "isBeatGridLocked":
		var v sql.NullBool
		return &v, func() { t.IsBeatGridLocked = boolPtrFromNull(v) }
	default:
		panic(fmt.Sprintf("storage: unknown Track column %q", name))
	}
} // func trackColumnScanTarget(t *Track, name string) (interface{}, func())

// CreateTrack inserts t and assigns the id SQLite generated back onto
// it.
func (lib *Library) CreateTrack(t *Track) error {
	cols := lib.trackColumns()

	return lib.withTx(func(tx *sql.Tx) error {
		stmt, err := lib.getQuery(query.TrackInsert)
		if err != nil {
			return err
		}

		args := make([]interface{}, len(cols))
		for i, c := range cols {
			args[i] = trackColumnValue(t, c)
		}

		res, err := tx.Stmt(stmt).Exec(args...)
		if err != nil {
			return fmt.Errorf("storage: insert track: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("storage: read id of new track: %w", err)
		}

		t.ID = id
		return nil
	})
} // func (lib *Library) CreateTrack(t *Track) error

// UpdateTrack overwrites every column of the row matching t.ID with
// t's current field values.
func (lib *Library) UpdateTrack(t *Track) error {
	cols := lib.trackColumns()

	return lib.withTx(func(tx *sql.Tx) error {
		stmt, err := lib.getQuery(query.TrackUpdate)
		if err != nil {
			return err
		}

		args := make([]interface{}, len(cols)+1)
		for i, c := range cols {
			args[i] = trackColumnValue(t, c)
		}
		args[len(cols)] = t.ID

		res, err := tx.Stmt(stmt).Exec(args...)
		if err != nil {
			return fmt.Errorf("storage: update track %d: %w", t.ID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("storage: rows affected updating track %d: %w", t.ID, err)
		}
		if n == 0 {
			return ErrTrackDeleted
		}

		return nil
	})
} // func (lib *Library) UpdateTrack(t *Track) error

// GetTrack returns the Track with the given id. Since id is meant to
// be the table's primary key, a second matching row means the store
// itself is corrupt; GetTrack checks for that explicitly rather than
// relying on QueryRow's silent first-row semantics.
func (lib *Library) GetTrack(id int64) (*Track, error) {
	cols := lib.trackColumns()

	stmt, err := lib.getQuery(query.TrackGetByID)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(id)
	if err != nil {
		return nil, fmt.Errorf("storage: read track %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: read track %d: %w", id, err)
		}
		return nil, ErrTrackDeleted
	}

	t := &Track{ID: id}
	targets := make([]interface{}, len(cols))
	copyBack := make([]func(), len(cols))
	for i, c := range cols {
		targets[i], copyBack[i] = trackColumnScanTarget(t, c)
	}

	if err = rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("storage: read track %d: %w", id, err)
	}

	if rows.Next() {
		return nil, fmt.Errorf("%w: track %d", ErrTrackDatabaseInconsistency, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read track %d: %w", id, err)
	}

	for _, f := range copyBack {
		f()
	}

	return t, nil
} // func (lib *Library) GetTrack(id int64) (*Track, error)

// DeleteTrack removes the Track with the given id, cascading to its
// MetaData, MetaDataInteger and PerformanceData rows.
func (lib *Library) DeleteTrack(id int64) error {
	return lib.withTx(func(tx *sql.Tx) error {
		for _, qid := range []query.ID{
			query.MetaDataDeleteForTrack,
			query.MetaDataIntDeleteForTrack,
			query.PerformanceDataClear,
			query.TrackDelete,
		} {
			stmt, err := lib.getQuery(qid)
			if err != nil {
				return err
			}
			if _, err = tx.Stmt(stmt).Exec(id); err != nil {
				return fmt.Errorf("storage: delete track %d (%s): %w", id, qid, err)
			}
		}
		return nil
	})
} // func (lib *Library) DeleteTrack(id int64) error

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
} // func nullInt64(p *int64) sql.NullInt64

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
} // func nullString(p *string) sql.NullString

func nullFloat64(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
} // func nullFloat64(p *float64) sql.NullFloat64

func nullBool(p *bool) sql.NullBool {
	if p == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *p, Valid: true}
} // func nullBool(p *bool) sql.NullBool

func int64PtrFromNull(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	x := v.Int64
	return &x
} // func int64PtrFromNull(v sql.NullInt64) *int64

func stringPtrFromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	x := v.String
	return &x
} // func stringPtrFromNull(v sql.NullString) *string

func float64PtrFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	x := v.Float64
	return &x
} // func float64PtrFromNull(v sql.NullFloat64) *float64

func boolPtrFromNull(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	x := v.Bool
	return &x
} // func boolPtrFromNull(v sql.NullBool) *bool
