// Package storage is the version-dispatched storage facade for a pair
// of Engine Library stores: the music store and the performance-data
// store. A Library owns one *sql.DB with both files ATTACHed under
// fixed schema names, "music" and "perfdata", so that every statement
// it prepares can freely join or reference either store.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/xsco/libengineprime/common"
	"github.com/xsco/libengineprime/logdomain"
	"github.com/xsco/libengineprime/schema"
	"github.com/xsco/libengineprime/semver"
	"github.com/xsco/libengineprime/storage/query"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// retryPat matches SQLite's transient "locked"/"busy" errors, which
// are worth a short retry rather than surfacing to the caller.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

func worthARetry(err error) bool {
	return err != nil && retryPat.MatchString(err.Error())
} // func worthARetry(err error) bool

const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// State is the lifecycle stage of a Library.
type State uint8

const (
	StateUninitialized State = iota
	StateOpen
	StateClosed
)

// Library is a single, version-dispatched handle onto one music store
// and one performance-data store. It is not safe to share a Library
// across goroutines; opening a second, independent Library onto the
// same files is safe at the SQLite level (subject to SQLite's own
// locking).
type Library struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	state   State
	uuid    string
	version semver.Version
	desc    schema.Descriptor

	musicPath string
	perfPath  string

	queries   map[query.ID]*sql.Stmt
	queryText map[query.ID]string
}

func newLibrary() *Library {
	openLock.Lock()
	defer openLock.Unlock()
	idCnt++

	return &Library{
		id:        idCnt,
		queries:   make(map[query.ID]*sql.Stmt),
		queryText: make(map[query.ID]string),
	}
} // func newLibrary() *Library

// OpenExisting opens the pair of store files at musicPath and
// perfPath, detects their schema version, and validates both stores'
// catalogs against it.
func OpenExisting(musicPath, perfPath string) (*Library, error) {
	var (
		err              error
		musicOk, perfOk bool
	)

	if musicOk, err = krylib.Fexists(musicPath); err != nil {
		return nil, fmt.Errorf("storage: check %s: %w", musicPath, err)
	} else if perfOk, err = krylib.Fexists(perfPath); err != nil {
		return nil, fmt.Errorf("storage: check %s: %w", perfPath, err)
	} else if !musicOk || !perfOk {
		return nil, ErrLibraryNotFound
	}

	lib := newLibrary()
	lib.musicPath, lib.perfPath = musicPath, perfPath

	if lib.log, err = common.GetLogger(logdomain.Storage); err != nil {
		return nil, err
	}

	if err = lib.openConn(); err != nil {
		return nil, err
	}

	if lib.version, err = detectVersion(lib.db); err != nil {
		lib.db.Close() // nolint: errcheck
		return nil, err
	}

	var ok bool
	if lib.desc, ok = schema.Lookup(lib.version); !ok {
		lib.db.Close() // nolint: errcheck
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSchema, lib.version)
	}

	for _, s := range []struct {
		name   string
		tables schema.Tables
	}{{"music", lib.desc.MusicTables}, {"perfdata", lib.desc.PerfTables}} {
		if err = schema.Validate(lib.db, s.name, s.tables); err != nil {
			lib.db.Close() // nolint: errcheck
			var di *schema.DatabaseInconsistency
			if errors.As(err, &di) {
				err = fmt.Errorf("%w: %w", ErrDatabaseInconsistency, err)
			}
			return nil, err
		}
	}

	if lib.uuid, err = readLibraryUUID(lib.db); err != nil {
		lib.db.Close() // nolint: errcheck
		return nil, err
	}

	lib.buildQueryText()
	lib.state = StateOpen
	return lib, nil
} // func OpenExisting(musicPath, perfPath string) (*Library, error)

// OpenNew creates a fresh pair of store files at musicPath and
// perfPath, materializes version's schema in both, and seeds both
// Information rows with a freshly generated, shared UUID.
func OpenNew(musicPath, perfPath string, version semver.Version) (*Library, error) {
	var err error

	desc, ok := schema.Lookup(version)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSchema, version)
	}

	for _, p := range []string{musicPath, perfPath} {
		if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create directory for %s: %w", p, err)
		}
	}

	lib := newLibrary()
	lib.musicPath, lib.perfPath = musicPath, perfPath
	lib.version, lib.desc = version, desc

	if lib.log, err = common.GetLogger(logdomain.Storage); err != nil {
		return nil, err
	}

	if err = lib.openConn(); err != nil {
		return nil, err
	}

	if err = lib.create(); err != nil {
		lib.db.Close() // nolint: errcheck
		os.Remove(musicPath)
		os.Remove(perfPath)
		return nil, err
	}

	lib.buildQueryText()
	lib.state = StateOpen
	return lib, nil
} // func OpenNew(musicPath, perfPath string, version semver.Version) (*Library, error)

// OpenInMemory creates a new, in-process-only pair of stores, attached
// under "music" and "perfdata" on every connection of a shared-cache
// in-memory *sql.DB. It is
// intended for tests and for transient libraries that are never
// written to disk.
func OpenInMemory(version semver.Version) (*Library, error) {
	var err error

	desc, ok := schema.Lookup(version)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSchema, version)
	}

	lib := newLibrary()
	lib.version, lib.desc = version, desc

	if lib.log, err = common.GetLogger(logdomain.Storage); err != nil {
		return nil, err
	}

	// Each attached name needs its own backing database; give music
	// and perfdata distinct shared-cache memory identities so that
	// e.g. both Information tables don't collide in one store. ATTACH
	// is per-connection, so the attaches are installed via a
	// ConnectHook driver rather than a one-off Exec, ensuring every
	// connection database/sql opens from the pool carries them.
	attaches := make([]string, 0, 2)
	for schemaName, memName := range map[string]string{
		"music":    "libengineprime-music",
		"perfdata": "libengineprime-perfdata",
	} {
		attaches = append(attaches, fmt.Sprintf(
			"ATTACH DATABASE 'file:%s-%d?mode=memory&cache=shared' AS %s",
			memName, lib.id, schemaName))
	}

	driverName, err := registerAttachingDriver(attaches)
	if err != nil {
		return nil, fmt.Errorf("storage: register in-memory driver: %w", err)
	}

	if lib.db, err = sql.Open(driverName, "file::memory:?cache=shared"); err != nil {
		return nil, fmt.Errorf("storage: open in-memory connection: %w", err)
	}

	if err = lib.create(); err != nil {
		lib.db.Close() // nolint: errcheck
		return nil, err
	}

	lib.buildQueryText()
	lib.state = StateOpen
	return lib, nil
} // func OpenInMemory(version semver.Version) (*Library, error)

// openConn opens a bare connection and ATTACHes musicPath and perfPath
// as the "music" and "perfdata" schemas. The connection's own default
// (main) schema is never used, so that every statement this package
// prepares addresses one of the two stores explicitly.
func (lib *Library) openConn() error {
	var err error

	attaches := make([]string, 0, 2)
	for schemaName, path := range map[string]string{"music": lib.musicPath, "perfdata": lib.perfPath} {
		attaches = append(attaches, fmt.Sprintf("ATTACH DATABASE %s AS %s", quoteSQL(path), schemaName))
	}

	driverName, err := registerAttachingDriver(attaches)
	if err != nil {
		return fmt.Errorf("storage: register connection driver: %w", err)
	}

	if lib.db, err = sql.Open(driverName, "file::memory:?_locking=NORMAL&_fk=1&recursive_triggers=0"); err != nil {
		return fmt.Errorf("storage: open connection: %w", err)
	}

	return nil
} // func (lib *Library) openConn() error

// registerAttachingDriver registers a uniquely-named sqlite3 driver
// whose ConnectHook runs attaches on every connection database/sql
// opens from the pool, since ATTACH is per-connection and cannot be
// installed with a one-off Exec against the *sql.DB.
func registerAttachingDriver(attaches []string) (string, error) {
	openLock.Lock()
	defer openLock.Unlock()
	idCnt++

	driverName := fmt.Sprintf("sqlite3-attached-%d", idCnt)
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			for _, attach := range attaches {
				if _, err := conn.Exec(attach, nil); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return driverName, nil
} // func registerAttachingDriver(attaches []string) (string, error)

func quoteSQL(path string) string {
	return "'" + path + "'"
} // func quoteSQL(path string) string

func (lib *Library) create() error {
	var err error

	if err = schema.Create(lib.db, "music", lib.desc.MusicTables); err != nil {
		return err
	}
	if err = schema.Create(lib.db, "perfdata", lib.desc.PerfTables); err != nil {
		return err
	}

	lib.uuid = common.NewUUID()

	for _, schemaName := range []string{"music", "perfdata"} {
		_, err = lib.db.Exec(
			fmt.Sprintf(
				"INSERT INTO %s.Information (id, uuid, schemaVersionMajor, schemaVersionMinor, schemaVersionPatch) VALUES (1, ?, ?, ?, ?)",
				schemaName),
			lib.uuid, lib.version.Major, lib.version.Minor, lib.version.Patch)
		if err != nil {
			return fmt.Errorf("storage: seed %s.Information: %w", schemaName, err)
		}
	}

	return nil
} // func (lib *Library) create() error

func readLibraryUUID(db *sql.DB) (string, error) {
	var u string
	row := db.QueryRow("SELECT uuid FROM music.Information WHERE id = 1")
	if err := row.Scan(&u); err != nil {
		return "", fmt.Errorf("storage: read library uuid: %w", err)
	}
	return u, nil
} // func readLibraryUUID(db *sql.DB) (string, error)

// UUID returns the library's stable identity, shared between both
// stores.
func (lib *Library) UUID() string { return lib.uuid }

// Version returns the schema version this Library was opened at.
func (lib *Library) Version() semver.Version { return lib.version }

// Close releases every prepared statement and the underlying
// connection. If a transaction is pending, it is rolled back.
func (lib *Library) Close() error {
	if lib.state == StateClosed {
		return nil
	}

	var err error
	if lib.tx != nil {
		if err = lib.tx.Rollback(); err != nil {
			lib.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n", err.Error())
			return err
		}
		lib.tx = nil
	}

	for id, stmt := range lib.queries {
		if err = stmt.Close(); err != nil {
			lib.log.Printf("[ERROR] Cannot close statement %s: %s\n", id, err.Error())
		}
		delete(lib.queries, id)
	}

	if err = lib.db.Close(); err != nil {
		lib.log.Printf("[CRITICAL] Cannot close database: %s\n", err.Error())
		return err
	}

	lib.state = StateClosed
	return nil
} // func (lib *Library) Close() error

// Begin starts a flat (non-nesting) transaction spanning both stores.
// Calling Begin while one is already open returns ErrTxInProgress.
func (lib *Library) Begin() error {
	if lib.state != StateOpen {
		return ErrClosed
	}
	if lib.tx != nil {
		return ErrTxInProgress
	}

	var err error
BEGIN:
	if lib.tx, err = lib.db.Begin(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto BEGIN
		}
		return fmt.Errorf("storage: begin transaction: %w", err)
	}
	return nil
} // func (lib *Library) Begin() error

// Commit ends the active transaction, making its changes permanent.
func (lib *Library) Commit() error {
	if lib.tx == nil {
		return ErrNoTxInProgress
	}
	err := lib.tx.Commit()
	lib.tx = nil
	if err != nil {
		return fmt.Errorf("storage: commit transaction: %w", err)
	}
	return nil
} // func (lib *Library) Commit() error

// Rollback discards the active transaction.
func (lib *Library) Rollback() error {
	if lib.tx == nil {
		return ErrNoTxInProgress
	}
	err := lib.tx.Rollback()
	lib.tx = nil
	if err != nil {
		return fmt.Errorf("storage: rollback transaction: %w", err)
	}
	return nil
} // func (lib *Library) Rollback() error

// withTx runs fn against either the active explicit transaction, or
// an ad-hoc one created and committed/rolled-back around the call.
func (lib *Library) withTx(fn func(tx *sql.Tx) error) error {
	if lib.state != StateOpen {
		return ErrClosed
	}

	if lib.tx != nil {
		return fn(lib.tx)
	}

	var (
		err error
		tx  *sql.Tx
	)

BEGIN_AD_HOC:
	if tx, err = lib.db.Begin(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto BEGIN_AD_HOC
		}
		return fmt.Errorf("storage: begin ad-hoc transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			lib.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n", rbErr.Error())
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit ad-hoc transaction: %w", err)
	}
	return nil
} // func (lib *Library) withTx(fn func(tx *sql.Tx) error) error

// getQuery returns the cached prepared statement for id, preparing it
// against the current connection on first use.
func (lib *Library) getQuery(id query.ID) (*sql.Stmt, error) {
	if stmt, ok := lib.queries[id]; ok {
		return stmt, nil
	}

	text, ok := lib.queryText[id]
	if !ok {
		return nil, fmt.Errorf("storage: unknown query %s", id)
	}

	var (
		err  error
		stmt *sql.Stmt
	)
PREPARE:
	if stmt, err = lib.db.Prepare(text); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE
		}
		return nil, fmt.Errorf("%w: prepare %s: %v\n%s", ErrStorageError, id, err, text)
	}

	lib.queries[id] = stmt
	return stmt, nil
} // func (lib *Library) getQuery(id query.ID) (*sql.Stmt, error)

// versionLogger is used only by detectVersion, which has no Library
// receiver to hang lib.log off yet — version detection runs before a
// Library is fully constructed.
var versionLogger *log.Logger

func init() {
	var err error
	if versionLogger, err = common.GetLogger(logdomain.Version); err != nil {
		panic(err)
	}
} // func init()

// detectVersion implements component D: read and cross-check the
// Information rows on both stores, then disambiguate the 1.18.0
// triple by probing Track.isExternalTrack's declared column type.
func detectVersion(db *sql.DB) (semver.Version, error) {
	var musicMajor, musicMinor, musicPatch int
	var perfMajor, perfMinor, perfPatch int

	row := db.QueryRow("SELECT schemaVersionMajor, schemaVersionMinor, schemaVersionPatch FROM music.Information WHERE id = 1")
	if err := row.Scan(&musicMajor, &musicMinor, &musicPatch); err != nil {
		versionLogger.Printf("[ERROR] Cannot read music.Information: %s\n", err.Error())
		return semver.Version{}, fmt.Errorf("%w: read music.Information: %v", ErrDatabaseInconsistency, err)
	}

	row = db.QueryRow("SELECT schemaVersionMajor, schemaVersionMinor, schemaVersionPatch FROM perfdata.Information WHERE id = 1")
	if err := row.Scan(&perfMajor, &perfMinor, &perfPatch); err != nil {
		versionLogger.Printf("[ERROR] Cannot read perfdata.Information: %s\n", err.Error())
		return semver.Version{}, fmt.Errorf("%w: read perfdata.Information: %v", ErrDatabaseInconsistency, err)
	}

	if musicMajor != perfMajor || musicMinor != perfMinor || musicPatch != perfPatch {
		versionLogger.Printf("[ERROR] Music store is %d.%d.%d but performance store is %d.%d.%d\n",
			musicMajor, musicMinor, musicPatch, perfMajor, perfMinor, perfPatch)
		return semver.Version{}, fmt.Errorf("%w: music store is %d.%d.%d but performance store is %d.%d.%d",
			ErrDatabaseInconsistency, musicMajor, musicMinor, musicPatch, perfMajor, perfMinor, perfPatch)
	}

	if !semver.IsAmbiguous(musicMajor, musicMinor, musicPatch) {
		for _, v := range semver.All {
			if v.Major == musicMajor && v.Minor == musicMinor && v.Patch == musicPatch {
				versionLogger.Printf("[DEBUG] Detected schema version %s\n", v)
				return v, nil
			}
		}
		versionLogger.Printf("[ERROR] Unrecognized schema version %d.%d.%d\n", musicMajor, musicMinor, musicPatch)
		return semver.Version{}, fmt.Errorf("%w: %d.%d.%d", ErrUnsupportedSchema, musicMajor, musicMinor, musicPatch)
	}

	versionLogger.Printf("[DEBUG] Version %d.%d.%d is ambiguous, probing Track.isExternalTrack\n",
		musicMajor, musicMinor, musicPatch)

	colType, err := trackExternalColumnType(db)
	if err != nil {
		return semver.Version{}, err
	}

	if colType == "NUMERIC" {
		versionLogger.Printf("[DEBUG] Disambiguated as firmware variant %s\n", semver.V1_18_0FW)
		return semver.V1_18_0FW, nil
	}
	versionLogger.Printf("[DEBUG] Disambiguated as desktop variant %s\n", semver.V1_18_0EP)
	return semver.V1_18_0EP, nil
} // func detectVersion(db *sql.DB) (semver.Version, error)

func trackExternalColumnType(db *sql.DB) (string, error) {
	rows, err := db.Query("PRAGMA music.table_info(Track)")
	if err != nil {
		return "", fmt.Errorf("storage: table_info(Track): %w", err)
	}
	defer rows.Close()

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
			return "", fmt.Errorf("storage: scan table_info row: %w", err)
		}
		if name == "isExternalTrack" {
			return colType, nil
		}
	}

	return "", fmt.Errorf("%w: Track.isExternalTrack column not found", ErrDatabaseInconsistency)
} // func trackExternalColumnType(db *sql.DB) (string, error)
