package schema

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xsco/libengineprime/semver"
)

func TestDdlSingleColumnIntegerPK(t *testing.T) {
	tbl := Table{
		Name: "Information",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "uuid", Type: "TEXT", NotNull: true},
		},
	}

	stmts := ddl("music", tbl)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	if want := "CREATE TABLE music.Information"; !strings.Contains(stmts[0], want) {
		t.Errorf("expected statement to contain %q, got %q", want, stmts[0])
	}
	if want := "id INTEGER PRIMARY KEY"; !strings.Contains(stmts[0], want) {
		t.Errorf("expected statement to contain %q, got %q", want, stmts[0])
	}
} // func TestDdlSingleColumnIntegerPK(t *testing.T)

func TestDdlCompositePK(t *testing.T) {
	tbl := Table{
		Name: "MetaData",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "type", Type: "INTEGER", PKRank: 2},
			{Name: "text", Type: "TEXT"},
		},
	}

	stmts := ddl("music", tbl)
	if want := "PRIMARY KEY (id, type)"; !strings.Contains(stmts[0], want) {
		t.Errorf("expected statement to contain %q, got %q", want, stmts[0])
	}
} // func TestDdlCompositePK(t *testing.T)

func TestDdlIndexes(t *testing.T) {
	tbl := Table{
		Name: "Track",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "idAlbumArt", Type: "INTEGER"},
		},
		Indexes: []Index{
			{Name: "idAlbumArtIndex", Columns: []string{"idAlbumArt"}},
		},
	}

	stmts := ddl("music", tbl)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if want := "CREATE INDEX music.idAlbumArtIndex ON Track (idAlbumArt)"; stmts[1] != want {
		t.Errorf("expected %q, got %q", want, stmts[1])
	}
} // func TestDdlIndexes(t *testing.T)

func TestExpectedIndexesSynthesizesCompositePK(t *testing.T) {
	tbl := Table{
		Name: "MetaData",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "type", Type: "INTEGER", PKRank: 2},
		},
	}

	idxs := expectedIndexes(tbl)
	if len(idxs) != 1 {
		t.Fatalf("expected 1 synthesized index, got %d", len(idxs))
	}
	if idxs[0].Origin != "pk" || !idxs[0].Unique {
		t.Errorf("expected a unique pk-origin index, got %+v", idxs[0])
	}
	if len(idxs[0].Columns) != 2 || idxs[0].Columns[0] != "id" || idxs[0].Columns[1] != "type" {
		t.Errorf("expected columns [id type], got %v", idxs[0].Columns)
	}
} // func TestExpectedIndexesSynthesizesCompositePK(t *testing.T)

func TestTablesFind(t *testing.T) {
	tbls := Tables{{Name: "Track"}, {Name: "Information"}}

	if _, ok := tbls.Find("Track"); !ok {
		t.Error("expected to find Track")
	}
	if _, ok := tbls.Find("NoSuchTable"); ok {
		t.Error("did not expect to find NoSuchTable")
	}
} // func TestTablesFind(t *testing.T)

func TestLookupKnowsEveryVersion(t *testing.T) {
	for _, v := range semver.All {
		d, found := Lookup(v)
		if !found {
			t.Errorf("no descriptor registered for %s", v)
		} else if d.Version != v {
			t.Errorf("descriptor for %s carries version %s", v, d.Version)
		}
	}
} // func TestLookupKnowsEveryVersion(t *testing.T)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open in-memory db: %s", err.Error())
	}
	t.Cleanup(func() { db.Close() })
	return db
} // func openMemoryDB(t *testing.T) *sql.DB

func TestCreateThenValidateRoundTrips(t *testing.T) {
	db := openMemoryDB(t)

	tables := Descriptors[semver.V1_13_2].MusicTables
	if err := Create(db, "main", tables); err != nil {
		t.Fatalf("Create: %s", err.Error())
	}
	if err := Validate(db, "main", tables); err != nil {
		t.Fatalf("Validate against the catalog it just created: %s", err.Error())
	}
} // func TestCreateThenValidateRoundTrips(t *testing.T)

func TestValidateDetectsAddedColumn(t *testing.T) {
	db := openMemoryDB(t)

	tables := Descriptors[semver.V1_6_0].MusicTables
	if err := Create(db, "main", tables); err != nil {
		t.Fatalf("Create: %s", err.Error())
	}
	if _, err := db.Exec("ALTER TABLE main.Track ADD COLUMN unexpectedColumn TEXT"); err != nil {
		t.Fatalf("mutate catalog: %s", err.Error())
	}

	err := Validate(db, "main", tables)
	if err == nil {
		t.Fatal("expected Validate to reject a catalog with an extra column")
	}

	var inconsistency *DatabaseInconsistency
	if !errors.As(err, &inconsistency) {
		t.Fatalf("expected a *DatabaseInconsistency, got %T: %v", err, err)
	}
} // func TestValidateDetectsAddedColumn(t *testing.T)

func TestValidateDetectsMissingTable(t *testing.T) {
	db := openMemoryDB(t)

	tables := Descriptors[semver.V1_6_0].MusicTables
	if err := Create(db, "main", tables); err != nil {
		t.Fatalf("Create: %s", err.Error())
	}
	if _, err := db.Exec("DROP TABLE main.AlbumArt"); err != nil {
		t.Fatalf("mutate catalog: %s", err.Error())
	}

	err := Validate(db, "main", tables)
	if err == nil {
		t.Fatal("expected Validate to reject a catalog missing a modeled table")
	}

	var inconsistency *DatabaseInconsistency
	if !errors.As(err, &inconsistency) {
		t.Fatalf("expected a *DatabaseInconsistency, got %T: %v", err, err)
	}
} // func TestValidateDetectsMissingTable(t *testing.T)
