package storage

import (
	"fmt"
	"strings"

	"github.com/xsco/libengineprime/storage/query"
)

// trackColumns returns the data columns of the Track table present at
// lib.version, in declaration order, excluding "id".
func (lib *Library) trackColumns() []string {
	t, _ := lib.desc.MusicTables.Find("Track")

	cols := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns {
		if c.Name != "id" {
			cols = append(cols, c.Name)
		}
	}
	return cols
} // func (lib *Library) trackColumns() []string

// perfDataColumns returns the data columns of the PerformanceData
// table present at lib.version, in declaration order, excluding "id".
func (lib *Library) perfDataColumns() []string {
	t, _ := lib.desc.PerfTables.Find("PerformanceData")

	cols := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns {
		if c.Name != "id" {
			cols = append(cols, c.Name)
		}
	}
	return cols
} // func (lib *Library) perfDataColumns() []string

// buildQueryText renders the SQL text for every query.ID, dispatched
// on lib.desc's column shape, and stores it in lib.queryText for
// getQuery to lazily prepare.
func (lib *Library) buildQueryText() {
	trackCols := lib.trackColumns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(trackCols)), ", ")
	assignments := make([]string, len(trackCols))
	for i, c := range trackCols {
		assignments[i] = c + " = ?"
	}

	lib.queryText[query.TrackInsert] = fmt.Sprintf(
		"INSERT INTO music.Track (%s) VALUES (%s)",
		strings.Join(trackCols, ", "), placeholders)

	lib.queryText[query.TrackUpdate] = fmt.Sprintf(
		"UPDATE music.Track SET %s WHERE id = ?",
		strings.Join(assignments, ", "))

	lib.queryText[query.TrackGetByID] = fmt.Sprintf(
		"SELECT %s FROM music.Track WHERE id = ?",
		strings.Join(trackCols, ", "))

	lib.queryText[query.TrackDelete] = "DELETE FROM music.Track WHERE id = ?"

	lib.queryText[query.MetaDataGet] = "SELECT text FROM music.MetaData WHERE id = ? AND type = ?"
	lib.queryText[query.MetaDataGetAll] = "SELECT type, text FROM music.MetaData WHERE id = ? AND text IS NOT NULL"
	lib.queryText[query.MetaDataSet] = "INSERT OR REPLACE INTO music.MetaData (id, type, text) VALUES (?, ?, ?)"
	lib.queryText[query.MetaDataDeleteForTrack] = "DELETE FROM music.MetaData WHERE id = ?"

	lib.queryText[query.MetaDataIntGet] = "SELECT value FROM music.MetaDataInteger WHERE id = ? AND type = ?"
	lib.queryText[query.MetaDataIntGetAll] = "SELECT type, value FROM music.MetaDataInteger WHERE id = ? AND value IS NOT NULL"
	lib.queryText[query.MetaDataIntSet] = "INSERT OR REPLACE INTO music.MetaDataInteger (id, type, value) VALUES (?, ?, ?)"
	lib.queryText[query.MetaDataIntDeleteForTrack] = "DELETE FROM music.MetaDataInteger WHERE id = ?"

	lib.queryText[query.MetaDataSetCanonical] = fmt.Sprintf(
		"INSERT OR REPLACE INTO music.MetaData (id, type, text) VALUES %s",
		strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", len(canonicalStringOrder)), ", "))

	lib.queryText[query.MetaDataIntSetCanonical] = fmt.Sprintf(
		"INSERT OR REPLACE INTO music.MetaDataInteger (id, type, value) VALUES %s",
		strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", len(canonicalIntOrder)), ", "))

	perfCols := lib.perfDataColumns()
	perfPlaceholders := strings.TrimSuffix(strings.Repeat("?, ", len(perfCols)), ", ")

	lib.queryText[query.PerformanceDataGet] = fmt.Sprintf(
		"SELECT %s FROM perfdata.PerformanceData WHERE id = ?",
		strings.Join(perfCols, ", "))

	lib.queryText[query.PerformanceDataSet] = fmt.Sprintf(
		"INSERT OR REPLACE INTO perfdata.PerformanceData (id, %s) VALUES (?, %s)",
		strings.Join(perfCols, ", "), perfPlaceholders)

	lib.queryText[query.PerformanceDataClear] = "DELETE FROM perfdata.PerformanceData WHERE id = ?"
} // func (lib *Library) buildQueryText()
