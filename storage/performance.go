package storage

import (
	"database/sql"
	"fmt"

	"github.com/xsco/libengineprime/blob"
	"github.com/xsco/libengineprime/storage/query"
)

// performanceDataColumnValue returns the value pd holds for column
// name, encoding blob-shaped columns and returning the flag columns
// as plain bools.
func performanceDataColumnValue(pd PerformanceData, name string) (interface{}, error) {
	switch name {
	case "isAnalyzed":
		return pd.IsAnalyzed, nil
	case "isRendered":
		return pd.IsRendered, nil
	case "trackData":
		return blob.EncodeTrackData(pd.TrackData)
	case "highResolutionWaveFormData":
		return blob.EncodeHighResWaveformData(pd.HighResWaveform)
	case "overviewWaveFormData":
		return blob.EncodeOverviewWaveformData(pd.OverviewWaveform)
	case "beatData":
		return blob.EncodeBeatData(pd.BeatData)
	case "quickCues":
		return blob.EncodeQuickCuesData(pd.QuickCues)
	case "loops":
		return blob.EncodeLoopsData(pd.Loops)
	case "hasSeratoValues":
		return pd.HasSeratoValues, nil
	case "hasRekordboxValues":
		return pd.HasRekordboxValues, nil
	case "hasTraktorValues":
		return pd.HasTraktorValues, nil
	default:
		return nil, fmt.Errorf("storage: unknown PerformanceData column %q", name)
	}
} // func performanceDataColumnValue(pd PerformanceData, name string) (interface{}, error)

// performanceDataScanTarget returns a pointer for Scan to read column
// name into. Flag columns scan straight into pd's fields; blob columns
// scan into a fresh *[]byte that the caller decodes onto pd.
func performanceDataScanTarget(pd *PerformanceData, name string) interface{} {
	switch name {
	case "isAnalyzed":
		return &pd.IsAnalyzed
	case "isRendered":
		return &pd.IsRendered
	case "trackData":
		return new([]byte)
	case "highResolutionWaveFormData":
		return new([]byte)
	case "overviewWaveFormData":
		return new([]byte)
	case "beatData":
		return new([]byte)
	case "quickCues":
		return new([]byte)
	case "loops":
		return new([]byte)
	case "hasSeratoValues":
		return &pd.HasSeratoValues
	case "hasRekordboxValues":
		return &pd.HasRekordboxValues
	case "hasTraktorValues":
		return &pd.HasTraktorValues
	default:
		panic(fmt.Sprintf("storage: unknown PerformanceData column %q", name))
	}
} // func performanceDataScanTarget(pd *PerformanceData, name string) interface{}

func decodePerformanceDataBlob(pd *PerformanceData, name string, col []byte) error {
	var err error
	switch name {
	case "trackData":
		pd.TrackData, err = blob.DecodeTrackData(col)
	case "highResolutionWaveFormData":
		pd.HighResWaveform, err = blob.DecodeHighResWaveformData(col)
	case "overviewWaveFormData":
		pd.OverviewWaveform, err = blob.DecodeOverviewWaveformData(col)
	case "beatData":
		pd.BeatData, err = blob.DecodeBeatData(col)
	case "quickCues":
		pd.QuickCues, err = blob.DecodeQuickCuesData(col)
	case "loops":
		pd.Loops, err = blob.DecodeLoopsData(col)
	}
	return err
} // func decodePerformanceDataBlob(pd *PerformanceData, name string, col []byte) error

var blobColumns = map[string]bool{
	"trackData":                  true,
	"highResolutionWaveFormData": true,
	"overviewWaveFormData":       true,
	"beatData":                   true,
	"quickCues":                  true,
	"loops":                      true,
}

// GetPerformanceData returns the decoded PerformanceData row for id.
// If no row exists, a default-valued row is synthesized instead of
// returning an error, since absence legally means "not yet analyzed".
func (lib *Library) GetPerformanceData(id int64) (PerformanceData, error) {
	cols := lib.perfDataColumns()

	stmt, err := lib.getQuery(query.PerformanceDataGet)
	if err != nil {
		return PerformanceData{}, err
	}

	pd := PerformanceData{TrackID: id}
	targets := make([]interface{}, len(cols))
	for i, c := range cols {
		targets[i] = performanceDataScanTarget(&pd, c)
	}

	row := stmt.QueryRow(id)
	if err = row.Scan(targets...); err != nil {
		if err == sql.ErrNoRows {
			return DefaultPerformanceData(id), nil
		}
		return PerformanceData{}, fmt.Errorf("storage: read performance data %d: %w", id, err)
	}

	for i, c := range cols {
		if !blobColumns[c] {
			continue
		}
		col := *(targets[i].(*[]byte))
		if err = decodePerformanceDataBlob(&pd, c, col); err != nil {
			return PerformanceData{}, fmt.Errorf("storage: decode %s for track %d: %w", c, id, err)
		}
	}

	return pd, nil
} // func (lib *Library) GetPerformanceData(id int64) (PerformanceData, error)

// SetPerformanceData overwrites the PerformanceData row for pd.TrackID
// with an INSERT OR REPLACE, encoding every blob column. Columns not
// present at this library's schema version are silently dropped.
func (lib *Library) SetPerformanceData(pd PerformanceData) error {
	cols := lib.perfDataColumns()

	stmt, err := lib.getQuery(query.PerformanceDataSet)
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, len(cols)+1)
	args = append(args, pd.TrackID)
	for _, c := range cols {
		v, err := performanceDataColumnValue(pd, c)
		if err != nil {
			return fmt.Errorf("storage: encode %s for track %d: %w", c, pd.TrackID, err)
		}
		args = append(args, v)
	}

	return lib.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Stmt(stmt).Exec(args...); err != nil {
			return fmt.Errorf("storage: write performance data for track %d: %w", pd.TrackID, err)
		}
		return nil
	})
} // func (lib *Library) SetPerformanceData(pd PerformanceData) error

// ClearPerformanceData deletes the PerformanceData row for id, if any.
func (lib *Library) ClearPerformanceData(id int64) error {
	stmt, err := lib.getQuery(query.PerformanceDataClear)
	if err != nil {
		return err
	}
	return lib.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Stmt(stmt).Exec(id); err != nil {
			return fmt.Errorf("storage: clear performance data for track %d: %w", id, err)
		}
		return nil
	})
} // func (lib *Library) ClearPerformanceData(id int64) error
