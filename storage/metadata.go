package storage

import (
	"database/sql"
	"fmt"

	"github.com/xsco/libengineprime/storage/query"
)

// CanonicalMetaData is the complete set of string metadata a track
// row carries once canonically written. EverPlayed is left nullable;
// every other slot this library writes is a plain string, and the
// five trailing unknown slots are hardware-constant.
type CanonicalMetaData struct {
	Title         string
	Artist        string
	Album         string
	Genre         string
	Comment       string
	Publisher     string
	Composer      string
	DurationMmSs  string
	EverPlayed    *string
	FileExtension string
}

// CanonicalIntMetaData is the complete set of integer metadata a
// track row carries once canonically written. The six unknown slots
// are hardware-constant.
type CanonicalIntMetaData struct {
	MusicalKey            int64
	Rating                int64
	LastPlayedTimestamp   int64
	LastModifiedTimestamp int64
	LastAccessedTimestamp int64
	LastPlayHash          int64
}

// unknownMetaDataValue is the literal string the hardware writes into
// every unknown string-metadata slot.
const unknownMetaDataValue = "1"

// unknownIntMetaDataValue is the literal integer the hardware writes
// into every unknown integer-metadata slot.
const unknownIntMetaDataValue int64 = 1

// GetMetaData returns one string metadata slot for id, or nil if the
// row is absent or its text is NULL.
func (lib *Library) GetMetaData(id int64, typ MetaDataType) (*string, error) {
	stmt, err := lib.getQuery(query.MetaDataGet)
	if err != nil {
		return nil, err
	}

	var v sql.NullString
	if err = stmt.QueryRow(id, int64(typ)).Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: read metadata %d/%d: %w", id, typ, err)
	}
	return stringPtrFromNull(v), nil
} // func (lib *Library) GetMetaData(id int64, typ MetaDataType) (*string, error)

// GetAllMetaData returns every non-null string metadata slot for id.
func (lib *Library) GetAllMetaData(id int64) (map[MetaDataType]string, error) {
	stmt, err := lib.getQuery(query.MetaDataGetAll)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(id)
	if err != nil {
		return nil, fmt.Errorf("storage: read metadata for track %d: %w", id, err)
	}
	defer rows.Close()

	result := make(map[MetaDataType]string)
	for rows.Next() {
		var (
			typ  int64
			text string
		)
		if err = rows.Scan(&typ, &text); err != nil {
			return nil, fmt.Errorf("storage: scan metadata row: %w", err)
		}
		result[MetaDataType(typ)] = text
	}
	return result, rows.Err()
} // func (lib *Library) GetAllMetaData(id int64) (map[MetaDataType]string, error)

// SetMetaData writes one string metadata slot for id.
func (lib *Library) SetMetaData(id int64, typ MetaDataType, text *string) error {
	stmt, err := lib.getQuery(query.MetaDataSet)
	if err != nil {
		return err
	}
	return lib.withTx(func(tx *sql.Tx) error {
		_, err := tx.Stmt(stmt).Exec(id, int64(typ), nullString(text))
		if err != nil {
			return fmt.Errorf("storage: write metadata %d/%d: %w", id, typ, err)
		}
		return nil
	})
} // func (lib *Library) SetMetaData(id int64, typ MetaDataType, text *string) error

// SetCanonicalMetaData replaces the complete 15-row canonical string
// metadata set for id in a single statement.
func (lib *Library) SetCanonicalMetaData(id int64, m CanonicalMetaData) error {
	values := map[MetaDataType]*string{
		MetaDataTitle:         &m.Title,
		MetaDataArtist:        &m.Artist,
		MetaDataAlbum:         &m.Album,
		MetaDataGenre:         &m.Genre,
		MetaDataComment:       &m.Comment,
		MetaDataPublisher:     &m.Publisher,
		MetaDataComposer:      &m.Composer,
		MetaDataDurationMmSs:  &m.DurationMmSs,
		MetaDataFileExtension: &m.FileExtension,
	}
	unknown := unknownMetaDataValue

	stmt, err := lib.getQuery(query.MetaDataSetCanonical)
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, 3*len(canonicalStringOrder))
	for _, typ := range canonicalStringOrder {
		var text *string
		switch typ {
		case MetaDataEverPlayed:
			text = m.EverPlayed
		case MetaDataUnknown11, MetaDataUnknown12, MetaDataUnknown13, MetaDataUnknown14, MetaDataUnknown15:
			text = &unknown
		default:
			text = values[typ]
		}
		args = append(args, id, int64(typ), nullString(text))
	}

	return lib.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Stmt(stmt).Exec(args...); err != nil {
			return fmt.Errorf("storage: write canonical metadata for track %d: %w", id, err)
		}
		return nil
	})
} // func (lib *Library) SetCanonicalMetaData(id int64, m CanonicalMetaData) error

// GetIntMetaData returns one integer metadata slot for id, or nil if
// the row is absent or its value is NULL.
func (lib *Library) GetIntMetaData(id int64, typ IntMetaDataType) (*int64, error) {
	stmt, err := lib.getQuery(query.MetaDataIntGet)
	if err != nil {
		return nil, err
	}

	var v sql.NullInt64
	if err = stmt.QueryRow(id, int64(typ)).Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: read int metadata %d/%d: %w", id, typ, err)
	}
	return int64PtrFromNull(v), nil
} // func (lib *Library) GetIntMetaData(id int64, typ IntMetaDataType) (*int64, error)

// GetAllIntMetaData returns every non-null integer metadata slot for
// id.
func (lib *Library) GetAllIntMetaData(id int64) (map[IntMetaDataType]int64, error) {
	stmt, err := lib.getQuery(query.MetaDataIntGetAll)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(id)
	if err != nil {
		return nil, fmt.Errorf("storage: read int metadata for track %d: %w", id, err)
	}
	defer rows.Close()

	result := make(map[IntMetaDataType]int64)
	for rows.Next() {
		var (
			typ   int64
			value int64
		)
		if err = rows.Scan(&typ, &value); err != nil {
			return nil, fmt.Errorf("storage: scan int metadata row: %w", err)
		}
		result[IntMetaDataType(typ)] = value
	}
	return result, rows.Err()
} // func (lib *Library) GetAllIntMetaData(id int64) (map[IntMetaDataType]int64, error)

// SetIntMetaData writes one integer metadata slot for id.
func (lib *Library) SetIntMetaData(id int64, typ IntMetaDataType, value *int64) error {
	stmt, err := lib.getQuery(query.MetaDataIntSet)
	if err != nil {
		return err
	}
	return lib.withTx(func(tx *sql.Tx) error {
		_, err := tx.Stmt(stmt).Exec(id, int64(typ), nullInt64(value))
		if err != nil {
			return fmt.Errorf("storage: write int metadata %d/%d: %w", id, typ, err)
		}
		return nil
	})
} // func (lib *Library) SetIntMetaData(id int64, typ IntMetaDataType, value *int64) error

// SetCanonicalIntMetaData replaces the complete 12-row canonical
// integer metadata set for id, in the hardware's insertion order, in
// a single statement.
func (lib *Library) SetCanonicalIntMetaData(id int64, m CanonicalIntMetaData) error {
	values := map[IntMetaDataType]int64{
		IntMetaDataMusicalKey:            m.MusicalKey,
		IntMetaDataRating:                m.Rating,
		IntMetaDataLastPlayedTimestamp:   m.LastPlayedTimestamp,
		IntMetaDataLastModifiedTimestamp: m.LastModifiedTimestamp,
		IntMetaDataLastAccessedTimestamp: m.LastAccessedTimestamp,
		IntMetaDataLastPlayHash:          m.LastPlayHash,
	}

	stmt, err := lib.getQuery(query.MetaDataIntSetCanonical)
	if err != nil {
		return err
	}

	args := make([]interface{}, 0, 3*len(canonicalIntOrder))
	for _, typ := range canonicalIntOrder {
		v, known := values[typ]
		if !known {
			v = unknownIntMetaDataValue
		}
		args = append(args, id, int64(typ), v)
	}

	return lib.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Stmt(stmt).Exec(args...); err != nil {
			return fmt.Errorf("storage: write canonical int metadata for track %d: %w", id, err)
		}
		return nil
	})
} // func (lib *Library) SetCanonicalIntMetaData(id int64, m CanonicalIntMetaData) error
