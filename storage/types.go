package storage

import "github.com/xsco/libengineprime/blob"

// Track holds the fields of one Track row. Pointer fields are nil
// when the underlying column is NULL, or when the column was not yet
// introduced at the library's schema version.
type Track struct {
	ID                        int64
	PlayOrder                 *int64
	Length                    *int64
	LengthCalculated          *int64
	Bpm                       *int64
	Year                      *int64
	Path                      *string
	Filename                  *string
	Bitrate                   *int64
	BpmAnalyzed               *float64
	TrackType                 *int64
	IsExternalTrack           *bool
	UUIDOfExternalDatabase    *string
	IDTrackInExternalDatabase *int64
	IDAlbumArt                *int64

	// Present from schema version 1.13.0 onwards.
	FileBytes    *int64
	PdbImportKey *int64

	// Present from schema version 1.17.0 onwards.
	URI *string

	// Present from schema version 1.18.0 onwards.
	IsBeatGridLocked *bool
}

// MetaDataType identifies one of the 15 canonical string metadata
// slots recorded per track.
type MetaDataType int64

const (
	MetaDataTitle         MetaDataType = 1
	MetaDataArtist        MetaDataType = 2
	MetaDataAlbum         MetaDataType = 3
	MetaDataGenre         MetaDataType = 4
	MetaDataComment       MetaDataType = 5
	MetaDataPublisher     MetaDataType = 6
	MetaDataComposer      MetaDataType = 7
	MetaDataDurationMmSs  MetaDataType = 8
	MetaDataEverPlayed    MetaDataType = 9
	MetaDataFileExtension MetaDataType = 10
	MetaDataUnknown11     MetaDataType = 11
	MetaDataUnknown12     MetaDataType = 12
	MetaDataUnknown13     MetaDataType = 13
	MetaDataUnknown14     MetaDataType = 14
	MetaDataUnknown15     MetaDataType = 15
)

// IntMetaDataType identifies one of the 12 canonical integer metadata
// slots recorded per track.
type IntMetaDataType int64

const (
	IntMetaDataMusicalKey            IntMetaDataType = 1
	IntMetaDataRating                IntMetaDataType = 2
	IntMetaDataUnknown3              IntMetaDataType = 3
	IntMetaDataLastPlayedTimestamp   IntMetaDataType = 4
	IntMetaDataLastModifiedTimestamp IntMetaDataType = 5
	IntMetaDataLastAccessedTimestamp IntMetaDataType = 6
	IntMetaDataUnknown7              IntMetaDataType = 7
	IntMetaDataLastPlayHash          IntMetaDataType = 8
	IntMetaDataUnknown9              IntMetaDataType = 9
	IntMetaDataUnknown10             IntMetaDataType = 10
	IntMetaDataUnknown11             IntMetaDataType = 11
	IntMetaDataUnknown12             IntMetaDataType = 12
)

// canonicalStringOrder is the order the 15 string metadata rows are
// written in: ascending type number, ending with the five unknown
// slots.
var canonicalStringOrder = []MetaDataType{
	MetaDataTitle, MetaDataArtist, MetaDataAlbum, MetaDataGenre,
	MetaDataComment, MetaDataPublisher, MetaDataComposer,
	MetaDataDurationMmSs, MetaDataEverPlayed, MetaDataFileExtension,
	MetaDataUnknown11, MetaDataUnknown12, MetaDataUnknown13,
	MetaDataUnknown14, MetaDataUnknown15,
}

// canonicalIntOrder is the hardware-observed insertion order for the
// 12 integer metadata rows: (4,5,1,2,3,6,8,7,9,10,11,12).
var canonicalIntOrder = []IntMetaDataType{
	IntMetaDataLastPlayedTimestamp, IntMetaDataLastModifiedTimestamp,
	IntMetaDataMusicalKey, IntMetaDataRating, IntMetaDataUnknown3,
	IntMetaDataLastAccessedTimestamp, IntMetaDataLastPlayHash,
	IntMetaDataUnknown7, IntMetaDataUnknown9, IntMetaDataUnknown10,
	IntMetaDataUnknown11, IntMetaDataUnknown12,
}

// PerformanceData holds the decoded contents of one PerformanceData
// row.
type PerformanceData struct {
	TrackID            int64
	IsAnalyzed         bool
	IsRendered         bool
	TrackData          blob.TrackData
	HighResWaveform    blob.HighResWaveformData
	OverviewWaveform   blob.OverviewWaveformData
	BeatData           blob.BeatData
	QuickCues          blob.QuickCuesData
	Loops              blob.LoopsData
	HasSeratoValues    bool
	HasRekordboxValues bool
	HasTraktorValues   bool
}

// DefaultPerformanceData returns the default-valued row readers
// synthesize when a track has not yet been analyzed.
func DefaultPerformanceData(trackID int64) PerformanceData {
	return PerformanceData{
		TrackID:   trackID,
		QuickCues: blob.DefaultQuickCuesData(),
	}
} // func DefaultPerformanceData(trackID int64) PerformanceData
