package schema

import "github.com/xsco/libengineprime/semver"

// informationTable is identical across every recognized version, on
// both the music side and the performance side.
func informationTable() Table {
	return Table{
		Name: "Information",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "uuid", Type: "TEXT", NotNull: true},
			{Name: "schemaVersionMajor", Type: "INTEGER", NotNull: true},
			{Name: "schemaVersionMinor", Type: "INTEGER", NotNull: true},
			{Name: "schemaVersionPatch", Type: "INTEGER", NotNull: true},
			{Name: "currentPlayedIndiciator", Type: "INTEGER", NotNull: true, Default: "0"},
			{Name: "lastRekordBoxLibraryImportReadCounter", Type: "INTEGER", NotNull: true, Default: "0"},
		},
	}
} // func informationTable() Table

// trackTable builds the Track table definition for a given set of
// version-gated optional columns.
func trackTable(hasFileBytes, hasURI, hasBeatGridLocked bool, isExternalTrackType string) Table {
	var cols = []Column{
		{Name: "id", Type: "INTEGER", PKRank: 1},
		{Name: "playOrder", Type: "INTEGER"},
		{Name: "length", Type: "INTEGER"},
		{Name: "lengthCalculated", Type: "INTEGER"},
		{Name: "bpm", Type: "INTEGER"},
		{Name: "year", Type: "INTEGER"},
		{Name: "path", Type: "TEXT"},
		{Name: "filename", Type: "TEXT"},
		{Name: "bitrate", Type: "INTEGER"},
		{Name: "bpmAnalyzed", Type: "REAL"},
		{Name: "trackType", Type: "INTEGER"},
		{Name: "isExternalTrack", Type: isExternalTrackType},
		{Name: "uidOfExternalDatabase", Type: "TEXT"},
		{Name: "idTrackInExternalDatabase", Type: "INTEGER"},
		{Name: "idAlbumArt", Type: "INTEGER"},
	}

	if hasFileBytes {
		cols = append(cols,
			Column{Name: "fileBytes", Type: "INTEGER"},
			Column{Name: "pdbImportKey", Type: "INTEGER"})
	}
	if hasURI {
		cols = append(cols, Column{Name: "uri", Type: "TEXT"})
	}
	if hasBeatGridLocked {
		cols = append(cols, Column{Name: "isBeatGridLocked", Type: "INTEGER"})
	}

	return Table{
		Name:    "Track",
		Columns: cols,
		Indexes: []Index{
			{Name: "idAlbumArtIndex", Origin: "c", Columns: []string{"idAlbumArt"}},
		},
	}
} // func trackTable(hasFileBytes, hasURI, hasBeatGridLocked bool, isExternalTrackType string) Table

func metaDataTable() Table {
	return Table{
		Name: "MetaData",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "type", Type: "INTEGER", PKRank: 2},
			{Name: "text", Type: "TEXT"},
		},
	}
} // func metaDataTable() Table

func metaDataIntegerTable() Table {
	return Table{
		Name: "MetaDataInteger",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "type", Type: "INTEGER", PKRank: 2},
			{Name: "value", Type: "INTEGER"},
		},
	}
} // func metaDataIntegerTable() Table

func albumArtTable() Table {
	return Table{
		Name: "AlbumArt",
		Columns: []Column{
			{Name: "id", Type: "INTEGER", PKRank: 1},
			{Name: "hash", Type: "TEXT"},
			{Name: "albumArt", Type: "BLOB"},
		},
	}
} // func albumArtTable() Table

// performanceDataTable builds the PerformanceData table definition,
// trimming the columns not yet present at older versions.
func performanceDataTable(hasHighRes, hasLoops, hasRekordbox, hasTraktor bool) Table {
	var cols = []Column{
		{Name: "id", Type: "INTEGER", PKRank: 1},
		{Name: "isAnalyzed", Type: "NUMERIC", NotNull: true, Default: "0"},
		{Name: "isRendered", Type: "NUMERIC", NotNull: true, Default: "0"},
		{Name: "trackData", Type: "BLOB"},
	}

	if hasHighRes {
		cols = append(cols, Column{Name: "highResolutionWaveFormData", Type: "BLOB"})
	}

	cols = append(cols,
		Column{Name: "overviewWaveFormData", Type: "BLOB"},
		Column{Name: "beatData", Type: "BLOB"},
		Column{Name: "quickCues", Type: "BLOB"})

	if hasLoops {
		cols = append(cols, Column{Name: "loops", Type: "BLOB"})
	}

	cols = append(cols, Column{Name: "hasSeratoValues", Type: "NUMERIC", NotNull: true, Default: "0"})

	if hasRekordbox {
		cols = append(cols, Column{Name: "hasRekordboxValues", Type: "NUMERIC", NotNull: true, Default: "0"})
	}
	if hasTraktor {
		cols = append(cols, Column{Name: "hasTraktorValues", Type: "NUMERIC", NotNull: true, Default: "0"})
	}

	return Table{Name: "PerformanceData", Columns: cols}
} // func performanceDataTable(hasHighRes, hasLoops, hasRekordbox, hasTraktor bool) Table

func musicTables(hasFileBytes, hasURI, hasBeatGridLocked bool, isExternalTrackType string) Tables {
	return Tables{
		informationTable(),
		trackTable(hasFileBytes, hasURI, hasBeatGridLocked, isExternalTrackType),
		metaDataTable(),
		metaDataIntegerTable(),
		albumArtTable(),
	}
} // func musicTables(...) Tables

func perfTables(hasHighRes, hasLoops, hasRekordbox, hasTraktor bool) Tables {
	return Tables{
		informationTable(),
		performanceDataTable(hasHighRes, hasLoops, hasRekordbox, hasTraktor),
	}
} // func perfTables(...) Tables

// Descriptors holds the reference schema for every version this
// package recognizes, keyed by version.
var Descriptors = map[semver.Version]Descriptor{
	semver.V1_6_0: {
		Version:     semver.V1_6_0,
		MusicTables: musicTables(false, false, false, "INTEGER"),
		PerfTables:  perfTables(false, false, false, false),
	},
	semver.V1_7_1: {
		Version:     semver.V1_7_1,
		MusicTables: musicTables(false, false, false, "INTEGER"),
		PerfTables:  perfTables(false, true, true, false),
	},
	semver.V1_9_1: {
		Version:     semver.V1_9_1,
		MusicTables: musicTables(false, false, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, false),
	},
	semver.V1_11_1: {
		Version:     semver.V1_11_1,
		MusicTables: musicTables(false, false, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_13_0: {
		Version:     semver.V1_13_0,
		MusicTables: musicTables(true, false, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_13_1: {
		Version:     semver.V1_13_1,
		MusicTables: musicTables(true, false, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_13_2: {
		Version:     semver.V1_13_2,
		MusicTables: musicTables(true, false, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_15_0: {
		Version:     semver.V1_15_0,
		MusicTables: musicTables(true, false, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_17_0: {
		Version:     semver.V1_17_0,
		MusicTables: musicTables(true, true, false, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_18_0FW: {
		Version:     semver.V1_18_0FW,
		MusicTables: musicTables(true, true, true, "NUMERIC"),
		PerfTables:  perfTables(true, true, true, true),
	},
	semver.V1_18_0EP: {
		Version:     semver.V1_18_0EP,
		MusicTables: musicTables(true, true, true, "INTEGER"),
		PerfTables:  perfTables(true, true, true, true),
	},
}

// Lookup returns the reference Descriptor for v, and whether it is
// recognized at all.
func Lookup(v semver.Version) (Descriptor, bool) {
	d, ok := Descriptors[v]
	return d, ok
} // func Lookup(v semver.Version) (Descriptor, bool)
