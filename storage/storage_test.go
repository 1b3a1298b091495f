package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xsco/libengineprime/schema"
	"github.com/xsco/libengineprime/semver"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()

	lib, err := OpenInMemory(semver.V1_18_0FW)
	if err != nil {
		t.Fatalf("OpenInMemory: %s", err.Error())
	}
	t.Cleanup(func() { lib.Close() })
	return lib
} // func openTestLibrary(t *testing.T) *Library

func TestOpenInMemorySeedsInformation(t *testing.T) {
	lib := openTestLibrary(t)

	if lib.UUID() == "" {
		t.Error("expected a non-empty library UUID")
	}
	if lib.Version() != semver.V1_18_0FW {
		t.Errorf("expected version %s, got %s", semver.V1_18_0FW, lib.Version())
	}
} // func TestOpenInMemorySeedsInformation(t *testing.T)

func TestTrackCRUD(t *testing.T) {
	lib := openTestLibrary(t)

	length := int64(240)
	bpm := int64(128)
	year := int64(2020)
	path := "/a/b.mp3"
	filename := "b.mp3"
	bitrate := int64(320000)
	bpmAnalyzed := 127.96

	tr := &Track{
		Length:      &length,
		Bpm:         &bpm,
		Year:        &year,
		Path:        &path,
		Filename:    &filename,
		Bitrate:     &bitrate,
		BpmAnalyzed: &bpmAnalyzed,
	}

	if err := lib.CreateTrack(tr); err != nil {
		t.Fatalf("CreateTrack: %s", err.Error())
	}
	if tr.ID == 0 {
		t.Fatal("expected CreateTrack to assign a non-zero id")
	}

	got, err := lib.GetTrack(tr.ID)
	if err != nil {
		t.Fatalf("GetTrack: %s", err.Error())
	}
	if got.Length == nil || *got.Length != 240 {
		t.Errorf("expected length 240, got %v", got.Length)
	}
	if got.BpmAnalyzed == nil || *got.BpmAnalyzed != bpmAnalyzed {
		t.Errorf("expected bpmAnalyzed %v, got %v", bpmAnalyzed, got.BpmAnalyzed)
	}
	if got.URI != nil {
		t.Errorf("expected URI to be nil on a freshly created track, got %v", got.URI)
	}

	newLength := int64(241)
	got.Length = &newLength
	if err = lib.UpdateTrack(got); err != nil {
		t.Fatalf("UpdateTrack: %s", err.Error())
	}

	reread, err := lib.GetTrack(tr.ID)
	if err != nil {
		t.Fatalf("GetTrack after update: %s", err.Error())
	}
	if reread.Length == nil || *reread.Length != 241 {
		t.Errorf("expected length 241 after update, got %v", reread.Length)
	}

	if err = lib.DeleteTrack(tr.ID); err != nil {
		t.Fatalf("DeleteTrack: %s", err.Error())
	}
	if _, err = lib.GetTrack(tr.ID); err != ErrTrackDeleted {
		t.Errorf("expected ErrTrackDeleted after delete, got %v", err)
	}
} // func TestTrackCRUD(t *testing.T)

func TestCanonicalMetaDataWriteIsExact(t *testing.T) {
	lib := openTestLibrary(t)

	tr := &Track{}
	if err := lib.CreateTrack(tr); err != nil {
		t.Fatalf("CreateTrack: %s", err.Error())
	}

	m := CanonicalMetaData{
		Title:         "Song",
		Artist:        "Artist",
		Album:         "Album",
		Genre:         "Genre",
		Comment:       "",
		Publisher:     "",
		Composer:      "",
		DurationMmSs:  "4:00",
		FileExtension: "mp3",
	}
	if err := lib.SetCanonicalMetaData(tr.ID, m); err != nil {
		t.Fatalf("SetCanonicalMetaData: %s", err.Error())
	}

	all, err := lib.GetAllMetaData(tr.ID)
	if err != nil {
		t.Fatalf("GetAllMetaData: %s", err.Error())
	}
	if len(all) != 14 {
		// EverPlayed is left NULL, so 14 of the 15 rows carry text.
		t.Errorf("expected 14 non-null metadata rows, got %d", len(all))
	}
	if all[MetaDataTitle] != "Song" {
		t.Errorf("expected title %q, got %q", "Song", all[MetaDataTitle])
	}
	if all[MetaDataUnknown15] != unknownMetaDataValue {
		t.Errorf("expected unknown slot 15 to be %q, got %q", unknownMetaDataValue, all[MetaDataUnknown15])
	}

	everPlayed, err := lib.GetMetaData(tr.ID, MetaDataEverPlayed)
	if err != nil {
		t.Fatalf("GetMetaData(EverPlayed): %s", err.Error())
	}
	if everPlayed != nil {
		t.Errorf("expected ever-played to be nil, got %v", *everPlayed)
	}
} // func TestCanonicalMetaDataWriteIsExact(t *testing.T)

func TestCanonicalIntMetaDataWriteIsExact(t *testing.T) {
	lib := openTestLibrary(t)

	tr := &Track{}
	if err := lib.CreateTrack(tr); err != nil {
		t.Fatalf("CreateTrack: %s", err.Error())
	}

	m := CanonicalIntMetaData{
		MusicalKey:            5,
		Rating:                80,
		LastPlayedTimestamp:   1000,
		LastModifiedTimestamp: 2000,
		LastAccessedTimestamp: 3000,
		LastPlayHash:          42,
	}
	if err := lib.SetCanonicalIntMetaData(tr.ID, m); err != nil {
		t.Fatalf("SetCanonicalIntMetaData: %s", err.Error())
	}

	all, err := lib.GetAllIntMetaData(tr.ID)
	if err != nil {
		t.Fatalf("GetAllIntMetaData: %s", err.Error())
	}
	if len(all) != 12 {
		t.Errorf("expected all 12 integer metadata rows, got %d", len(all))
	}
	if all[IntMetaDataUnknown11] != unknownIntMetaDataValue {
		t.Errorf("expected unknown slot 11 to be %d, got %d", unknownIntMetaDataValue, all[IntMetaDataUnknown11])
	}
	if all[IntMetaDataMusicalKey] != 5 {
		t.Errorf("expected musical key 5, got %d", all[IntMetaDataMusicalKey])
	}
} // func TestCanonicalIntMetaDataWriteIsExact(t *testing.T)

func TestPerformanceDataDefaultSynthesis(t *testing.T) {
	lib := openTestLibrary(t)

	tr := &Track{}
	if err := lib.CreateTrack(tr); err != nil {
		t.Fatalf("CreateTrack: %s", err.Error())
	}

	pd, err := lib.GetPerformanceData(tr.ID)
	if err != nil {
		t.Fatalf("GetPerformanceData: %s", err.Error())
	}
	if pd.IsAnalyzed || pd.IsRendered {
		t.Errorf("expected default performance data to be neither analyzed nor rendered, got %+v", pd)
	}

	pd.IsAnalyzed = true
	pd.TrackData.SampleRate = 44100
	if err = lib.SetPerformanceData(pd); err != nil {
		t.Fatalf("SetPerformanceData: %s", err.Error())
	}

	reread, err := lib.GetPerformanceData(tr.ID)
	if err != nil {
		t.Fatalf("GetPerformanceData after set: %s", err.Error())
	}
	if !reread.IsAnalyzed {
		t.Error("expected isAnalyzed to be true after SetPerformanceData")
	}
	if reread.TrackData.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %v", reread.TrackData.SampleRate)
	}

	if err = lib.ClearPerformanceData(tr.ID); err != nil {
		t.Fatalf("ClearPerformanceData: %s", err.Error())
	}
	cleared, err := lib.GetPerformanceData(tr.ID)
	if err != nil {
		t.Fatalf("GetPerformanceData after clear: %s", err.Error())
	}
	if cleared.IsAnalyzed {
		t.Error("expected performance data to read back as default after clear")
	}
} // func TestPerformanceDataDefaultSynthesis(t *testing.T)

func TestVersionDisambiguation(t *testing.T) {
	fw, err := OpenInMemory(semver.V1_18_0FW)
	if err != nil {
		t.Fatalf("OpenInMemory(fw): %s", err.Error())
	}
	defer fw.Close()

	ep, err := OpenInMemory(semver.V1_18_0EP)
	if err != nil {
		t.Fatalf("OpenInMemory(ep): %s", err.Error())
	}
	defer ep.Close()

	fwColType, err := trackExternalColumnType(fw.db)
	if err != nil {
		t.Fatalf("trackExternalColumnType(fw): %s", err.Error())
	}
	epColType, err := trackExternalColumnType(ep.db)
	if err != nil {
		t.Fatalf("trackExternalColumnType(ep): %s", err.Error())
	}

	if fwColType != "NUMERIC" {
		t.Errorf("expected firmware variant to declare NUMERIC, got %s", fwColType)
	}
	if epColType != "INTEGER" {
		t.Errorf("expected desktop variant to declare INTEGER, got %s", epColType)
	}

	// Exercise the real detection path, not just the probe it relies on.
	fwVersion, err := detectVersion(fw.db)
	if err != nil {
		t.Fatalf("detectVersion(fw): %s", err.Error())
	}
	if fwVersion != semver.V1_18_0FW {
		t.Errorf("expected detectVersion to resolve %s, got %s", semver.V1_18_0FW, fwVersion)
	}

	epVersion, err := detectVersion(ep.db)
	if err != nil {
		t.Fatalf("detectVersion(ep): %s", err.Error())
	}
	if epVersion != semver.V1_18_0EP {
		t.Errorf("expected detectVersion to resolve %s, got %s", semver.V1_18_0EP, epVersion)
	}
} // func TestVersionDisambiguation(t *testing.T)

func TestOpenNewThenOpenExistingRoundTrips(t *testing.T) {
	dir := t.TempDir()
	musicPath := filepath.Join(dir, "Music.db")
	perfPath := filepath.Join(dir, "PerformanceData.db")

	lib, err := OpenNew(musicPath, perfPath, semver.V1_13_2)
	if err != nil {
		t.Fatalf("OpenNew: %s", err.Error())
	}

	uuid := lib.UUID()
	if uuid == "" {
		t.Fatal("expected OpenNew to seed a non-empty UUID")
	}

	length := int64(180)
	tr := &Track{Length: &length}
	if err = lib.CreateTrack(tr); err != nil {
		t.Fatalf("CreateTrack: %s", err.Error())
	}
	if err = lib.Close(); err != nil {
		t.Fatalf("Close: %s", err.Error())
	}

	reopened, err := OpenExisting(musicPath, perfPath)
	if err != nil {
		t.Fatalf("OpenExisting: %s", err.Error())
	}
	defer reopened.Close()

	if reopened.UUID() != uuid {
		t.Errorf("expected UUID %s to survive reopening, got %s", uuid, reopened.UUID())
	}
	if reopened.Version() != semver.V1_13_2 {
		t.Errorf("expected version %s to survive reopening, got %s", semver.V1_13_2, reopened.Version())
	}

	got, err := reopened.GetTrack(tr.ID)
	if err != nil {
		t.Fatalf("GetTrack after reopen: %s", err.Error())
	}
	if got.Length == nil || *got.Length != 180 {
		t.Errorf("expected length 180 to survive reopening, got %v", got.Length)
	}
} // func TestOpenNewThenOpenExistingRoundTrips(t *testing.T)

func TestOpenExistingDetectsMutatedCatalog(t *testing.T) {
	dir := t.TempDir()
	musicPath := filepath.Join(dir, "Music.db")
	perfPath := filepath.Join(dir, "PerformanceData.db")

	lib, err := OpenNew(musicPath, perfPath, semver.V1_13_2)
	if err != nil {
		t.Fatalf("OpenNew: %s", err.Error())
	}
	if _, err = lib.db.Exec("ALTER TABLE music.Track ADD COLUMN unexpectedColumn TEXT"); err != nil {
		t.Fatalf("mutate catalog: %s", err.Error())
	}
	if err = lib.Close(); err != nil {
		t.Fatalf("Close: %s", err.Error())
	}

	_, err = OpenExisting(musicPath, perfPath)
	if err == nil {
		t.Fatal("expected OpenExisting to fail against a mutated catalog")
	}

	var inconsistency *schema.DatabaseInconsistency
	if !errors.As(err, &inconsistency) {
		t.Fatalf("expected a *schema.DatabaseInconsistency, got %T: %v", err, err)
	}
} // func TestOpenExistingDetectsMutatedCatalog(t *testing.T)
