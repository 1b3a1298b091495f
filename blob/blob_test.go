package blob

import "testing"

func TestTrackDataRoundTrip(t *testing.T) {
	type testCase struct {
		td TrackData
	}

	var cases = []testCase{
		testCase{td: TrackData{SampleRate: 44100, SampleCount: 1.764e7, AverageLoudness: 0.707, Key: 5}},
		testCase{td: TrackData{}},
	}

	for _, c := range cases {
		enc, err := EncodeTrackData(c.td)
		if err != nil {
			t.Fatalf("EncodeTrackData: %s", err.Error())
		}

		dec, err := DecodeTrackData(enc)
		if err != nil {
			t.Fatalf("DecodeTrackData: %s", err.Error())
		}

		if dec != c.td {
			t.Errorf("round-trip mismatch: got %+v, want %+v", dec, c.td)
		}
	}
} // func TestTrackDataRoundTrip(t *testing.T)

func TestTrackDataEmptyColumn(t *testing.T) {
	td, err := DecodeTrackData(nil)
	if err != nil {
		t.Fatalf("DecodeTrackData(nil): %s", err.Error())
	}
	if td != (TrackData{}) {
		t.Errorf("expected default TrackData, got %+v", td)
	}
} // func TestTrackDataEmptyColumn(t *testing.T)

func TestBeatDataRoundTrip(t *testing.T) {
	var bd = BeatData{
		SampleRate:  44100,
		SampleCount: 1e7,
		DefaultMarkers: []BeatGridMarker{
			{SampleOffset: 0, BeatNumber: 0, BeatsUntilNext: 4, Source: 0},
			{SampleOffset: 22050, BeatNumber: 1, BeatsUntilNext: 4, Source: 0},
		},
		AdjustedMarkers: []BeatGridMarker{
			{SampleOffset: 100, BeatNumber: 0, BeatsUntilNext: 4, Source: 1},
		},
	}

	enc, err := EncodeBeatData(bd)
	if err != nil {
		t.Fatalf("EncodeBeatData: %s", err.Error())
	}

	dec, err := DecodeBeatData(enc)
	if err != nil {
		t.Fatalf("DecodeBeatData: %s", err.Error())
	}

	if dec.SampleRate != bd.SampleRate || dec.SampleCount != bd.SampleCount {
		t.Errorf("sampling info mismatch: got %+v, want %+v", dec, bd)
	}
	if len(dec.DefaultMarkers) != len(bd.DefaultMarkers) {
		t.Fatalf("default marker count mismatch: got %d, want %d",
			len(dec.DefaultMarkers), len(bd.DefaultMarkers))
	}
	for i := range bd.DefaultMarkers {
		if dec.DefaultMarkers[i] != bd.DefaultMarkers[i] {
			t.Errorf("default marker %d mismatch: got %+v, want %+v",
				i, dec.DefaultMarkers[i], bd.DefaultMarkers[i])
		}
	}
} // func TestBeatDataRoundTrip(t *testing.T)

func TestBeatDataRejectsNonIncreasingMarkers(t *testing.T) {
	var bd = BeatData{
		SampleRate:  44100,
		SampleCount: 1e7,
		DefaultMarkers: []BeatGridMarker{
			{SampleOffset: 100},
			{SampleOffset: 50},
		},
	}

	enc, err := EncodeBeatData(bd)
	if err != nil {
		t.Fatalf("EncodeBeatData: %s", err.Error())
	}

	if _, err = DecodeBeatData(enc); err == nil {
		t.Error("expected an error decoding non-increasing beat grid markers")
	}
} // func TestBeatDataRejectsNonIncreasingMarkers(t *testing.T)

func TestHighResWaveformRoundTrip(t *testing.T) {
	var wd = HighResWaveformData{
		SamplesPerEntry: 1024,
		Entries: []HighResWaveformEntry{
			{Low: WaveformPoint{10, 255}, Mid: WaveformPoint{20, 200}, High: WaveformPoint{30, 150}},
			{Low: WaveformPoint{40, 100}, Mid: WaveformPoint{50, 80}, High: WaveformPoint{60, 60}},
		},
	}

	enc, err := EncodeHighResWaveformData(wd)
	if err != nil {
		t.Fatalf("EncodeHighResWaveformData: %s", err.Error())
	}

	dec, err := DecodeHighResWaveformData(enc)
	if err != nil {
		t.Fatalf("DecodeHighResWaveformData: %s", err.Error())
	}

	if dec.SamplesPerEntry != wd.SamplesPerEntry {
		t.Errorf("samples per entry mismatch: got %f, want %f", dec.SamplesPerEntry, wd.SamplesPerEntry)
	}
	if len(dec.Entries) != len(wd.Entries) {
		t.Fatalf("entry count mismatch: got %d, want %d", len(dec.Entries), len(wd.Entries))
	}
	for i := range wd.Entries {
		if dec.Entries[i] != wd.Entries[i] {
			t.Errorf("entry %d mismatch: got %+v, want %+v", i, dec.Entries[i], wd.Entries[i])
		}
	}
} // func TestHighResWaveformRoundTrip(t *testing.T)

func TestOverviewWaveformRoundTrip(t *testing.T) {
	var wd = OverviewWaveformData{
		SamplesPerEntry: 2048,
		Entries: []WaveformPoint{
			{Value: 10, Opacity: 255},
			{Value: 20, Opacity: 128},
		},
	}

	enc, err := EncodeOverviewWaveformData(wd)
	if err != nil {
		t.Fatalf("EncodeOverviewWaveformData: %s", err.Error())
	}

	dec, err := DecodeOverviewWaveformData(enc)
	if err != nil {
		t.Fatalf("DecodeOverviewWaveformData: %s", err.Error())
	}

	if len(dec.Entries) != len(wd.Entries) {
		t.Fatalf("entry count mismatch: got %d, want %d", len(dec.Entries), len(wd.Entries))
	}
	for i := range wd.Entries {
		if dec.Entries[i] != wd.Entries[i] {
			t.Errorf("entry %d mismatch: got %+v, want %+v", i, dec.Entries[i], wd.Entries[i])
		}
	}
} // func TestOverviewWaveformRoundTrip(t *testing.T)

func TestQuickCuesRoundTrip(t *testing.T) {
	var qc = DefaultQuickCuesData()
	qc.Cues[0] = QuickCue{Label: "Intro", SampleOffset: 4096, Color: PadColor{255, 0, 0, 255}}
	qc.AdjustedMainCue = 128
	qc.DefaultMainCue = 0

	enc, err := EncodeQuickCuesData(qc)
	if err != nil {
		t.Fatalf("EncodeQuickCuesData: %s", err.Error())
	}

	dec, err := DecodeQuickCuesData(enc)
	if err != nil {
		t.Fatalf("DecodeQuickCuesData: %s", err.Error())
	}

	if dec != qc {
		t.Errorf("round-trip mismatch: got %+v, want %+v", dec, qc)
	}
} // func TestQuickCuesRoundTrip(t *testing.T)

func TestLoopsRoundTrip(t *testing.T) {
	var ld LoopsData
	ld.Loops[0] = Loop{
		Label:       "Build",
		StartSample: 1000,
		EndSample:   5000,
		IsStartSet:  true,
		IsEndSet:    true,
		Color:       PadColor{0, 255, 0, 255},
	}

	enc, err := EncodeLoopsData(ld)
	if err != nil {
		t.Fatalf("EncodeLoopsData: %s", err.Error())
	}

	dec, err := DecodeLoopsData(enc)
	if err != nil {
		t.Fatalf("DecodeLoopsData: %s", err.Error())
	}

	if dec != ld {
		t.Errorf("round-trip mismatch: got %+v, want %+v", dec, ld)
	}
} // func TestLoopsRoundTrip(t *testing.T)

func TestCorruptBlobUnderrun(t *testing.T) {
	if _, err := DecodeTrackData([]byte{0, 0, 0, 1}); err == nil {
		t.Error("expected an error decoding a too-short column")
	}
} // func TestCorruptBlobUnderrun(t *testing.T)
