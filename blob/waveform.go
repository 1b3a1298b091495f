package blob

import "fmt"

const (
	highResWaveformVersion uint32 = 2
	overviewWaveformVersion uint32 = 2
)

// WaveformPoint is a single rendered value/opacity pair, each in the
// range 0-255.
type WaveformPoint struct {
	Value   uint8
	Opacity uint8
}

// HighResWaveformEntry is one slice of the high-resolution waveform,
// carrying a separate point for the low, mid and high frequency
// bands.
type HighResWaveformEntry struct {
	Low  WaveformPoint
	Mid  WaveformPoint
	High WaveformPoint
}

// HighResWaveformData is the full-resolution, three-band waveform
// rendered by the player while scrubbing closely.
type HighResWaveformData struct {
	SamplesPerEntry float64
	Entries         []HighResWaveformEntry
}

// OverviewWaveformData is the coarse, single-band waveform shown in a
// track's overview strip.
type OverviewWaveformData struct {
	SamplesPerEntry float64
	Entries         []WaveformPoint
}

const highResEntrySize = 6 // low, mid, high: value + opacity each

// DecodeHighResWaveformData decodes a high-resolution waveform column
// value. The entry count is derived from the extent's length, never
// from an externally supplied count.
func DecodeHighResWaveformData(col []byte) (HighResWaveformData, error) {
	payload, err := inflate(col)
	if err != nil {
		return HighResWaveformData{}, err
	}
	if payload == nil {
		return HighResWaveformData{}, nil
	}

	r := NewReader(payload)

	version, err := r.Uint32()
	if err != nil {
		return HighResWaveformData{}, err
	}
	if version != highResWaveformVersion {
		logger.Printf("[ERROR] Unsupported high-res waveform version %d\n", version)
		return HighResWaveformData{}, fmt.Errorf("%w: high-res waveform version %d", ErrUnsupportedBlobVersion, version)
	}

	var wd HighResWaveformData
	if wd.SamplesPerEntry, err = r.Float64(); err != nil {
		return HighResWaveformData{}, err
	}

	ext, err := r.Extent()
	if err != nil {
		return HighResWaveformData{}, err
	}
	if ext.Remaining()%highResEntrySize != 0 {
		return HighResWaveformData{}, fmt.Errorf("%w: high-res waveform entry extent not a multiple of %d bytes",
			ErrCorruptBlob, highResEntrySize)
	}

	count := ext.Remaining() / highResEntrySize
	wd.Entries = make([]HighResWaveformEntry, 0, count)
	for !ext.Done() {
		var e HighResWaveformEntry
		if e.Low.Value, err = ext.Uint8(); err != nil {
			return HighResWaveformData{}, err
		}
		if e.Low.Opacity, err = ext.Uint8(); err != nil {
			return HighResWaveformData{}, err
		}
		if e.Mid.Value, err = ext.Uint8(); err != nil {
			return HighResWaveformData{}, err
		}
		if e.Mid.Opacity, err = ext.Uint8(); err != nil {
			return HighResWaveformData{}, err
		}
		if e.High.Value, err = ext.Uint8(); err != nil {
			return HighResWaveformData{}, err
		}
		if e.High.Opacity, err = ext.Uint8(); err != nil {
			return HighResWaveformData{}, err
		}
		wd.Entries = append(wd.Entries, e)
	}

	if !r.Done() {
		return HighResWaveformData{}, fmt.Errorf("%w: trailing bytes after high-res waveform", ErrCorruptBlob)
	}

	return wd, nil
} // func DecodeHighResWaveformData(col []byte) (HighResWaveformData, error)

// EncodeHighResWaveformData produces the on-disk column value for wd.
func EncodeHighResWaveformData(wd HighResWaveformData) ([]byte, error) {
	entries := NewWriter()
	for _, e := range wd.Entries {
		entries.PutUint8(e.Low.Value)
		entries.PutUint8(e.Low.Opacity)
		entries.PutUint8(e.Mid.Value)
		entries.PutUint8(e.Mid.Opacity)
		entries.PutUint8(e.High.Value)
		entries.PutUint8(e.High.Opacity)
	}

	w := NewWriter()
	w.PutUint32(highResWaveformVersion)
	w.PutFloat64(wd.SamplesPerEntry)
	w.PutExtent(entries.Bytes())

	return deflate(w.Bytes())
} // func EncodeHighResWaveformData(wd HighResWaveformData) ([]byte, error)

const overviewEntrySize = 2 // value + opacity

// DecodeOverviewWaveformData decodes an overview waveform column
// value.
func DecodeOverviewWaveformData(col []byte) (OverviewWaveformData, error) {
	payload, err := inflate(col)
	if err != nil {
		return OverviewWaveformData{}, err
	}
	if payload == nil {
		return OverviewWaveformData{}, nil
	}

	r := NewReader(payload)

	version, err := r.Uint32()
	if err != nil {
		return OverviewWaveformData{}, err
	}
	if version != overviewWaveformVersion {
		logger.Printf("[ERROR] Unsupported overview waveform version %d\n", version)
		return OverviewWaveformData{}, fmt.Errorf("%w: overview waveform version %d", ErrUnsupportedBlobVersion, version)
	}

	var wd OverviewWaveformData
	if wd.SamplesPerEntry, err = r.Float64(); err != nil {
		return OverviewWaveformData{}, err
	}

	ext, err := r.Extent()
	if err != nil {
		return OverviewWaveformData{}, err
	}
	if ext.Remaining()%overviewEntrySize != 0 {
		return OverviewWaveformData{}, fmt.Errorf("%w: overview waveform entry extent not a multiple of %d bytes",
			ErrCorruptBlob, overviewEntrySize)
	}

	count := ext.Remaining() / overviewEntrySize
	wd.Entries = make([]WaveformPoint, 0, count)
	for !ext.Done() {
		var p WaveformPoint
		if p.Value, err = ext.Uint8(); err != nil {
			return OverviewWaveformData{}, err
		}
		if p.Opacity, err = ext.Uint8(); err != nil {
			return OverviewWaveformData{}, err
		}
		wd.Entries = append(wd.Entries, p)
	}

	if !r.Done() {
		return OverviewWaveformData{}, fmt.Errorf("%w: trailing bytes after overview waveform", ErrCorruptBlob)
	}

	return wd, nil
} // func DecodeOverviewWaveformData(col []byte) (OverviewWaveformData, error)

// EncodeOverviewWaveformData produces the on-disk column value for wd.
func EncodeOverviewWaveformData(wd OverviewWaveformData) ([]byte, error) {
	entries := NewWriter()
	for _, p := range wd.Entries {
		entries.PutUint8(p.Value)
		entries.PutUint8(p.Opacity)
	}

	w := NewWriter()
	w.PutUint32(overviewWaveformVersion)
	w.PutFloat64(wd.SamplesPerEntry)
	w.PutExtent(entries.Bytes())

	return deflate(w.Bytes())
} // func EncodeOverviewWaveformData(wd OverviewWaveformData) ([]byte, error)
