package blob

import "fmt"

const beatDataVersion uint32 = 2

// BeatGridMarker is one point in a beat grid: the sample offset it
// sits at, its beat number within the bar, how many beats separate it
// from the next marker, and a source flag recording where the marker
// came from (manual edit, analysis, etc). Markers within a grid are
// ordered by SampleOffset, strictly increasing.
type BeatGridMarker struct {
	SampleOffset   float64
	BeatNumber     int32
	BeatsUntilNext int32
	Source         int32
}

// BeatData holds a track's beat grid: the sampling parameters it was
// analyzed at, plus the grid as originally detected ("default") and as
// the user may have adjusted it ("adjusted").
type BeatData struct {
	SampleRate      float64
	SampleCount     float64
	DefaultMarkers  []BeatGridMarker
	AdjustedMarkers []BeatGridMarker
}

func decodeMarkers(r *Reader) ([]BeatGridMarker, error) {
	ext, err := r.Extent()
	if err != nil {
		return nil, err
	}

	count, err := ext.Uint32()
	if err != nil {
		return nil, err
	}

	markers := make([]BeatGridMarker, 0, count)
	var prev float64
	for i := uint32(0); i < count; i++ {
		var m BeatGridMarker
		if m.SampleOffset, err = ext.Float64(); err != nil {
			return nil, err
		}
		if m.BeatNumber, err = ext.Int32(); err != nil {
			return nil, err
		}
		if m.BeatsUntilNext, err = ext.Int32(); err != nil {
			return nil, err
		}
		if m.Source, err = ext.Int32(); err != nil {
			return nil, err
		}
		if i > 0 && m.SampleOffset <= prev {
			return nil, fmt.Errorf("%w: beat grid markers not strictly increasing", ErrCorruptBlob)
		}
		prev = m.SampleOffset
		markers = append(markers, m)
	}

	if !ext.Done() {
		return nil, fmt.Errorf("%w: trailing bytes in beat grid marker extent", ErrCorruptBlob)
	}

	return markers, nil
} // func decodeMarkers(r *Reader) ([]BeatGridMarker, error)

func encodeMarkers(w *Writer, markers []BeatGridMarker) {
	inner := NewWriter()
	inner.PutUint32(uint32(len(markers)))
	for _, m := range markers {
		inner.PutFloat64(m.SampleOffset)
		inner.PutInt32(m.BeatNumber)
		inner.PutInt32(m.BeatsUntilNext)
		inner.PutInt32(m.Source)
	}
	w.PutExtent(inner.Bytes())
} // func encodeMarkers(w *Writer, markers []BeatGridMarker)

// DecodeBeatData decodes a beat-data column value. An empty column
// decodes to a default (zero-valued, markerless) BeatData.
func DecodeBeatData(col []byte) (BeatData, error) {
	payload, err := inflate(col)
	if err != nil {
		return BeatData{}, err
	}
	if payload == nil {
		return BeatData{}, nil
	}

	r := NewReader(payload)

	version, err := r.Uint32()
	if err != nil {
		return BeatData{}, err
	}
	if version != beatDataVersion {
		logger.Printf("[ERROR] Unsupported beat data version %d\n", version)
		return BeatData{}, fmt.Errorf("%w: beat data version %d", ErrUnsupportedBlobVersion, version)
	}

	var bd BeatData
	if bd.SampleRate, err = r.Float64(); err != nil {
		return BeatData{}, err
	}
	if bd.SampleCount, err = r.Float64(); err != nil {
		return BeatData{}, err
	}
	if bd.DefaultMarkers, err = decodeMarkers(r); err != nil {
		return BeatData{}, err
	}
	if bd.AdjustedMarkers, err = decodeMarkers(r); err != nil {
		return BeatData{}, err
	}
	if !r.Done() {
		return BeatData{}, fmt.Errorf("%w: trailing bytes after beat data", ErrCorruptBlob)
	}

	return bd, nil
} // func DecodeBeatData(col []byte) (BeatData, error)

// EncodeBeatData produces the on-disk column value for bd.
func EncodeBeatData(bd BeatData) ([]byte, error) {
	w := NewWriter()
	w.PutUint32(beatDataVersion)
	w.PutFloat64(bd.SampleRate)
	w.PutFloat64(bd.SampleCount)
	encodeMarkers(w, bd.DefaultMarkers)
	encodeMarkers(w, bd.AdjustedMarkers)

	return deflate(w.Bytes())
} // func EncodeBeatData(bd BeatData) ([]byte, error)
