package blob

import "fmt"

// trackDataVersion is the leading version tag inside an encoded
// TrackData payload.
const trackDataVersion uint32 = 2

// TrackData holds the coarse per-track analysis results: sample rate,
// sample count, average loudness and the detected musical key.
type TrackData struct {
	SampleRate      float64
	SampleCount     float64
	AverageLoudness float64
	Key             int32
}

// DecodeTrackData decodes a track-data column value. An empty column
// decodes to a default (zero-valued) TrackData.
func DecodeTrackData(col []byte) (TrackData, error) {
	payload, err := inflate(col)
	if err != nil {
		return TrackData{}, err
	}
	if payload == nil {
		return TrackData{}, nil
	}

	r := NewReader(payload)

	version, err := r.Uint32()
	if err != nil {
		return TrackData{}, err
	}
	if version != trackDataVersion {
		logger.Printf("[ERROR] Unsupported track data version %d\n", version)
		return TrackData{}, fmt.Errorf("%w: track data version %d", ErrUnsupportedBlobVersion, version)
	}

	ext, err := r.Extent()
	if err != nil {
		return TrackData{}, err
	}

	var td TrackData
	if td.SampleRate, err = ext.Float64(); err != nil {
		return TrackData{}, err
	}
	if td.SampleCount, err = ext.Float64(); err != nil {
		return TrackData{}, err
	}
	if td.AverageLoudness, err = ext.Float64(); err != nil {
		return TrackData{}, err
	}
	if td.Key, err = ext.Int32(); err != nil {
		return TrackData{}, err
	}
	if !ext.Done() {
		return TrackData{}, fmt.Errorf("%w: trailing bytes in track data extent", ErrCorruptBlob)
	}
	if !r.Done() {
		return TrackData{}, fmt.Errorf("%w: trailing bytes after track data extent", ErrCorruptBlob)
	}

	return td, nil
} // func DecodeTrackData(col []byte) (TrackData, error)

// EncodeTrackData produces the on-disk column value for td. Encoding
// an empty TrackData does not special-case a zero-length column — use
// nil/omit the column directly for that; this always emits a framed
// blob.
func EncodeTrackData(td TrackData) ([]byte, error) {
	fields := NewWriter()
	fields.PutFloat64(td.SampleRate)
	fields.PutFloat64(td.SampleCount)
	fields.PutFloat64(td.AverageLoudness)
	fields.PutInt32(td.Key)

	w := NewWriter()
	w.PutUint32(trackDataVersion)
	w.PutExtent(fields.Bytes())

	return deflate(w.Bytes())
} // func EncodeTrackData(td TrackData) ([]byte, error)
