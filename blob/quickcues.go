package blob

import "fmt"

const quickCuesVersion uint32 = 2

// NumQuickCues is the fixed number of quick-cue slots a track carries.
const NumQuickCues = 8

// PadColor is an RGBA pad-light color.
type PadColor struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha uint8
}

// QuickCue is one hot-cue slot. SampleOffset is negative when the cue
// is unset.
type QuickCue struct {
	Label        string
	SampleOffset float64
	Color        PadColor
}

// QuickCuesData holds a track's eight quick cues plus the main cue,
// which is tracked separately in both its analyzed ("default") and
// user-adjusted form.
type QuickCuesData struct {
	Cues            [NumQuickCues]QuickCue
	AdjustedMainCue float64
	DefaultMainCue  float64
}

func readColor(r *Reader) (PadColor, error) {
	var c PadColor
	var err error
	if c.Red, err = r.Uint8(); err != nil {
		return c, err
	}
	if c.Green, err = r.Uint8(); err != nil {
		return c, err
	}
	if c.Blue, err = r.Uint8(); err != nil {
		return c, err
	}
	if c.Alpha, err = r.Uint8(); err != nil {
		return c, err
	}
	return c, nil
} // func readColor(r *Reader) (PadColor, error)

func writeColor(w *Writer, c PadColor) {
	w.PutUint8(c.Red)
	w.PutUint8(c.Green)
	w.PutUint8(c.Blue)
	w.PutUint8(c.Alpha)
} // func writeColor(w *Writer, c PadColor)

// DecodeQuickCuesData decodes a quick-cues column value. An empty
// column decodes to DefaultQuickCuesData.
func DecodeQuickCuesData(col []byte) (QuickCuesData, error) {
	payload, err := inflate(col)
	if err != nil {
		return QuickCuesData{}, err
	}
	if payload == nil {
		return DefaultQuickCuesData(), nil
	}

	r := NewReader(payload)

	version, err := r.Uint32()
	if err != nil {
		return QuickCuesData{}, err
	}
	if version != quickCuesVersion {
		logger.Printf("[ERROR] Unsupported quick cues version %d\n", version)
		return QuickCuesData{}, fmt.Errorf("%w: quick cues version %d", ErrUnsupportedBlobVersion, version)
	}

	var qc QuickCuesData
	for i := 0; i < NumQuickCues; i++ {
		if qc.Cues[i].Label, err = r.String(); err != nil {
			return QuickCuesData{}, err
		}
		if qc.Cues[i].SampleOffset, err = r.Float64(); err != nil {
			return QuickCuesData{}, err
		}
		if qc.Cues[i].Color, err = readColor(r); err != nil {
			return QuickCuesData{}, err
		}
	}

	if qc.AdjustedMainCue, err = r.Float64(); err != nil {
		return QuickCuesData{}, err
	}
	if qc.DefaultMainCue, err = r.Float64(); err != nil {
		return QuickCuesData{}, err
	}
	if !r.Done() {
		return QuickCuesData{}, fmt.Errorf("%w: trailing bytes after quick cues", ErrCorruptBlob)
	}

	return qc, nil
} // func DecodeQuickCuesData(col []byte) (QuickCuesData, error)

// EncodeQuickCuesData produces the on-disk column value for qc.
func EncodeQuickCuesData(qc QuickCuesData) ([]byte, error) {
	w := NewWriter()
	w.PutUint32(quickCuesVersion)

	for _, cue := range qc.Cues {
		w.PutString(cue.Label)
		w.PutFloat64(cue.SampleOffset)
		writeColor(w, cue.Color)
	}

	w.PutFloat64(qc.AdjustedMainCue)
	w.PutFloat64(qc.DefaultMainCue)

	return deflate(w.Bytes())
} // func EncodeQuickCuesData(qc QuickCuesData) ([]byte, error)

// DefaultQuickCuesData returns the value a track with no analysis
// carries: eight unset cues (negative sample offset) and a zeroed
// main cue.
func DefaultQuickCuesData() QuickCuesData {
	var qc QuickCuesData
	for i := range qc.Cues {
		qc.Cues[i].SampleOffset = -1
	}
	return qc
} // func DefaultQuickCuesData() QuickCuesData
