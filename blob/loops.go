package blob

import "fmt"

const loopsVersion uint32 = 2

// NumLoops is the fixed number of saved-loop slots a track carries.
const NumLoops = 8

// Loop is one saved-loop slot.
type Loop struct {
	Label       string
	StartSample float64
	EndSample   float64
	IsStartSet  bool
	IsEndSet    bool
	Color       PadColor
}

// LoopsData holds a track's eight saved loops.
type LoopsData struct {
	Loops [NumLoops]Loop
}

func readBool(r *Reader) (bool, error) {
	b, err := r.Uint8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
} // func readBool(r *Reader) (bool, error)

func writeBool(w *Writer, b bool) {
	if b {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
} // func writeBool(w *Writer, b bool)

// DecodeLoopsData decodes a loops column value.
func DecodeLoopsData(col []byte) (LoopsData, error) {
	payload, err := inflate(col)
	if err != nil {
		return LoopsData{}, err
	}
	if payload == nil {
		return LoopsData{}, nil
	}

	r := NewReader(payload)

	version, err := r.Uint32()
	if err != nil {
		return LoopsData{}, err
	}
	if version != loopsVersion {
		logger.Printf("[ERROR] Unsupported loops version %d\n", version)
		return LoopsData{}, fmt.Errorf("%w: loops version %d", ErrUnsupportedBlobVersion, version)
	}

	var ld LoopsData
	for i := 0; i < NumLoops; i++ {
		l := &ld.Loops[i]
		if l.Label, err = r.String(); err != nil {
			return LoopsData{}, err
		}
		if l.StartSample, err = r.Float64(); err != nil {
			return LoopsData{}, err
		}
		if l.EndSample, err = r.Float64(); err != nil {
			return LoopsData{}, err
		}
		if l.IsStartSet, err = readBool(r); err != nil {
			return LoopsData{}, err
		}
		if l.IsEndSet, err = readBool(r); err != nil {
			return LoopsData{}, err
		}
		if l.Color, err = readColor(r); err != nil {
			return LoopsData{}, err
		}
	}

	if !r.Done() {
		return LoopsData{}, fmt.Errorf("%w: trailing bytes after loops", ErrCorruptBlob)
	}

	return ld, nil
} // func DecodeLoopsData(col []byte) (LoopsData, error)

// EncodeLoopsData produces the on-disk column value for ld.
func EncodeLoopsData(ld LoopsData) ([]byte, error) {
	w := NewWriter()
	w.PutUint32(loopsVersion)

	for _, l := range ld.Loops {
		w.PutString(l.Label)
		w.PutFloat64(l.StartSample)
		w.PutFloat64(l.EndSample)
		writeBool(w, l.IsStartSet)
		writeBool(w, l.IsEndSet)
		writeColor(w, l.Color)
	}

	return deflate(w.Bytes())
} // func EncodeLoopsData(ld LoopsData) ([]byte, error)
