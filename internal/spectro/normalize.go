package spectro

// Decibel bounds of the amplitude bytes delivered by the magnitude source:
// byte 0 maps to MinDb, byte 255 to MaxDb.
const (
	MinDb = -100.0
	MaxDb = -20.0
)

// Normalizer maps raw magnitude samples onto [0,1] through a dynamic-range
// window anchored at MaxDb. Anchoring at the top keeps the loudest content at
// full brightness; narrowing the window only trims the quiet tail.
//
// Normalizer is a value type; the pipeline builds one per row from the
// settings snapshot. RangeDb is assumed already clamped by the settings
// boundary.
type Normalizer struct {
	MinDb   float64
	MaxDb   float64
	RangeDb float64
}

// NormalizeDb maps a decibel value into [0,1], clamped.
func (n Normalizer) NormalizeDb(db float64) float64 {
	if n.RangeDb <= 0 {
		return 0
	}
	floor := n.MaxDb - n.RangeDb
	return clamp01((db - floor) / n.RangeDb)
}

// NormalizeByte maps an amplitude byte, interpreted linearly across
// [MinDb,MaxDb], into [0,1].
func (n Normalizer) NormalizeByte(b uint8) float64 {
	db := n.MinDb + float64(b)/255*(n.MaxDb-n.MinDb)
	return n.NormalizeDb(db)
}

// Row normalizes a whole frame into dst, reusing its backing array when large
// enough. Every output value is in [0,1].
func (n Normalizer) Row(frame RawFrame, dst []float64) []float64 {
	if cap(dst) < len(frame.Bins) {
		dst = make([]float64, len(frame.Bins))
	}
	dst = dst[:len(frame.Bins)]
	for i, b := range frame.Bins {
		dst[i] = n.NormalizeByte(b)
	}
	return dst
}
