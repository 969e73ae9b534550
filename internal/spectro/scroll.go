package spectro

// ScrollBuffer is the persistent waterfall surface: a fixed width×height
// pixel grid where inserting a row shifts all existing content down by one
// and writes the new row at the top. The bottom row scrolls off and is
// discarded.
type ScrollBuffer struct {
	pix    []RGB
	width  int
	height int
}

// NewScrollBuffer allocates a cleared buffer. Non-positive dimensions yield a
// zero-size buffer that ignores insertions.
func NewScrollBuffer(width, height int) *ScrollBuffer {
	b := &ScrollBuffer{}
	b.Resize(width, height)
	return b
}

func (b *ScrollBuffer) Width() int  { return b.width }
func (b *ScrollBuffer) Height() int { return b.height }

// Resize reallocates the grid at the new dimensions. History is cleared:
// rows rendered at a different pixel width cannot be meaningfully resampled
// without the raw frames, which are not retained.
func (b *ScrollBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b.width = width
	b.height = height
	b.pix = make([]RGB, width*height)
}

// InsertRow writes row at the top after shifting existing content down one
// row. Rows whose length does not match the current width are dropped; they
// can only come from a stale plan around a resize.
func (b *ScrollBuffer) InsertRow(row []RGB) {
	if b.width == 0 || b.height == 0 || len(row) != b.width {
		return
	}
	copy(b.pix[b.width:], b.pix[:len(b.pix)-b.width])
	copy(b.pix[:b.width], row)
}

// Row returns the pixels of row y, top row first. The slice aliases the
// buffer and is valid until the next InsertRow or Resize.
func (b *ScrollBuffer) Row(y int) []RGB {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.pix[y*b.width : (y+1)*b.width]
}

// At returns the pixel at column x of row y, or the zero color out of range.
func (b *ScrollBuffer) At(x, y int) RGB {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return RGB{}
	}
	return b.pix[y*b.width+x]
}
