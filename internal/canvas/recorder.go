package canvas

// Recorder is a Surface that keeps what was drawn since the last Clear.
type Recorder struct {
	W, H int

	Prims   []Primitive
	Clears  int
	Draws   int
	Resizes int
}

// Size implements Surface.
func (r *Recorder) Size() (int, int) { return r.W, r.H }

// Resize implements Surface.
func (r *Recorder) Resize(w, h int) bool {
	if w == r.W && h == r.H {
		return false
	}
	r.W, r.H = w, h
	r.Resizes++
	return true
}

// Clear implements Surface.
func (r *Recorder) Clear() {
	r.Clears++
	r.Prims = r.Prims[:0]
}

// Draw implements Surface.
func (r *Recorder) Draw(prims ...Primitive) {
	r.Draws++
	r.Prims = append(r.Prims, prims...)
}

var _ Surface = (*Recorder)(nil)
