package render

// FrameQueue holds at most one callback waiting for the next display
// refresh. The host decides when a refresh happens and calls Fire with the
// pending id; a cancelled or replaced request never runs.
//
// FrameQueue is not safe for concurrent use. It is driven from the same
// goroutine as the Session.
type FrameQueue struct {
	seq     uint64
	pending *frameRequest
}

type frameRequest struct {
	id uint64
	fn func()
}

// Frame is a handle to a requested callback.
type Frame struct {
	id uint64
	q  *FrameQueue
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame schedules fn for the next refresh, replacing any request
// still pending.
func (q *FrameQueue) RequestFrame(fn func()) *Frame {
	q.seq++
	q.pending = &frameRequest{id: q.seq, fn: fn}
	return &Frame{id: q.seq, q: q}
}

// Pending returns the id of the waiting request, if any.
func (q *FrameQueue) Pending() (uint64, bool) {
	if q.pending == nil {
		return 0, false
	}
	return q.pending.id, true
}

// Fire runs the pending callback if its id matches. It reports whether a
// callback ran.
func (q *FrameQueue) Fire(id uint64) bool {
	if q.pending == nil || q.pending.id != id {
		return false
	}
	fn := q.pending.fn
	q.pending = nil
	fn()
	return true
}

// Step fires whatever is pending.
func (q *FrameQueue) Step() bool {
	id, ok := q.Pending()
	if !ok {
		return false
	}
	return q.Fire(id)
}

// ID returns the request id.
func (f *Frame) ID() uint64 { return f.id }

// Cancel withdraws the request if it has not run yet. Safe on a nil Frame.
func (f *Frame) Cancel() {
	if f == nil || f.q.pending == nil || f.q.pending.id != f.id {
		return
	}
	f.q.pending = nil
}
