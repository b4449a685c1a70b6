package graphics

// FrameID identifies a pending frame callback. Zero is never issued.
type FrameID uint64

type frameEntry struct {
	id FrameID
	fn func()
}

// FrameQueue implements Scheduler for hosts that drive their own refresh
// loop. Callbacks requested while a frame is running are deferred to the
// following frame. The zero value is ready to use. It is not safe for
// concurrent use.
type FrameQueue struct {
	lastID  FrameID
	pending []frameEntry
}

// RequestFrame queues fn for the next RunFrame.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.lastID++
	q.pending = append(q.pending, frameEntry{id: q.lastID, fn: fn})
	return q.lastID
}

// CancelFrame drops a queued callback. Unknown or already-run ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks are waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame runs every callback that was queued before the call and returns
// how many ran.
func (q *FrameQueue) RunFrame() int {
	batch := q.pending
	q.pending = nil
	for _, e := range batch {
		e.fn()
	}
	return len(batch)
}
