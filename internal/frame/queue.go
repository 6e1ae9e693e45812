// Package frame provides a cooperative frame scheduler: callbacks are
// requested for "the next frame" and run when the host fires a frame.
package frame

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Queue holds callbacks waiting for the next frame. It is not safe for
// concurrent use; the host drives it from its event goroutine.
type Queue struct {
	next  Handle
	order []Handle
	fns   map[Handle]func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{fns: make(map[Handle]func())}
}

// RequestFrame schedules fn to run on the next Fire.
func (q *Queue) RequestFrame(fn func()) Handle {
	q.next++
	q.order = append(q.order, q.next)
	q.fns[q.next] = fn
	return q.next
}

// CancelFrame drops a pending callback. Unknown or already-run handles are ignored.
func (q *Queue) CancelFrame(h Handle) {
	delete(q.fns, h)
}

// Fire runs the callbacks pending at the time of the call, in request
// order, and returns how many ran. Callbacks requested while firing wait
// for the next Fire; callbacks cancelled while firing are skipped.
func (q *Queue) Fire() int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, id := range batch {
		fn, ok := q.fns[id]
		if !ok {
			continue
		}
		delete(q.fns, id)
		if fn != nil {
			fn()
		}
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next Fire.
func (q *Queue) Pending() int {
	return len(q.fns)
}
