package spectro

// DefaultQueueCapacity bounds how many rows accumulate while the display is
// hidden. At the hidden cadence cap this is well over ten minutes of history.
const DefaultQueueCapacity = 10000

// RowQueue is a bounded FIFO of pixel rows backed by a fixed-capacity ring.
// Pushing into a full queue evicts the oldest row: recent history is worth
// more than old history. Push and Drain are O(1) per row.
type RowQueue struct {
	rows [][]RGB
	head int // index of the oldest row
	size int
}

// NewRowQueue creates a queue holding at most capacity rows.
func NewRowQueue(capacity int) *RowQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &RowQueue{rows: make([][]RGB, capacity)}
}

func (q *RowQueue) Len() int { return q.size }
func (q *RowQueue) Cap() int { return len(q.rows) }

// Push appends row, evicting the oldest entry if the queue is full.
func (q *RowQueue) Push(row []RGB) {
	if q.size == len(q.rows) {
		q.rows[q.head] = row
		q.head = (q.head + 1) % len(q.rows)
		return
	}
	q.rows[(q.head+q.size)%len(q.rows)] = row
	q.size++
}

// Drain delivers every queued row to fn in FIFO order and empties the queue.
func (q *RowQueue) Drain(fn func(row []RGB)) {
	for q.size > 0 {
		row := q.rows[q.head]
		q.rows[q.head] = nil
		q.head = (q.head + 1) % len(q.rows)
		q.size--
		fn(row)
	}
	q.head = 0
}
