// Implements ProcessQueue, the ordered container behind Ready, ReadySuspended and Blocked.
// Queues hold process IDs (indices into the Simulator's process arena), never the records themselves.

package sim

import (
	"fmt"
	"strings"
)

// ProcessQueue is an insertion-ordered sequence of process IDs.
// Enqueue and Dequeue give FIFO behavior; Remove and RemoveAt support the
// out-of-order departures needed by the Blocked list and SJF selection.
type ProcessQueue struct {
	ids []int
}

// NewProcessQueue returns an empty queue with room for capacity IDs.
func NewProcessQueue(capacity int) *ProcessQueue {
	return &ProcessQueue{ids: make([]int, 0, capacity)}
}

// Enqueue adds a process to the back of the queue.
func (q *ProcessQueue) Enqueue(id int) {
	q.ids = append(q.ids, id)
}

// Dequeue removes the process at the front of the queue.
// Dequeue on an empty queue is an engine bug and panics.
func (q *ProcessQueue) Dequeue() int {
	if len(q.ids) == 0 {
		panic("ProcessQueue.Dequeue: queue is empty")
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id
}

// Peek returns the front process without removing it.
func (q *ProcessQueue) Peek() (int, bool) {
	if len(q.ids) == 0 {
		return NoProcess, false
	}
	return q.ids[0], true
}

// Len returns the number of processes in the queue.
func (q *ProcessQueue) Len() int {
	return len(q.ids)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (q *ProcessQueue) Items() []int {
	return q.ids
}

// Contains reports whether id is queued.
func (q *ProcessQueue) Contains(id int) bool {
	return q.indexOf(id) >= 0
}

// RemoveAt removes and returns the process at position pos, preserving the
// relative order of the rest. An out-of-range position panics.
func (q *ProcessQueue) RemoveAt(pos int) int {
	if pos < 0 || pos >= len(q.ids) {
		panic(fmt.Sprintf("ProcessQueue.RemoveAt: position %d out of range [0,%d)", pos, len(q.ids)))
	}
	id := q.ids[pos]
	q.ids = append(q.ids[:pos], q.ids[pos+1:]...)
	return id
}

// Remove deletes id from the queue, preserving the relative order of the rest.
// Returns false when id is not queued.
func (q *ProcessQueue) Remove(id int) bool {
	pos := q.indexOf(id)
	if pos < 0 {
		return false
	}
	q.RemoveAt(pos)
	return true
}

// Clear empties the queue, keeping its storage.
func (q *ProcessQueue) Clear() {
	q.ids = q.ids[:0]
}

func (q *ProcessQueue) indexOf(id int) int {
	for i, v := range q.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (q *ProcessQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range q.ids {
		sb.WriteString(fmt.Sprint(id))
		if i < len(q.ids)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
