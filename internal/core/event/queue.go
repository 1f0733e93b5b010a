package event

import "github.com/gammazero/deque"

// Queue is the FIFO of events awaiting a drain. It owns what it holds.
// Unbounded: nothing throttles producers.
type Queue struct {
	items deque.Deque[Event]
}

func (q *Queue) Push(e Event) { q.items.PushBack(e) }

// Pop removes and returns the oldest event. The queue must not be empty.
func (q *Queue) Pop() Event { return q.items.PopFront() }

func (q *Queue) Len() int { return q.items.Len() }

func (q *Queue) Clear() { q.items.Clear() }
