// Package eventqueue implements the min-ordered priority structure over
// (next-event-time, simulator) that the coordinator pops imminents from,
// grounded on akita's container/heap EventQueue.
package eventqueue

import (
	"container/heap"

	"github.com/sarchlab/vle/simulator"
	"github.com/sarchlab/vle/vtime"
)

// Queue is a priority structure keyed by tN, with ties broken by a stable
// secondary key (insertion sequence), delivering deterministic behavior
// under equal times.
type Queue struct {
	entries entryHeap
	seq     uint64
}

// New constructs an empty Queue.
func New() *Queue {
	q := &Queue{entries: make(entryHeap, 0)}
	heap.Init(&q.entries)
	return q
}

// Push inserts sim, keyed by its current TN.
func (q *Queue) Push(sim *simulator.Simulator) {
	q.seq++
	heap.Push(&q.entries, &entry{sim: sim, time: sim.TN(), seq: q.seq})
}

// Len returns the number of simulators in the queue.
func (q *Queue) Len() int { return q.entries.Len() }

// PeekTime returns the minimum scheduled time in the queue, or
// vtime.Infinity if the queue is empty.
func (q *Queue) PeekTime() vtime.Time {
	if q.entries.Len() == 0 {
		return vtime.Infinity
	}
	return q.entries[0].time
}

// PopImminent removes and returns every simulator scheduled at the
// queue's minimum time (the imminent set), in insertion order among ties.
func (q *Queue) PopImminent() []*simulator.Simulator {
	if q.entries.Len() == 0 {
		return nil
	}
	t := q.PeekTime()
	var out []*simulator.Simulator
	for q.entries.Len() > 0 && q.entries[0].time == t {
		e := heap.Pop(&q.entries).(*entry)
		out = append(out, e.sim)
	}
	return out
}

type entry struct {
	sim  *simulator.Simulator
	time vtime.Time
	seq  uint64
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(*entry))
}

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
