// Package topk implements the bounded top-k queue shared by all three
// retrieval algorithms: a min-heap of (score, docid) pairs with an
// admission threshold that lets callers prune work before the heap is
// even full.
package topk

import (
	"container/heap"
	"math"
	"sort"
)

// Entry is one (score, docid) result.
type Entry struct {
	Score float64
	DocID uint64
}

type minHeap []Entry

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].DocID > h[j].DocID
}
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Queue is a bounded min-heap top-k accumulator.
type Queue struct {
	k         int
	threshold float64
	seeded    bool // true once SetThreshold has been called explicitly
	heap      minHeap
	sorted    []Entry
}

// New returns an empty Queue admitting up to k results.
func New(k int) *Queue {
	return &Queue{k: k, threshold: math.Inf(-1)}
}

// K returns the queue's capacity.
func (q *Queue) K() int { return q.k }

// Threshold returns the current admission bound tau.
func (q *Queue) Threshold() float64 { return q.threshold }

// Len returns the number of entries currently held.
func (q *Queue) Len() int { return len(q.heap) }

// SetThreshold seeds tau before query time, for cold-start pruning: the
// queue rejects entries with score <= tau0 even while under capacity.
func (q *Queue) SetThreshold(tau0 float64) {
	q.threshold = tau0
	q.seeded = true
}

// WouldEnter reports whether a candidate score could be admitted without
// actually inserting it. Once a threshold has been seeded via
// SetThreshold, a score must clear it regardless of how many entries the
// heap currently holds; otherwise, true iff the heap has fewer than k
// entries or the score clears the current threshold.
func (q *Queue) WouldEnter(score float64) bool {
	if q.seeded {
		return score > q.threshold
	}
	return len(q.heap) < q.k || score > q.threshold
}

// Insert offers (score, docid) to the queue. It returns whether the entry
// was kept.
func (q *Queue) Insert(score float64, docID uint64) bool {
	if !q.WouldEnter(score) {
		return false
	}
	heap.Push(&q.heap, Entry{Score: score, DocID: docID})
	if len(q.heap) > q.k {
		heap.Pop(&q.heap)
	}
	if len(q.heap) == q.k {
		q.threshold = q.heap[0].Score
	}
	return true
}

// Finalize sorts the remaining entries descending by score, breaking
// ties by ascending docid, and returns them. After Finalize, Insert
// should not be called again.
func (q *Queue) Finalize() []Entry {
	out := make([]Entry, len(q.heap))
	copy(out, q.heap)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].DocID < out[j].DocID
	})
	q.sorted = out
	return out
}
