package quality

import (
	"container/heap"

	"github.com/meshkit/quality/mesh"
)

// badTriangle is a snapshot of a triangle that failed testTriangleQuality.
// key is the square of its shortest edge length and governs queue
// ordering; org/dest/apex detect staleness on dequeue.
type badTriangle struct {
	handle          mesh.Otri
	key             float64
	org, dest, apex *mesh.Vertex
	seq             int
}

// badTriangleQueue is a binary min-heap on key (shortest-edge triangles
// are dequeued first), ties broken by insertion order. container/heap
// needs Len/Less/Swap/Push/Pop, the same shape as a textual priority
// queue built over a plain slice.
type badTriangleQueue struct {
	items []*badTriangle
	next  int
}

func (q *badTriangleQueue) Len() int { return len(q.items) }

func (q *badTriangleQueue) Less(i, j int) bool {
	if q.items[i].key == q.items[j].key {
		return q.items[i].seq < q.items[j].seq
	}
	return q.items[i].key < q.items[j].key
}

func (q *badTriangleQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *badTriangleQueue) Push(x any) { q.items = append(q.items, x.(*badTriangle)) }

func (q *badTriangleQueue) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}

func (q *badTriangleQueue) empty() bool { return q.Len() == 0 }

// enqueue adds t, stamping it with the next sequence number so equal-key
// ties resolve in insertion order.
func (q *badTriangleQueue) enqueue(t *badTriangle) {
	t.seq = q.next
	q.next++
	heap.Push(q, t)
}

// dequeue pops the entry with the smallest key, skipping any whose
// snapshot no longer matches the mesh (the triangle was split, or its
// vertices otherwise changed, since it was enqueued).
func (q *badTriangleQueue) dequeue() (*badTriangle, bool) {
	for q.Len() > 0 {
		t := heap.Pop(q).(*badTriangle)
		if t.handle.IsDead() {
			continue
		}
		if t.handle.Org() != t.org || t.handle.Dest() != t.dest || t.handle.Apex() != t.apex {
			continue
		}
		return t, true
	}
	return nil, false
}

// requeue re-enqueues a BadTriangle that was dequeued but deferred (the
// split attempted to introduce new encroachments, which must drain
// first). The sequence number advances, so a re-enqueued triangle does not
// jump ahead of triangles discovered afterward with the same key.
func (q *badTriangleQueue) requeue(t *badTriangle) { q.enqueue(t) }
