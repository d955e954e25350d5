package quality

import "github.com/meshkit/quality/mesh"

// badSubseg is a snapshot taken at enqueue time. org/dest let the drain
// loop detect staleness: if the handle's current endpoints no longer
// match, the segment was already split (or otherwise mutated) and the
// entry is discarded silently.
type badSubseg struct {
	handle mesh.Osub
	org    *mesh.Vertex
	dest   *mesh.Vertex
}

// badSubsegQueue is a strict FIFO, matching the drain-to-completion
// behavior the segment splitter needs (§4.3: dequeued entries are
// validated against their snapshot, and a stale one is just dropped).
type badSubsegQueue struct {
	items []badSubseg
}

func (q *badSubsegQueue) enqueue(h mesh.Osub) {
	q.items = append(q.items, badSubseg{handle: h, org: h.Org(), dest: h.Dest()})
}

func (q *badSubsegQueue) empty() bool { return len(q.items) == 0 }

// dequeue pops the oldest live entry, silently discarding stale ones on the
// way. It reports false only when the queue ran out without a live entry.
func (q *badSubsegQueue) dequeue() (badSubseg, bool) {
	for len(q.items) > 0 {
		b := q.items[0]
		q.items = q.items[1:]
		if b.handle.IsDead() {
			continue
		}
		if b.handle.Org() != b.org || b.handle.Dest() != b.dest {
			continue
		}
		return b, true
	}
	return badSubseg{}, false
}
