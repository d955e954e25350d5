package quality

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/meshkit/quality/mesh"
)

// testTriangleQuality is component B: it decides whether t fails the size
// or angle targets in b, and if so enqueues a badTriangle snapshot onto q.
func testTriangleQuality(b *Behavior, t mesh.Otri, q *badTriangleQueue) {
	org, dest, apex := t.Org(), t.Dest(), t.Apex()

	odSq := distSq(org.Pos, dest.Pos)
	daSq := distSq(dest.Pos, apex.Pos)
	aoSq := distSq(apex.Pos, org.Pos)

	type edge struct {
		lenSq      float64
		base1      *mesh.Vertex
		base2      *mesh.Vertex
		opposite   *mesh.Vertex
		baseHandle mesh.Otri
	}
	edges := [3]edge{
		{odSq, org, dest, apex, t},
		{daSq, dest, apex, org, t.Lnext()},
		{aoSq, apex, org, dest, t.Lprev()},
	}

	shortest := edges[0]
	for _, e := range edges[1:] {
		if e.lenSq < shortest.lenSq {
			shortest = e
		}
	}
	longest := edges[0]
	for _, e := range edges[1:] {
		if e.lenSq > longest.lenSq {
			longest = e
		}
	}

	key := shortest.lenSq

	if b.fixedArea || b.varArea || b.userTest != nil {
		area := triangleArea(org.Pos, dest.Pos, apex.Pos)
		switch {
		case b.fixedArea && area > b.maxArea:
			enqueueBadTriangle(q, t, org, dest, apex, key)
			return
		case b.varArea && t.AreaTarget() > 0 && area > t.AreaTarget():
			enqueueBadTriangle(q, t, org, dest, apex, key)
			return
		case b.userTest != nil && b.userTest(toArr(org.Pos), toArr(dest.Pos), toArr(apex.Pos), area):
			enqueueBadTriangle(q, t, org, dest, apex, key)
			return
		}
	}

	if b.minAngle <= 0 && b.maxAngle <= 0 {
		return
	}

	cosSqShortest := cosSqAt(shortest.opposite.Pos, shortest.base1.Pos, shortest.base2.Pos)
	badAngle := b.minAngle > 0 && cosSqShortest > b.goodAngle

	if !badAngle && b.maxAngle > 0 {
		cosAtLongest := cosAt(longest.opposite.Pos, longest.base1.Pos, longest.base2.Pos)
		badAngle = cosAtLongest < b.maxGoodAngle
	}
	if !badAngle {
		return
	}

	if isMPWExempt(shortest.base1, shortest.base2, shortest.baseHandle) {
		return
	}
	enqueueBadTriangle(q, t, org, dest, apex, key)
}

func enqueueBadTriangle(q *badTriangleQueue, t mesh.Otri, org, dest, apex *mesh.Vertex, key float64) {
	q.enqueue(&badTriangle{handle: t, key: key, org: org, dest: dest, apex: apex})
}

func distSq(a, b r2.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func triangleArea(org, dest, apex r2.Point) float64 {
	cross := (dest.X-org.X)*(apex.Y-org.Y) - (dest.Y-org.Y)*(apex.X-org.X)
	return math.Abs(cross) / 2
}

// cosSqAt returns the squared cosine of the angle at vertex 'at', between
// the edges to b1 and b2.
func cosSqAt(at, b1, b2 r2.Point) float64 {
	c := cosAt(at, b1, b2)
	return c * c
}

func cosAt(at, b1, b2 r2.Point) float64 {
	e1x, e1y := b1.X-at.X, b1.Y-at.Y
	e2x, e2y := b2.X-at.X, b2.Y-at.Y
	dot := e1x*e2x + e1y*e2y
	len1 := e1x*e1x + e1y*e1y
	len2 := e2x*e2x + e2y*e2y
	return dot / math.Sqrt(len1*len2)
}

func toArr(p r2.Point) [2]float64 { return [2]float64{p.X, p.Y} }

// isMPWExempt implements a simplified Miller-Pav-Walkington check: base1
// and base2 must both be SegmentVertex; for each, the first subsegment
// incidentSegmentFarEndpoint meets rotating around it (starting from the
// shortest edge for base1, from the edge after it for base2) must lead to
// the same far endpoint J; and |base1-J| must agree with |base2-J| within a
// 0.1% relative tolerance. Other subsegments at base1 or base2 are not
// examined.
func isMPWExempt(base1, base2 *mesh.Vertex, baseHandle mesh.Otri) bool {
	if base1.Kind != mesh.SegmentVertex || base2.Kind != mesh.SegmentVertex {
		return false
	}
	j1 := incidentSegmentFarEndpoint(baseHandle, base1)
	if j1 == nil {
		return false
	}
	j2 := incidentSegmentFarEndpoint(baseHandle.Lnext(), base2)
	if j2 == nil || j2 != j1 {
		return false
	}
	d1 := math.Sqrt(distSq(base1.Pos, j1.Pos))
	d2 := math.Sqrt(distSq(base2.Pos, j1.Pos))
	if d1 == 0 || d2 == 0 {
		return false
	}
	rel := math.Abs(d1-d2) / math.Max(d1, d2)
	return rel <= 0.001
}

// incidentSegmentFarEndpoint rotates around v (start.Org() must be v),
// looking for a subsegment bound to one of the edges leaving v, and
// returns its endpoint other than v. Oprev always preserves Org, so the
// rotation stays centered on v until it returns to start or falls off the
// mesh boundary.
func incidentSegmentFarEndpoint(start mesh.Otri, v *mesh.Vertex) *mesh.Vertex {
	h := start
	for i := 0; i < 64; i++ {
		if s := h.SegPivot(); !s.IsDead() {
			return s.Dest()
		}
		h = h.Oprev()
		if h.IsDead() {
			break
		}
		if h == start {
			break
		}
	}
	return nil
}
