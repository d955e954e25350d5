package mesh

import (
	"github.com/golang/geo/r2"

	"github.com/meshkit/quality/internal/robustgeom"
)

// robustPredicates satisfies Predicates by forwarding to
// internal/robustgeom's exact-arithmetic routines. It carries no state of
// its own; SetExact toggles robustgeom's package-level mode, which is
// shared by every TriMesh using this type.
type robustPredicates struct{}

func (robustPredicates) CounterClockwise(a, b, c r2.Point) float64 {
	return robustgeom.CounterClockwise(a, b, c)
}

func (robustPredicates) NonRegular(a, b, c, d r2.Point) float64 {
	return robustgeom.NonRegular(a, b, c, d)
}

func (robustPredicates) FindCircumcenter(org, dest, apex r2.Point) (center r2.Point, xi, eta float64) {
	return robustgeom.FindCircumcenter(org, dest, apex)
}

func (robustPredicates) FindRelocatedSteiner(m Mesh, org, dest, apex r2.Point, start Otri) (p r2.Point, xi, eta float64, ok bool) {
	encroaches := func(cand r2.Point) bool {
		return neighborhoodHasEncroachedSegment(start, cand)
	}
	return robustgeom.FindRelocatedSteiner(org, dest, apex, encroaches)
}

func (robustPredicates) SetExact(enable bool) (restore func()) {
	return robustgeom.SetExact(enable)
}

// neighborhoodHasEncroachedSegment walks the triangle fans around start's
// Org and Dest — the endpoints of the shortest edge FindRelocatedSteiner
// built its off-center candidate from — and reports whether cand falls
// strictly inside the diametral circle of any subsegment incident to either
// vertex. This is the neighborhood-awareness check the off-center
// construction needs: an off-center that would itself re-encroach a nearby
// segment is rejected by the caller in favor of the circumcenter.
func neighborhoodHasEncroachedSegment(start Otri, cand r2.Point) bool {
	if segmentEncroachedByPoint(start.SegPivot(), cand) {
		return true
	}
	return walkVertexFan(start, cand, Otri.Oprev) || walkVertexFan(start, cand, Otri.Dnext)
}

// walkVertexFan visits the triangles around start's pivot vertex by
// repeatedly applying step (Oprev to orbit Org, Dnext to orbit Dest),
// checking each edge's subsegment, until it returns to start or reaches the
// mesh boundary. The bound guards against malformed topology looping
// forever rather than any expected fan size.
func walkVertexFan(start Otri, cand r2.Point, step func(Otri) Otri) bool {
	h := step(start)
	for i := 0; i < 64 && !h.IsDead() && h != start; i++ {
		if segmentEncroachedByPoint(h.SegPivot(), cand) {
			return true
		}
		h = step(h)
	}
	return false
}

func segmentEncroachedByPoint(seg Osub, cand r2.Point) bool {
	if seg.IsDead() {
		return false
	}
	u, v := seg.Org().Pos, seg.Dest().Pos
	return (u.X-cand.X)*(v.X-cand.X)+(u.Y-cand.Y)*(v.Y-cand.Y) < 0
}
