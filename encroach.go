package quality

import (
	"github.com/golang/geo/r2"

	"github.com/meshkit/quality/mesh"
)

// testEncroachment is component A: it decides whether seg is encroached by
// the apex opposite it on either adjacent triangle, and enqueues it onto q
// if so and the no_bisect policy allows it.
func testEncroachment(b *Behavior, seg mesh.Osub, q *badSubsegQueue) {
	side0 := seg.TriPivot()
	side1 := seg.Sym().TriPivot()

	encroached := 0
	if !side0.IsDead() && encroachedAt(b, seg, side0.Apex().Pos) {
		encroached |= 1
	}
	if !side1.IsDead() && encroachedAt(b, seg, side1.Apex().Pos) {
		encroached |= 2
	}
	if encroached == 0 {
		return
	}

	if b.noBisect >= 2 {
		return
	}
	// A dead side means an edge on the true mesh boundary (no supertriangle
	// ghost survives there); a TriMesh-backed mesh with its bootstrap
	// corners still attached never reports one this way, since every hull
	// edge still borders a live ghost triangle. This path is exercised by
	// collaborators whose InsertVertex/ForEachTriangle never synthesize
	// ghosts in the first place.
	isBoundary := side0.IsDead() || side1.IsDead()
	if b.noBisect == 1 && isBoundary {
		return
	}

	if encroached&1 != 0 {
		q.enqueue(seg)
	} else {
		q.enqueue(seg.Sym())
	}
}

// encroachedAt reports whether apex, the vertex opposite seg on one of its
// adjacent triangles, puts seg inside its diametral circle (Ruppert) or
// diametral lens (Chew).
func encroachedAt(b *Behavior, seg mesh.Osub, apex r2.Point) bool {
	e0, e1 := seg.Org().Pos, seg.Dest().Pos
	v0 := r2.Point{X: e0.X - apex.X, Y: e0.Y - apex.Y}
	v1 := r2.Point{X: e1.X - apex.X, Y: e1.Y - apex.Y}
	d := v0.X*v1.X + v0.Y*v1.Y
	if d >= 0 {
		return false
	}
	if b.conformingDelaunay {
		return true
	}
	lensFactor := 2*b.goodAngle - 1
	len0 := v0.X*v0.X + v0.Y*v0.Y
	len1 := v1.X*v1.X + v1.Y*v1.Y
	return d*d >= lensFactor*lensFactor*len0*len1
}
