// Package robustgeom implements the exact-arithmetic geometric predicates
// the mesh collaborator needs: orientation, in-circle, circumcenter, and the
// off-center Steiner-point relocation.
//
// Each predicate follows the same shape as cockroachdb/cockroach's s2
// predicates.go: compute with float64 first, bound the worst-case rounding
// error conservatively, and only fall back to arbitrary-precision arithmetic
// (math/big, rather than S2's spherical exact-sign machinery) when the fast
// path cannot certify the sign.
package robustgeom

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

const (
	// ccwErrorBound bounds the rounding error of the float64 orientation
	// determinant, scaled by the magnitude of its inputs.
	ccwErrorBound = 1e-12
	// inCircleErrorBound bounds the rounding error of the float64 in-circle
	// determinant.
	inCircleErrorBound = 1e-10

	bigPrec = 256
)

// CounterClockwise returns twice the signed area of triangle (a, b, c):
// positive when a, b, c wind counterclockwise, negative when clockwise, and
// (ideally) exactly zero when they are collinear.
func CounterClockwise(a, b, c r2.Point) float64 {
	det := det2(b.X-a.X, b.Y-a.Y, c.X-a.X, c.Y-a.Y)

	bound := ccwErrorBound * magnitudeBound3(a, b, c)
	if !forceExact && math.Abs(det) > bound {
		return det
	}
	return exactCCW(a, b, c)
}

func exactCCW(a, b, c r2.Point) float64 {
	ax, ay := bigFloat(a.X), bigFloat(a.Y)
	bx, by := bigFloat(b.X), bigFloat(b.Y)
	cx, cy := bigFloat(c.X), bigFloat(c.Y)

	bax := sub(bx, ax)
	bay := sub(by, ay)
	cax := sub(cx, ax)
	cay := sub(cy, ay)

	det := sub(mul(bax, cay), mul(bay, cax))
	f, _ := det.Float64()
	return f
}

// NonRegular returns a value whose sign determines whether d lies strictly
// inside (positive), on (zero), or outside (negative) the circumcircle of
// a, b, c, which must be given in counterclockwise order. CheckDelaunay
// treats a positive result as a Delaunay violation.
func NonRegular(a, b, c, d r2.Point) float64 {
	det := inCircleDet(a, b, c, d)

	bound := inCircleErrorBound * magnitudeBound4(a, b, c, d)
	if !forceExact && math.Abs(det) > bound {
		return det
	}
	return exactInCircle(a, b, c, d)
}

func inCircleDet(a, b, c, d r2.Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	return alift*det2(bdx, bdy, cdx, cdy) -
		blift*det2(adx, ady, cdx, cdy) +
		clift*det2(adx, ady, bdx, bdy)
}

func exactInCircle(a, b, c, d r2.Point) float64 {
	ax, ay := bigFloat(a.X), bigFloat(a.Y)
	bx, by := bigFloat(b.X), bigFloat(b.Y)
	cx, cy := bigFloat(c.X), bigFloat(c.Y)
	dx, dy := bigFloat(d.X), bigFloat(d.Y)

	adx, ady := sub(ax, dx), sub(ay, dy)
	bdx, bdy := sub(bx, dx), sub(by, dy)
	cdx, cdy := sub(cx, dx), sub(cy, dy)

	alift := add(mul(adx, adx), mul(ady, ady))
	blift := add(mul(bdx, bdx), mul(bdy, bdy))
	clift := add(mul(cdx, cdx), mul(cdy, cdy))

	t1 := mul(alift, sub(mul(bdx, cdy), mul(bdy, cdx)))
	t2 := mul(blift, sub(mul(adx, cdy), mul(ady, cdx)))
	t3 := mul(clift, sub(mul(adx, bdy), mul(ady, bdx)))

	det := sub(add(t1, t3), t2)
	f, _ := det.Float64()
	return f
}

// FindCircumcenter locates the circumcenter of triangle (org, dest, apex)
// and returns it along with the parameters (xi, eta) such that
//
//	center == org + xi*(dest-org) + eta*(apex-org)
func FindCircumcenter(org, dest, apex r2.Point) (center r2.Point, xi, eta float64) {
	bx, by := dest.X-org.X, dest.Y-org.Y
	cx, cy := apex.X-org.X, apex.Y-org.Y

	denom := 2 * det2(bx, by, cx, cy)
	if denom == 0 {
		return org, 0, 0
	}

	blen := bx*bx + by*by
	clen := cx*cx + cy*cy

	ucx := (blen*cy - clen*by) / denom
	ucy := (clen*bx - blen*cx) / denom

	center = r2.Point{X: org.X + ucx, Y: org.Y + ucy}

	cross := bx*cy - by*cx
	xi = (ucx*cy - ucy*cx) / cross
	eta = (bx*ucy - by*ucx) / cross
	return center, xi, eta
}

// FindRelocatedSteiner computes the Üngör-style "off-center" Steiner point
// for the bad triangle (org, dest, apex), whose shortest edge is (org,
// dest). When the triangle's circumradius-to-shortest-edge ratio is already
// below offCenterBeta, the off-center coincides with the circumcenter; the
// caller falls back to plain circumcenter insertion whenever an area
// constraint is active (see quality.splitTriangle), so this routine is only
// ever exercised for angle-only refinement.
//
// encroaches gives this routine neighborhood awareness without coupling it
// to the mesh package (mesh already imports robustgeom, so the reverse
// import would cycle): the caller — mesh.robustPredicates.FindRelocatedSteiner
// — supplies a closure that walks the triangulation from its start handle
// and reports whether a candidate point would itself encroach upon a nearby
// subsegment. When the off-center candidate fails that check, this falls
// back to the plain circumcenter, matching Shewchuk's Triangle. encroaches
// may be nil, in which case no neighborhood check is performed.
//
// ok is false only for a degenerate input triangle (zero-length shortest
// edge or a collinear triple); callers should skip insertion rather than
// act on p in that case.
func FindRelocatedSteiner(org, dest, apex r2.Point, encroaches func(r2.Point) bool) (p r2.Point, xi, eta float64, ok bool) {
	const offCenterBeta = 1.0 // sqrt(2) in Üngör's paper; 1.0 favors smaller meshes here

	center, cxi, ceta := FindCircumcenter(org, dest, apex)

	ex, ey := dest.X-org.X, dest.Y-org.Y
	edgeLen := math.Hypot(ex, ey)
	if edgeLen == 0 {
		return org, 0, 0, false
	}

	circumRadius := math.Hypot(center.X-org.X, center.Y-org.Y)
	if circumRadius <= offCenterBeta*edgeLen {
		return center, cxi, ceta, true
	}

	mx, my := (org.X+dest.X)/2, (org.Y+dest.Y)/2
	offset := math.Sqrt(offCenterBeta*offCenterBeta*edgeLen*edgeLen - edgeLen*edgeLen/4)

	dcx, dcy := center.X-mx, center.Y-my
	dlen := math.Hypot(dcx, dcy)
	if dlen == 0 {
		return center, cxi, ceta, true
	}
	dcx, dcy = dcx/dlen*offset, dcy/dlen*offset

	candidate := r2.Point{X: mx + dcx, Y: my + dcy}
	if encroaches != nil && encroaches(candidate) {
		return center, cxi, ceta, true
	}

	bx, by := ex, ey
	cx, cy := apex.X-org.X, apex.Y-org.Y
	cross := bx*cy - by*cx
	if cross == 0 {
		return center, cxi, ceta, true
	}
	rx, ry := candidate.X-org.X, candidate.Y-org.Y
	xi = (rx*cy - ry*cx) / cross
	eta = (bx*ry - by*rx) / cross
	return candidate, xi, eta, true
}

// SetExact toggles exact (big.Float) arithmetic unconditionally for the
// remainder of the call and returns a closure that restores the previous
// setting. Mesh checkers call this to force exact predicates for the
// duration of a consistency scan.
func SetExact(enable bool) (restore func()) {
	prev := forceExact
	forceExact = enable
	return func() { forceExact = prev }
}

var forceExact bool

func det2(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

func magnitudeBound3(a, b, c r2.Point) float64 {
	return absMax(a.X, a.Y, b.X, b.Y, c.X, c.Y)
}

func magnitudeBound4(a, b, c, d r2.Point) float64 {
	return absMax(a.X, a.Y, b.X, b.Y, c.X, c.Y, d.X, d.Y)
}

func absMax(vs ...float64) float64 {
	m := 0.0
	for _, v := range vs {
		if av := math.Abs(v); av > m {
			m = av
		}
	}
	if m == 0 {
		m = 1
	}
	return m * m * m
}

func bigFloat(f float64) *big.Float {
	return new(big.Float).SetPrec(bigPrec).SetFloat64(f)
}

func add(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(bigPrec).Add(a, b) }
func sub(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(bigPrec).Sub(a, b) }
func mul(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(bigPrec).Mul(a, b) }
