package quality

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/meshkit/quality/mesh"
)

// splitEncroachedSegment is component E (§4.5): it inserts one new vertex
// on bs's subsegment, chosen so the split respects the concentric-shell
// rule at any acute endpoint, then re-tests both resulting halves for
// encroachment.
func (e *Engine) splitEncroachedSegment(bs badSubseg, triFlaws bool) error {
	seg := bs.handle
	if seg.IsDead() || seg.Org() != bs.org || seg.Dest() != bs.dest {
		return nil
	}

	acuteOrg := isAcuteEndpoint(seg, true)
	acuteDest := isAcuteEndpoint(seg, false)

	if !e.behavior.conformingDelaunay && !acuteOrg && !acuteDest {
		e.clearFreeVertices(seg)
	}

	e0, e1 := seg.Org(), seg.Dest()
	length := math.Hypot(e1.Pos.X-e0.Pos.X, e1.Pos.Y-e0.Pos.Y)

	var t float64
	switch {
	case acuteOrg || acuteDest:
		t = concentricShellParam(length)
		if acuteDest && !acuteOrg {
			t = 1 - t
		}
	default:
		t = 0.5
	}

	pos := r2.Point{
		X: e0.Pos.X + t*(e1.Pos.X-e0.Pos.X),
		Y: e0.Pos.Y + t*(e1.Pos.Y-e0.Pos.Y),
	}

	var attrs []float64
	if n := len(e0.Attrs); n > 0 {
		attrs = make([]float64, n)
		for i := range attrs {
			a1 := e0.Attrs[i]
			var a2 float64
			if i < len(e1.Attrs) {
				a2 = e1.Attrs[i]
			}
			attrs[i] = a1 + t*(a2-a1)
		}
	}

	if !e.behavior.noExact {
		pos = refineCollinearity(e.mesh.Predicates(), e0.Pos, e1.Pos, pos)
	}

	if pos == e0.Pos || pos == e1.Pos {
		return precisionExhausted("segment split point at (%g, %g) coincides with an existing endpoint", pos.X, pos.Y)
	}

	v := &mesh.Vertex{Pos: pos, Attrs: attrs, Mark: seg.Mark(), Kind: mesh.SegmentVertex}

	start := seg.TriPivot()
	if start.IsDead() {
		start = seg.Sym().TriPivot()
	}

	segArg := seg.Copy()
	res, err := e.mesh.InsertVertex(v, start, &segArg, true, triFlaws, e.hooks(triFlaws))
	if err != nil {
		return err
	}
	switch res {
	case mesh.Successful, mesh.Encroaching:
	default:
		return precisionExhausted("segment split produced unexpected result %v", res)
	}

	e.inserted++
	if e.steinerLeft > 0 {
		e.steinerLeft--
	}

	// segArg was repointed by InsertVertex at the first new half; its
	// sibling follows through NextSelf.
	testEncroachment(&e.behavior, segArg, &e.badSegs)
	other := segArg
	other.NextSelf()
	if other != segArg {
		testEncroachment(&e.behavior, other, &e.badSegs)
	}

	return nil
}

// isAcuteEndpoint reports whether another subsegment meets seg at its org
// (atOrg true) or dest (atOrg false) endpoint, by checking the edge of
// each adjacent triangle that shares that endpoint for a bound subsegment.
func isAcuteEndpoint(seg mesh.Osub, atOrg bool) bool {
	for i, side := range [2]mesh.Otri{seg.TriPivot(), seg.Sym().TriPivot()} {
		if side.IsDead() {
			continue
		}
		// The Sym side's handle runs from seg's Dest to its Org, so the
		// Lprev/Lnext roles swap there.
		var edge mesh.Otri
		if atOrg == (i == 0) {
			edge = side.Lprev()
		} else {
			edge = side.Lnext()
		}
		if !edge.SegPivot().IsDead() {
			return true
		}
	}
	return false
}

// clearFreeVertices deletes any FreeVertex lying strictly inside seg's
// diametral circle on either adjacent triangle, repeating until none
// remain. This is the Chew-mode cleanup that lets an unbounded split
// proceed without permanently trapping a Steiner point inside the new
// diametral lens.
func (e *Engine) clearFreeVertices(seg mesh.Osub) {
	for pass := 0; pass < 64; pass++ {
		removed := false
		for _, sideOf := range [2]func() mesh.Otri{seg.TriPivot, seg.Sym().TriPivot} {
			side := sideOf()
			if side.IsDead() {
				continue
			}
			apex := side.Apex()
			if apex.Kind != mesh.FreeVertex {
				continue
			}
			if !segmentEncroachedStrict(seg, apex.Pos) {
				continue
			}
			if err := e.mesh.DeleteVertex(side.Lprev()); err == nil {
				removed = true
			}
		}
		if !removed {
			return
		}
	}
}

func segmentEncroachedStrict(seg mesh.Osub, apex r2.Point) bool {
	e0, e1 := seg.Org().Pos, seg.Dest().Pos
	dot := (e0.X-apex.X)*(e1.X-apex.X) + (e0.Y-apex.Y)*(e1.Y-apex.Y)
	return dot < 0
}

// concentricShellParam returns the fraction t in (0, 1), measured from the
// acute endpoint, of the nearest point to it lying on a concentric shell:
// a power-of-two radius p with 1.5*p <= length <= 3*p, so repeated splits
// at the same acute corner always land on one of finitely many shells
// instead of drifting by a shrinking fraction every time.
func concentricShellParam(length float64) float64 {
	if length <= 0 {
		return 0.5
	}
	exp := math.Round(math.Log2(length / 2))
	p := math.Pow(2, exp)
	for p*3 < length {
		exp++
		p = math.Pow(2, exp)
	}
	for p*1.5 > length {
		exp--
		p = math.Pow(2, exp)
	}
	return p / length
}

// refineCollinearity nudges pos, the naive interpolation between a and b,
// back onto the line through them by one Newton-style correction using the
// exact CounterClockwise predicate, canceling the rounding error a plain
// floating-point lerp accumulates.
func refineCollinearity(pred mesh.Predicates, a, b, pos r2.Point) r2.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return pos
	}
	ccw := pred.CounterClockwise(a, b, pos)
	m := ccw / lenSq
	if math.IsNaN(m) || math.IsInf(m, 0) || m == 0 {
		return pos
	}
	return r2.Point{X: pos.X + m*dy, Y: pos.Y - m*dx}
}
