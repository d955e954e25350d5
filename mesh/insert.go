package mesh

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// boundaryEdge describes one edge of a Bowyer-Watson cavity's polygon
// boundary, named by its vertices as seen from the surviving outer
// triangle: outer.Org() == a, outer.Dest() == b.
type boundaryEdge struct {
	a, b  *Vertex
	inner Otri // handle on the about-to-die cavity triangle, same edge
	outer Otri // handle on the surviving triangle across the edge, dead() at the hull boundary
	seg   *subsegment
}

// undoRecord captures everything one InsertVertex call changed, so
// UndoVertex can put the mesh back exactly as it was.
type undoRecord struct {
	cavity   []*triangle
	fan      []*triangle
	boundary []boundaryEdge

	splitSeg    *subsegment
	splitHalves [2]*subsegment
}

// InsertVertex implements mesh.Mesh.InsertVertex with a Bowyer-Watson
// cavity insertion: every triangle whose circumcircle contains v is
// destroyed and replaced by a star of new triangles fanning out from v,
// except that cavity growth never crosses a subsegment other than seg.
func (m *TriMesh) InsertVertex(v *Vertex, start Otri, seg *Osub, segmentFlaws, triFlaws bool, hooks QualityHooks) (InsertResult, error) {
	loc := m.locate(v.Pos, start)
	if loc.IsDead() {
		return 0, fmt.Errorf("mesh: InsertVertex: point location failed to find a containing triangle")
	}
	if loc.Org().Pos == v.Pos || loc.Dest().Pos == v.Pos || loc.Apex().Pos == v.Pos {
		return DuplicateVertex, nil
	}

	var splitting *subsegment
	if seg != nil {
		splitting = seg.s
	}

	cavity, boundary := m.buildCavity(v.Pos, loc, splitting)

	for _, t := range cavity {
		t.dead = true
	}
	rec := &undoRecord{cavity: cavity, boundary: boundary}

	n := len(boundary)
	fan := make([]*triangle, n)
	for i, e := range boundary {
		fan[i] = m.newTriangle(e.b, e.a, v)
	}
	for i, e := range boundary {
		h := Otri{fan[i], 0}
		bond(h, e.outer)
		if e.seg != nil {
			h.bindSeg(e.seg)
			if e.seg.v[0] == h.Org() {
				e.seg.tri[0] = h
			} else {
				e.seg.tri[1] = h
			}
		}
		next := fan[(i+1)%n]
		bond(Otri{fan[i], 2}, Otri{next, 1})
	}
	rec.fan = fan

	if splitting != nil {
		m.finishSegmentSplit(v, splitting, boundary, fan, rec)
		// Repoint the caller's handle at the first new half; its sibling is
		// reachable through Osub.NextSelf regardless of the orientation the
		// caller originally passed in.
		*seg = Osub{rec.splitHalves[0], 0}
	}

	m.undo = rec

	var encroached []Osub
	for _, e := range boundary {
		if e.seg == nil || e.seg == splitting {
			continue
		}
		if segmentEncroachedBy(e.seg, v) {
			encroached = append(encroached, Osub{e.seg, 0})
		}
	}

	if len(encroached) > 0 {
		if segmentFlaws {
			for _, os := range encroached {
				if hooks.TestSubseg != nil {
					hooks.TestSubseg(os)
				}
			}
		}
		if triFlaws && splitting == nil {
			for _, os := range encroached {
				if hooks.TestSubseg != nil {
					hooks.TestSubseg(os)
				}
			}
			m.UndoVertex()
			return Violating, nil
		}
		return Encroaching, nil
	}

	if triFlaws && hooks.TestTriangle != nil {
		for _, t := range fan {
			hooks.TestTriangle(Otri{t, 0})
		}
	}
	if segmentFlaws && hooks.TestSubseg != nil {
		for _, t := range fan {
			for o := uint8(0); o < 3; o++ {
				if s := t.seg[o]; s != nil {
					hooks.TestSubseg(Otri{t, o}.SegPivot())
				}
			}
		}
	}
	return Successful, nil
}

// buildCavity gathers every triangle whose circumcircle contains p,
// starting from seed and expanding across unconstrained edges only (edges
// carrying a subsegment other than ignoreSeg stop the expansion).
func (m *TriMesh) buildCavity(p r2.Point, seed Otri, ignoreSeg *subsegment) ([]*triangle, []boundaryEdge) {
	visited := map[*triangle]bool{seed.t: true}
	queue := []*triangle{seed.t}
	var cavity []*triangle
	var boundary []boundaryEdge

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		cavity = append(cavity, t)

		for o := uint8(0); o < 3; o++ {
			h := Otri{t, o}
			s := t.seg[o]
			sym := h.Sym()

			crossable := (s == nil || s == ignoreSeg) && !sym.IsDead() && !visited[sym.t]
			if crossable {
				inCircle := m.pred.NonRegular(sym.Org().Pos, sym.Dest().Pos, sym.Apex().Pos, p)
				if inCircle > 0 {
					visited[sym.t] = true
					queue = append(queue, sym.t)
					continue
				}
			}
			if s != nil && s != ignoreSeg && visited[sym.t] {
				// Already queued the far side through another path before
				// discovering the constraint; this should not happen for a
				// simply-connected cavity, but guard anyway.
				continue
			}

			boundary = append(boundary, boundaryEdge{
				a: h.Dest(), b: h.Org(),
				inner: h, outer: sym, seg: s,
			})
		}
	}

	ring := orderRing(boundary)
	return cavity, ring
}

// orderRing re-sorts an unordered set of boundary edges into a single
// cyclic polygon walk, matching each edge's destination to the next edge's
// origin. The cavity produced by buildCavity is always simply connected, so
// this always succeeds for well-formed input.
func orderRing(edges []boundaryEdge) []boundaryEdge {
	byOrg := make(map[*Vertex]boundaryEdge, len(edges))
	for _, e := range edges {
		byOrg[e.a] = e
	}
	ordered := make([]boundaryEdge, 0, len(edges))
	if len(edges) == 0 {
		return ordered
	}
	cur := edges[0]
	for i := 0; i < len(edges); i++ {
		ordered = append(ordered, cur)
		next, ok := byOrg[cur.b]
		if !ok {
			break
		}
		cur = next
	}
	return ordered
}

// finishSegmentSplit replaces splitting with two new subsegments (a, v) and
// (v, b), where a and b are splitting's original endpoints. Both halves
// already exist as plain triangle edges in fan by construction, since v is
// a ring vertex adjacent to both a and b.
func (m *TriMesh) finishSegmentSplit(v *Vertex, splitting *subsegment, ring []boundaryEdge, fan []*triangle, rec *undoRecord) {
	a, b := splitting.v[0], splitting.v[1]

	var avTri, vbTri Otri
	for i, e := range ring {
		if e.a == a {
			avTri = Otri{fan[i], 1} // edge (a, v)
		}
		if e.b == b {
			vbTri = Otri{fan[i], 2} // edge (v, b)
		}
	}

	av := &subsegment{v: [2]*Vertex{a, v}, mark: splitting.mark}
	vb := &subsegment{v: [2]*Vertex{v, b}, mark: splitting.mark}
	av.next, vb.next = vb, av

	bindSubseg(av, avTri)
	bindSubseg(vb, vbTri)

	splitting.dead = true
	m.subsegs = append(m.subsegs, av, vb)

	rec.splitSeg = splitting
	rec.splitHalves = [2]*subsegment{av, vb}
}

// segmentEncroachedBy reports whether p lies strictly inside the diametral
// circle of s, i.e. whether the angle at p between s's endpoints exceeds
// 90 degrees.
func segmentEncroachedBy(s *subsegment, p *Vertex) bool {
	a, b := s.v[0].Pos, s.v[1].Pos
	pp := p.Pos
	dot := (a.X-pp.X)*(b.X-pp.X) + (a.Y-pp.Y)*(b.Y-pp.Y)
	return dot < 0
}

func bindSubseg(s *subsegment, h Otri) {
	h.bindSeg(s)
	sideIdx := uint8(0)
	if s.v[0] != h.Org() {
		sideIdx = 1
	}
	s.tri[sideIdx] = h
	if sym := h.Sym(); !sym.IsDead() {
		sym.bindSeg(s)
		otherIdx := uint8(0)
		if s.v[0] != sym.Org() {
			otherIdx = 1
		}
		s.tri[otherIdx] = sym
	}
}

// UndoVertex reverses the most recent InsertVertex call.
func (m *TriMesh) UndoVertex() {
	rec := m.undo
	if rec == nil {
		return
	}
	m.undo = nil

	for _, t := range rec.fan {
		t.dead = true
	}
	for _, t := range rec.cavity {
		t.dead = false
	}
	for _, e := range rec.boundary {
		bond(e.inner, e.outer)
	}
	if rec.splitSeg != nil {
		rec.splitSeg.dead = false
		rec.splitHalves[0].dead = true
		rec.splitHalves[1].dead = true
	}
}

// DeleteVertex removes the vertex at h.Org and retriangulates the star
// around it with a simple fan from one of its neighbors. The result is a
// valid triangulation but not necessarily Delaunay; callers that need
// Delaunay-optimality after a deletion should follow up with local flips,
// which this package does not perform.
func (m *TriMesh) DeleteVertex(h Otri) error {
	v := h.Org()
	if m.isCorner(v) {
		return fmt.Errorf("mesh: DeleteVertex: cannot delete a bootstrap corner")
	}

	var ring []*Vertex
	var outers []Otri
	var segs []*subsegment
	cur := h
	for {
		if !cur.SegPivot().IsDead() {
			return fmt.Errorf("mesh: DeleteVertex: vertex is an endpoint of subsegment %v-%v", cur.Org().Pos, cur.Dest().Pos)
		}
		ring = append(ring, cur.Dest())
		outer := cur.Lnext().Sym()
		outers = append(outers, outer)
		segs = append(segs, cur.Lnext().t.seg[cur.Lnext().o])
		cur = cur.Oprev()
		if cur.t == h.t && cur.o == h.o {
			break
		}
	}
	if len(ring) < 3 {
		return fmt.Errorf("mesh: DeleteVertex: star has fewer than 3 neighbors")
	}

	star := map[*triangle]bool{}
	scan := h
	for {
		star[scan.t] = true
		scan = scan.Oprev()
		if scan.t == h.t && scan.o == h.o {
			break
		}
	}
	for t := range star {
		t.dead = true
	}

	n := len(ring)
	apex := ring[0]
	fanCount := n - 2
	fan := make([]*triangle, fanCount)
	for i := 0; i < fanCount; i++ {
		fan[i] = m.newTriangle(apex, ring[i+1], ring[i+2])
	}
	for i := 0; i < fanCount; i++ {
		t := fan[i]

		bond(Otri{t, 1}, outers[i+1])
		if s := segs[i+1]; s != nil {
			bindSubseg(s, Otri{t, 1})
		}

		if i == 0 {
			bond(Otri{t, 0}, outers[0])
			if s := segs[0]; s != nil {
				bindSubseg(s, Otri{t, 0})
			}
		} else {
			bond(Otri{t, 0}, Otri{fan[i-1], 2})
		}

		if i == fanCount-1 {
			bond(Otri{t, 2}, outers[n-1])
			if s := segs[n-1]; s != nil {
				bindSubseg(s, Otri{t, 2})
			}
		}
	}

	m.undo = nil
	return nil
}
