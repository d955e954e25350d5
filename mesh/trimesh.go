package mesh

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// TriMesh is the reference Mesh implementation: an arena of triangles and
// subsegments connected by Otri/Osub handles, built incrementally with a
// Bowyer-Watson cavity insertion. It favors a simple, readable
// implementation over an optimal one — callers needing production-grade
// triangulation should satisfy the Mesh interface with their own type.
type TriMesh struct {
	triangles []*triangle
	subsegs   []*subsegment
	pred      Predicates

	// corners holds the three far-away bounding vertices introduced by
	// Bootstrap. Any live triangle still touching one of them is an
	// exterior "ghost" triangle, skipped by ForEachTriangle.
	corners [3]*Vertex

	undo *undoRecord

	// lastTri is the most recently created triangle, used by Bootstrap to
	// seed point location for its next insertion. UndoVertex can leave it
	// dead.
	lastTri *triangle
}

// NewTriMesh returns an empty mesh ready for Bootstrap. pred may be nil, in
// which case the package's exact-arithmetic predicates are used.
func NewTriMesh(pred Predicates) *TriMesh {
	if pred == nil {
		pred = robustPredicates{}
	}
	return &TriMesh{pred: pred}
}

// Predicates returns the exact-arithmetic collaborator backing m.
func (m *TriMesh) Predicates() Predicates { return m.pred }

// Bootstrap seeds the mesh with an unconstrained Delaunay triangulation of
// points, returning the corresponding Vertex for each, in order. It must be
// called exactly once, before any AddSegment or InsertVertex call.
func (m *TriMesh) Bootstrap(points []r2.Point) ([]*Vertex, error) {
	if len(m.triangles) != 0 {
		return nil, fmt.Errorf("mesh: Bootstrap called on a non-empty mesh")
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("mesh: Bootstrap needs at least 3 points, got %d", len(points))
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dx, dy := maxX-minX, maxY-minY
	span := math.Max(dx, dy)
	if span == 0 {
		span = 1
	}
	margin := span * 8

	// ForEachTriangle skips any triangle touching one of the three corners,
	// though Sym or TriPivot across a hull edge still reaches such a ghost
	// triangle; Undead is reused here for "not part of the input", not for
	// its queue-staleness sense.
	m.corners = [3]*Vertex{
		{Pos: r2.Point{X: minX - margin, Y: minY - margin}, Kind: Undead},
		{Pos: r2.Point{X: maxX + 3*margin, Y: minY - margin}, Kind: Undead},
		{Pos: r2.Point{X: minX - margin, Y: maxY + 3*margin}, Kind: Undead},
	}

	t0 := m.newTriangle(m.corners[0], m.corners[1], m.corners[2])
	start := Otri{t0, 0}

	out := make([]*Vertex, len(points))
	cur := start
	for i, p := range points {
		v := &Vertex{Pos: p, Kind: Input}
		res, err := m.InsertVertex(v, cur, nil, false, false, QualityHooks{})
		if err != nil {
			return nil, fmt.Errorf("mesh: bootstrap point %d: %w", i, err)
		}
		if res == DuplicateVertex {
			return nil, fmt.Errorf("mesh: bootstrap point %d duplicates an earlier point", i)
		}
		m.undo = nil // bootstrap insertions are never undone individually
		out[i] = v
		cur = Otri{m.lastTri, 0}
	}
	return out, nil
}

// AddSegment constrains the edge (a, b), which must already be an edge of
// the current triangulation (e.g. because the caller split it down to that
// point, or the unconstrained Delaunay triangulation happened to produce
// it). It does not perform segment recovery by edge flipping; callers that
// need to constrain an edge crossing existing triangles should split it at
// the crossing point first.
func (m *TriMesh) AddSegment(a, b *Vertex, mark int) error {
	h, ok := m.findEdge(a, b)
	if !ok {
		return fmt.Errorf("mesh: AddSegment(%v, %v): not an existing triangulation edge", a.Pos, b.Pos)
	}
	s := &subsegment{v: [2]*Vertex{a, b}, mark: mark}
	s.tri[0] = h
	if sym := h.Sym(); !sym.IsDead() {
		s.tri[1] = sym
		sym.bindSeg(s)
	}
	h.bindSeg(s)
	m.subsegs = append(m.subsegs, s)
	return nil
}

// findEdge locates the Otri whose Org is a and Dest is b, by walking a's
// triangle fan. Returns ok=false if a and b are not adjacent.
func (m *TriMesh) findEdge(a, b *Vertex) (Otri, bool) {
	for _, t := range m.triangles {
		if t.dead {
			continue
		}
		for o := uint8(0); o < 3; o++ {
			h := Otri{t, o}
			if h.Org() == a && h.Dest() == b {
				return h, true
			}
		}
	}
	return Otri{}, false
}

// ForEachTriangle visits every live, non-ghost triangle exactly once.
func (m *TriMesh) ForEachTriangle(f func(Otri)) {
	for _, t := range m.triangles {
		if t.dead || m.isGhost(t) {
			continue
		}
		f(Otri{t, 0})
	}
}

// ForEachSubseg visits every live subsegment exactly once.
func (m *TriMesh) ForEachSubseg(f func(Osub)) {
	for _, s := range m.subsegs {
		if s.dead {
			continue
		}
		f(Osub{s, 0})
	}
}

func (m *TriMesh) isGhost(t *triangle) bool {
	for _, c := range m.corners {
		if c == nil {
			continue
		}
		if t.v[0] == c || t.v[1] == c || t.v[2] == c {
			return true
		}
	}
	return false
}

func (m *TriMesh) isCorner(v *Vertex) bool {
	return v == m.corners[0] || v == m.corners[1] || v == m.corners[2]
}

func (m *TriMesh) newTriangle(a, b, c *Vertex) *triangle {
	t := &triangle{v: [3]*Vertex{a, b, c}}
	m.triangles = append(m.triangles, t)
	m.lastTri = t
	return t
}

// locate walks from start toward p, following the edge whose opposite
// vertex is on the wrong side, in the manner of Guibas-Stolfi stepwise
// point location. It returns a handle on the triangle containing p, or one
// of its edges/vertices if p lies exactly on the boundary.
func (m *TriMesh) locate(p r2.Point, start Otri) Otri {
	h := start
	for steps := 0; steps < 2*len(m.triangles)+16; steps++ {
		if h.IsDead() {
			return h
		}
		if m.pred.CounterClockwise(h.Org().Pos, h.Dest().Pos, p) < 0 {
			if sym := h.Sym(); !sym.IsDead() {
				h = sym
				continue
			}
		}

		lnext := h.Lnext()
		if m.pred.CounterClockwise(lnext.Org().Pos, lnext.Dest().Pos, p) < 0 {
			if sym := lnext.Sym(); !sym.IsDead() {
				h = sym
				continue
			}
		}

		lprev := h.Lprev()
		if m.pred.CounterClockwise(lprev.Org().Pos, lprev.Dest().Pos, p) < 0 {
			if sym := lprev.Sym(); !sym.IsDead() {
				h = sym
				continue
			}
		}
		return h
	}
	return h
}
