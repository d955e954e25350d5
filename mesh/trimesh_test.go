package mesh

import (
	"testing"

	"github.com/golang/geo/r2"
)

func square() []r2.Point {
	return []r2.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
}

func countTriangles(m *TriMesh) int {
	n := 0
	m.ForEachTriangle(func(Otri) { n++ })
	return n
}

func countSubsegs(m *TriMesh) int {
	n := 0
	m.ForEachSubseg(func(Osub) { n++ })
	return n
}

func TestBootstrap_ReturnsOneVertexPerInputPoint(t *testing.T) {
	m := NewTriMesh(nil)
	pts := square()
	verts, err := m.Bootstrap(pts)
	if err != nil {
		t.Fatalf("Bootstrap(%v) error = %v, want nil", pts, err)
	}
	if len(verts) != len(pts) {
		t.Fatalf("Bootstrap(%v) returned %d vertices, want %d", pts, len(verts), len(pts))
	}
	for i, v := range verts {
		if v.Pos != pts[i] {
			t.Errorf("verts[%d].Pos = %v, want %v", i, v.Pos, pts[i])
		}
		if v.Kind != Input {
			t.Errorf("verts[%d].Kind = %v, want Input", i, v.Kind)
		}
	}
}

func TestBootstrap_RejectsFewerThanThreePoints(t *testing.T) {
	m := NewTriMesh(nil)
	if _, err := m.Bootstrap([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}); err == nil {
		t.Errorf("Bootstrap with 2 points: error = nil, want non-nil")
	}
}

func TestBootstrap_SecondCallFails(t *testing.T) {
	m := NewTriMesh(nil)
	if _, err := m.Bootstrap(square()); err != nil {
		t.Fatalf("first Bootstrap error = %v, want nil", err)
	}
	if _, err := m.Bootstrap(square()); err == nil {
		t.Errorf("second Bootstrap call: error = nil, want non-nil")
	}
}

func TestAddSegment_OnHullEdgeSucceeds(t *testing.T) {
	m := NewTriMesh(nil)
	verts, err := m.Bootstrap(square())
	if err != nil {
		t.Fatalf("Bootstrap(...) error = %v, want nil", err)
	}

	for i := 0; i < 4; i++ {
		a, b := verts[i], verts[(i+1)%4]
		if err := m.AddSegment(a, b, 1); err != nil {
			t.Errorf("AddSegment(%v, %v, 1) error = %v, want nil", a.Pos, b.Pos, err)
		}
	}

	if got := countSubsegs(m); got != 4 {
		t.Errorf("countSubsegs(m) = %d, want 4", got)
	}
}

func TestAddSegment_OnNonAdjacentPairFails(t *testing.T) {
	m := NewTriMesh(nil)
	verts, err := m.Bootstrap(square())
	if err != nil {
		t.Fatalf("Bootstrap(...) error = %v, want nil", err)
	}
	// The fourth corner (0,10) is cocircular with the first three, not
	// strictly inside their circumcircle, so Bootstrap keeps the triangle
	// (0,0)-(10,0)-(10,10) and the verts[0]-verts[2] diagonal; verts[1] and
	// verts[3] are therefore not adjacent.
	if err := m.AddSegment(verts[1], verts[3], 1); err == nil {
		t.Errorf("AddSegment(diagonal) error = nil, want non-nil")
	}
}

func TestInsertVertex_InteriorPointSplitsContainingTriangleAndIsUndoable(t *testing.T) {
	m := NewTriMesh(nil)
	if _, err := m.Bootstrap(square()); err != nil {
		t.Fatalf("Bootstrap(...) error = %v, want nil", err)
	}

	before := countTriangles(m)

	var start Otri
	m.ForEachTriangle(func(h Otri) { start = h })

	v := &Vertex{Pos: r2.Point{X: 5, Y: 5}, Kind: FreeVertex}
	res, err := m.InsertVertex(v, start, nil, false, false, QualityHooks{})
	if err != nil {
		t.Fatalf("InsertVertex(%v) error = %v, want nil", v.Pos, err)
	}
	if res != Successful {
		t.Fatalf("InsertVertex(%v) result = %v, want Successful", v.Pos, res)
	}

	after := countTriangles(m)
	if after <= before {
		t.Errorf("countTriangles after insert = %d, want more than %d", after, before)
	}
	if ok, problems := checkMeshInvariant(m); !ok {
		t.Errorf("mesh invariant violated after insert: %v", problems)
	}

	m.UndoVertex()
	reverted := countTriangles(m)
	if reverted != before {
		t.Errorf("countTriangles after undo = %d, want %d (original)", reverted, before)
	}
}

func TestDeleteVertex_RestoresTriangleCountAndInvariant(t *testing.T) {
	m := NewTriMesh(nil)
	if _, err := m.Bootstrap(square()); err != nil {
		t.Fatalf("Bootstrap(...) error = %v, want nil", err)
	}
	before := countTriangles(m)

	var start Otri
	m.ForEachTriangle(func(h Otri) { start = h })
	v := &Vertex{Pos: r2.Point{X: 5, Y: 5}, Kind: FreeVertex}
	if _, err := m.InsertVertex(v, start, nil, false, false, QualityHooks{}); err != nil {
		t.Fatalf("InsertVertex(%v) error = %v, want nil", v.Pos, err)
	}

	var atV Otri
	m.ForEachTriangle(func(h Otri) {
		if h.Org() == v {
			atV = h
		} else if h.Dest() == v {
			atV = h.Lnext()
		} else if h.Apex() == v {
			atV = h.Lprev()
		}
	})
	if atV.IsDead() {
		t.Fatalf("could not find a handle with Org() == inserted vertex")
	}

	if err := m.DeleteVertex(atV); err != nil {
		t.Fatalf("DeleteVertex(...) error = %v, want nil", err)
	}

	after := countTriangles(m)
	if after != before {
		t.Errorf("countTriangles after delete = %d, want %d (original)", after, before)
	}
	if ok, problems := checkMeshInvariant(m); !ok {
		t.Errorf("mesh invariant violated after delete: %v", problems)
	}
}

func TestDeleteVertex_RejectsSubsegmentEndpoint(t *testing.T) {
	m := NewTriMesh(nil)
	verts, err := m.Bootstrap(square())
	if err != nil {
		t.Fatalf("Bootstrap(...) error = %v, want nil", err)
	}
	if err := m.AddSegment(verts[0], verts[1], 1); err != nil {
		t.Fatalf("AddSegment(...) error = %v, want nil", err)
	}

	h, ok := m.findEdge(verts[0], verts[1])
	if !ok {
		t.Fatalf("findEdge(verts[0], verts[1]) ok = false, want true")
	}
	if err := m.DeleteVertex(h); err == nil {
		t.Errorf("DeleteVertex(subsegment endpoint) error = nil, want non-nil")
	}
}

// checkMeshInvariant is a package-local copy of the orientation/symmetry
// checks the quality package's CheckMesh performs, kept here so mesh's own
// tests don't need to import the engine package that consumes it.
func checkMeshInvariant(m *TriMesh) (bool, []string) {
	var problems []string
	m.ForEachTriangle(func(t Otri) {
		if m.pred.CounterClockwise(t.Org().Pos, t.Dest().Pos, t.Apex().Pos) <= 0 {
			problems = append(problems, "triangle not counterclockwise")
		}
		for _, h := range [3]Otri{t, t.Lnext(), t.Lprev()} {
			sym := h.Sym()
			if sym.IsDead() {
				continue
			}
			if sym.Org() != h.Dest() || sym.Dest() != h.Org() {
				problems = append(problems, "edge/neighbor vertex mismatch")
			}
		}
	})
	return len(problems) == 0, problems
}
