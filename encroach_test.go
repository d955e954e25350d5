package quality

import (
	"testing"

	"github.com/golang/geo/r2"

	"github.com/meshkit/quality/mesh"
)

// buildApexMesh builds the single triangle (-10,0)-(10,0)-apex, constrains
// its base (-10,0)-(10,0) as a subsegment, and returns that subsegment and
// the apex vertex, so a test can place the apex on, inside, or outside the
// base's diametral circle.
func buildApexMesh(t *testing.T, apex r2.Point) (mesh.Osub, *mesh.Vertex) {
	t.Helper()
	m := mesh.NewTriMesh(nil)
	pts := []r2.Point{{X: -10, Y: 0}, {X: 10, Y: 0}, apex}
	verts, err := m.Bootstrap(pts)
	if err != nil {
		t.Fatalf("Bootstrap(%v) error = %v, want nil", pts, err)
	}
	if err := m.AddSegment(verts[0], verts[1], 1); err != nil {
		t.Fatalf("AddSegment(...) error = %v, want nil", err)
	}
	seg := findSubseg(m, verts[0], verts[1])
	if seg.IsDead() {
		t.Fatalf("findSubseg returned a dead handle")
	}
	return seg, verts[2]
}

func TestEncroachedAt_RightAngleApexIsOnBoundary(t *testing.T) {
	b, err := NewBehavior(WithMinAngle(20))
	if err != nil {
		t.Fatalf("NewBehavior(...) error = %v, want nil", err)
	}
	seg, apex := buildApexMesh(t, r2.Point{X: 0, Y: 10})
	// The apex is directly above the segment's midpoint at the same
	// distance as its half-length, which is exactly the diametral circle
	// for the endpoints (-10,0)-(10,0): dot((-10-0,0-10),(10-0,0-10)) =
	// (-10)(10) + (-10)(-10) = -100+100 = 0, the "on the boundary" case,
	// which the strict dot<0 test classifies as not encroached.
	if got := encroachedAt(&b, seg, apex.Pos); got {
		t.Errorf("encroachedAt(..., %v) = true, want false (exactly on the diametral circle)", apex.Pos)
	}
}

func TestEncroachedAt_ObtuseApexIsEncroaching(t *testing.T) {
	b, err := NewBehavior(WithMinAngle(20))
	if err != nil {
		t.Fatalf("NewBehavior(...) error = %v, want nil", err)
	}
	seg, apex := buildApexMesh(t, r2.Point{X: 0, Y: 3})
	if got := encroachedAt(&b, seg, apex.Pos); !got {
		t.Errorf("encroachedAt(..., %v) = false, want true (well inside the diametral circle)", apex.Pos)
	}
}

func TestEncroachedAt_ConformingDelaunayIgnoresLensFactor(t *testing.T) {
	b, err := NewBehavior(WithConformingDelaunay(true))
	if err != nil {
		t.Fatalf("NewBehavior(...) error = %v, want nil", err)
	}
	// Any apex with a negative dot product (inside the circle) must be
	// flagged under conforming Delaunay mode, regardless of the angle.
	seg, apex := buildApexMesh(t, r2.Point{X: 9, Y: 0.5})
	if got := encroachedAt(&b, seg, apex.Pos); !got {
		t.Errorf("encroachedAt(..., %v) = false under conforming Delaunay, want true", apex.Pos)
	}
}

func TestTestEncroachment_NoBisectTwoSuppressesEverything(t *testing.T) {
	b, err := NewBehavior(WithMinAngle(20), WithNoBisect(2))
	if err != nil {
		t.Fatalf("NewBehavior(...) error = %v, want nil", err)
	}
	seg, _ := buildApexMesh(t, r2.Point{X: 0, Y: 3})

	var q badSubsegQueue
	testEncroachment(&b, seg, &q)
	if !q.empty() {
		t.Errorf("queue not empty after testEncroachment with NoBisect(2), want empty")
	}
}

func TestTestEncroachment_EnqueuesWhenEncroached(t *testing.T) {
	b, err := NewBehavior(WithMinAngle(20))
	if err != nil {
		t.Fatalf("NewBehavior(...) error = %v, want nil", err)
	}
	seg, _ := buildApexMesh(t, r2.Point{X: 0, Y: 3})

	var q badSubsegQueue
	testEncroachment(&b, seg, &q)
	if q.empty() {
		t.Errorf("queue empty after testEncroachment on an encroached boundary segment, want one entry")
	}
}
