package quality

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/meshkit/quality/mesh"
)

func TestConcentricShellParam_KnownLength(t *testing.T) {
	got := concentricShellParam(10)
	want := 0.4 // p=4 is the only power of two with 1.5*4 <= 10 <= 3*4
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("concentricShellParam(10) = %v, want %v", got, want)
	}
}

func TestConcentricShellParam_PowerOfTwoLength(t *testing.T) {
	got := concentricShellParam(16)
	want := 0.5 // p=8: 1.5*8=12 <= 16 <= 24
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("concentricShellParam(16) = %v, want %v", got, want)
	}
}

func buildLShapedSegments(t *testing.T) (mesh.Osub, mesh.Osub, *mesh.Vertex) {
	t.Helper()
	m := mesh.NewTriMesh(nil)
	pts := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	verts, err := m.Bootstrap(pts)
	if err != nil {
		t.Fatalf("Bootstrap(%v) error = %v, want nil", pts, err)
	}
	if err := m.AddSegment(verts[0], verts[1], 1); err != nil {
		t.Fatalf("AddSegment(verts[0], verts[1]) error = %v, want nil", err)
	}
	if err := m.AddSegment(verts[1], verts[2], 1); err != nil {
		t.Fatalf("AddSegment(verts[1], verts[2]) error = %v, want nil", err)
	}
	bottom := findSubseg(m, verts[0], verts[1])
	right := findSubseg(m, verts[1], verts[2])
	return bottom, right, verts[1]
}

func TestIsAcuteEndpoint_SharedCornerIsAcute(t *testing.T) {
	bottom, _, shared := buildLShapedSegments(t)
	atOrg := bottom.Org() == shared
	if got := isAcuteEndpoint(bottom, atOrg); !got {
		t.Errorf("isAcuteEndpoint(bottom, atOrg=%v) = false at the shared corner, want true", atOrg)
	}
}

func TestIsAcuteEndpoint_UnsharedCornerIsNotAcute(t *testing.T) {
	bottom, _, shared := buildLShapedSegments(t)
	atOrg := bottom.Org() != shared
	if got := isAcuteEndpoint(bottom, atOrg); got {
		t.Errorf("isAcuteEndpoint(bottom, atOrg=%v) = true at the unshared corner, want false", atOrg)
	}
}

func TestSplitEncroachedSegment_ReplacesSegmentWithTwoHalves(t *testing.T) {
	m := mesh.NewTriMesh(nil)
	pts := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 1}}
	verts, err := m.Bootstrap(pts)
	if err != nil {
		t.Fatalf("Bootstrap(%v) error = %v, want nil", pts, err)
	}
	if err := m.AddSegment(verts[0], verts[1], 7); err != nil {
		t.Fatalf("AddSegment(verts[0], verts[1], 7) error = %v, want nil", err)
	}
	seg := findSubseg(m, verts[0], verts[1])
	if seg.IsDead() {
		t.Fatalf("findSubseg returned a dead handle")
	}

	b, err := NewBehavior(WithMinAngle(20))
	if err != nil {
		t.Fatalf("NewBehavior(...) error = %v, want nil", err)
	}
	e := NewEngine(m, b)

	bs := badSubseg{handle: seg, org: seg.Org(), dest: seg.Dest()}
	if err := e.splitEncroachedSegment(bs, false); err != nil {
		t.Fatalf("splitEncroachedSegment(...) error = %v, want nil", err)
	}

	if !seg.IsDead() {
		t.Errorf("original subsegment still live after split, want dead")
	}

	count := 0
	m.ForEachSubseg(func(s mesh.Osub) {
		count++
		if s.Mark() != 7 {
			t.Errorf("split half mark = %d, want 7 (inherited from the original)", s.Mark())
		}
	})
	if count != 2 {
		t.Errorf("live subsegments after split = %d, want 2", count)
	}
}
