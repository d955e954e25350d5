// Package mesh defines the triangulation collaborator contract the quality
// engine consumes — vertices, triangle handles (Otri), subsegment handles
// (Osub), and the exact predicates — and ships one concrete implementation,
// TriMesh, so the engine is runnable and testable standalone.
//
// TriMesh is a reference collaborator, not part of the core: the quality
// package only ever reaches through the Mesh/Predicates interfaces below,
// never into TriMesh's own fields.
package mesh

import "github.com/golang/geo/r2"

// VertexKind classifies how a vertex entered the triangulation.
type VertexKind int

const (
	// Input vertices were present in the original PSLG.
	Input VertexKind = iota
	// SegmentVertex vertices were inserted to split a constrained subsegment.
	SegmentVertex
	// FreeVertex vertices were inserted as circumcenters or off-centers.
	FreeVertex
	// Undead marks a vertex that was logically deleted but is still
	// referenced by a stale queue entry; never returned by live handles.
	Undead
)

func (k VertexKind) String() string {
	switch k {
	case Input:
		return "Input"
	case SegmentVertex:
		return "SegmentVertex"
	case FreeVertex:
		return "FreeVertex"
	case Undead:
		return "Undead"
	default:
		return "Unknown"
	}
}

// Vertex is identified by pointer identity, never by coordinate equality:
// two distinct *Vertex values at the same position are different vertices.
type Vertex struct {
	Pos   r2.Point
	Attrs []float64
	Mark  int
	Kind  VertexKind
}

// InsertResult reports the outcome of Mesh.InsertVertex.
type InsertResult int

const (
	// Successful means the vertex was inserted and the mesh mutated.
	Successful InsertResult = iota
	// Encroaching means the vertex was inserted but its insertion
	// encroaches upon one or more subsegments; it stays in the mesh unless
	// the caller rolls it back with Mesh.UndoVertex.
	Encroaching
	// Violating means an insertion with triFlaws set and no subsegment
	// being split was refused because it encroached upon a subsegment; the
	// mesh is unchanged, though subsegments found to be encroached in the
	// attempt were still reported through QualityHooks.
	Violating
	// DuplicateVertex means the new point numerically coincides with an
	// existing vertex; the mesh is unchanged.
	DuplicateVertex
)

func (r InsertResult) String() string {
	switch r {
	case Successful:
		return "Successful"
	case Encroaching:
		return "Encroaching"
	case Violating:
		return "Violating"
	case DuplicateVertex:
		return "DuplicateVertex"
	default:
		return "Unknown"
	}
}

// QualityHooks lets the engine observe newly created mesh elements during an
// insertion without the mesh collaborator needing to know about the
// engine's queue types. Both fields may be nil.
type QualityHooks struct {
	// TestSubseg is invoked for every subsegment bounding the insertion
	// cavity, so the caller's own encroachment test (component A) can
	// decide whether to enqueue it. Only called when segmentFlaws is true.
	TestSubseg func(Osub)
	// TestTriangle is invoked for every triangle newly created by the
	// insertion, so the caller's own quality test (component B) can decide
	// whether to enqueue it. Only called when triFlaws is true.
	TestTriangle func(Otri)
}

// Predicates is the exact-arithmetic collaborator the mesh consumes for
// orientation, in-circle, and Steiner-point placement.
type Predicates interface {
	// CounterClockwise returns twice the signed area of (a, b, c); positive
	// iff a, b, c wind counterclockwise.
	CounterClockwise(a, b, c r2.Point) float64
	// NonRegular returns a positive value iff d lies strictly inside the
	// circumcircle of the counterclockwise triangle (a, b, c).
	NonRegular(a, b, c, d r2.Point) float64
	// FindCircumcenter returns the circumcenter of (org, dest, apex) and the
	// parameters (xi, eta) such that center == org + xi*(dest-org) +
	// eta*(apex-org).
	FindCircumcenter(org, dest, apex r2.Point) (center r2.Point, xi, eta float64)
	// FindRelocatedSteiner returns the off-center Steiner point for the bad
	// triangle (org, dest, apex), whose shortest edge is (org, dest), along
	// with its (xi, eta) parameters in the same basis as FindCircumcenter.
	// m and start give the implementation neighborhood awareness: start is a
	// handle onto the (org, dest) edge, letting it walk nearby subsegments
	// and reject an off-center that would itself re-encroach one, falling
	// back to the circumcenter instead. ok is false only for a degenerate
	// triangle, in which case the caller should not insert p.
	FindRelocatedSteiner(m Mesh, org, dest, apex r2.Point, start Otri) (p r2.Point, xi, eta float64, ok bool)
	// SetExact forces exact arithmetic for every predicate call until the
	// returned closure restores the previous setting.
	SetExact(enable bool) (restore func())
}

// Mesh is the triangulation container contract the quality engine consumes.
type Mesh interface {
	// ForEachTriangle visits every live triangle exactly once, each as an
	// Otri at orientation 0.
	ForEachTriangle(func(Otri))
	// ForEachSubseg visits every live subsegment exactly once.
	ForEachSubseg(func(Osub))

	// InsertVertex attempts to insert v, searching from start. seg, when
	// non-nil, names the subsegment v lies on (segment-splitting calls);
	// for triangle splits it is nil. hooks reports newly touched
	// subsegments/triangles back to the caller; see QualityHooks.
	InsertVertex(v *Vertex, start Otri, seg *Osub, segmentFlaws, triFlaws bool, hooks QualityHooks) (InsertResult, error)
	// UndoVertex reverses the most recent successful or Encroaching
	// InsertVertex call. Calling it without a pending insertion is a
	// programmer error.
	UndoVertex()
	// DeleteVertex removes the vertex at the origin of h and retriangulates
	// its star.
	DeleteVertex(h Otri) error

	// Predicates exposes the exact-arithmetic collaborator backing this
	// mesh, so the engine's checkers can force exact mode.
	Predicates() Predicates
}
