package quality

import (
	"fmt"

	"github.com/meshkit/quality/mesh"
)

// CheckMesh is component H's topological sanity pass: every live triangle
// must wind counterclockwise, and every internal edge must agree with its
// Sym neighbor about which two vertices it joins. It forces exact
// arithmetic for the duration of the check, since a mesh built under
// inexact predicates can have orientations so close to degenerate that
// float64 alone would misjudge them.
func CheckMesh(m mesh.Mesh) (bool, []string) {
	restore := m.Predicates().SetExact(true)
	defer restore()

	var problems []string
	seen := map[[2]*mesh.Vertex]bool{}

	m.ForEachTriangle(func(t mesh.Otri) {
		org, dest, apex := t.Org(), t.Dest(), t.Apex()
		if m.Predicates().CounterClockwise(org.Pos, dest.Pos, apex.Pos) <= 0 {
			problems = append(problems, fmt.Sprintf("triangle (%v, %v, %v) is not counterclockwise", org.Pos, dest.Pos, apex.Pos))
		}

		for _, h := range [3]mesh.Otri{t, t.Lnext(), t.Lprev()} {
			if seen[[2]*mesh.Vertex{h.Org(), h.Dest()}] {
				continue
			}
			seen[[2]*mesh.Vertex{h.Org(), h.Dest()}] = true
			seen[[2]*mesh.Vertex{h.Dest(), h.Org()}] = true

			sym := h.Sym()
			if sym.IsDead() {
				continue
			}
			if sym.Org() != h.Dest() || sym.Dest() != h.Org() {
				problems = append(problems, fmt.Sprintf("edge (%v, %v) and its neighbor disagree on shared vertices", h.Org().Pos, h.Dest().Pos))
			}
		}
	})

	if len(problems) == 0 {
		return true, nil
	}
	if len(problems) == 1 {
		problems[0] = "1 violation found: " + problems[0]
	} else {
		problems = append([]string{fmt.Sprintf("%d violations found", len(problems))}, problems...)
	}
	return false, problems
}

// CheckDelaunay is component H's local optimality pass: for every
// unconstrained interior edge, the opposite vertex on one side must not
// lie inside the circumcircle of the triangle on the other. Subsegments
// are exempt, since a constrained edge is allowed to violate the empty
// circumcircle property by design. Like CheckMesh, it forces exact
// arithmetic for the duration of the check.
func CheckDelaunay(m mesh.Mesh) (bool, []string) {
	restore := m.Predicates().SetExact(true)
	defer restore()

	var problems []string
	seen := map[[2]*mesh.Vertex]bool{}

	m.ForEachTriangle(func(t mesh.Otri) {
		for _, h := range [3]mesh.Otri{t, t.Lnext(), t.Lprev()} {
			if !h.SegPivot().IsDead() {
				continue
			}
			if seen[[2]*mesh.Vertex{h.Org(), h.Dest()}] {
				continue
			}
			seen[[2]*mesh.Vertex{h.Org(), h.Dest()}] = true
			seen[[2]*mesh.Vertex{h.Dest(), h.Org()}] = true

			sym := h.Sym()
			if sym.IsDead() {
				continue
			}
			if m.Predicates().NonRegular(h.Org().Pos, h.Dest().Pos, h.Apex().Pos, sym.Apex().Pos) > 0 {
				problems = append(problems, fmt.Sprintf("edge (%v, %v): opposite vertex %v lies inside the circumcircle of (%v, %v, %v)",
					h.Org().Pos, h.Dest().Pos, sym.Apex().Pos, h.Org().Pos, h.Dest().Pos, h.Apex().Pos))
			}
		}
	})

	if len(problems) == 0 {
		return true, nil
	}
	if len(problems) == 1 {
		problems[0] = "1 violation found: " + problems[0]
	} else {
		problems = append([]string{fmt.Sprintf("%d violations found", len(problems))}, problems...)
	}
	return false, problems
}
