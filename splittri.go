package quality

import (
	"github.com/meshkit/quality/mesh"
)

// splitTriangle is component F (§4.6): it inserts one Steiner point inside
// a bad triangle — its circumcenter under a fixed or variable area target,
// or Üngör's off-center otherwise — and leaves the mesh alone if the
// insertion would itself encroach upon a subsegment.
func (e *Engine) splitTriangle(bt *badTriangle) error {
	t := bt.handle
	if t.IsDead() || t.Org() != bt.org || t.Dest() != bt.dest || t.Apex() != bt.apex {
		return nil
	}

	pred := e.mesh.Predicates()

	start := t
	var steiner mesh.Vertex
	if e.behavior.fixedArea || e.behavior.varArea {
		center, xi, eta := pred.FindCircumcenter(t.Org().Pos, t.Dest().Pos, t.Apex().Pos)
		steiner = mesh.Vertex{Pos: center, Attrs: interpolateAttrs(t, xi, eta), Kind: mesh.FreeVertex}
	} else {
		short := shortestEdgeHandle(t)
		p, xi, eta, ok := pred.FindRelocatedSteiner(e.mesh, short.Org().Pos, short.Dest().Pos, short.Apex().Pos, short)
		if !ok {
			return nil
		}
		if eta < xi {
			// The point and its (xi, eta) stay as computed on short; only
			// point location starts from short's previous edge instead.
			start = short.Lprev()
		}
		steiner = mesh.Vertex{Pos: p, Attrs: interpolateAttrs(short, xi, eta), Kind: mesh.FreeVertex}
	}

	res, err := e.mesh.InsertVertex(&steiner, start, nil, true, true, e.hooks(true))
	if err != nil {
		return err
	}

	switch res {
	case mesh.Successful, mesh.Encroaching:
		e.inserted++
		if e.steinerLeft > 0 {
			e.steinerLeft--
		}
	case mesh.Violating:
		// The mesh already undid the insertion on its own; the new
		// encroachments it found were reported through hooks and are now
		// sitting in badSegs for the driver to drain before retrying bt.
	case mesh.DuplicateVertex:
		return precisionExhausted("circumcenter/off-center of triangle (%v, %v, %v) coincides with an existing vertex",
			t.Org().Pos, t.Dest().Pos, t.Apex().Pos)
	}
	return nil
}

// shortestEdgeHandle rotates t to the orientation whose Org/Dest edge is
// the shortest of the three, matching FindRelocatedSteiner's assumption.
func shortestEdgeHandle(t mesh.Otri) mesh.Otri {
	edges := [3]mesh.Otri{t, t.Lnext(), t.Lprev()}
	best := edges[0]
	bestLen := distSq(best.Org().Pos, best.Dest().Pos)
	for _, h := range edges[1:] {
		if l := distSq(h.Org().Pos, h.Dest().Pos); l < bestLen {
			best, bestLen = h, l
		}
	}
	return best
}

// interpolateAttrs linearly blends org/dest/apex attributes at (xi, eta)
// in FindCircumcenter's basis: value == org's value + xi*(dest-org) +
// eta*(apex-org), matching how the point itself is built.
func interpolateAttrs(t mesh.Otri, xi, eta float64) []float64 {
	org, dest, apex := t.Org(), t.Dest(), t.Apex()
	n := len(org.Attrs)
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var d, a float64
		if i < len(dest.Attrs) {
			d = dest.Attrs[i]
		}
		if i < len(apex.Attrs) {
			a = apex.Attrs[i]
		}
		out[i] = org.Attrs[i] + xi*(d-org.Attrs[i]) + eta*(a-org.Attrs[i])
	}
	return out
}
