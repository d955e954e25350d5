package mesh

// triangle is an arena-owned CCW triangle: v[i], v[i+1], v[i+2] (mod 3) are
// its vertices in counterclockwise order. nbr[i] is the handle for the
// triangle across the edge (v[i], v[i+1]); seg[i] is the subsegment
// constraining that same edge, or nil.
type triangle struct {
	v          [3]*Vertex
	nbr        [3]Otri
	seg        [3]*subsegment
	dead       bool
	areaTarget float64
}

// subsegment is an arena-owned constrained edge. tri[0] and tri[1] are the
// two triangles it borders, oriented so tri[k].Org() == v[k].
type subsegment struct {
	v    [2]*Vertex
	tri  [2]Otri
	mark int
	dead bool
	// next links the other half of a just-completed split, so Osub.Next
	// can find it. Cleared once both halves have been re-tested.
	next *subsegment
}

// Otri is a lightweight handle: a triangle pointer plus an orientation
// (0, 1, or 2) selecting one of its three directed edges.
type Otri struct {
	t *triangle
	o uint8
}

// Osub is the analogous handle over a subsegment; o selects one of its two
// directions (0: v[0]->v[1], 1: v[1]->v[0]).
type Osub struct {
	s *subsegment
	o uint8
}

// IsDead reports whether h refers to a live triangle. The zero Otri and any
// handle onto a killed triangle are both dead, standing in for
// dummy_triangle.
func (h Otri) IsDead() bool { return h.t == nil || h.t.dead }

// IsDead reports whether h refers to a live subsegment, standing in for
// dummy_subsegment.
func (h Osub) IsDead() bool { return h.s == nil || h.s.dead }

// Org returns the handle's origin vertex.
func (h Otri) Org() *Vertex { return h.t.v[h.o] }

// Dest returns the handle's destination vertex.
func (h Otri) Dest() *Vertex { return h.t.v[(h.o+1)%3] }

// Apex returns the vertex opposite the handle's edge.
func (h Otri) Apex() *Vertex { return h.t.v[(h.o+2)%3] }

// Sym returns the handle for the same edge viewed from the adjacent
// triangle, or a dead handle if the edge is on the mesh boundary.
func (h Otri) Sym() Otri { return h.t.nbr[h.o] }

// Lnext rotates the handle to the next edge of the same triangle.
func (h Otri) Lnext() Otri { return Otri{h.t, (h.o + 1) % 3} }

// Lprev rotates the handle to the previous edge of the same triangle.
func (h Otri) Lprev() Otri { return Otri{h.t, (h.o + 2) % 3} }

// LnextSelf is the in-place form of Lnext.
func (h *Otri) LnextSelf() { h.o = (h.o + 1) % 3 }

// LprevSelf is the in-place form of Lprev.
func (h *Otri) LprevSelf() { h.o = (h.o + 2) % 3 }

// Oprev rotates the handle around its origin vertex, landing on the next
// triangle counterclockwise around Org().
func (h Otri) Oprev() Otri { return h.Lprev().Sym() }

// OprevSelf is the in-place form of Oprev.
func (h *Otri) OprevSelf() { *h = h.Oprev() }

// Dnext rotates the handle around its destination vertex.
func (h Otri) Dnext() Otri { return h.Lnext().Sym() }

// DnextSelf is the in-place form of Dnext.
func (h *Otri) DnextSelf() { *h = h.Dnext() }

// Copy returns h. Go handles are values, so this exists only to keep the
// collaborator contract's surface area matching spec.md §6.
func (h Otri) Copy() Otri { return h }

// SegPivot returns the subsegment constraining h's edge, oriented so its
// Org matches h.Org, or a dead Osub if the edge is unconstrained.
func (h Otri) SegPivot() Osub {
	s := h.t.seg[h.o]
	if s == nil {
		return Osub{}
	}
	if s.v[0] == h.Org() {
		return Osub{s, 0}
	}
	return Osub{s, 1}
}

func (h Otri) bindSeg(s *subsegment) { h.t.seg[h.o] = s }

// AreaTarget returns the triangle's per-triangle area constraint; a value
// <= 0 means unconstrained.
func (h Otri) AreaTarget() float64 { return h.t.areaTarget }

// SetAreaTarget sets the triangle's per-triangle area constraint.
func (h Otri) SetAreaTarget(area float64) { h.t.areaTarget = area }

// bond connects h and other as mutual Sym neighbors. If other is dead (the
// mesh's convex hull boundary), only h's side is set.
func bond(h, other Otri) {
	h.t.nbr[h.o] = other
	if !other.IsDead() {
		other.t.nbr[other.o] = h
	}
}

// Org returns the handle's origin vertex.
func (h Osub) Org() *Vertex { return h.s.v[h.o] }

// Dest returns the handle's destination vertex.
func (h Osub) Dest() *Vertex { return h.s.v[1-h.o] }

// Sym returns the handle for the opposite direction of the same
// subsegment.
func (h Osub) Sym() Osub { return Osub{h.s, 1 - h.o} }

// Copy returns h, matching spec.md §6's handle-copy operation.
func (h Osub) Copy() Osub { return h }

// Mark returns the subsegment's boundary mark.
func (h Osub) Mark() int { return h.s.mark }

// TriPivot returns one of the two triangles bordering the subsegment, on
// the side named by h's orientation.
func (h Osub) TriPivot() Otri { return h.s.tri[h.o] }

func (h Osub) bindTri(t Otri) { h.s.tri[h.o] = t }

// NextSelf advances h to the other half of a subsegment that was just split
// by Mesh.InsertVertex, if any; it is a no-op once both halves have been
// consumed (next is cleared after the second call).
func (h *Osub) NextSelf() {
	if h.s.next == nil {
		return
	}
	next := h.s.next
	h.s.next = nil
	org := h.Org()
	h.s = next
	if next.v[0] == org {
		h.o = 0
	} else {
		h.o = 1
	}
}

// dead returns an always-dead triangle handle, standing in for
// dummy_triangle.
func dead() Otri { return Otri{} }

// deadSub returns an always-dead subsegment handle, standing in for
// dummy_subsegment.
func deadSub() Osub { return Osub{} }
