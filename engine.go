package quality

import "github.com/meshkit/quality/mesh"

// Result reports the outcome of one EnforceQuality call.
type Result struct {
	// SteinerInserted is the number of Steiner points actually inserted.
	SteinerInserted int
	// SteinerRemaining is the Steiner budget left when EnforceQuality
	// returned, or -1 if the budget is unlimited.
	SteinerRemaining int
	// BudgetExhausted is true when the Steiner budget ran out while bad
	// triangles or encroached subsegments still remained.
	BudgetExhausted bool
}

// Engine drives one mesh's refinement. Behavior is immutable configuration;
// the queues and the Steiner counter are the engine's own mutable state,
// separate from it, so the same Behavior value can seed multiple engines.
// An Engine is not safe for concurrent use.
type Engine struct {
	behavior Behavior
	mesh     mesh.Mesh

	badSegs badSubsegQueue
	badTris badTriangleQueue

	steinerLeft int
	inserted    int
}

// NewEngine builds an Engine over m, ready to refine under b.
func NewEngine(m mesh.Mesh, b Behavior) *Engine {
	return &Engine{behavior: b, mesh: m, steinerLeft: b.steinerLeft}
}

// sizeOrAngleActive reports whether any triangle-level quality target is
// configured; when none is, EnforceQuality only needs to clear segment
// encroachments (conforming Delaunay mode, or a plain PSLG recovery pass).
func (e *Engine) sizeOrAngleActive() bool {
	return e.behavior.minAngle > 0 || e.behavior.maxAngle > 0 ||
		e.behavior.fixedArea || e.behavior.varArea || e.behavior.userTest != nil
}

// hooks builds the QualityHooks the mesh collaborator reports newly
// touched elements through. Triangle testing is gated by triFlaws: the
// driver only wants it once it has moved on to the size/angle phase.
func (e *Engine) hooks(triFlaws bool) mesh.QualityHooks {
	return mesh.QualityHooks{
		TestSubseg: func(s mesh.Osub) { testEncroachment(&e.behavior, s, &e.badSegs) },
		TestTriangle: func(t mesh.Otri) {
			if triFlaws {
				testTriangleQuality(&e.behavior, t, &e.badTris)
			}
		},
	}
}

// tallyEncs seeds the bad-subsegment queue from every subsegment already
// in the mesh (§4.7 step 1).
func (e *Engine) tallyEncs() {
	e.mesh.ForEachSubseg(func(s mesh.Osub) {
		testEncroachment(&e.behavior, s, &e.badSegs)
	})
}

// tallyFaces seeds the bad-triangle queue from every triangle already in
// the mesh (§4.7 step 3).
func (e *Engine) tallyFaces() {
	e.mesh.ForEachTriangle(func(t mesh.Otri) {
		testTriangleQuality(&e.behavior, t, &e.badTris)
	})
}

// EnforceQuality runs Ruppert's and/or Chew's algorithm to completion:
// first it clears every segment encroachment with no regard for triangle
// quality, then — if any size or angle target is configured — it
// alternates splitting bad triangles and draining whatever new segment
// encroachments that creates, until both queues are empty or the Steiner
// budget runs out.
func (e *Engine) EnforceQuality() (Result, error) {
	e.tallyEncs()
	if err := e.splitEncSegs(false); err != nil {
		return Result{}, err
	}

	if e.sizeOrAngleActive() {
		e.tallyFaces()

		for !e.badTris.empty() && e.steinerLeft != 0 {
			bt, ok := e.badTris.dequeue()
			if !ok {
				break
			}
			if err := e.splitTriangle(bt); err != nil {
				return Result{}, err
			}
			if !e.badSegs.empty() {
				e.badTris.requeue(bt)
				if err := e.splitEncSegs(true); err != nil {
					return Result{}, err
				}
			}
		}
	}

	exhausted := e.steinerLeft == 0 && (!e.badTris.empty() || !e.badSegs.empty())
	if e.behavior.verbose && e.behavior.conformingDelaunay && !e.badSegs.empty() {
		e.behavior.logger.Warnf("quality: %d encroached subsegment(s) remain under conforming-Delaunay refinement",
			len(e.badSegs.items))
	}

	return Result{
		SteinerInserted:  e.inserted,
		SteinerRemaining: e.steinerLeft,
		BudgetExhausted:  exhausted,
	}, nil
}

// splitEncSegs drains the bad-subsegment queue, splitting every live entry
// until it empties or the Steiner budget runs out. triFlaws controls
// whether newly created triangles are in turn tested for quality and fed
// into the bad-triangle queue: false during the initial §4.7 step 2 pass,
// true while draining segment encroachments discovered mid-refinement.
func (e *Engine) splitEncSegs(triFlaws bool) error {
	for !e.badSegs.empty() {
		if e.steinerLeft == 0 {
			return nil
		}
		bs, ok := e.badSegs.dequeue()
		if !ok {
			return nil
		}
		if err := e.splitEncroachedSegment(bs, triFlaws); err != nil {
			return err
		}
	}
	return nil
}
