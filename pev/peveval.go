//-----------------------------------------------------------------------------
/*

Parallel-eigenvector evaluator.

The residual is the pair of vector equations (S(x)*r) x r = 0 and
(T(x)*r) x r = 0. Each Euclidean component is quadratic in the direction and
linear in the position, so six degree-(2,1) product polynomials cover the
whole decision.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"github.com/deadsy/pev/bezier"
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// pevTolerances are the accept thresholds of one search run.
type pevTolerances struct {
	spatial   float64 // max positional triangle diameter
	direction float64 // max directional triangle diameter
}

// PEVEvaluator decides one candidate region of the parallel-eigenvector
// search. Its polynomials are kept consistent with the restricted tensor
// interpolants and the current region through every subdivision.
type PEVEvaluator struct {
	tris         TriPair
	s, t         TensorInterp // restricted to tris.Pos
	polys        [6]bezier.Product
	lastSplitDir bool
	level        int
	tol          pevTolerances
}

// newPEVEvaluator builds the root evaluator for one directional seed
// triangle. The positional triangle starts as the identity barycentric patch.
func newPEVEvaluator(tris TriPair, s, t TensorInterp, tol pevTolerances) *PEVEvaluator {
	e := &PEVEvaluator{
		tris: tris,
		s:    s,
		t:    t,
		tol:  tol,
	}
	sp := residualProducts(2, tris.Dir, s)
	tp := residualProducts(2, tris.Dir, t)
	copy(e.polys[0:3], sp[:])
	copy(e.polys[3:6], tp[:])
	return e
}

//-----------------------------------------------------------------------------

// Eval decides the fate of the region: discard if any residual component has
// a definite sign, accept if both factor diameters are within tolerance, and
// split otherwise.
func (e *PEVEvaluator) Eval() Result {
	for i := range e.polys {
		if e.polys[i].Sign() != 0 {
			return Discard
		}
	}
	if e.tris.Pos.Diameter() <= e.tol.spatial && e.tris.Dir.Diameter() <= e.tol.direction {
		return Accept
	}
	return Split
}

// Split subdivides one factor of the region. Directional refinement is cheap
// and often settles the sign test, but it alternates with spatial refinement
// so neither factor can starve the other.
func (e *PEVEvaluator) Split() []Evaluator {
	splitPos := e.lastSplitDir && e.tris.Pos.Diameter() > e.tol.spatial
	out := make([]Evaluator, 4)
	if splitPos {
		posTris := e.tris.Pos.Split()
		sSub := e.s.Split()
		tSub := e.t.Split()
		for k := 0; k < 4; k++ {
			c := &PEVEvaluator{
				tris:         TriPair{Dir: e.tris.Dir, Pos: posTris[k]},
				s:            sSub[k],
				t:            tSub[k],
				lastSplitDir: false,
				level:        e.level + 1,
				tol:          e.tol,
			}
			for i := range e.polys {
				c.polys[i] = e.polys[i].SplitPos(k)
			}
			out[k] = c
		}
		return out
	}
	dirTris := e.tris.Dir.Split()
	for k := 0; k < 4; k++ {
		c := &PEVEvaluator{
			tris:         TriPair{Dir: dirTris[k], Pos: e.tris.Pos},
			s:            e.s,
			t:            e.t,
			lastSplitDir: true,
			level:        e.level + 1,
			tol:          e.tol,
		}
		for i := range e.polys {
			c.polys[i] = e.polys[i].SplitDir(k)
		}
		out[k] = c
	}
	return out
}

// SplitLevel returns the subdivision depth.
func (e *PEVEvaluator) SplitLevel() int {
	return e.level
}

// Tris returns the candidate region.
func (e *PEVEvaluator) Tris() TriPair {
	return e.tris
}

// Error returns the parallelity residual of both tensors at the region
// centroid.
func (e *PEVEvaluator) Error() float64 {
	c := center
	d := r3.Unit(e.tris.Dir.Centroid())
	return parallelity(e.s.At(c).MulVec(d), d) + parallelity(e.t.At(c).MulVec(d), d)
}

// Condition returns the coefficient spread of the six residual polynomials.
func (e *PEVEvaluator) Condition() float64 {
	return conditionOf(e.polys[:])
}

//-----------------------------------------------------------------------------
