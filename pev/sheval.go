//-----------------------------------------------------------------------------
/*

Tensor Sujudi-Haimes evaluator.

The first residual is the eigenvector condition (T(x)*r) x r = 0. The second
replaces the second tensor with the directional derivative of the first:
((Tx(x)*r_x + Ty(x)*r_y + Tz(x)*r_z)*r) x r = 0, cubic in the direction and
linear in the position. Directions whose eigenvalue magnitude falls below a
floor are rejected even when both residuals vanish.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"math"

	"github.com/deadsy/pev/bezier"
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// shTolerances are the accept thresholds of one Sujudi-Haimes run.
type shTolerances struct {
	spatial   float64
	direction float64
	minEv     float64 // minimum |eigenvalue| for a relevant direction
}

// SHEvaluator decides one candidate region of the tensor Sujudi-Haimes
// search.
type SHEvaluator struct {
	tris         TriPair
	t            TensorInterp // restricted to tris.Pos
	tx, ty, tz   TensorInterp // derivative fields, restricted to tris.Pos
	polys        [6]bezier.Product
	lastSplitDir bool
	level        int
	tol          shTolerances
}

// newSHEvaluator builds the root evaluator for one directional seed triangle.
func newSHEvaluator(tris TriPair, t TensorInterp, dt [3]TensorInterp, tol shTolerances) *SHEvaluator {
	e := &SHEvaluator{
		tris: tris,
		t:    t,
		tx:   dt[0],
		ty:   dt[1],
		tz:   dt[2],
		tol:  tol,
	}
	tp := residualProducts(2, tris.Dir, t)
	dp := derivResidualProducts(tris.Dir, dt[0], dt[1], dt[2])
	copy(e.polys[0:3], tp[:])
	copy(e.polys[3:6], dp[:])
	return e
}

//-----------------------------------------------------------------------------

// Eval decides the fate of the region. An in-tolerance region is still
// discarded when the eigenvalue magnitude at its centroid is below the floor.
func (e *SHEvaluator) Eval() Result {
	for i := range e.polys {
		if e.polys[i].Sign() != 0 {
			return Discard
		}
	}
	if e.tris.Pos.Diameter() <= e.tol.spatial && e.tris.Dir.Diameter() <= e.tol.direction {
		d := r3.Unit(e.tris.Dir.Centroid())
		ev := r3.Dot(e.t.At(center).MulVec(d), d)
		if math.Abs(ev) < e.tol.minEv {
			return Discard
		}
		return Accept
	}
	return Split
}

// Split subdivides one factor, alternating between the directional and the
// spatial triangle under the same schedule as the parallel-eigenvector
// evaluator.
func (e *SHEvaluator) Split() []Evaluator {
	splitPos := e.lastSplitDir && e.tris.Pos.Diameter() > e.tol.spatial
	out := make([]Evaluator, 4)
	if splitPos {
		posTris := e.tris.Pos.Split()
		tSub := e.t.Split()
		txSub := e.tx.Split()
		tySub := e.ty.Split()
		tzSub := e.tz.Split()
		for k := 0; k < 4; k++ {
			c := &SHEvaluator{
				tris:         TriPair{Dir: e.tris.Dir, Pos: posTris[k]},
				t:            tSub[k],
				tx:           txSub[k],
				ty:           tySub[k],
				tz:           tzSub[k],
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
		c := &SHEvaluator{
			tris:         TriPair{Dir: dirTris[k], Pos: e.tris.Pos},
			t:            e.t,
			tx:           e.tx,
			ty:           e.ty,
			tz:           e.tz,
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
func (e *SHEvaluator) SplitLevel() int {
	return e.level
}

// Tris returns the candidate region.
func (e *SHEvaluator) Tris() TriPair {
	return e.tris
}

// Error returns the parallelity residual of the tensor and its directional
// derivative at the region centroid.
func (e *SHEvaluator) Error() float64 {
	d := r3.Unit(e.tris.Dir.Centroid())
	dt := e.tx.At(center).Scale(d.X).Add(e.ty.At(center).Scale(d.Y)).Add(e.tz.At(center).Scale(d.Z))
	return parallelity(e.t.At(center).MulVec(d), d) + parallelity(dt.MulVec(d), d)
}

// Condition returns the coefficient spread of the six residual polynomials.
func (e *SHEvaluator) Condition() float64 {
	return conditionOf(e.polys[:])
}

//-----------------------------------------------------------------------------
