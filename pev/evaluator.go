//-----------------------------------------------------------------------------
/*

Evaluator capability set.

An evaluator owns one candidate region of the product search domain together
with the Bernstein polynomials of its residual components. The search driver
only sees the capability set: decide, split, and report.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"math"

	"github.com/deadsy/pev/bezier"
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// Result is the outcome of one evaluator decision step.
type Result int

const (
	// Split means the region is still undecided and must be subdivided.
	Split Result = iota
	// Accept means the region is within tolerance and contains a candidate.
	Accept
	// Discard means a residual component is provably nonzero on the region.
	Discard
)

// Evaluator is the capability set required by RootSearch.
type Evaluator interface {
	// Eval decides the fate of the current region.
	Eval() Result
	// Split subdivides the region in one factor and returns the children.
	Split() []Evaluator
	// SplitLevel returns the subdivision depth of this region.
	SplitLevel() int
	// Tris returns the current candidate region.
	Tris() TriPair
	// Error returns the parallelity residual at the region centroid.
	Error() float64
	// Condition returns a cheap conditioning proxy for diagnostics.
	Condition() float64
}

//-----------------------------------------------------------------------------

// residualProducts builds the three Bernstein component polynomials of
// (A(x)*r) x r over the product domain, with r running over the directional
// triangle at the given degree and A linearly interpolated over the
// positional triangle.
func residualProducts(dDir int, dir Triangle, a TensorInterp) [3]bezier.Product {
	sampleComponent := func(comp int) func(u, v Bary) float64 {
		return func(u, v Bary) float64 {
			r := dir.At(u)
			w := r3.Cross(a.At(v).MulVec(r), r)
			switch comp {
			case 0:
				return w.X
			case 1:
				return w.Y
			default:
				return w.Z
			}
		}
	}
	return [3]bezier.Product{
		bezier.Interpolate(dDir, 1, sampleComponent(0)),
		bezier.Interpolate(dDir, 1, sampleComponent(1)),
		bezier.Interpolate(dDir, 1, sampleComponent(2)),
	}
}

// derivResidualProducts builds the three component polynomials of
// ((Tx(x)*r_x + Ty(x)*r_y + Tz(x)*r_z)*r) x r. The contraction makes the
// residual cubic in the direction and linear in the position.
func derivResidualProducts(dir Triangle, tx, ty, tz TensorInterp) [3]bezier.Product {
	sampleComponent := func(comp int) func(u, v Bary) float64 {
		return func(u, v Bary) float64 {
			r := dir.At(u)
			dt := tx.At(v).Scale(r.X).Add(ty.At(v).Scale(r.Y)).Add(tz.At(v).Scale(r.Z))
			w := r3.Cross(dt.MulVec(r), r)
			switch comp {
			case 0:
				return w.X
			case 1:
				return w.Y
			default:
				return w.Z
			}
		}
	}
	return [3]bezier.Product{
		bezier.Interpolate(3, 1, sampleComponent(0)),
		bezier.Interpolate(3, 1, sampleComponent(1)),
		bezier.Interpolate(3, 1, sampleComponent(2)),
	}
}

//-----------------------------------------------------------------------------

// parallelity returns the magnitude of the cross product of the normalized
// image av with the direction d. Only av is normalized here; d is used as
// given, so the residual is scale-free when d is a unit vector, as every
// caller passes it. A vanishing image counts as perfectly parallel.
func parallelity(av, d r3.Vec) float64 {
	n := r3.Norm(av)
	if n == 0 {
		return 0
	}
	return r3.Norm(r3.Cross(r3.Scale(1/n, av), d))
}

// conditionOf returns the ratio of the largest to the smallest absolute
// Bernstein coefficient across the given polynomials.
func conditionOf(polys []bezier.Product) float64 {
	minAbs := math.Inf(1)
	maxAbs := 0.0
	for _, p := range polys {
		for _, c := range p.Coeffs() {
			a := math.Abs(c)
			if a < minAbs {
				minAbs = a
			}
			if a > maxAbs {
				maxAbs = a
			}
		}
	}
	if minAbs == 0 {
		return math.Inf(1)
	}
	return maxAbs / minAbs
}

//-----------------------------------------------------------------------------
