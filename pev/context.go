//-----------------------------------------------------------------------------
/*

Context labeling of representative points.

Each representative is decorated with the eigenvalues of both tensors at its
position: the Rayleigh estimate along the found direction, the rank of that
eigenvalue among the real eigenvalues ordered by absolute real part, and a
flag for the presence of imaginary eigenvalues.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// PEVPoint is one located parallel-eigenvector point with context.
type PEVPoint struct {
	Pos            r3.Vec  // position in the caller's global coordinates
	SRank, TRank   int     // eigenvalue rank per tensor, 0 = largest |real|
	Eigenvector    r3.Vec  // shared unit eigenvector direction
	SEigenvalue    float64 // Rayleigh estimate for the first tensor
	TEigenvalue    float64 // Rayleigh estimate for the second tensor
	SHasImag       bool    // first tensor has imaginary eigenvalues here
	THasImag       bool    // second tensor has imaginary eigenvalues here
	ClusterSize    int     // number of candidate regions merged into this point
	PosUncertainty float64 // final positional triangle diameter
	DirUncertainty float64 // final directional triangle diameter
	Condition      float64 // conditioning proxy of the winning evaluator
}

// PointList is an ordered sequence of located points. The order reflects
// cluster discovery order and is deterministic for a given input.
type PointList []PEVPoint

//-----------------------------------------------------------------------------

// closestEigenvalue returns the eigenvalue nearest to the real estimate in
// the complex plane.
func closestEigenvalue(vals []complex128, est float64) complex128 {
	best := vals[0]
	bestDist := cmplx.Abs(best - complex(est, 0))
	for _, v := range vals[1:] {
		if d := cmplx.Abs(v - complex(est, 0)); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

// eigenRank counts the real eigenvalues with strictly greater absolute real
// part than the matched one. Eigenvalues with nonzero imaginary part do not
// count.
func eigenRank(vals []complex128, matched complex128) int {
	ref := math.Abs(real(matched))
	n := 0
	for _, v := range vals {
		if imag(v) != 0 {
			continue
		}
		if math.Abs(real(v)) > ref {
			n++
		}
	}
	if n > 2 {
		n = 2
	}
	return n
}

// hasImag reports whether any eigenvalue has a nonzero imaginary component.
func hasImag(vals []complex128) bool {
	for _, v := range vals {
		if imag(v) != 0 {
			return true
		}
	}
	return false
}

//-----------------------------------------------------------------------------

// computeContext decorates each representative with eigenvalue context and
// maps its position into the caller's coordinates via the outer spatial
// patch. tensorsAt supplies the two effective tensors at a positional
// barycentric coordinate and direction. Representatives whose eigenvalue
// decomposition fails are dropped.
func computeContext(reps []clusterRepr, outer Triangle, tensorsAt func(pos Bary, dir r3.Vec) (Mat3, Mat3)) PointList {
	points := make(PointList, 0, len(reps))

	for _, r := range reps {
		tris := r.ev.Tris()
		// The candidate's positional triangle lives in the barycentric space
		// of the outer patch, so its centroid is a barycentric coordinate.
		ctr := tris.Pos.Centroid()
		posBary := Bary{ctr.X, ctr.Y, ctr.Z}
		dir := r3.Unit(tris.Dir.Centroid())

		s, t := tensorsAt(posBary, dir)

		sEst := r3.Dot(s.MulVec(dir), dir)
		tEst := r3.Dot(t.MulVec(dir), dir)

		sVals, ok := s.Eigenvalues()
		if !ok {
			continue
		}
		tVals, ok := t.Eigenvalues()
		if !ok {
			continue
		}

		sClosest := closestEigenvalue(sVals, sEst)
		tClosest := closestEigenvalue(tVals, tEst)

		points = append(points, PEVPoint{
			Pos:            outer.At(posBary),
			SRank:          eigenRank(sVals, sClosest),
			TRank:          eigenRank(tVals, tClosest),
			Eigenvector:    dir,
			SEigenvalue:    sEst,
			TEigenvalue:    tEst,
			SHasImag:       hasImag(sVals),
			THasImag:       hasImag(tVals),
			ClusterSize:    r.size,
			PosUncertainty: tris.Pos.Diameter(),
			DirUncertainty: tris.Dir.Diameter(),
			Condition:      r.ev.Condition(),
		})
	}
	return points
}

//-----------------------------------------------------------------------------
