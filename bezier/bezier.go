//-----------------------------------------------------------------------------
/*

Bernstein-Bézier polynomials on a triangular barycentric domain.

A polynomial of degree d on the triangle is stored as coefficients attached to
the lattice of multi-indices {(i,j,k) : i+j+k = d}. The Bernstein basis gives
the convex-hull property: the polynomial's values over the whole triangle are
bounded by the minimum and maximum coefficient. Subdividing the triangle at
its edge midpoints yields four children whose coefficients are convex
combinations of the parent's, so the bound survives subdivision.

*/
//-----------------------------------------------------------------------------

package bezier

import (
	"fmt"
	"sync"
)

//-----------------------------------------------------------------------------

// LatticeSize returns the number of Bernstein coefficients of a degree-d
// triangle polynomial.
func LatticeSize(d int) int {
	return (d + 1) * (d + 2) / 2
}

// Lattice returns the multi-indices (i,j,k) with i+j+k = d in the fixed
// coefficient order: descending i, then descending j.
func Lattice(d int) [][3]int {
	idx := make([][3]int, 0, LatticeSize(d))
	for i := d; i >= 0; i-- {
		for j := d - i; j >= 0; j-- {
			idx = append(idx, [3]int{i, j, d - i - j})
		}
	}
	return idx
}

// latticeIndex returns the position of multi-index (i,j,.) in the degree-d
// coefficient order.
func latticeIndex(d, i, j int) int {
	return (d-i)*(d-i+1)/2 + (d - i - j)
}

// DomainPoints returns the barycentric sample lattice (i/d, j/d, k/d) in
// coefficient order. Interpolating a degree-d polynomial at these points
// determines its Bernstein coefficients uniquely.
func DomainPoints(d int) [][3]float64 {
	if d == 0 {
		// single sample at the centroid
		return [][3]float64{{1. / 3., 1. / 3., 1. / 3.}}
	}
	lat := Lattice(d)
	pts := make([][3]float64, len(lat))
	for n, idx := range lat {
		pts[n] = [3]float64{
			float64(idx[0]) / float64(d),
			float64(idx[1]) / float64(d),
			float64(idx[2]) / float64(d),
		}
	}
	return pts
}

//-----------------------------------------------------------------------------

// multinomial returns d! / (i! j! k!) for i+j+k = d.
func multinomial(d, i, j int) float64 {
	k := d - i - j
	c := 1.0
	n := 1
	for m := 1; m <= i; m++ {
		c *= float64(n) / float64(m)
		n++
	}
	for m := 1; m <= j; m++ {
		c *= float64(n) / float64(m)
		n++
	}
	for m := 1; m <= k; m++ {
		c *= float64(n) / float64(m)
		n++
	}
	return c
}

// Bernstein returns the degree-d basis values at barycentric b, in
// coefficient order.
func Bernstein(d int, b [3]float64) []float64 {
	lat := Lattice(d)
	out := make([]float64, len(lat))
	for n, idx := range lat {
		out[n] = multinomial(d, idx[0], idx[1]) *
			powi(b[0], idx[0]) * powi(b[1], idx[1]) * powi(b[2], idx[2])
	}
	return out
}

func powi(x float64, n int) float64 {
	p := 1.0
	for ; n > 0; n-- {
		p *= x
	}
	return p
}

//-----------------------------------------------------------------------------

// deCasteljau performs one de Casteljau step: it contracts degree-d
// coefficients with the barycentric argument w, returning degree-(d-1)
// coefficients.
func deCasteljau(d int, coeffs []float64, w [3]float64) []float64 {
	out := make([]float64, LatticeSize(d-1))
	for n, idx := range Lattice(d - 1) {
		i, j := idx[0], idx[1]
		out[n] = w[0]*coeffs[latticeIndex(d, i+1, j)] +
			w[1]*coeffs[latticeIndex(d, i, j+1)] +
			w[2]*coeffs[latticeIndex(d, i, j)]
	}
	return out
}

// blossom evaluates the multi-affine blossom of a degree-d polynomial at the
// given d barycentric arguments. With all arguments equal it reduces to plain
// evaluation.
func blossom(d int, coeffs []float64, args [][3]float64) float64 {
	if len(args) != d {
		panic(fmt.Sprintf("bezier: blossom of degree %d needs %d arguments, got %d", d, d, len(args)))
	}
	b := coeffs
	for n, w := range args {
		b = deCasteljau(d-n, b, w)
	}
	return b[0]
}

//-----------------------------------------------------------------------------

// Midpoint subdivision of the reference triangle. Children 0..2 keep corners
// 0..2, child 3 is the inverted midpoint triangle. The vertex sets match
// Triangle.Split so polynomial children stay aligned with geometric children.
var childVertices = [4][3][3]float64{
	{{1, 0, 0}, {0.5, 0.5, 0}, {0.5, 0, 0.5}},
	{{0.5, 0.5, 0}, {0, 1, 0}, {0, 0.5, 0.5}},
	{{0.5, 0, 0.5}, {0, 0.5, 0.5}, {0, 0, 1}},
	{{0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
}

type splitKey struct {
	d, k int
}

var splitCache sync.Map // splitKey -> []float64, row-major N x N

// SplitMatrix returns the subdivision matrix mapping degree-d parent
// coefficients to the coefficients of child k (0..3). Row-major N x N with
// N = LatticeSize(d). The entries are dyadic rationals and exact in float64.
func SplitMatrix(d, k int) []float64 {
	if k < 0 || k > 3 {
		panic(fmt.Sprintf("bezier: split child index %d out of range", k))
	}
	if v, ok := splitCache.Load(splitKey{d, k}); ok {
		return v.([]float64)
	}
	n := LatticeSize(d)
	m := make([]float64, n*n)
	verts := childVertices[k]
	// Column c of the matrix is the subdivision image of the c-th basis
	// coefficient. Entry (row, col): blossom of e_col at the child vertices
	// repeated according to the row's multi-index.
	basis := make([]float64, n)
	args := make([][3]float64, d)
	for col := 0; col < n; col++ {
		for i := range basis {
			basis[i] = 0
		}
		basis[col] = 1
		for row, idx := range Lattice(d) {
			a := args[:0]
			for rep := 0; rep < idx[0]; rep++ {
				a = append(a, verts[0])
			}
			for rep := 0; rep < idx[1]; rep++ {
				a = append(a, verts[1])
			}
			for rep := 0; rep < idx[2]; rep++ {
				a = append(a, verts[2])
			}
			m[row*n+col] = blossom(d, basis, a)
		}
	}
	splitCache.Store(splitKey{d, k}, m)
	return m
}

//-----------------------------------------------------------------------------
