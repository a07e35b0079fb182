//-----------------------------------------------------------------------------
/*

Tensor-product Bézier polynomials on the product of two triangles.

The two factors are a directional triangle and a positional triangle, with an
independent polynomial degree on each. Coefficients live on the product of the
two multi-index lattices and are stored dir-major. Subdivision acts on one
factor at a time by applying that factor's subdivision matrix across the
product layout, so the convex-hull bound is preserved per child.

*/
//-----------------------------------------------------------------------------

package bezier

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

//-----------------------------------------------------------------------------

// Product is a polynomial on the product of two triangular barycentric
// domains, in Bernstein form. The zero value is not usable; construct with
// Interpolate or NewProduct.
type Product struct {
	dDir, dPos int
	coeffs     []float64 // dir-major: index = nDir*LatticeSize(dPos) + nPos
}

// NewProduct wraps an existing coefficient slice. The slice is owned by the
// returned polynomial.
func NewProduct(dDir, dPos int, coeffs []float64) Product {
	if len(coeffs) != LatticeSize(dDir)*LatticeSize(dPos) {
		panic(fmt.Sprintf("bezier: degree (%d,%d) needs %d coefficients, got %d",
			dDir, dPos, LatticeSize(dDir)*LatticeSize(dPos), len(coeffs)))
	}
	return Product{dDir: dDir, dPos: dPos, coeffs: coeffs}
}

// Degrees returns the directional and positional factor degrees.
func (p Product) Degrees() (dDir, dPos int) {
	return p.dDir, p.dPos
}

// Coeffs returns the backing coefficient slice. Callers must not modify it.
func (p Product) Coeffs() []float64 {
	return p.coeffs
}

//-----------------------------------------------------------------------------
// collocation

// Solving for Bernstein coefficients from samples at the product of the two
// domain-point lattices factors into two small solves, one per factor. The
// factor collocation matrices depend only on the degree and are LU-factorized
// once.

var collocCache sync.Map // int -> *mat.LU

func collocLU(d int) *mat.LU {
	if v, ok := collocCache.Load(d); ok {
		return v.(*mat.LU)
	}
	n := LatticeSize(d)
	a := mat.NewDense(n, n, nil)
	for row, pt := range DomainPoints(d) {
		a.SetRow(row, Bernstein(d, pt))
	}
	lu := &mat.LU{}
	lu.Factorize(a)
	collocCache.Store(d, lu)
	return lu
}

// Interpolate constructs the degree-(dDir,dPos) polynomial that matches the
// sample function at every pair of domain points. The collocation system is
// square and nonsingular by construction.
func Interpolate(dDir, dPos int, sample func(u, v [3]float64) float64) Product {
	nd := LatticeSize(dDir)
	np := LatticeSize(dPos)
	du := DomainPoints(dDir)
	dv := DomainPoints(dPos)

	vals := make([]float64, nd*np)
	for mu, u := range du {
		for mv, v := range dv {
			vals[mu*np+mv] = sample(u, v)
		}
	}

	// Positional factor first: one solve per directional sample row.
	luPos := collocLU(dPos)
	rhsPos := mat.NewVecDense(np, nil)
	var solPos mat.VecDense
	for mu := 0; mu < nd; mu++ {
		for mv := 0; mv < np; mv++ {
			rhsPos.SetVec(mv, vals[mu*np+mv])
		}
		if err := luPos.SolveVecTo(&solPos, false, rhsPos); err != nil {
			panic(fmt.Sprintf("bezier: positional collocation solve failed: %v", err))
		}
		for nv := 0; nv < np; nv++ {
			vals[mu*np+nv] = solPos.AtVec(nv)
		}
	}

	// Then the directional factor: one solve per positional coefficient column.
	luDir := collocLU(dDir)
	rhsDir := mat.NewVecDense(nd, nil)
	var solDir mat.VecDense
	for nv := 0; nv < np; nv++ {
		for mu := 0; mu < nd; mu++ {
			rhsDir.SetVec(mu, vals[mu*np+nv])
		}
		if err := luDir.SolveVecTo(&solDir, false, rhsDir); err != nil {
			panic(fmt.Sprintf("bezier: directional collocation solve failed: %v", err))
		}
		for nu := 0; nu < nd; nu++ {
			vals[nu*np+nv] = solDir.AtVec(nu)
		}
	}

	return Product{dDir: dDir, dPos: dPos, coeffs: vals}
}

//-----------------------------------------------------------------------------

// Eval evaluates the polynomial at directional barycentric u and positional
// barycentric v.
func (p Product) Eval(u, v [3]float64) float64 {
	bu := Bernstein(p.dDir, u)
	bv := Bernstein(p.dPos, v)
	np := len(bv)
	sum := 0.0
	for nu, wu := range bu {
		row := p.coeffs[nu*np : (nu+1)*np]
		for nv, wv := range bv {
			sum += wu * wv * row[nv]
		}
	}
	return sum
}

// SplitDir returns the child polynomial on directional sub-triangle k.
func (p Product) SplitDir(k int) Product {
	m := SplitMatrix(p.dDir, k)
	nd := LatticeSize(p.dDir)
	np := LatticeSize(p.dPos)
	out := make([]float64, nd*np)
	for row := 0; row < nd; row++ {
		for col := 0; col < nd; col++ {
			w := m[row*nd+col]
			if w == 0 {
				continue
			}
			src := p.coeffs[col*np : (col+1)*np]
			dst := out[row*np : (row+1)*np]
			for nv := range dst {
				dst[nv] += w * src[nv]
			}
		}
	}
	return Product{dDir: p.dDir, dPos: p.dPos, coeffs: out}
}

// SplitPos returns the child polynomial on positional sub-triangle k.
func (p Product) SplitPos(k int) Product {
	m := SplitMatrix(p.dPos, k)
	nd := LatticeSize(p.dDir)
	np := LatticeSize(p.dPos)
	out := make([]float64, nd*np)
	for nu := 0; nu < nd; nu++ {
		src := p.coeffs[nu*np : (nu+1)*np]
		dst := out[nu*np : (nu+1)*np]
		for row := 0; row < np; row++ {
			s := 0.0
			for col := 0; col < np; col++ {
				s += m[row*np+col] * src[col]
			}
			dst[row] = s
		}
	}
	return Product{dDir: p.dDir, dPos: p.dPos, coeffs: out}
}

// CoeffMin returns the smallest Bernstein coefficient, a lower bound for the
// polynomial over the whole product domain.
func (p Product) CoeffMin() float64 {
	min := p.coeffs[0]
	for _, c := range p.coeffs[1:] {
		if c < min {
			min = c
		}
	}
	return min
}

// CoeffMax returns the largest Bernstein coefficient, an upper bound for the
// polynomial over the whole product domain.
func (p Product) CoeffMax() float64 {
	max := p.coeffs[0]
	for _, c := range p.coeffs[1:] {
		if c > max {
			max = c
		}
	}
	return max
}

// Sign reports +1 if the polynomial is provably positive on the domain, -1 if
// provably negative, and 0 if the coefficient bound cannot decide. A nonzero
// result proves the polynomial has no root in the domain.
func (p Product) Sign() int {
	if p.CoeffMin() > 0 {
		return 1
	}
	if p.CoeffMax() < 0 {
		return -1
	}
	return 0
}

//-----------------------------------------------------------------------------
