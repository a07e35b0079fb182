//-----------------------------------------------------------------------------
/*

Triangles and linear tensor interpolation in barycentric coordinates.

A Triangle is an ordered vertex triple. It serves both as a spatial 2-simplex
and as a directional patch on the sphere, where only the direction of the
evaluated vector matters and the vertices need not be unit length.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// Bary is a barycentric coordinate triple. Callers guarantee the components
// sum to one where the interpretation requires it; no normalization is done.
type Bary = [3]float64

// center is the barycentric centroid.
var center = Bary{1. / 3., 1. / 3., 1. / 3.}

//-----------------------------------------------------------------------------

// Triangle is an ordered vertex triple.
type Triangle [3]r3.Vec

// At evaluates the triangle at barycentric b.
func (t Triangle) At(b Bary) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(b[0], t[0]), r3.Scale(b[1], t[1])), r3.Scale(b[2], t[2]))
}

// Centroid returns the vertex average.
func (t Triangle) Centroid() r3.Vec {
	return t.At(center)
}

// Diameter returns the length of the reference edge v0-v1, the termination
// proxy used by the search.
func (t Triangle) Diameter() float64 {
	return r3.Norm(r3.Sub(t[1], t[0]))
}

// Split subdivides at the edge midpoints. Children 0..2 keep corners 0..2,
// child 3 is the inverted midpoint triangle.
func (t Triangle) Split() [4]Triangle {
	m01 := r3.Scale(0.5, r3.Add(t[0], t[1]))
	m12 := r3.Scale(0.5, r3.Add(t[1], t[2]))
	m20 := r3.Scale(0.5, r3.Add(t[2], t[0]))
	return [4]Triangle{
		{t[0], m01, m20},
		{m01, t[1], m12},
		{m20, m12, t[2]},
		{m12, m20, m01},
	}
}

//-----------------------------------------------------------------------------

// TensorInterp interpolates a 3x3 tensor linearly over a triangle from its
// three vertex samples.
type TensorInterp [3]Mat3

// At evaluates the interpolant at barycentric b.
func (t TensorInterp) At(b Bary) Mat3 {
	return t[0].Scale(b[0]).Add(t[1].Scale(b[1])).Add(t[2].Scale(b[2]))
}

// IsFinite reports whether every vertex sample is finite.
func (t TensorInterp) IsFinite() bool {
	return t[0].IsFinite() && t[1].IsFinite() && t[2].IsFinite()
}

// Split subdivides the interpolant along with the midpoint subdivision of its
// triangle, with the same child ordering as Triangle.Split.
func (t TensorInterp) Split() [4]TensorInterp {
	m01 := t[0].Add(t[1]).Scale(0.5)
	m12 := t[1].Add(t[2]).Scale(0.5)
	m20 := t[2].Add(t[0]).Scale(0.5)
	return [4]TensorInterp{
		{t[0], m01, m20},
		{m01, t[1], m12},
		{m20, m12, t[2]},
		{m12, m20, m01},
	}
}

//-----------------------------------------------------------------------------

// TriPair is a candidate region in the product of the directional and
// positional search domains.
type TriPair struct {
	Dir Triangle // directional triangle on the sphere
	Pos Triangle // positional triangle in barycentric space of the outer patch
}

//-----------------------------------------------------------------------------
