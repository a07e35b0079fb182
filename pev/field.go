//-----------------------------------------------------------------------------
/*

Analytic tensor fields.

Small closed-form fields used by the tests to feed vertex samples into the
search. They stand in for the mesh layer, which is
expected to supply per-face tensor samples from real datasets.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// Field is an analytic 3x3 tensor field with spatial derivatives.
type Field interface {
	// T returns the tensor at p.
	T(p r3.Vec) Mat3
	// Tx, Ty, Tz return the partial derivative tensors at p.
	Tx(p r3.Vec) Mat3
	Ty(p r3.Vec) Mat3
	Tz(p r3.Vec) Mat3
}

// SampleField samples a field at the three corners of a spatial triangle.
func SampleField(f Field, x [3]r3.Vec) (t [3]Mat3, dt [3][3]Mat3) {
	for i, p := range x {
		t[i] = f.T(p)
		dt[0][i] = f.Tx(p)
		dt[1][i] = f.Ty(p)
		dt[2][i] = f.Tz(p)
	}
	return t, dt
}

//-----------------------------------------------------------------------------

// ConstantField is the same tensor everywhere; all derivatives vanish.
type ConstantField struct {
	M Mat3
}

func (f ConstantField) T(p r3.Vec) Mat3 { return f.M }
func (f ConstantField) Tx(p r3.Vec) Mat3 { return Mat3{} }
func (f ConstantField) Ty(p r3.Vec) Mat3 { return Mat3{} }
func (f ConstantField) Tz(p r3.Vec) Mat3 { return Mat3{} }

// IdentityField is the identity tensor everywhere.
func IdentityField() ConstantField {
	return ConstantField{M: Identity3()}
}

//-----------------------------------------------------------------------------

// RotationMat3 returns the rotation by angle (radians) about the given axis
// as a tensor.
func RotationMat3(angle float64, axis r3.Vec) Mat3 {
	rot := r3.NewRotation(angle, axis)
	cx := rot.Rotate(r3.Vec{X: 1})
	cy := rot.Rotate(r3.Vec{Y: 1})
	cz := rot.Rotate(r3.Vec{Z: 1})
	return Mat3{
		{cx.X, cy.X, cz.X},
		{cx.Y, cy.Y, cz.Y},
		{cx.Z, cy.Z, cz.Z},
	}
}

// LinearTwistField interpolates a diagonal tensor towards a rotated copy of
// itself with increasing x. The eigenvector frame twists about Axis as the
// field advances, so patches crossing the twist carry interior parallel
// eigenvector structure.
type LinearTwistField struct {
	Base  Mat3    // tensor at x = 0
	Axis  r3.Vec  // twist axis
	Angle float64 // full twist angle reached at x = 1
}

func (f LinearTwistField) at(s float64) Mat3 {
	r := RotationMat3(s*f.Angle, f.Axis)
	return r.Mul(f.Base).Mul(r.Transpose())
}

func (f LinearTwistField) T(p r3.Vec) Mat3 {
	// linear blend between the endpoint frames
	a := f.at(0)
	b := f.at(1)
	return a.Scale(1 - p.X).Add(b.Scale(p.X))
}

func (f LinearTwistField) Tx(p r3.Vec) Mat3 {
	a := f.at(0)
	b := f.at(1)
	return b.Add(a.Scale(-1))
}

func (f LinearTwistField) Ty(p r3.Vec) Mat3 { return Mat3{} }
func (f LinearTwistField) Tz(p r3.Vec) Mat3 { return Mat3{} }

//-----------------------------------------------------------------------------

// SpiralField has a real eigenvalue along its axis and a complex-conjugate
// eigenvalue pair whose rotational part grows with y. Useful for exercising
// the imaginary-eigenvalue labeling.
type SpiralField struct {
	Stretch float64 // real axis eigenvalue
	Swirl   float64 // rotational strength per unit y
}

func (f SpiralField) T(p r3.Vec) Mat3 {
	w := f.Swirl * p.Y
	return Mat3{
		{1, -w, 0},
		{w, 1, 0},
		{0, 0, f.Stretch},
	}
}

func (f SpiralField) Tx(p r3.Vec) Mat3 { return Mat3{} }

func (f SpiralField) Ty(p r3.Vec) Mat3 {
	return Mat3{
		{0, -f.Swirl, 0},
		{f.Swirl, 0, 0},
		{0, 0, 0},
	}
}

func (f SpiralField) Tz(p r3.Vec) Mat3 { return Mat3{} }

//-----------------------------------------------------------------------------
