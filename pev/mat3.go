//-----------------------------------------------------------------------------
/*

3x3 tensor values.

Mat3 is a freely copyable value type for the tensor samples flowing through
interpolation and residual sampling. Eigenvalue decomposition is delegated to
gonum's mat.Eigen.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// Mat3 is a real 3x3 tensor in row-major storage.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity tensor.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Diag returns the diagonal tensor with the given entries.
func Diag(a, b, c float64) Mat3 {
	return Mat3{{a, 0, 0}, {0, b, 0}, {0, 0, c}}
}

// MulVec returns m * v.
func (m Mat3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns the tensor product m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// Add returns m + n.
func (m Mat3) Add(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Scale returns f * m.
func (m Mat3) Scale(f float64) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = f * m[i][j]
		}
	}
	return out
}

// Transpose returns the transposed tensor.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// IsFinite reports whether every entry is finite.
func (m Mat3) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// Eigenvalues returns the three complex eigenvalues of the tensor. ok is
// false if the underlying decomposition did not converge.
func (m Mat3) Eigenvalues() (vals []complex128, ok bool) {
	a := mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
	var eig mat.Eigen
	if !eig.Factorize(a, mat.EigenNone) {
		return nil, false
	}
	return eig.Values(nil), true
}

//-----------------------------------------------------------------------------
