package bezier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

// randBary returns a uniform random barycentric coordinate.
func randBary(rnd *rand.Rand) [3]float64 {
	a := rnd.Float64()
	b := rnd.Float64() * (1 - a)
	return [3]float64{a, b, 1 - a - b}
}

func TestLatticeSize(t *testing.T) {
	tests := []struct {
		d, n int
	}{
		{0, 1},
		{1, 3},
		{2, 6},
		{3, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.n, LatticeSize(tt.d))
		assert.Len(t, Lattice(tt.d), tt.n)
	}
}

func TestLatticeOrder(t *testing.T) {
	want := [][3]int{
		{2, 0, 0}, {1, 1, 0}, {1, 0, 1},
		{0, 2, 0}, {0, 1, 1}, {0, 0, 2},
	}
	assert.Equal(t, want, Lattice(2))

	// the index formula must agree with the enumeration order
	for d := 0; d <= 3; d++ {
		for n, idx := range Lattice(d) {
			assert.Equal(t, n, latticeIndex(d, idx[0], idx[1]))
		}
	}
}

func TestDomainPoints(t *testing.T) {
	for d := 0; d <= 3; d++ {
		for _, p := range DomainPoints(d) {
			assert.InDelta(t, 1.0, p[0]+p[1]+p[2], 1e-15)
		}
	}
	// the lattice starts at corner 0 and ends at corner 2
	pts := DomainPoints(3)
	assert.Equal(t, [3]float64{1, 0, 0}, pts[0])
	assert.Equal(t, [3]float64{0, 0, 1}, pts[9])
}

func TestBernsteinPartitionOfUnity(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for d := 0; d <= 3; d++ {
		for n := 0; n < 50; n++ {
			b := Bernstein(d, randBary(rnd))
			sum := 0.0
			for _, w := range b {
				require.GreaterOrEqual(t, w, 0.0)
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-12)
		}
	}
}

func TestSplitMatrixConvexRows(t *testing.T) {
	for d := 1; d <= 3; d++ {
		n := LatticeSize(d)
		for k := 0; k < 4; k++ {
			m := SplitMatrix(d, k)
			require.Len(t, m, n*n)
			for row := 0; row < n; row++ {
				sum := 0.0
				for col := 0; col < n; col++ {
					w := m[row*n+col]
					assert.GreaterOrEqual(t, w, 0.0, "degree %d child %d entry (%d,%d)", d, k, row, col)
					sum += w
				}
				assert.InDelta(t, 1.0, sum, 1e-12, "degree %d child %d row %d", d, k, row)
			}
		}
	}
}

// mapToParent expresses a child-local barycentric coordinate in the parent
// triangle's barycentric system.
func mapToParent(k int, b [3]float64) [3]float64 {
	v := childVertices[k]
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = b[0]*v[0][i] + b[1]*v[1][i] + b[2]*v[2][i]
	}
	return out
}

func TestSplitReproducesParent(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for d := 1; d <= 3; d++ {
		n := LatticeSize(d)
		coeffs := make([]float64, n)
		for i := range coeffs {
			coeffs[i] = rnd.NormFloat64()
		}
		// degree-0 positional factor turns the product into a plain
		// single-triangle polynomial
		parent := NewProduct(d, 0, append([]float64(nil), coeffs...))
		for k := 0; k < 4; k++ {
			child := parent.SplitDir(k)
			for trial := 0; trial < 20; trial++ {
				b := randBary(rnd)
				got := child.Eval(b, [3]float64{1, 0, 0})
				want := parent.Eval(mapToParent(k, b), [3]float64{1, 0, 0})
				assert.True(t, scalar.EqualWithinAbs(got, want, 1e-12),
					"degree %d child %d: got %v want %v", d, k, got, want)
			}
		}
	}
}
