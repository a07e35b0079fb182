package pev

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------
// test fields

// identitySamples is the identity tensor at all three vertices.
func identitySamples() [3]Mat3 {
	return [3]Mat3{Identity3(), Identity3(), Identity3()}
}

func constantSamples(m Mat3) [3]Mat3 {
	return [3]Mat3{m, m, m}
}

// crossingSamples builds a pair of linear tensor fields that share the
// eigenvector e_z at exactly one interior position, the patch centroid. Both
// fields keep e_z in their invariant plane only where the top two entries of
// their third column vanish; the vertex samples are chosen so those zero
// sets intersect at the centroid and nowhere else.
func crossingSamples() (s, t [3]Mat3) {
	sBase := Mat3{{1, 0.1, 0}, {0.2, 4, 0}, {0, 0, 0}}
	s02 := [3]float64{0.3, -0.15, -0.15}
	s12 := [3]float64{-0.15, 0.3, -0.15}
	s22 := [3]float64{2, 2.5, 1.5}

	tBase := Mat3{{3, -0.2, 0}, {0, 1, 0}, {0.3, 0, 0}}
	t02 := [3]float64{-0.3, 0.15, 0.15}
	t12 := [3]float64{0.2, 0.2, -0.4}
	t22 := [3]float64{1.8, 2.2, 2.0}

	for i := 0; i < 3; i++ {
		s[i] = sBase
		s[i][0][2] = s02[i]
		s[i][1][2] = s12[i]
		s[i][2][2] = s22[i]

		t[i] = tBase
		t[i][0][2] = t02[i]
		t[i][1][2] = t12[i]
		t[i][2][2] = t22[i]
	}
	return s, t
}

// residualAt recomputes the scale-free parallelity residual of a returned
// point against the vertex samples it came from.
func residualAt(s, t [3]Mat3, p PEVPoint) float64 {
	b := Bary{p.Pos.X, p.Pos.Y, p.Pos.Z}
	si := TensorInterp{s[0], s[1], s[2]}.At(b)
	ti := TensorInterp{t[0], t[1], t[2]}.At(b)
	d := p.Eigenvector
	return parallelity(si.MulVec(d), d) + parallelity(ti.MulVec(d), d)
}

//-----------------------------------------------------------------------------
// scenarios

// Identity tensors: every direction is everywhere an eigenvector of both
// fields. With a tolerance that accepts the seed regions outright, the four
// seeds collapse into a single cluster.
func TestFindPEVIdentity(t *testing.T) {
	opts := Options{Tolerance: 2.0, ClusterEpsilon: 0.1}
	points, stats, err := FindParallelEigenvectorsStats(identitySamples(), identitySamples(), identityBasis(), opts)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, uint64(4), stats.NumCandidates)

	p := points[0]
	assert.Equal(t, 4, p.ClusterSize)
	assert.Equal(t, 0, p.SRank)
	assert.Equal(t, 0, p.TRank)
	assert.InDelta(t, 1.0, p.SEigenvalue, 1e-12)
	assert.InDelta(t, 1.0, p.TEigenvalue, 1e-12)
	assert.False(t, p.SHasImag)
	assert.False(t, p.THasImag)
	assert.InDelta(t, 1.0, r3.Norm(p.Eigenvector), 1e-12)
}

// Two constant commuting tensors with permuted eigenvalue order share the
// three coordinate axes as eigenvector directions over the whole patch. The
// zero set is position-degenerate, so clustering by position merges across
// directions; the representative still has to be axis aligned and rank
// consistent.
func TestFindPEVConstantCommuting(t *testing.T) {
	s := constantSamples(Diag(1, 2, 3))
	tt := constantSamples(Diag(3, 1, 2))

	opts := Options{Tolerance: 0.3, ClusterEpsilon: 2.0}
	points, err := FindParallelEigenvectors(s, tt, identityBasis(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	for _, p := range points {
		// direction locks onto one of the coordinate axes
		ax := math.Max(math.Abs(p.Eigenvector.X),
			math.Max(math.Abs(p.Eigenvector.Y), math.Abs(p.Eigenvector.Z)))
		assert.Greater(t, ax, 0.9, "direction %v is not axis aligned", p.Eigenvector)

		assert.False(t, p.SHasImag)
		assert.False(t, p.THasImag)
		assert.Contains(t, []int{0, 1, 2}, p.SRank)
		assert.Contains(t, []int{0, 1, 2}, p.TRank)
		assert.LessOrEqual(t, residualAt(s, tt, p), 0.6)
	}
}

// An isolated interior crossing: both fields share e_z exactly at the patch
// centroid.
func TestFindPEVIsolatedInteriorPoint(t *testing.T) {
	s, tt := crossingSamples()

	opts := Options{Tolerance: 1e-2, ClusterEpsilon: 0.05}
	points, stats, err := FindParallelEigenvectorsStats(s, tt, identityBasis(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.False(t, stats.Overflow)

	found := false
	centroid := r3.Vec{X: 1. / 3., Y: 1. / 3., Z: 1. / 3.}
	for _, p := range points {
		if r3.Norm(r3.Sub(p.Pos, centroid)) > 0.05 {
			continue
		}
		found = true
		assert.Greater(t, math.Abs(p.Eigenvector.Z), 0.99)
		assert.InDelta(t, 2.0, p.SEigenvalue, 0.05)
		assert.InDelta(t, 2.0, p.TEigenvalue, 0.05)
		assert.Equal(t, 1, p.SRank)
		assert.Equal(t, 1, p.TRank)
		assert.False(t, p.SHasImag)
		assert.False(t, p.THasImag)
		assert.LessOrEqual(t, p.PosUncertainty, opts.Tolerance)
		assert.LessOrEqual(t, p.DirUncertainty, opts.Tolerance)
	}
	assert.True(t, found, "no point near the engineered crossing at the centroid: %v", points)

	// accepted points satisfy the eigenvector condition up to tolerance scale
	for _, p := range points {
		assert.LessOrEqual(t, residualAt(s, tt, p), 0.3)
	}
}

// Same inputs, same output: the search is deterministic.
func TestFindPEVDeterministic(t *testing.T) {
	s, tt := crossingSamples()
	opts := Options{Tolerance: 1e-2, ClusterEpsilon: 0.05}

	a, err := FindParallelEigenvectors(s, tt, identityBasis(), opts)
	require.NoError(t, err)
	b, err := FindParallelEigenvectors(s, tt, identityBasis(), opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// The fields agree exactly along the v0-v1 edge, where the shared diagonal
// has the coordinate axes as eigenvectors. The whole edge is a connected
// zero set and must collapse into clusters of more than one candidate.
func TestFindPEVDegenerateEdge(t *testing.T) {
	d := Diag(1, 2, 3)
	perturbed := d
	perturbed[0][1] += 0.5
	perturbed[1][0] += 0.5
	perturbed[0][2] += 0.2
	perturbed[2][0] += 0.1

	s := constantSamples(d)
	tt := [3]Mat3{d, d, perturbed}

	opts := Options{Tolerance: 0.1, ClusterEpsilon: 2.0}
	points, err := FindParallelEigenvectors(s, tt, identityBasis(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	p := points[0]
	assert.GreaterOrEqual(t, p.ClusterSize, 2)
	// the cluster hugs the v0-v1 edge, where the third barycentric
	// coordinate vanishes
	assert.Less(t, p.Pos.Z, 0.2)
}

// A field with a complex-conjugate eigenvalue pair everywhere on the patch:
// the only shared real eigenvector is the spiral axis, and the imaginary
// flags must be set.
func TestFindPEVImaginaryRegion(t *testing.T) {
	x := [3]r3.Vec{
		{X: 0, Y: 0.5, Z: 0},
		{X: 1, Y: 0.6, Z: 0},
		{X: 0.2, Y: 1.5, Z: 0},
	}
	field := SpiralField{Stretch: 2, Swirl: 1}
	samples, _ := SampleField(field, x)

	opts := Options{Tolerance: 0.25, ClusterEpsilon: 2.0}
	points, err := FindParallelEigenvectors(samples, samples, x, opts)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	p := points[0]
	assert.True(t, p.SHasImag)
	assert.True(t, p.THasImag)
	assert.Greater(t, math.Abs(p.Eigenvector.Z), 0.95)
	assert.InDelta(t, 2.0, p.SEigenvalue, 0.1)
	assert.Equal(t, 0, p.SRank)
}

// An identically vanishing residual with an unreachable tolerance can never
// discard or accept, so the work queue must hit its cap and report overflow
// with partial (here: empty) results.
func TestFindPEVOverflow(t *testing.T) {
	opts := Options{Tolerance: 1e-12, ClusterEpsilon: 0.1}
	points, stats, err := FindParallelEigenvectorsStats(identitySamples(), identitySamples(), identityBasis(), opts)
	require.NoError(t, err)
	assert.True(t, stats.Overflow)
	assert.Empty(t, points)
	assert.Greater(t, stats.NumSplits, uint64(1000))
}

//-----------------------------------------------------------------------------
// sujudi-haimes

// A constant tensor has a vanishing derivative, so the derivative residual is
// identically zero and the eigenvector condition alone decides. All three
// axis eigenvalues clear the floor.
func TestFindSHConstantField(t *testing.T) {
	field := ConstantField{M: Diag(1, 2, 3)}
	x := identityBasis()
	samples, dt := SampleField(field, x)

	opts := Options{Tolerance: 0.3, ClusterEpsilon: 2.0, MinEv: 0.5}
	points, err := FindTensorSujudiHaimes(samples, dt, x, opts)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	for _, p := range points {
		ax := math.Max(math.Abs(p.Eigenvector.X),
			math.Max(math.Abs(p.Eigenvector.Y), math.Abs(p.Eigenvector.Z)))
		assert.Greater(t, ax, 0.9)
		assert.GreaterOrEqual(t, math.Abs(p.SEigenvalue), opts.MinEv)
	}
}

// Raising the eigenvalue floor above every eigenvalue magnitude must reject
// every candidate.
func TestFindSHMinEvRejectsAll(t *testing.T) {
	field := ConstantField{M: Diag(1, 2, 3)}
	x := identityBasis()
	samples, dt := SampleField(field, x)

	opts := Options{Tolerance: 0.3, ClusterEpsilon: 2.0, MinEv: 10}
	points, err := FindTensorSujudiHaimes(samples, dt, x, opts)
	require.NoError(t, err)
	assert.Empty(t, points)
}

//-----------------------------------------------------------------------------
// legacy interface

func TestFindPEVLegacyParallelityRejection(t *testing.T) {
	s, tt := crossingSamples()

	// an absurdly small parallelity threshold classifies every cluster as a
	// false positive
	points, stats, err := FindParallelEigenvectorsLegacy(s, tt, identityBasis(),
		1e-2, 1e-2, 0.05, 1e-18)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Greater(t, stats.NumFalsePositives, uint64(0))
}

//-----------------------------------------------------------------------------
// input validation

func TestFindPEVValidation(t *testing.T) {
	good := identitySamples()
	opts := Options{Tolerance: 0.1, ClusterEpsilon: 0.1}

	_, err := FindParallelEigenvectors(good, good, identityBasis(), Options{Tolerance: 0, ClusterEpsilon: 0.1})
	assert.ErrorIs(t, err, ErrBadTolerance)

	_, err = FindParallelEigenvectors(good, good, identityBasis(), Options{Tolerance: 0.1, ClusterEpsilon: -1})
	assert.ErrorIs(t, err, ErrBadClusterEpsilon)

	collinear := [3]r3.Vec{{X: 0}, {X: 1}, {X: 2}}
	_, err = FindParallelEigenvectors(good, good, collinear, opts)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)

	bad := good
	bad[1][0][0] = math.NaN()
	_, err = FindParallelEigenvectors(bad, good, identityBasis(), opts)
	assert.ErrorIs(t, err, ErrNonFiniteTensor)

	var dt [3][3]Mat3
	_, err = FindTensorSujudiHaimes(good, dt, identityBasis(), Options{Tolerance: 0.1, ClusterEpsilon: 0.1, MinEv: -1})
	assert.ErrorIs(t, err, ErrBadMinEv)
}
