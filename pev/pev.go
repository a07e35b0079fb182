//-----------------------------------------------------------------------------
/*

Parallel eigenvector points on triangle patches.

Locates the points inside a triangular patch of two linearly interpolated 3x3
tensor fields where some real direction is an eigenvector of both tensors at
once, and solves the tensor Sujudi-Haimes variant where the second tensor is
the directional derivative of the first. Both reduce to adaptive root searches
of Bernstein-form polynomials over the product of a positional and a
directional triangle.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// identityPatch is the barycentric reference triangle the search runs on.
func identityPatch() Triangle {
	return Triangle{r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}}
}

// identityBasis is the default spatial patch when the caller supplies none.
func identityBasis() [3]r3.Vec {
	return [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
}

// validatePatch rejects spatial patches the search cannot work on.
func validatePatch(x [3]r3.Vec) error {
	tri := r3.Triangle{x[0], x[1], x[2]}
	if tri.IsDegenerate(1e-12) {
		return ErrDegenerateTriangle
	}
	return nil
}

func validateTensors(ts ...TensorInterp) error {
	for _, t := range ts {
		if !t.IsFinite() {
			return ErrNonFiniteTensor
		}
	}
	return nil
}

//-----------------------------------------------------------------------------

// FindParallelEigenvectorsStats locates all parallel-eigenvector points of
// the tensor fields s and t, each linearly interpolated from samples at the
// vertices x of a spatial triangle. Positions are reported in the coordinates
// of x. The returned stats carry the subdivision counters and the overflow
// flag.
func FindParallelEigenvectorsStats(s, t [3]Mat3, x [3]r3.Vec, opts Options) (PointList, Stats, error) {
	var stats Stats

	if err := opts.validate(); err != nil {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", err)
	}
	if err := validatePatch(x); err != nil {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", err)
	}
	si := TensorInterp{s[0], s[1], s[2]}
	ti := TensorInterp{t[0], t[1], t[2]}
	if err := validateTensors(si, ti); err != nil {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", err)
	}

	tol := pevTolerances{spatial: opts.spatial(), direction: opts.direction()}
	cands := parallelEigenvectorSearch(si, ti, identityPatch(), tol, searchQueueCap, &stats)

	clusters := clusterCandidates(cands, opts.ClusterEpsilon)
	reps := findRepresentatives(clusters, opts.ParallelityEpsilon, &stats)

	outer := Triangle{x[0], x[1], x[2]}
	points := computeContext(reps, outer, func(pos Bary, dir r3.Vec) (Mat3, Mat3) {
		return si.At(pos), ti.At(pos)
	})
	return points, stats, nil
}

// FindParallelEigenvectors is FindParallelEigenvectorsStats without the
// diagnostics.
func FindParallelEigenvectors(s, t [3]Mat3, x [3]r3.Vec, opts Options) (PointList, error) {
	points, _, err := FindParallelEigenvectorsStats(s, t, x, opts)
	return points, err
}

// FindParallelEigenvectorsBary runs the search on the identity barycentric
// patch, reporting positions as barycentric coordinates.
func FindParallelEigenvectorsBary(s, t [3]Mat3, opts Options) (PointList, error) {
	return FindParallelEigenvectors(s, t, identityBasis(), opts)
}

//-----------------------------------------------------------------------------

// FindTensorSujudiHaimesStats locates the degenerate-line points of the
// tensor field t whose directional derivative fields along x, y and z are dt.
// Positions are reported in the coordinates of x.
func FindTensorSujudiHaimesStats(t [3]Mat3, dt [3][3]Mat3, x [3]r3.Vec, opts Options) (PointList, Stats, error) {
	var stats Stats

	if err := opts.validate(); err != nil {
		return nil, stats, fmt.Errorf("find tensor sujudi-haimes: %w", err)
	}
	if err := validatePatch(x); err != nil {
		return nil, stats, fmt.Errorf("find tensor sujudi-haimes: %w", err)
	}
	ti := TensorInterp{t[0], t[1], t[2]}
	di := [3]TensorInterp{
		{dt[0][0], dt[0][1], dt[0][2]},
		{dt[1][0], dt[1][1], dt[1][2]},
		{dt[2][0], dt[2][1], dt[2][2]},
	}
	if err := validateTensors(ti, di[0], di[1], di[2]); err != nil {
		return nil, stats, fmt.Errorf("find tensor sujudi-haimes: %w", err)
	}

	tol := shTolerances{spatial: opts.spatial(), direction: opts.direction(), minEv: opts.MinEv}
	cands := tensorSujudiHaimesSearch(ti, di, identityPatch(), tol, &stats)

	clusters := clusterCandidates(cands, opts.ClusterEpsilon)
	reps := findRepresentatives(clusters, opts.ParallelityEpsilon, &stats)

	outer := Triangle{x[0], x[1], x[2]}
	points := computeContext(reps, outer, func(pos Bary, dir r3.Vec) (Mat3, Mat3) {
		tc := ti.At(pos)
		dc := di[0].At(pos).Scale(dir.X).
			Add(di[1].At(pos).Scale(dir.Y)).
			Add(di[2].At(pos).Scale(dir.Z))
		return tc, dc
	})
	return points, stats, nil
}

// FindTensorSujudiHaimes is FindTensorSujudiHaimesStats without the
// diagnostics.
func FindTensorSujudiHaimes(t [3]Mat3, dt [3][3]Mat3, x [3]r3.Vec, opts Options) (PointList, error) {
	points, _, err := FindTensorSujudiHaimesStats(t, dt, x, opts)
	return points, err
}

// FindTensorSujudiHaimesBary runs the search on the identity barycentric
// patch, reporting positions as barycentric coordinates.
func FindTensorSujudiHaimesBary(t [3]Mat3, dt [3][3]Mat3, opts Options) (PointList, error) {
	return FindTensorSujudiHaimes(t, dt, identityBasis(), opts)
}

//-----------------------------------------------------------------------------

// FindParallelEigenvectorsLegacy is the older interface with per-factor
// accept thresholds and a parallelity threshold that drops weak clusters,
// counting them as false positives in the returned stats. It uses the legacy
// work queue cap.
func FindParallelEigenvectorsLegacy(s, t [3]Mat3, x [3]r3.Vec, spatialEps, directionEps, clusterEps, parallelityEps float64) (PointList, Stats, error) {
	var stats Stats

	opts := Options{
		SpatialEpsilon:     spatialEps,
		DirectionEpsilon:   directionEps,
		ClusterEpsilon:     clusterEps,
		ParallelityEpsilon: parallelityEps,
	}
	if spatialEps <= 0 || directionEps <= 0 {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", ErrBadTolerance)
	}
	if err := opts.validate(); err != nil {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", err)
	}
	if err := validatePatch(x); err != nil {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", err)
	}
	si := TensorInterp{s[0], s[1], s[2]}
	ti := TensorInterp{t[0], t[1], t[2]}
	if err := validateTensors(si, ti); err != nil {
		return nil, stats, fmt.Errorf("find parallel eigenvectors: %w", err)
	}

	tol := pevTolerances{spatial: spatialEps, direction: directionEps}
	cands := parallelEigenvectorSearch(si, ti, identityPatch(), tol, legacySearchQueueCap, &stats)

	clusters := clusterCandidates(cands, clusterEps)
	reps := findRepresentatives(clusters, parallelityEps, &stats)

	outer := Triangle{x[0], x[1], x[2]}
	points := computeContext(reps, outer, func(pos Bary, dir r3.Vec) (Mat3, Mat3) {
		return si.At(pos), ti.At(pos)
	})
	return points, stats, nil
}

//-----------------------------------------------------------------------------
