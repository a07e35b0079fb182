//-----------------------------------------------------------------------------
/*

Search options and input validation errors.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"errors"
)

//-----------------------------------------------------------------------------

// Input validation errors returned by the entry points.
var (
	// ErrDegenerateTriangle means the spatial patch has no area.
	ErrDegenerateTriangle = errors.New("pev: degenerate spatial triangle")
	// ErrNonFiniteTensor means a tensor sample has a NaN or Inf entry.
	ErrNonFiniteTensor = errors.New("pev: non-finite tensor entry")
	// ErrBadTolerance means the tolerance is not positive.
	ErrBadTolerance = errors.New("pev: tolerance must be > 0")
	// ErrBadClusterEpsilon means the cluster epsilon is negative.
	ErrBadClusterEpsilon = errors.New("pev: cluster epsilon must be >= 0")
	// ErrBadMinEv means the eigenvalue floor is negative.
	ErrBadMinEv = errors.New("pev: minimum eigenvalue must be >= 0")
)

//-----------------------------------------------------------------------------

// Options configures a search run.
type Options struct {
	// Tolerance is the terminal diameter for both the spatial and the
	// directional triangle.
	Tolerance float64
	// ClusterEpsilon is the maximum centroid distance for merging candidate
	// regions into one cluster.
	ClusterEpsilon float64
	// MinEv rejects Sujudi-Haimes candidates whose eigenvalue magnitude is
	// below this floor. Ignored by the parallel-eigenvector search.
	MinEv float64

	// Legacy per-factor thresholds. When positive they override Tolerance
	// for their factor; ParallelityEpsilon > 0 additionally drops clusters
	// whose best residual exceeds it.
	SpatialEpsilon     float64
	DirectionEpsilon   float64
	ParallelityEpsilon float64
}

// DefaultOptions returns the options used when callers have no better
// knowledge of their field's scale.
func DefaultOptions() Options {
	return Options{
		Tolerance:      1e-6,
		ClusterEpsilon: 1e-4,
	}
}

// spatial returns the effective spatial accept threshold.
func (o Options) spatial() float64 {
	if o.SpatialEpsilon > 0 {
		return o.SpatialEpsilon
	}
	return o.Tolerance
}

// direction returns the effective directional accept threshold.
func (o Options) direction() float64 {
	if o.DirectionEpsilon > 0 {
		return o.DirectionEpsilon
	}
	return o.Tolerance
}

// validate checks the common option constraints.
func (o Options) validate() error {
	if o.Tolerance <= 0 && (o.SpatialEpsilon <= 0 || o.DirectionEpsilon <= 0) {
		return ErrBadTolerance
	}
	if o.ClusterEpsilon < 0 {
		return ErrBadClusterEpsilon
	}
	if o.MinEv < 0 {
		return ErrBadMinEv
	}
	return nil
}

//-----------------------------------------------------------------------------
