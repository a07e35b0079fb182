//-----------------------------------------------------------------------------
/*

Breadth-first adaptive root search.

A FIFO of evaluators is drained one region at a time. Undecided regions push
their children, accepted regions are collected, and discarded regions vanish.
The queue is capped so an adversarial residual cannot subdivide forever; an
overflow is a diagnostic, not an error, and the accepted regions found so far
are returned.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// queue caps. The legacy interface predates the tighter cap.
const (
	searchQueueCap       = 16 * 16 * 16
	legacySearchQueueCap = 10000
)

// Stats carries the side-channel diagnostics of one search run.
type Stats struct {
	NumSplits         uint64 // regions popped from the work queue
	MaxLevel          uint64 // deepest subdivision level reached
	NumCandidates     uint64 // accepted regions before clustering
	NumFalsePositives uint64 // clusters rejected by the parallelity threshold
	Overflow          bool   // the work queue exceeded its cap
}

//-----------------------------------------------------------------------------

// rootSearch drains the work queue seeded with start, collecting accepted
// evaluators. On queue overflow the partial result is returned with the
// overflow flag set.
func rootSearch(start Evaluator, queueCap int, stats *Stats) []Evaluator {
	work := []Evaluator{start}
	var result []Evaluator

	for len(work) > 0 && len(work) < queueCap {
		ev := work[0]
		work = work[1:]
		stats.NumSplits++
		if lvl := uint64(ev.SplitLevel()); lvl > stats.MaxLevel {
			stats.MaxLevel = lvl
		}

		switch ev.Eval() {
		case Split:
			work = append(work, ev.Split()...)
		case Accept:
			result = append(result, ev)
		case Discard:
		}
	}
	if len(work) >= queueCap {
		stats.Overflow = true
	}

	return result
}

//-----------------------------------------------------------------------------

// hemisphereSeeds tiles the upper hemisphere of unit directions with four
// triangles. The residuals are even in r, so one hemisphere covers every
// direction.
func hemisphereSeeds() [4]Triangle {
	return [4]Triangle{
		{r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}},
		{r3.Vec{Y: 1}, r3.Vec{X: -1}, r3.Vec{Z: 1}},
		{r3.Vec{X: -1}, r3.Vec{Y: -1}, r3.Vec{Z: 1}},
		{r3.Vec{Y: -1}, r3.Vec{X: 1}, r3.Vec{Z: 1}},
	}
}

// parallelEigenvectorSearch runs the four-seed search over one positional
// patch and returns all accepted candidate regions.
func parallelEigenvectorSearch(s, t TensorInterp, pos Triangle, tol pevTolerances, queueCap int, stats *Stats) []Evaluator {
	var result []Evaluator
	for _, seed := range hemisphereSeeds() {
		start := newPEVEvaluator(TriPair{Dir: seed, Pos: pos}, s, t, tol)
		result = append(result, rootSearch(start, queueCap, stats)...)
	}
	stats.NumCandidates = uint64(len(result))
	return result
}

// tensorSujudiHaimesSearch runs the Sujudi-Haimes search over one positional
// patch. Each hemisphere seed is pre-split once for tighter starting bounds
// in the cubic directional factor.
func tensorSujudiHaimesSearch(t TensorInterp, dt [3]TensorInterp, pos Triangle, tol shTolerances, stats *Stats) []Evaluator {
	var result []Evaluator
	for _, seed := range hemisphereSeeds() {
		for _, sub := range seed.Split() {
			start := newSHEvaluator(TriPair{Dir: sub, Pos: pos}, t, dt, tol)
			result = append(result, rootSearch(start, searchQueueCap, stats)...)
		}
	}
	stats.NumCandidates = uint64(len(result))
	return result
}

//-----------------------------------------------------------------------------
