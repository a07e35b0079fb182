//-----------------------------------------------------------------------------
/*

Clustering of accepted candidate regions.

Neighboring candidates describe the same root up to tolerance. Two candidates
belong to the same cluster when their positional centroids are within the
cluster epsilon, transitively. Candidate pairs are enumerated through an
R-tree over the centroids and merged with a union-find, which reaches the
same fixpoint as repeated pairwise agglomeration. Clusters keep the insertion
order of their first member, so results are deterministic for a given input.

*/
//-----------------------------------------------------------------------------

package pev

import (
	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------

// candidate is one accepted evaluator with its cached positional centroid.
type candidate struct {
	ev     Evaluator
	center r3.Vec
	index  int
	bounds *rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (c *candidate) Bounds() *rtreego.Rect {
	return c.bounds
}

// clusterRepr is the representative of one cluster of similar candidates.
type clusterRepr struct {
	size int
	ev   Evaluator
}

//-----------------------------------------------------------------------------

// unionFind is a plain disjoint-set forest with path compression.
type unionFind []int

func newUnionFind(n int) unionFind {
	u := make(unionFind, n)
	for i := range u {
		u[i] = i
	}
	return u
}

func (u unionFind) find(i int) int {
	for u[i] != i {
		u[i] = u[u[i]]
		i = u[i]
	}
	return i
}

func (u unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri > rj {
		ri, rj = rj, ri
	}
	// lower index wins, preserving discovery order
	u[rj] = ri
}

//-----------------------------------------------------------------------------

// clusterCandidates groups the accepted evaluators into clusters of
// within-epsilon neighbors, ordered by first discovery.
func clusterCandidates(evs []Evaluator, epsilon float64) [][]Evaluator {
	if len(evs) == 0 {
		return nil
	}

	cands := make([]*candidate, len(evs))
	// Inflate the index boxes by half the epsilon on each side; intersecting
	// boxes are then a superset of the within-epsilon pairs.
	half := 0.5*epsilon + 1e-12
	tree := rtreego.NewTree(3, 8, 16)
	for i, ev := range evs {
		ctr := ev.Tris().Pos.Centroid()
		c := &candidate{
			ev:     ev,
			center: ctr,
			index:  i,
			bounds: rtreego.Point{ctr.X, ctr.Y, ctr.Z}.ToRect(half),
		}
		cands[i] = c
		tree.Insert(c)
	}

	uf := newUnionFind(len(cands))
	eps2 := epsilon * epsilon
	for _, c := range cands {
		for _, hit := range tree.SearchIntersect(c.bounds) {
			o := hit.(*candidate)
			if o.index <= c.index {
				continue
			}
			if r3.Norm2(r3.Sub(c.center, o.center)) <= eps2 {
				uf.union(c.index, o.index)
			}
		}
	}

	// Collect components in first-member order.
	order := []int{}
	members := map[int][]Evaluator{}
	for i, c := range cands {
		root := uf.find(i)
		if _, seen := members[root]; !seen {
			order = append(order, root)
		}
		members[root] = append(members[root], c.ev)
	}
	out := make([][]Evaluator, len(order))
	for n, root := range order {
		out[n] = members[root]
	}
	return out
}

//-----------------------------------------------------------------------------

// findRepresentatives picks the candidate with the smallest parallelity
// residual from each cluster. A positive parallelityEps additionally rejects
// clusters whose best residual is still above it, counting them as false
// positives.
func findRepresentatives(clusters [][]Evaluator, parallelityEps float64, stats *Stats) []clusterRepr {
	var out []clusterRepr
	for _, c := range clusters {
		best := c[0]
		bestErr := best.Error()
		for _, ev := range c[1:] {
			if err := ev.Error(); err < bestErr {
				best, bestErr = ev, err
			}
		}
		if parallelityEps > 0 && bestErr > parallelityEps {
			stats.NumFalsePositives++
			continue
		}
		out = append(out, clusterRepr{size: len(c), ev: best})
	}
	return out
}

//-----------------------------------------------------------------------------
