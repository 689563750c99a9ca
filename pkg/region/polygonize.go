package region

import (
	"math"

	"github.com/ctessum/geom"
)

// polygonize reassembles closed rings from an unordered set of line
// segments. Endpoints within tol of each other are snapped to the same
// node. The walk takes any unused edge at each node, which recovers every
// cycle of the degree-two graphs that split outlines produce; junction
// nodes of higher degree may yield an arbitrary (but closed) ring choice.
// Chains that dead-end before returning to their start are discarded as
// open geometry.
func polygonize(segs [][2]geom.Point, tol float64) [][]geom.Point {
	type edge struct {
		a, b int
		used bool
	}

	keyOf := func(p geom.Point) [2]int64 {
		return [2]int64{int64(math.Round(p.X / tol)), int64(math.Round(p.Y / tol))}
	}

	ids := make(map[[2]int64]int)
	var pts []geom.Point
	node := func(p geom.Point) int {
		k := keyOf(p)
		if id, ok := ids[k]; ok {
			return id
		}
		id := len(pts)
		ids[k] = id
		pts = append(pts, p)
		return id
	}

	var edges []*edge
	adj := make(map[int][]*edge)
	for _, s := range segs {
		a, b := node(s[0]), node(s[1])
		if a == b {
			continue // zero-length after snapping
		}
		e := &edge{a: a, b: b}
		edges = append(edges, e)
		adj[a] = append(adj[a], e)
		adj[b] = append(adj[b], e)
	}

	var rings [][]geom.Point
	for _, start := range edges {
		if start.used {
			continue
		}
		start.used = true
		first := start.a
		cur := start.b
		walk := []int{first, cur}

		for cur != first {
			var next *edge
			for _, cand := range adj[cur] {
				if !cand.used {
					next = cand
					break
				}
			}
			if next == nil {
				break // dead end, open chain
			}
			next.used = true
			if next.a == cur {
				cur = next.b
			} else {
				cur = next.a
			}
			walk = append(walk, cur)
		}

		// A closed walk visits first..first; the ring drops the repeat.
		if cur == first && len(walk) >= 4 {
			ring := make([]geom.Point, 0, len(walk)-1)
			for _, id := range walk[:len(walk)-1] {
				ring = append(ring, pts[id])
			}
			rings = append(rings, ring)
		}
	}
	return rings
}
