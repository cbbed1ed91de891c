package pathanalyzer

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/trustgraph/trustcore/telemetry"
)

type frontierState struct {
	trustKey float64
	hops     int
	node     string
	path     []string
	confProd float64
}

// frontierHeap is a max-heap on trustKey, matching the "best-first
// search with a max-heap keyed on current decayed trust" of spec.md
// §4.2.
type frontierHeap []*frontierState

func (h frontierHeap) Len() int            { return len(h) }
func (h frontierHeap) Less(i, j int) bool  { return h[i].trustKey > h[j].trustKey }
func (h frontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap) Push(x any)         { *h = append(*h, x.(*frontierState)) }
func (h *frontierHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindPaths returns the ranked set of acyclic trust paths from source
// to target, per spec.md §4.2. A cache hit short-circuits the search
// entirely.
func (a *Analyzer) FindPaths(ctx context.Context, source, target string) (*SearchResult, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "pathanalyzer.FindPaths")
	defer span.End()
	_ = ctx

	if source == target {
		return &SearchResult{Source: source, Target: target, AllPaths: []Path{}}, nil
	}

	cacheKey := source + "->" + target
	if a.pathCache != nil {
		if cached, ok := a.pathCache.Get(cacheKey); ok {
			telemetry.CacheResultsTotal.WithLabelValues("path", "hit").Inc()
			return cached, nil
		}
		telemetry.CacheResultsTotal.WithLabelValues("path", "miss").Inc()
	}

	start := time.Now()
	result, searchErr := a.search(source, target)
	telemetry.PathSearchDuration.Observe(time.Since(start).Seconds())

	if a.pathCache != nil {
		a.pathCache.SetWithTTL(cacheKey, result, 1, a.cacheTTL)
		a.pathCache.Wait()
	}
	return result, searchErr
}

func (a *Analyzer) search(source, target string) (*SearchResult, error) {
	result := &SearchResult{Source: source, Target: target, AllPaths: []Path{}}

	if _, ok := a.store.GetAgent(source); !ok {
		return result, nil
	}
	if _, ok := a.store.GetAgent(target); !ok {
		return result, nil
	}

	frontier := &frontierHeap{{trustKey: 0, hops: 0, node: source, path: []string{source}, confProd: 1.0}}
	heap.Init(frontier)

	visited := make(map[string]bool)
	var found []Path
	var searchErr error

loop:
	for frontier.Len() > 0 {
		if frontier.Len() > maxFrontierSize || len(visited) > maxVisitedSize {
			searchErr = fmt.Errorf("%s->%s: %w", source, target, ErrSearchTooLarge)
			break loop
		}

		state := heap.Pop(frontier).(*frontierState)

		if state.hops >= a.maxPathLength || state.confProd < a.minConfidence {
			continue
		}

		key := state.node + "|" + strings.Join(state.path, ",")
		if visited[key] {
			continue
		}
		visited[key] = true

		if state.node == target && len(state.path) > 1 {
			found = append(found, Path{
				Nodes:          append([]string(nil), state.path...),
				CompositeTrust: a.pathTrust(state.path),
				Confidence:     state.confProd,
			})
			if len(found) >= a.maxPaths {
				break loop
			}
			continue
		}

		for _, next := range a.store.GetNeighbors(state.node) {
			if containsNode(state.path, next) {
				continue
			}
			edge, ok := a.store.GetEdge(state.node, next)
			if !ok || edge.TrustScore <= 0 {
				continue
			}
			newPath := append(append([]string(nil), state.path...), next)
			heap.Push(frontier, &frontierState{
				trustKey: edge.TrustScore * math.Pow(a.decayFactor, float64(state.hops)),
				hops:     state.hops + 1,
				node:     next,
				path:     newPath,
				confProd: state.confProd * edge.Confidence,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].CompositeTrust != found[j].CompositeTrust {
			return found[i].CompositeTrust > found[j].CompositeTrust
		}
		if len(found[i].Nodes) != len(found[j].Nodes) {
			return len(found[i].Nodes) < len(found[j].Nodes)
		}
		return found[i].Confidence > found[j].Confidence
	})

	result.AllPaths = found
	if len(found) > 0 {
		best := found[0]
		result.BestPath = &best
		result.AverageTrust = averageIntermediateTrust(found)
	}
	return result, searchErr
}

// pathTrust computes T(path) = Π score(a_i,a_i+1) · decay_factor^i,
// per spec.md §4.2.
func (a *Analyzer) pathTrust(path []string) float64 {
	trust := 1.0
	for i := 0; i < len(path)-1; i++ {
		edge, ok := a.store.GetEdge(path[i], path[i+1])
		if !ok {
			return 0
		}
		trust *= edge.TrustScore * math.Pow(a.decayFactor, float64(i))
	}
	return trust
}

func averageIntermediateTrust(paths []Path) float64 {
	if len(paths) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range paths {
		sum += p.CompositeTrust
	}
	return sum / float64(len(paths))
}

func containsNode(path []string, node string) bool {
	for _, p := range path {
		if p == node {
			return true
		}
	}
	return false
}
