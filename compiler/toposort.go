package compiler

import (
	"sort"

	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/signal"
)

// detectCycles builds the non-delay edge subgraph and runs a three-color
// DFS (unvisited/on-stack/done) looking for a back edge. On the first cycle
// found it returns the concrete offending path, closed by repeating its
// first signal, as CycleDetected.
func detectCycles(edges []CompiledEdge) error {
	adj := map[signal.SignalID][]signal.SignalID{}
	var nodes []signal.SignalID
	seen := map[signal.SignalID]bool{}

	addNode := func(id signal.SignalID) {
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}

	for _, e := range edges {
		if e.IsDelay {
			continue
		}
		addNode(e.Source)
		addNode(e.Target)
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	// Deterministic traversal order (smallest id first), so the same spec
	// always reports the same cycle when it contains more than one.
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[signal.SignalID]int{}
	var stack []signal.SignalID
	var cyclePath []signal.SignalID
	found := false

	var dfs func(node signal.SignalID)
	dfs = func(node signal.SignalID) {
		if found {
			return
		}
		state[node] = visiting
		stack = append(stack, node)

		for _, neighbor := range adj[node] {
			if found {
				return
			}
			switch state[neighbor] {
			case unvisited:
				dfs(neighbor)
			case visiting:
				start := 0
				for i, n := range stack {
					if n == neighbor {
						start = i
						break
					}
				}
				cyclePath = append(cyclePath, stack[start:]...)
				cyclePath = append(cyclePath, neighbor)
				found = true
				return
			}
		}

		if found {
			return
		}
		stack = stack[:len(stack)-1]
		state[node] = done
	}

	for _, node := range nodes {
		if state[node] == unvisited {
			dfs(node)
		}
		if found {
			break
		}
	}

	if found {
		path := make([]uint32, len(cyclePath))
		for i, id := range cyclePath {
			path[i] = id
		}
		return &fxerr.CycleDetected{Path: path}
	}
	return nil
}

// topologicalSort orders edges so that non-delay edges run first, sorted
// via Kahn's algorithm with a deterministic smallest-SignalID tie-break
// among simultaneously-ready signals, followed by delay edges in their
// original spec order. Delay edges run last within the stage so that the
// value they publish is the one every sibling edge reads on the *next*
// tick, not this one — the mechanism that actually breaks a feedback loop
// under the engine's live (non-snapshotted), immediately-propagating
// store. See DESIGN.md for why this inverts the order the component
// design text describes.
func topologicalSort(edges []CompiledEdge) ([]CompiledEdge, error) {
	var delayIdx, immediateIdx []int
	for i, e := range edges {
		if e.IsDelay {
			delayIdx = append(delayIdx, i)
		} else {
			immediateIdx = append(immediateIdx, i)
		}
	}

	outgoing := map[signal.SignalID][]int{}
	inDegree := map[signal.SignalID]int{}
	allSignals := map[signal.SignalID]bool{}

	for _, idx := range immediateIdx {
		e := edges[idx]
		allSignals[e.Source] = true
		allSignals[e.Target] = true
		outgoing[e.Source] = append(outgoing[e.Source], idx)
		inDegree[e.Target]++
	}

	ready := newSignalHeap()
	for sig := range allSignals {
		if inDegree[sig] == 0 {
			ready.push(sig)
		}
	}

	var sortedImmediate []int
	processed := map[int]bool{}

	for ready.len() > 0 {
		sig := ready.pop()

		for _, idx := range outgoing[sig] {
			if processed[idx] {
				continue
			}
			processed[idx] = true
			sortedImmediate = append(sortedImmediate, idx)
			inDegree[edges[idx].Target]--
			if inDegree[edges[idx].Target] == 0 {
				ready.push(edges[idx].Target)
			}
		}
	}

	if len(sortedImmediate) != len(immediateIdx) {
		return nil, &fxerr.CycleDetected{Path: nil}
	}

	sorted := make([]CompiledEdge, 0, len(edges))
	for _, idx := range sortedImmediate {
		sorted = append(sorted, edges[idx])
	}
	for _, idx := range delayIdx {
		sorted = append(sorted, edges[idx])
	}
	return sorted, nil
}

// signalHeap is a minimal sorted-set of ready signal ids, smallest first,
// matching the C++ reference's std::set<SignalId> ready-queue semantics.
type signalHeap struct {
	items []signal.SignalID
}

func newSignalHeap() *signalHeap { return &signalHeap{} }

func (h *signalHeap) len() int { return len(h.items) }

func (h *signalHeap) push(id signal.SignalID) {
	for _, v := range h.items {
		if v == id {
			return
		}
	}
	h.items = append(h.items, id)
	sort.Slice(h.items, func(i, j int) bool { return h.items[i] < h.items[j] })
}

func (h *signalHeap) pop() signal.SignalID {
	v := h.items[0]
	h.items = h.items[1:]
	return v
}
