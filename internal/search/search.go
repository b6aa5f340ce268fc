// Package search implements a generic best-first (A*) traversal over an
// implicit grid graph. Cost, heuristic, neighbor enumeration, and goal test
// are injected as callbacks, so the engine knows nothing about roads or
// terrain.
//
// Path nodes live in a per-engine arena and chain toward the start through
// parent indices; open/closed membership is tracked in fixed-size
// hash-bucketed tables with chaining. An engine is single-use: build it,
// add start tiles, call Run once, then discard it.
package search

import (
	"container/heap"

	"github.com/talgya/openroads/internal/tile"
)

// Result is the outcome of a Run.
type Result uint8

const (
	// Found means the goal test succeeded on some popped node.
	Found Result = iota
	// NoPath means the open set was exhausted before reaching the goal.
	// This is a normal outcome, not an error.
	NoPath
)

// DefaultHashBits sizes the open/closed bucket tables at 1<<8 buckets.
// Bucket count only affects chain length, never correctness.
const DefaultHashBits = 8

// Config is the callback set driving one search domain.
type Config struct {
	// Cost returns the cost of stepping from one tile to an adjacent one.
	Cost func(from, to tile.Index) int

	// Estimate returns an admissible estimate of the remaining cost from t
	// to the goal.
	Estimate func(t tile.Index) int

	// Neighbors enumerates the tiles legally reachable in one step from t.
	Neighbors func(t tile.Index) []tile.Index

	// IsGoal reports whether t completes the search.
	IsGoal func(t tile.Index) bool

	// Found, if set, is invoked with the terminal node before Run returns
	// Found. The node is only valid until the engine is discarded.
	Found func(Node)

	// HashBits overrides DefaultHashBits when non-zero.
	HashBits uint
}

// Engine runs one best-first search. Not safe for reuse or concurrent use.
type Engine struct {
	cfg    Config
	nodes  []pathNode
	open   *table
	closed *table
	queue  openQueue
	seq    uint64
}

const noParent int32 = -1

// pathNode is one arena entry: a tile, its accumulated cost, and the arena
// index of its parent toward the start.
type pathNode struct {
	tile   tile.Index
	parent int32
	cost   int
}

// New creates an engine for a single search with the given callbacks.
func New(cfg Config) *Engine {
	bits := cfg.HashBits
	if bits == 0 {
		bits = DefaultHashBits
	}
	return &Engine{
		cfg:    cfg,
		open:   newTable(bits),
		closed: newTable(bits),
	}
}

// AddStart seeds the open set with a start tile at the given initial cost.
// Multiple starts may be added before Run.
func (e *Engine) AddStart(t tile.Index, cost int) {
	if ref, ok := e.open.get(t, e.nodes); ok {
		if cost < e.nodes[ref].cost {
			e.nodes[ref].cost = cost
			e.push(ref)
		}
		return
	}
	ref := e.alloc(t, noParent, cost)
	e.open.put(t, ref)
	e.push(ref)
}

// Run pops open entries in best-first order until the goal test succeeds or
// the open set empties. On success the Found callback (if any) receives the
// terminal node and Run returns Found.
func (e *Engine) Run() Result {
	for e.queue.Len() > 0 {
		item := heap.Pop(&e.queue).(queued)
		// Copy, not pointer: alloc below may grow the arena.
		cur := e.nodes[item.ref]

		// A node improved after this entry was queued leaves the old entry
		// stale; the fresher entry is still in the queue.
		if item.cost != cur.cost {
			continue
		}
		if _, done := e.closed.get(cur.tile, e.nodes); done {
			continue
		}

		if e.cfg.IsGoal(cur.tile) {
			if e.cfg.Found != nil {
				e.cfg.Found(Node{e: e, ref: item.ref})
			}
			return Found
		}

		e.open.remove(cur.tile, e.nodes)
		e.closed.put(cur.tile, item.ref)

		for _, nb := range e.cfg.Neighbors(cur.tile) {
			if _, done := e.closed.get(nb, e.nodes); done {
				continue
			}
			g := cur.cost + e.cfg.Cost(cur.tile, nb)
			if ref, ok := e.open.get(nb, e.nodes); ok {
				// Decrease-key: rewrite the existing entry, never duplicate.
				if g < e.nodes[ref].cost {
					e.nodes[ref].cost = g
					e.nodes[ref].parent = item.ref
					e.push(ref)
				}
				continue
			}
			ref := e.alloc(nb, item.ref, g)
			e.open.put(nb, ref)
			e.push(ref)
		}
	}
	return NoPath
}

func (e *Engine) alloc(t tile.Index, parent int32, cost int) int32 {
	e.nodes = append(e.nodes, pathNode{tile: t, parent: parent, cost: cost})
	return int32(len(e.nodes) - 1)
}

// push queues a node at its current priority. The sequence number breaks
// priority ties in insertion order, keeping pops deterministic.
func (e *Engine) push(ref int32) {
	n := &e.nodes[ref]
	e.seq++
	heap.Push(&e.queue, queued{
		ref:      ref,
		cost:     n.cost,
		priority: n.cost + e.cfg.Estimate(n.tile),
		seq:      e.seq,
	})
}

// closedCount returns the number of finalized tiles. Test hook.
func (e *Engine) closedCount() int {
	return e.closed.count
}

// Node is a handle on one arena entry, exposing the parent chain from the
// goal back toward the start.
type Node struct {
	e   *Engine
	ref int32
}

// Tile returns the node's tile.
func (n Node) Tile() tile.Index {
	return n.e.nodes[n.ref].tile
}

// Cost returns the accumulated cost from the start.
func (n Node) Cost() int {
	return n.e.nodes[n.ref].cost
}

// Parent returns the node one step toward the start; ok is false at the
// start node.
func (n Node) Parent() (Node, bool) {
	p := n.e.nodes[n.ref].parent
	if p == noParent {
		return Node{}, false
	}
	return Node{e: n.e, ref: p}, true
}

// Tiles returns the path tiles in chain order, goal first.
func (n Node) Tiles() []tile.Index {
	var out []tile.Index
	cur, ok := n, true
	for ok {
		out = append(out, cur.Tile())
		cur, ok = cur.Parent()
	}
	return out
}

// queued is one heap entry. Entries are never updated in place; improved
// nodes get a fresh entry and stale ones are skipped on pop.
type queued struct {
	ref      int32
	cost     int // node cost when queued; mismatch marks the entry stale
	priority int // cost + estimate
	seq      uint64
}

// openQueue is a min-heap on (priority, seq).
type openQueue []queued

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openQueue) Push(x any) { *q = append(*q, x.(queued)) }

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// table is a fixed-size hash-bucketed index from tile to arena ref.
// Collisions chain within the bucket; entries match on exact tile equality,
// so at most one entry per tile ever exists.
type table struct {
	mask    uint32
	buckets [][]int32
	count   int
}

func newTable(bits uint) *table {
	n := uint32(1) << bits
	return &table{
		mask:    n - 1,
		buckets: make([][]int32, n),
	}
}

func (tb *table) bucket(t tile.Index) uint32 {
	return tile.Hash(t) & tb.mask
}

func (tb *table) get(t tile.Index, nodes []pathNode) (int32, bool) {
	for _, ref := range tb.buckets[tb.bucket(t)] {
		if nodes[ref].tile == t {
			return ref, true
		}
	}
	return noParent, false
}

func (tb *table) put(t tile.Index, ref int32) {
	b := tb.bucket(t)
	tb.buckets[b] = append(tb.buckets[b], ref)
	tb.count++
}

func (tb *table) remove(t tile.Index, nodes []pathNode) {
	b := tb.bucket(t)
	chain := tb.buckets[b]
	for i, ref := range chain {
		if nodes[ref].tile == t {
			chain[i] = chain[len(chain)-1]
			tb.buckets[b] = chain[:len(chain)-1]
			tb.count--
			return
		}
	}
}
