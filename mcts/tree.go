package mcts

import "unsafe"

// indexMask strips the half bit from a packed node reference; nullRef is
// the reference value meaning "no such node", matching the reference
// engine's (1<<31)-1 sentinel.
const (
	indexMask     = 0x7fffffff
	nullRef       = uint32(indexMask)
	defaultHashMB = 64
)

// treeHalf is a fixed-capacity, preallocated slab of nodes. It never grows
// after construction, so pointers returned by SearchTree.At stay valid for
// the lifetime of the half.
type treeHalf struct {
	nodes  []Node
	length int
}

func newTreeHalf(size int) *treeHalf {
	return &treeHalf{nodes: make([]Node, size)}
}

func (h *treeHalf) clear()     { h.length = 0 }
func (h *treeHalf) len() int   { return h.length }
func (h *treeHalf) size() int  { return len(h.nodes) }
func (h *treeHalf) isFull() bool { return h.length >= len(h.nodes) }

func (h *treeHalf) push(n Node) (int, bool) {
	if h.isFull() {
		return 0, false
	}
	idx := h.length
	h.nodes[idx] = n
	h.length++
	return idx, true
}

// SearchTree is the two-half node arena. Node references are packed as
// half<<31 | index so a move's first_child can point into either half; when
// the current half fills, the engine switches to the other half, carrying
// only the root across, rather than growing the arena or stopping search.
type SearchTree struct {
	halves      [2]*treeHalf
	currentHalf int
	halfSize    int
}

// NewSearchTree builds a tree sized to hashMB megabytes split across both
// halves. hashMB<=0 falls back to defaultHashMB.
func NewSearchTree(hashMB int) *SearchTree {
	if hashMB <= 0 {
		hashMB = defaultHashMB
	}
	entries := (hashMB * 1024 * 1024 / int(unsafe.Sizeof(Node{}))) / 2
	if entries < 2 {
		entries = 2
	}
	return &SearchTree{
		halves:   [2]*treeHalf{newTreeHalf(entries), newTreeHalf(entries)},
		halfSize: entries,
	}
}

// Resize rebuilds the tree at a new size, discarding all nodes.
func (t *SearchTree) Resize(hashMB int) { *t = *NewSearchTree(hashMB) }

// RootRef returns the packed reference of the root node (always index 0 of
// whichever half is current).
func (t *SearchTree) RootRef() uint32 { return uint32(t.currentHalf) << 31 }

// IsEmpty reports whether neither half holds any nodes.
func (t *SearchTree) IsEmpty() bool {
	return t.halves[0].len() == 0 && t.halves[1].len() == 0
}

// IsFull reports whether the current half has no room for another node.
func (t *SearchTree) IsFull() bool { return t.halves[t.currentHalf].isFull() }

// Next returns the packed reference the next Push will occupy.
func (t *SearchTree) Next() uint32 {
	return uint32(t.currentHalf)<<31 | uint32(t.halves[t.currentHalf].len())
}

// Reset clears both halves and returns to half 0.
func (t *SearchTree) Reset() {
	t.halves[0].clear()
	t.halves[1].clear()
	t.currentHalf = 0
}

// Push appends n to the current half, returning its packed reference.
func (t *SearchTree) Push(n Node) (uint32, bool) {
	idx, ok := t.halves[t.currentHalf].push(n)
	if !ok {
		return 0, false
	}
	return uint32(t.currentHalf)<<31 | uint32(idx), true
}

// At dereferences a packed node reference.
func (t *SearchTree) At(ref uint32) *Node {
	half := ref >> 31
	idx := ref & indexMask
	return &t.halves[half].nodes[idx]
}

// CopyChildren ensures parentRef's children live in the current half,
// copying them over from the other half if needed (a no-op if they're
// already there). Returns false if the current half has no room.
func (t *SearchTree) CopyChildren(parentRef uint32) bool {
	parentIdx := parentRef & indexMask
	parent := t.halves[t.currentHalf].nodes[parentIdx]
	childHalf := parent.FirstChild >> 31
	if int(childHalf) == t.currentHalf {
		return true
	}

	childCount := uint32(parent.ChildCount)
	childStart := parent.FirstChild & indexMask
	for i := uint32(0); i < childCount; i++ {
		childNode := t.halves[childHalf].nodes[childStart+i]
		if _, ok := t.halves[t.currentHalf].push(childNode); !ok {
			return false
		}
	}
	t.halves[t.currentHalf].nodes[parentIdx].FirstChild = t.Next() - childCount
	return true
}

// SwitchHalves flips the current half, clears it, scrubs the retired
// half's dangling child pointers into the half about to be overwritten,
// and carries the root across so search can resume without a full restart.
func (t *SearchTree) SwitchHalves() {
	t.currentHalf = 1 - t.currentHalf
	t.halves[t.currentHalf].clear()
	t.dereference()
	t.halves[t.currentHalf].push(t.halves[1-t.currentHalf].nodes[0])
}

func (t *SearchTree) dereference() {
	other := 1 - t.currentHalf
	for i := 0; i < t.halfSize; i++ {
		if t.halves[other].nodes[i].FirstChild>>31 == uint32(t.currentHalf) {
			t.halves[other].nodes[i].FirstChild = nullRef
			t.halves[other].nodes[i].ChildCount = 0
		}
	}
}

// Hashfull reports the current half's fill ratio in permille, for UCI's
// "hashfull" info field.
func (t *SearchTree) Hashfull() uint16 {
	cur := t.halves[t.currentHalf]
	return uint16(float64(cur.len()) / float64(cur.size()) * 1000.0)
}
