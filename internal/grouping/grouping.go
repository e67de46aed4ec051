/*
Package grouping collapses timeline entities into per-name rows of merged
date blocks.

Entities that share a name form one group. Within a group, intervals are
sorted by start time and any that overlap or touch are folded into a single
Block, so every row reports the smallest set of disjoint spans covering its
records.
*/
package grouping

import (
	"sort"
	"time"
)

// ExpandState is the expand/collapse state of an entity's children.
type ExpandState int

const (
	// ExpandUnknown marks a leaf, or an entity whose state was never set.
	ExpandUnknown ExpandState = iota
	// ExpandExpanded means children are visible (hideChildren == false).
	ExpandExpanded
	// ExpandCollapsed means children are hidden (hideChildren == true).
	ExpandCollapsed
)

// Expander symbols shown beside a row name.
const (
	ExpandedMarker  = "▼"
	CollapsedMarker = "▶"
)

// String returns the config/CSV spelling of the state.
func (s ExpandState) String() string {
	switch s {
	case ExpandExpanded:
		return "expanded"
	case ExpandCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Indicator maps an expand state to the symbol drawn next to the row name.
// Leaves and unknown states get no symbol.
func Indicator(s ExpandState) string {
	switch s {
	case ExpandExpanded:
		return ExpandedMarker
	case ExpandCollapsed:
		return CollapsedMarker
	case ExpandUnknown:
		return ""
	}
	return ""
}

// Entity is one input record on the timeline.
type Entity struct {
	Name   string
	Start  time.Time
	End    time.Time
	Expand ExpandState
}

// Block is a merged span [Start, End) covering one run of overlapping entities.
type Block struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Duration returns the length of the block.
func (b Block) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Group holds every entity sharing one name together with its merged blocks.
type Group struct {
	Name string
	// Representative is the first entity of the group in input order. It is
	// the source of the expander indicator.
	Representative Entity
	// Entities are in input order.
	Entities []Entity
	Blocks   []Block
}

// Indicator returns the expander symbol for the group's row.
func (g *Group) Indicator() string {
	return Indicator(g.Representative.Expand)
}

// Span returns the earliest start and the latest end over the group.
func (g *Group) Span() (time.Time, time.Time) {
	if len(g.Blocks) == 0 {
		return time.Time{}, time.Time{}
	}
	start := g.Blocks[0].Start
	end := g.Blocks[0].End
	for _, b := range g.Blocks[1:] {
		if b.End.After(end) {
			end = b.End
		}
	}
	return start, end
}

// Groups is an insertion-ordered mapping from name to Group.
type Groups struct {
	order []string
	index map[string]int
	items []*Group
}

func newGroups() *Groups {
	return &Groups{index: make(map[string]int)}
}

// Len returns the number of distinct names.
func (gs *Groups) Len() int {
	if gs == nil {
		return 0
	}
	return len(gs.order)
}

// Names returns the group names in first-occurrence order.
func (gs *Groups) Names() []string {
	if gs == nil {
		return nil
	}
	out := make([]string, len(gs.order))
	copy(out, gs.order)
	return out
}

// Get returns the group for name.
func (gs *Groups) Get(name string) (*Group, bool) {
	if gs == nil {
		return nil, false
	}
	i, ok := gs.index[name]
	if !ok {
		return nil, false
	}
	return gs.items[i], true
}

// Each calls fn for every group in row order.
func (gs *Groups) Each(fn func(row int, g *Group)) {
	if gs == nil {
		return
	}
	for i, g := range gs.items {
		fn(i, g)
	}
}

// List returns the groups in row order.
func (gs *Groups) List() []*Group {
	if gs == nil {
		return nil
	}
	out := make([]*Group, len(gs.items))
	copy(out, gs.items)
	return out
}

func (gs *Groups) add(e Entity) {
	i, ok := gs.index[e.Name]
	if !ok {
		i = len(gs.items)
		gs.index[e.Name] = i
		gs.order = append(gs.order, e.Name)
		gs.items = append(gs.items, &Group{Name: e.Name, Representative: e})
	}
	gs.items[i].Entities = append(gs.items[i].Entities, e)
}

// ComputeBlocksPerGroup groups entities by name and merges each group's
// intervals into ordered, disjoint blocks. Row order follows the first
// occurrence of each name in entities.
func ComputeBlocksPerGroup(entities []Entity) *Groups {
	gs := newGroups()
	for _, e := range entities {
		gs.add(e)
	}
	for _, g := range gs.items {
		g.Blocks = MergeIntervals(g.Entities)
	}
	return gs
}

// MergeIntervals sorts a copy of entities by start time (stable, so equal
// starts keep input order) and folds overlapping or touching intervals.
// An inverted interval (End before Start) is clamped to zero width.
func MergeIntervals(entities []Entity) []Block {
	if len(entities) == 0 {
		return nil
	}
	sorted := make([]Block, len(entities))
	for i, e := range entities {
		sorted[i] = clamp(Block{Start: e.Start, End: e.End})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	blocks := make([]Block, 0, len(sorted))
	cur := sorted[0]
	for _, b := range sorted[1:] {
		if !b.Start.After(cur.End) {
			if b.End.After(cur.End) {
				cur.End = b.End
			}
			continue
		}
		blocks = append(blocks, cur)
		cur = b
	}
	return append(blocks, cur)
}

func clamp(b Block) Block {
	if b.End.Before(b.Start) {
		b.End = b.Start
	}
	return b
}
