package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

type Node struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Size  int    `json:"size"`
}

type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Label    string  `json:"label"`
	Weight   int     `json:"weight"`
	Strength float64 `json:"strength"`
}

// Graph is recomputed on every request and never persisted.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeSize maps a tag count to a bounded visual weight.
func NodeSize(count int) int {
	size := 30 + count*5
	if size > 60 {
		return 60
	}
	return size
}

// EdgeStrength maps a co-occurrence weight to a bounded visual weight.
func EdgeStrength(weight int) float64 {
	strength := 1 + float64(weight)*0.5
	if strength > 5 {
		return 5
	}
	return strength
}

// MapBuilder derives the tag co-occurrence knowledge map from a TagIndex.
type MapBuilder struct {
	index *TagIndex
}

// NewMapBuilder returns a builder reading from index.
func NewMapBuilder(index *TagIndex) *MapBuilder {
	return &MapBuilder{index: index}
}

type pair struct {
	lo, hi int
}

// Build derives the tag co-occurrence graph from the current corpus.
// Pairs are keyed by vocabulary position (lo < hi), so each unordered pair
// yields exactly one edge regardless of tag order on a note.
func (b *MapBuilder) Build(ctx context.Context) (*Graph, error) {
	notes, err := b.index.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	counts := b.index.count(notes)

	weights := make(map[pair]int)
	for _, n := range notes {
		ps := b.index.positions(n)
		for i := 0; i < len(ps); i++ {
			if counts[ps[i]].Count == 0 {
				continue
			}
			for j := i + 1; j < len(ps); j++ {
				if counts[ps[j]].Count == 0 {
					continue
				}
				weights[pair{lo: ps[i], hi: ps[j]}]++
			}
		}
	}

	graph := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	for _, c := range counts {
		if c.Count == 0 {
			continue
		}
		graph.Nodes = append(graph.Nodes, Node{
			Id:    c.Tag,
			Label: c.Tag,
			Count: c.Count,
			Size:  NodeSize(c.Count),
		})
	}

	keys := make([]pair, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})

	vocabulary := b.index.vocabulary
	for _, k := range keys {
		w := weights[k]
		graph.Edges = append(graph.Edges, Edge{
			From:     vocabulary[k.lo],
			To:       vocabulary[k.hi],
			Label:    strconv.Itoa(w),
			Weight:   w,
			Strength: EdgeStrength(w),
		})
	}
	return graph, nil
}
