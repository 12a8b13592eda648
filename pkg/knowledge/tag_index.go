package knowledge

import (
	"context"
	"fmt"

	"voice-journal-be/internal/entity"
	"voice-journal-be/pkg/tags"
)

// NoteLister loads the whole corpus.
type NoteLister interface {
	ListAll(ctx context.Context) ([]*entity.Note, error)
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagIndex counts tag usage over the corpus. Only vocabulary tags are
// counted; a tag repeated on one note counts once.
type TagIndex struct {
	store      NoteLister
	vocabulary []string
	position   map[string]int
}

// NewTagIndex uses vocabulary, or tags.All() when it is empty.
func NewTagIndex(store NoteLister, vocabulary []string) *TagIndex {
	if len(vocabulary) == 0 {
		vocabulary = tags.All()
	}
	position := make(map[string]int, len(vocabulary))
	for i, t := range vocabulary {
		position[t] = i
	}
	return &TagIndex{store: store, vocabulary: vocabulary, position: position}
}

// Counts returns one entry per vocabulary tag, zero counts included, in
// vocabulary order.
func (ti *TagIndex) Counts(ctx context.Context) ([]TagCount, error) {
	notes, err := ti.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return ti.count(notes), nil
}

// NotesByTag returns the notes carrying tag, in corpus order.
func (ti *TagIndex) NotesByTag(ctx context.Context, tag string) ([]*entity.Note, error) {
	if _, ok := ti.position[tag]; !ok {
		return []*entity.Note{}, nil
	}
	notes, err := ti.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	out := make([]*entity.Note, 0)
	for _, n := range notes {
		for _, t := range n.Tags {
			if t == tag {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}

func (ti *TagIndex) count(notes []*entity.Note) []TagCount {
	counts := make([]int, len(ti.vocabulary))
	for _, n := range notes {
		for _, p := range ti.positions(n) {
			counts[p]++
		}
	}

	out := make([]TagCount, len(ti.vocabulary))
	for i, t := range ti.vocabulary {
		out[i] = TagCount{Tag: t, Count: counts[i]}
	}
	return out
}

// positions returns the distinct vocabulary positions of a note's tags,
// ascending.
func (ti *TagIndex) positions(n *entity.Note) []int {
	seen := make([]bool, len(ti.vocabulary))
	for _, t := range n.Tags {
		if p, ok := ti.position[t]; ok {
			seen[p] = true
		}
	}
	out := make([]int, 0, len(n.Tags))
	for p, ok := range seen {
		if ok {
			out = append(out, p)
		}
	}
	return out
}
