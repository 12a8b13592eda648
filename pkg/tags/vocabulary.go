package tags

import (
	"regexp"
)

// all is the closed tag vocabulary. Notes may only carry tags from this list.
var all = []string{
	"Maths", "Science", "History", "Art", "Literature", "Technology", "Health", "Programming",
	"Biology", "Physics", "Geography", "Music", "Psychology", "Philosophy", "Education",
	"Environment", "Politics", "Economics", "Culture", "Religion", "Finance", "Business",
	"Marketing", "Innovation", "Wellness", "Fitness", "Nature", "Animals", "Travel", "Food",
	"Movies", "Theatre", "Photography", "Design", "AI", "Sports", "Fashion", "Language", "Other",
}

var (
	index     = buildIndex()
	wordRegex = regexp.MustCompile(`\b\w+\b`)
)

func buildIndex() map[string]int {
	idx := make(map[string]int, len(all))
	for i, t := range all {
		idx[t] = i
	}
	return idx
}

// All returns a copy of the vocabulary in its canonical order.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// Contains reports whether tag belongs to the vocabulary (case-sensitive).
func Contains(tag string) bool {
	_, ok := index[tag]
	return ok
}

// Position returns the canonical position of tag, or -1.
func Position(tag string) int {
	if i, ok := index[tag]; ok {
		return i
	}
	return -1
}

// Extract pulls vocabulary tags out of free text such as an LLM tag answer.
// Result is deduplicated and ordered by vocabulary position.
func Extract(text string) []string {
	found := make(map[string]bool)
	for _, word := range wordRegex.FindAllString(text, -1) {
		if Contains(word) {
			found[word] = true
		}
	}
	return Filter(keys(found))
}

// Filter drops tags outside the vocabulary and duplicates, returning the rest
// in vocabulary order.
func Filter(candidates []string) []string {
	seen := make([]bool, len(all))
	for _, c := range candidates {
		if i := Position(c); i >= 0 {
			seen[i] = true
		}
	}
	out := make([]string, 0, len(candidates))
	for i, ok := range seen {
		if ok {
			out = append(out, all[i])
		}
	}
	return out
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
