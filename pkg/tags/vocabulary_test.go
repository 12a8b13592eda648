package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "comma separated answer",
			text: "Physics, Maths, Science",
			want: []string{"Maths", "Science", "Physics"},
		},
		{
			name: "duplicates and noise",
			text: "Tags: AI, AI and more AI. Also programming and Programming",
			want: []string{"Programming", "AI"},
		},
		{
			name: "nothing from the vocabulary",
			text: "cooking, gardening",
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestContainsAndPosition(t *testing.T) {
	assert.True(t, Contains("History"))
	assert.False(t, Contains("history"))
	assert.Equal(t, 0, Position("Maths"))
	assert.Equal(t, -1, Position("Unknown"))
	assert.Len(t, All(), 39)
}
