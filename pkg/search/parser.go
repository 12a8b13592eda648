package search

import (
	"strings"
	"time"

	"voice-journal-be/pkg/tags"
)

const dateLayout = "2006-01-02"

// SearchFilters holds the extracted filters and the remaining clean query
type SearchFilters struct {
	Tag         string
	From        *time.Time
	To          *time.Time // exclusive: start of the day after /to:
	SearchQuery string     // The remaining text to match in title, summary and transcription
}

// ParseQuery extracts slash commands from the raw query string
// Supported:
// /tag:<tag>        -> notes carrying a vocabulary tag (case-insensitive)
// /from:<yyyy-mm-dd> -> recorded on or after that day
// /to:<yyyy-mm-dd>   -> recorded on or before that day
// <text>            -> Remaining text is the SearchQuery
// Commands with an unknown tag or a malformed date are kept as plain text.
func ParseQuery(raw string) SearchFilters {
	filters := SearchFilters{}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "/tag:"):
			if tag, ok := canonicalTag(strings.TrimPrefix(lowerPart, "/tag:")); ok {
				filters.Tag = tag
				continue
			}
		case strings.HasPrefix(lowerPart, "/from:"):
			if t, err := time.Parse(dateLayout, strings.TrimPrefix(lowerPart, "/from:")); err == nil {
				filters.From = &t
				continue
			}
		case strings.HasPrefix(lowerPart, "/to:"):
			if t, err := time.Parse(dateLayout, strings.TrimPrefix(lowerPart, "/to:")); err == nil {
				end := t.AddDate(0, 0, 1)
				filters.To = &end
				continue
			}
		}
		cleanParts = append(cleanParts, part)
	}

	filters.SearchQuery = strings.Join(cleanParts, " ")
	return filters
}

func canonicalTag(lower string) (string, bool) {
	for _, t := range tags.All() {
		if strings.ToLower(t) == lower {
			return t, true
		}
	}
	return "", false
}
