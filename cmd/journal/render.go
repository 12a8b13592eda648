package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"voice-journal-be/internal/dto"
	"voice-journal-be/pkg/events"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.FgHiBlack)
	warn    = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

func renderAnswer(w io.Writer, res *dto.AskQuestionResponse) {
	label := "Answer"
	if res.Mode != "" {
		label = fmt.Sprintf("Answer (%s)", res.Mode)
	}
	heading.Fprintln(w, label)

	if res.Failed {
		failure.Fprintln(w, res.Answer)
	} else {
		fmt.Fprintln(w, res.Answer)
	}

	if len(res.Sources) == 0 {
		warn.Fprintln(w, "\nNo matching notes.")
		return
	}
	heading.Fprintln(w, "\nSources")
	for _, s := range res.Sources {
		fmt.Fprintf(w, "  %s ", s.Title)
		muted.Fprintf(w, "(%s)\n", s.Id)
	}
}

// renderTags prints used tags by descending count, then unused ones.
func renderTags(w io.Writer, counts []dto.TagCountResponse) {
	sorted := make([]dto.TagCountResponse, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	var unused []string
	for _, c := range sorted {
		if c.Count == 0 {
			unused = append(unused, c.Tag)
			continue
		}
		fmt.Fprintf(w, "%-14s %s %d\n", c.Tag, strings.Repeat("#", min(c.Count, 40)), c.Count)
	}
	if len(unused) > 0 {
		muted.Fprintf(w, "unused: %s\n", strings.Join(unused, ", "))
	}
}

func renderMap(w io.Writer, graph *dto.KnowledgeMapResponse) {
	heading.Fprintf(w, "%d tags, %d links\n", len(graph.Nodes), len(graph.Edges))
	for _, e := range graph.Edges {
		fmt.Fprintf(w, "  %s -- %s ", e.From, e.To)
		muted.Fprintf(w, "x%d\n", e.Weight)
	}
}

func renderEvent(w io.Writer, event events.Event) {
	muted.Fprintf(w, "%s ", event.Timestamp().Format(time.RFC3339))
	heading.Fprintf(w, "%s", event.EventType())

	payload := event.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if k == "occurred_at" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%v", k, payload[k])
	}
	fmt.Fprintln(w)
}
