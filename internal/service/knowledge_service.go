package service

import (
	"context"
	"strings"

	"voice-journal-be/internal/dto"
	"voice-journal-be/pkg/knowledge"
	"voice-journal-be/pkg/tags"
)

type IKnowledgeService interface {
	TagCounts(ctx context.Context) ([]dto.TagCountResponse, error)
	NotesByTag(ctx context.Context, tag string) ([]*dto.ShowNoteResponse, error)
	KnowledgeMap(ctx context.Context) (*dto.KnowledgeMapResponse, error)
}

type knowledgeService struct {
	tagIndex   *knowledge.TagIndex
	mapBuilder *knowledge.MapBuilder
}

func NewKnowledgeService(notes knowledge.NoteLister) IKnowledgeService {
	tagIndex := knowledge.NewTagIndex(notes, tags.All())
	return &knowledgeService{
		tagIndex:   tagIndex,
		mapBuilder: knowledge.NewMapBuilder(tagIndex),
	}
}

func (s *knowledgeService) TagCounts(ctx context.Context) ([]dto.TagCountResponse, error) {
	counts, err := s.tagIndex.Counts(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]dto.TagCountResponse, 0, len(counts))
	for _, c := range counts {
		res = append(res, dto.TagCountResponse{Tag: c.Tag, Count: c.Count})
	}
	return res, nil
}

func (s *knowledgeService) NotesByTag(ctx context.Context, tag string) ([]*dto.ShowNoteResponse, error) {
	notes, err := s.tagIndex.NotesByTag(ctx, strings.TrimSpace(tag))
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ShowNoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toShowNoteResponse(note))
	}
	return res, nil
}

func (s *knowledgeService) KnowledgeMap(ctx context.Context) (*dto.KnowledgeMapResponse, error) {
	graph, err := s.mapBuilder.Build(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.KnowledgeMapResponse{
		Nodes: make([]dto.KnowledgeNodeResponse, 0, len(graph.Nodes)),
		Edges: make([]dto.KnowledgeEdgeResponse, 0, len(graph.Edges)),
	}
	for _, n := range graph.Nodes {
		res.Nodes = append(res.Nodes, dto.KnowledgeNodeResponse(n))
	}
	for _, e := range graph.Edges {
		res.Edges = append(res.Edges, dto.KnowledgeEdgeResponse(e))
	}
	return res, nil
}
