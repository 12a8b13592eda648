package chroma

import (
	"context"
	"fmt"
	"strings"

	"voice-journal-be/pkg/vectorindex"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

// Index adapts a Chroma collection to vectorindex.Index. Collections are
// created in cosine space so distances match pgvector's <=> and the memory
// index; smaller is closer.
type Index struct {
	client     chromago.Client
	collection chromago.Collection
}

var (
	_ vectorindex.Index   = &Index{}
	_ vectorindex.Counter = &Index{}
)

const defaultTopK = 5

// NewIndex connects to the Chroma server at baseURL and opens (or creates)
// the named collection. The space of an existing collection is fixed at
// creation; one made with the default l2 space must be recreated.
func NewIndex(ctx context.Context, baseURL, collectionName string) (*Index, error) {
	client, err := chromago.NewHTTPClient(chromago.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create chroma client: %w", err)
	}

	collection, err := client.GetOrCreateCollection(
		ctx,
		collectionName,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("description", "voice journal note summaries"),
				chromago.NewStringAttribute("created_by", "voice-journal-be"),
			),
		),
		chromago.WithHNSWSpaceCreate(embeddings.COSINE),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to get or create collection %q: %w", collectionName, err)
	}

	return &Index{client: client, collection: collection}, nil
}

// NewIndexFromCollection wraps an already opened collection.
func NewIndexFromCollection(collection chromago.Collection) *Index {
	return &Index{collection: collection}
}

func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Hit, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	results, err := i.collection.Query(
		ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chromago.WithNResults(topK),
	)
	if err != nil {
		return nil, translate(fmt.Errorf("failed to query chroma: %w", err))
	}

	idGroups := results.GetIDGroups()
	distanceGroups := results.GetDistancesGroups()
	if len(idGroups) == 0 {
		return []vectorindex.Hit{}, nil
	}

	hits := make([]vectorindex.Hit, 0, len(idGroups[0]))
	for n, id := range idGroups[0] {
		hit := vectorindex.Hit{Id: string(id)}
		if len(distanceGroups) > 0 && n < len(distanceGroups[0]) {
			hit.Distance = float64(distanceGroups[0][n])
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (i *Index) Upsert(ctx context.Context, id string, vector []float32, document string) error {
	err := i.collection.Upsert(ctx,
		chromago.WithIDs(chromago.DocumentID(id)),
		chromago.WithTexts(document),
		chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chromago.WithMetadatas(chromago.NewDocumentMetadata(
			chromago.NewStringAttribute("note_id", id),
		)),
	)
	if err != nil {
		return translate(fmt.Errorf("failed to upsert into chroma: %w", err))
	}
	return nil
}

func (i *Index) Count(ctx context.Context) (int64, error) {
	n, err := i.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count chroma collection: %w", err)
	}
	return int64(n), nil
}

// Close releases the underlying client when the index owns it.
func (i *Index) Close() error {
	if i.client == nil {
		return nil
	}
	return i.client.Close()
}

// translate maps Chroma's dimension complaint onto ErrDimensionMismatch.
func translate(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "dimension") {
		return fmt.Errorf("%w: %v", vectorindex.ErrDimensionMismatch, err)
	}
	return err
}
