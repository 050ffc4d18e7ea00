package problemindex

import (
	"context"
	"fmt"
	"log"

	"interviewcoach/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/protobuf/types/known/structpb"
)

const indexNamespace = "interview-problems"

// Service maintains a vector index of problem statements so the API can
// surface semantically similar problems.
type Service struct {
	client    *pinecone.Client
	embedder  embeddings.Embedder
	indexName string
}

func NewService(apiKey, openaiAPIKey, indexName string) (*Service, error) {
	log.Printf("[INFO] Initializing problem index service")

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(openaiAPIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	service := &Service{
		client:    pc,
		embedder:  embedder,
		indexName: indexName,
	}

	log.Printf("[INFO] Problem index service initialized successfully")
	return service, nil
}

func (s *Service) indexConnection(ctx context.Context) (*pinecone.IndexConnection, error) {
	idxDesc, err := s.client.DescribeIndex(ctx, s.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: indexNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}
	return idxConn, nil
}

// IndexProblems embeds every problem's title and description and upserts
// the vectors, replacing any existing entries with the same ids.
func (s *Service) IndexProblems(problems []*models.Problem) error {
	log.Printf("[INFO] Indexing %d problems", len(problems))

	ctx := context.Background()
	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return err
	}

	texts := make([]string, len(problems))
	for i, problem := range problems {
		texts[i] = problem.Title + "\n" + problem.Description
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed problems: %w", err)
	}

	upserts := make([]*pinecone.Vector, 0, len(problems))
	for i, problem := range problems {
		metadata, err := structpb.NewStruct(map[string]any{
			"title":      problem.Title,
			"difficulty": string(problem.Difficulty),
			"category":   string(problem.Category),
		})
		if err != nil {
			return fmt.Errorf("failed to build metadata for %s: %w", problem.ID, err)
		}

		upserts = append(upserts, &pinecone.Vector{
			Id:       problem.ID,
			Values:   &vectors[i],
			Metadata: metadata,
		})
	}

	count, err := idxConn.UpsertVectors(ctx, upserts)
	if err != nil {
		return fmt.Errorf("failed to upsert problem vectors: %w", err)
	}

	log.Printf("[INFO] Upserted %d problem vectors", count)
	return nil
}

// QuerySimilar returns the ids of up to topK problems closest to the given
// one, excluding the problem itself.
func (s *Service) QuerySimilar(problem *models.Problem, topK int) ([]string, error) {
	log.Printf("[INFO] Querying similar problems for %q", problem.Title)

	ctx := context.Background()
	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return nil, err
	}

	queryEmbeddings, err := s.embedder.EmbedDocuments(ctx, []string{problem.Title + "\n" + problem.Description})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query problem: %w", err)
	}

	result, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          queryEmbeddings[0],
		TopK:            uint32(topK + 1),
		IncludeValues:   false,
		IncludeMetadata: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query similar problems: %w", err)
	}

	ids := make([]string, 0, topK)
	for _, match := range result.Matches {
		if match.Vector.Id == problem.ID {
			continue
		}
		ids = append(ids, match.Vector.Id)
		if len(ids) == topK {
			break
		}
	}

	log.Printf("[INFO] Found %d similar problems for %q", len(ids), problem.Title)
	return ids, nil
}
