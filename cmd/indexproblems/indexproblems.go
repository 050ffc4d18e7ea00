package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"interviewcoach/config"
	"interviewcoach/services/catalog"
	"interviewcoach/services/problemindex"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
)

// Indexes the problem catalog into Pinecone so the similar-problems
// endpoint has vectors to query. Safe to re-run: upserts overwrite by id.
func main() {
	log.Printf("[INFO] Starting problem indexing process")

	cfg := config.Load()

	if cfg.PineconeAPIKey == "" {
		log.Fatal("[ERROR] PINECONE_API_KEY environment variable is required")
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("[ERROR] OPENAI_API_KEY environment variable is required")
	}

	problemCatalog := catalog.NewService()
	if cfg.ProblemDir != "" {
		if err := problemCatalog.LoadFromDirectory(cfg.ProblemDir); err != nil {
			log.Fatalf("[ERROR] Failed to load problems from %s: %v", cfg.ProblemDir, err)
		}
	}

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: cfg.PineconeAPIKey,
	})
	if err != nil {
		log.Fatalf("[ERROR] Failed to create Pinecone client: %v", err)
	}

	if err := ensurePineconeIndex(pc, cfg.PineconeIndexName); err != nil {
		log.Fatalf("[ERROR] Failed to ensure Pinecone index: %v", err)
	}

	indexService, err := problemindex.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize problem index service: %v", err)
	}

	problems := problemCatalog.All()
	log.Printf("[INFO] Indexing %d problems", len(problems))

	if err := indexService.IndexProblems(problems); err != nil {
		log.Fatalf("[ERROR] Failed to index problems: %v", err)
	}

	log.Printf("[INFO] Problem indexing process completed successfully")
}

func ensurePineconeIndex(pc *pinecone.Client, indexName string) error {
	ctx := context.Background()

	indexes, err := pc.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	for _, idx := range indexes {
		if idx.Name == indexName {
			log.Printf("[INFO] Index %s already exists", indexName)
			return nil
		}
	}

	log.Printf("[INFO] Creating Pinecone index: %s", indexName)
	dimension := int32(1536) // OpenAI ada-002 embedding dimension
	deletionProtection := pinecone.DeletionProtectionDisabled
	metric := pinecone.Cosine

	_, err = pc.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:               indexName,
		Dimension:          &dimension,
		Metric:             &metric,
		Cloud:              pinecone.Aws,
		Region:             "us-east-1",
		DeletionProtection: &deletionProtection,
		Tags:               &pinecone.IndexTags{"environment": "development", "project": "interviewcoach"},
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	for {
		idx, err := pc.DescribeIndex(ctx, indexName)
		if err != nil {
			return fmt.Errorf("failed to describe index: %w", err)
		}
		if idx.Status.Ready {
			log.Printf("[INFO] Index %s is ready", indexName)
			break
		}
		log.Printf("[INFO] Waiting for index %s to be ready...", indexName)
		time.Sleep(10 * time.Second)
	}

	return nil
}
