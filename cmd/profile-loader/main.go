// Therapist profile ingest for matchd.
// Reads a JSONL export of therapist profiles, embeds each profile summary in
// batches and writes the profile hashes plus the FT index into Redis.
//
// Usage:
//
//	profile-loader -file profiles.jsonl -batch-size 50
//
// Env vars:
//
//	REDIS_ADDR      Redis address (default: localhost:6379)
//	REDIS_PASSWORD  Redis password
//	OPENAI_API_KEY  API key for embeddings
//	OPENAI_BASE_URL alternative OpenAI-compatible endpoint
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbRedis "github.com/tamarack-health/matchd/internal/db/redis"
	"github.com/tamarack-health/matchd/internal/domain"
	profilerepo "github.com/tamarack-health/matchd/internal/repository/profile"
	openaiTransport "github.com/tamarack-health/matchd/internal/transport/openai"
)

type config struct {
	file       string
	batchSize  int
	model      string
	dimensions int
	hnswM      int
	hnswEF     int
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "profiles.jsonl", "JSONL file with therapist profiles")
	flag.IntVar(&cfg.batchSize, "batch-size", 50, "profiles per embedding/upsert batch")
	flag.StringVar(&cfg.model, "model", "text-embedding-3-small", "embedding model")
	flag.IntVar(&cfg.dimensions, "dimensions", 1536, "embedding dimensions")
	flag.IntVar(&cfg.hnswM, "hnsw-m", 32, "HNSW M parameter for a fresh index")
	flag.IntVar(&cfg.hnswEF, "hnsw-ef", 400, "HNSW EF_CONSTRUCTION for a fresh index")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config) error {
	start := time.Now()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{env("REDIS_ADDR", "localhost:6379")},
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
		return fmt.Errorf("redis not ready: %w", err)
	}

	repo := profilerepo.New(store)
	if err := repo.EnsureIndex(ctx, profilerepo.IndexParams{
		Dimensions:      cfg.dimensions,
		HNSWM:           cfg.hnswM,
		HNSWEFConstruct: cfg.hnswEF,
	}); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     apiKey,
		BaseURL:    os.Getenv("OPENAI_BASE_URL"),
		Model:      cfg.model,
		Dimensions: cfg.dimensions,
		Logger:     zap.NewNop(),
	})

	records, skipped, err := readProfiles(cfg.file)
	if err != nil {
		return err
	}
	log.Printf("read %d profiles from %s (%d skipped)", len(records), cfg.file, skipped)

	var loaded, tokens int
	for i := 0; i < len(records); i += cfg.batchSize {
		end := i + cfg.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		texts := make([]string, len(batch))
		for j := range batch {
			texts[j] = embedText(&batch[j])
		}

		result, err := embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch at offset %d: %w", i, err)
		}
		tokens += result.TotalTokens

		entries := make([]profilerepo.Entry, len(batch))
		for j := range batch {
			entries[j] = profilerepo.Entry{Record: batch[j], Vector: result.Embeddings[j]}
		}
		if err := repo.PutMulti(ctx, entries); err != nil {
			return fmt.Errorf("upsert batch at offset %d: %w", i, err)
		}

		loaded += len(batch)
		log.Printf("profiles: %d/%d", loaded, len(records))
	}

	elapsed := time.Since(start)
	log.Printf("DONE in %s", elapsed.Round(time.Second))
	log.Printf("  profiles: %d loaded, %d skipped", loaded, skipped)
	log.Printf("  embedding tokens: %d", tokens)

	return nil
}

// readProfiles parses the JSONL export. Profiles with no embeddable text are
// skipped; profiles with no ID get a fresh UUID.
func readProfiles(path string) ([]domain.CandidateRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []domain.CandidateRecord
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var rec domain.CandidateRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}
		if embedText(&rec) == "" {
			log.Printf("line %d: no summary or bio, skipping", line)
			skipped++
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	return records, skipped, nil
}

// embedText picks the text to vectorize: the curated summary when present,
// the bio otherwise.
func embedText(rec *domain.CandidateRecord) string {
	if rec.Summary != "" {
		return rec.Summary
	}
	return rec.Bio
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
