// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/statseek"
	"github.com/poiesic/statseek/ai"
	"github.com/poiesic/statseek/ai/openai"
	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/ingest"
	"github.com/poiesic/statseek/reembed"
	"github.com/poiesic/statseek/search"
	"github.com/poiesic/statseek/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "statseek",
		Usage: "Hybrid search over a statistical indicator catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Load an indicator catalog CSV and embed it",
				Action:    ingestCommand,
				ArgsUsage: "CSV_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: 32,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the indicator catalog",
				Action:    searchCommand,
				ArgsUsage: "QUERY...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.Float64Flag{
						Name:  "w-vector",
						Usage: "Fusion weight for vector similarity",
						Value: 0.6,
					},
					&cli.Float64Flag{
						Name:  "w-bm25",
						Usage: "Fusion weight for BM25",
						Value: 0.2,
					},
					&cli.Float64Flag{
						Name:  "w-tfidf",
						Usage: "Fusion weight for TF-IDF",
						Value: 0.2,
					},
					&cli.BoolFlag{
						Name:  "rewrite",
						Usage: "Rewrite the query with the rewriter model before searching",
					},
					&cli.BoolFlag{
						Name:  "group-collapse",
						Usage: "Keep only the best result per indicator group",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "rewriter-host",
						Usage: "Rewriter service host URL (defaults to embedding-host)",
					},
					&cli.StringFlag{
						Name:  "rewriter-model",
						Usage: "Rewriter model name",
						Value: "qwen2.5:3b",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed every indicator with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one catalog CSV file argument")
	}
	csvPath := c.Args().First()

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog CSV: %w", err)
	}
	defer file.Close()

	records, err := ingest.ReadCatalogCSV(file)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Read %d indicators from %s\n", len(records), csvPath)

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	engine, err := statseek.Open(c.String("db"), statseek.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestPipeline(
		ingest.WithPoolSize(c.Int("pool-size")),
		ingest.WithBatchSize(c.Int("batch-size")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	embedded, err := pipeline.Ingest(ctx, records...)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d indicators (%d embedded)\n", len(records), embedded)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("query required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	rewriterHost := c.String("rewriter-host")
	if rewriterHost == "" {
		rewriterHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRewriterHost(rewriterHost),
		ai.WithRewriterModel(c.String("rewriter-model")),
	)

	engine, err := statseek.Open(c.String("db"), statseek.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	if c.Bool("rewrite") {
		rewritten, err := engine.RewriteQuery(ctx, query)
		if err != nil {
			slog.Warn("query rewrite failed, using original query", "err", err)
		} else if rewritten != query {
			fmt.Fprintf(os.Stderr, "Query rewritten: %q -> %q\n", query, rewritten)
			query = rewritten
		}
	}

	searcher, err := engine.NewSearcher(
		search.WithGroupCollapse(c.Bool("group-collapse")),
	)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	weights := core.Weights{
		Vector: c.Float64("w-vector"),
		BM25:   c.Float64("w-bm25"),
		TFIDF:  c.Float64("w-tfidf"),
	}

	results, err := searcher.Search(ctx, query, c.Int("top-k"), weights)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%2d: %s %s (%s) [fused %.3f, rerank %.1f]\n",
			i+1, hit.Record.Code, hit.Record.Name, hit.Record.Field,
			hit.FusedScore, hit.RerankScore)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	catalog, err := badger.NewCatalogRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer catalog.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(catalog, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
