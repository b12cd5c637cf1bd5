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
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"github.com/panjf2000/ants/v2"
	docsift "github.com/poiesic/docsift"
	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docsift",
		Usage: "Document ingestion and semantic search over local collections",
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
				Name:   "worker",
				Usage:  "Run ingestion workers that drain the task queue",
				Action: workerCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent ingestion workers",
						Value: defaultWorkers(),
					},
				),
			},
			{
				Name:      "enqueue",
				Usage:     "Stage files and publish ingestion tasks",
				ArgsUsage: "FILE [FILE...]",
				Action:    enqueueCommand,
				Flags:     engineFlags(),
			},
			{
				Name:      "search",
				Usage:     "Query the ingested collections",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of results to return",
						Value: 10,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Similarity floor below which hits are dropped",
						Value: 0.30,
					},
				),
			},
			{
				Name:   "collections",
				Usage:  "List collections that hold at least one chunk",
				Action: collectionsCommand,
				Flags:  engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are the flags shared by every command that opens the engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to the data directory (database and staged files)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "classifier-host",
			Usage: "Classification/extraction service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "classifier-model",
			Usage: "Model name for classification and metadata extraction",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (defaults to classifier-host if not specified)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "nomic-embed-text",
		},
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// openEngine builds an Engine from the shared flags.
func openEngine(c *cli.Context) (*docsift.Engine, error) {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("classifier-host")
	}

	config := ai.NewConfig(
		ai.WithClassifierHost(c.String("classifier-host")),
		ai.WithClassifierModel(c.String("classifier-model")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return docsift.NewEngine(c.String("data"), docsift.WithAIConfig(config))
}

func workerCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	workers := c.Int("workers")
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	slog.Info("starting ingestion workers", "workers", workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			worker := engine.NewWorker()
			if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("worker stopped", "err", err)
			}
		}); err != nil {
			wg.Done()
			return err
		}
	}

	wg.Wait()
	slog.Info("workers stopped")
	return nil
}

func enqueueCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file path is required")
	}

	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	producer, err := engine.NewProducer()
	if err != nil {
		return err
	}

	for _, path := range c.Args().Slice() {
		task, err := producer.SubmitFile(ctx, path)
		if err != nil {
			return fmt.Errorf("enqueuing %s: %w", path, err)
		}
		fmt.Printf("enqueued %s as task %s\n", task.Filename, task.TaskId)
	}

	pending, err := engine.TaskQueue().PendingCount(ctx)
	if err == nil {
		fmt.Printf("%d task(s) pending\n", pending)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher(
		search.WithMinSimilarity(float32(c.Float64("min-similarity"))),
	)
	if err != nil {
		return err
	}

	resp, err := searcher.Query(ctx, query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	fmt.Printf("collection: %s\n", resp.Collection)
	if resp.Filter != nil {
		fmt.Printf("filter: %v\n", resp.Filter)
	}
	if len(resp.Hits) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, hit := range resp.Hits {
		fmt.Printf("\n[%d] score=%.3f\n", i+1, hit.Score)
		if source, ok := hit.Record.Metadata[core.MetaSource]; ok {
			fmt.Printf("source: %s\n", source)
		}
		fmt.Println(hit.Record.Content)
	}
	return nil
}

func collectionsCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	names, err := engine.VectorRepository().ListCollections(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no collections")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
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
