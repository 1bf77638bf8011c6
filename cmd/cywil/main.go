// Copyright 2025 Cywil Project
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
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	cywil "github.com/zeddq/cywil-sub002"
	"github.com/zeddq/cywil-sub002/ai"
	"github.com/zeddq/cywil-sub002/ai/openai"
	"github.com/zeddq/cywil-sub002/chunk"
	"github.com/zeddq/cywil-sub002/enrich"
	"github.com/zeddq/cywil-sub002/pdf"
	"github.com/zeddq/cywil-sub002/pipeline"
	"github.com/zeddq/cywil-sub002/ruling"
	"github.com/zeddq/cywil-sub002/statute"
)

func main() {
	// A missing .env is fine; the flags and environment still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "cywil",
		Usage: "Polish legal document ingestion pipeline",
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
				Name:   "statutes",
				Usage:  "Convert statute PDFs into chunk records",
				Action: statutesCommand,
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output JSONL file",
						Value:   "chunks.jsonl",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of documents processed concurrently",
						Value:   2,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "BadgerDB directory for chunk upserts (optional)",
					},
					&cli.IntFlag{
						Name:  "max-chunk-size",
						Usage: "Maximum chunk size in characters",
						Value: chunk.DefaultConfig().MaxChunkSize,
					},
				),
			},
			{
				Name:   "rulings",
				Usage:  "Convert ruling PDFs into enriched paragraph records",
				Action: rulingsCommand,
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output JSONL file",
						Value:   "rulings.jsonl",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of documents processed concurrently",
						Value:   2,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "BadgerDB directory for ruling upserts (optional)",
					},
					&cli.BoolFlag{
						Name:  "no-ai",
						Usage: "Skip the AI service and use regex extraction only",
					},
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "Structured-output service host URL",
						EnvVars: []string{"CYWIL_AI_HOST"},
					},
					&cli.StringFlag{
						Name:    "ai-model",
						Usage:   "Model used for section labels and entities",
						EnvVars: []string{"CYWIL_AI_MODEL"},
					},
					&cli.StringFlag{
						Name:    "ai-token",
						Usage:   "API token for the AI service",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
				),
			},
			{
				Name:   "batch-submit",
				Usage:  "Segment rulings and write bulk-job request records",
				Action: batchSubmitCommand,
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:  "extracted-jsonl",
						Usage: "Where to write the segmented documents",
						Value: "extracted.jsonl",
					},
					&cli.StringFlag{
						Name:  "requests-jsonl",
						Usage: "Where to write the bulk-job request file",
						Value: "requests.jsonl",
					},
					&cli.StringFlag{
						Name:    "ai-model",
						Usage:   "Model named in every request record",
						Value:   "gpt-4o-mini",
						EnvVars: []string{"CYWIL_AI_MODEL"},
					},
				),
			},
			{
				Name:   "batch-reconcile",
				Usage:  "Join bulk-job results back to their documents",
				Action: batchReconcileCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "extracted-jsonl",
						Usage:    "Segmented documents written by batch-submit",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "results-jsonl",
						Usage:    "Bulk-job output file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "enriched-jsonl",
						Usage: "Where to write the enriched paragraph records",
						Value: "rulings.jsonl",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "BadgerDB directory for ruling upserts (optional)",
					},
				},
			},
			{
				Name:      "merge",
				Usage:     "Merge per-document JSONL files into one corpus file",
				ArgsUsage: "FILE...",
				Action:    mergeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Merged corpus file",
						Required: true,
					},
				},
			},
			{
				Name:      "validate",
				Usage:     "Check required fields on every record of a corpus file",
				ArgsUsage: "FILE",
				Action:    validateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Record kind: rulings or statutes",
						Value: "rulings",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input-dir",
			Aliases: []string{"i"},
			Usage:   "Directory of source PDF files",
		},
		&cli.StringFlag{
			Name:    "single-file",
			Aliases: []string{"f"},
			Usage:   "Process a single PDF instead of a directory",
		},
	}
}

// collectInputs resolves --input-dir / --single-file into a sorted file
// list so document indices are stable across runs.
func collectInputs(c *cli.Context) ([]string, error) {
	if single := c.String("single-file"); single != "" {
		return []string{single}, nil
	}
	dir := c.String("input-dir")
	if dir == "" {
		return nil, fmt.Errorf("either --input-dir or --single-file is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func statutesCommand(c *cli.Context) error {
	ctx := context.Background()

	files, err := collectInputs(c)
	if err != nil {
		return err
	}

	chunkCfg := chunk.DefaultConfig()
	if size := c.Int("max-chunk-size"); size > 0 {
		chunkCfg.MaxChunkSize = size
	}

	processor := pipeline.NewStatuteProcessor(
		pdf.NewExtractor(pdf.Config{}, nil),
		statute.NewParser(nil),
		chunk.NewChunker(chunkCfg, nil),
		nil,
	)

	opts := []pipeline.Option{pipeline.WithWorkers(c.Int("workers"))}
	if dbPath := c.String("db"); dbPath != "" {
		store, err := cywil.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()
		opts = append(opts, pipeline.WithChunkRepository(store.ChunkRepository()))
	}

	orch, err := pipeline.NewOrchestrator(processor, nil, opts...)
	if err != nil {
		return err
	}
	defer orch.Release()

	writer, err := pipeline.NewJSONLWriter(c.String("output"))
	if err != nil {
		return err
	}
	defer writer.Close()

	summary, err := orch.RunStatutes(ctx, files, writer)
	if err != nil {
		return err
	}
	reportSummary(summary, writer.Written())
	return nil
}

func rulingsCommand(c *cli.Context) error {
	ctx := context.Background()

	files, err := collectInputs(c)
	if err != nil {
		return err
	}

	var provider ai.AIProvider
	if !c.Bool("no-ai") {
		var opts []ai.ConfigOption
		if host := c.String("ai-host"); host != "" {
			opts = append(opts, ai.WithHost(host))
		}
		if model := c.String("ai-model"); model != "" {
			opts = append(opts, ai.WithModel(model))
		}
		if token := c.String("ai-token"); token != "" {
			opts = append(opts, ai.WithToken(token))
		}
		config := ai.NewConfig(opts...)
		if err := config.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}
		provider, err = openai.NewProvider(config)
		if err != nil {
			return fmt.Errorf("failed to create AI provider: %w", err)
		}
		defer provider.Close()
	}

	processor := pipeline.NewRulingProcessor(
		pdf.NewExtractor(pdf.Config{}, nil),
		ruling.NewSegmenter(nil),
		enrich.NewEnricher(provider, nil),
		nil,
	)

	opts := []pipeline.Option{pipeline.WithWorkers(c.Int("workers"))}
	if dbPath := c.String("db"); dbPath != "" {
		store, err := cywil.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()
		opts = append(opts, pipeline.WithRulingRepository(store.RulingRepository()))
	}

	orch, err := pipeline.NewOrchestrator(nil, processor, opts...)
	if err != nil {
		return err
	}
	defer orch.Release()

	writer, err := pipeline.NewJSONLWriter(c.String("output"))
	if err != nil {
		return err
	}
	defer writer.Close()

	summary, err := orch.RunRulings(ctx, files, writer)
	if err != nil {
		return err
	}
	reportSummary(summary, writer.Written())
	return nil
}

func batchSubmitCommand(c *cli.Context) error {
	ctx := context.Background()

	files, err := collectInputs(c)
	if err != nil {
		return err
	}

	processor := pipeline.NewRulingProcessor(
		pdf.NewExtractor(pdf.Config{}, nil),
		ruling.NewSegmenter(nil),
		enrich.NewEnricher(nil, nil),
		nil,
	)

	var docs []pipeline.ExtractedDocument
	for _, path := range files {
		doc, err := processor.Extract(ctx, path)
		if err != nil {
			slog.Error("skipping document", "file", path, "err", err)
			continue
		}
		docs = append(docs, *doc)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents could be segmented")
	}

	extracted, err := os.Create(c.String("extracted-jsonl"))
	if err != nil {
		return fmt.Errorf("creating extracted file: %w", err)
	}
	defer extracted.Close()
	if err := pipeline.WriteExtractedDocuments(extracted, docs); err != nil {
		return err
	}

	requests, err := os.Create(c.String("requests-jsonl"))
	if err != nil {
		return fmt.Errorf("creating requests file: %w", err)
	}
	defer requests.Close()
	if err := pipeline.WriteBatchRequests(requests, docs, c.String("ai-model")); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Segmented %d of %d documents\n", len(docs), len(files))
	return nil
}

func batchReconcileCommand(c *cli.Context) error {
	ctx := context.Background()

	extracted, err := os.Open(c.String("extracted-jsonl"))
	if err != nil {
		return fmt.Errorf("opening extracted file: %w", err)
	}
	defer extracted.Close()
	docs, err := pipeline.ReadExtractedDocuments(extracted)
	if err != nil {
		return err
	}

	resultsFile, err := os.Open(c.String("results-jsonl"))
	if err != nil {
		return fmt.Errorf("opening results file: %w", err)
	}
	defer resultsFile.Close()
	results, err := pipeline.ReadBatchResults(resultsFile, nil)
	if err != nil {
		return err
	}

	reconciled := pipeline.NewReconciler(nil).Reconcile(docs, results)

	writer, err := pipeline.NewJSONLWriter(c.String("enriched-jsonl"))
	if err != nil {
		return err
	}
	defer writer.Close()

	for i := range reconciled {
		for j := range reconciled[i].Records {
			if err := writer.Write(&reconciled[i].Records[j]); err != nil {
				return err
			}
		}
	}

	if dbPath := c.String("db"); dbPath != "" {
		store, err := cywil.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		for i := range reconciled {
			if err := store.RulingRepository().PutRuling(ctx, &reconciled[i].Ruling); err != nil {
				return fmt.Errorf("storing ruling %s: %w", reconciled[i].Ruling.Name, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "Reconciled %d of %d documents, %d records\n",
		len(reconciled), len(docs), writer.Written())
	return nil
}

func mergeCommand(c *cli.Context) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	lines, err := pipeline.MergeJSONL(inputs, c.String("output"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Merged %d records from %d files\n", lines, len(inputs))
	return nil
}

func validateCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one corpus file is required")
	}

	file, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("opening corpus file: %w", err)
	}
	defer file.Close()

	var report pipeline.ValidationReport
	switch c.String("kind") {
	case "rulings":
		report, err = pipeline.ValidateRulingJSONL(file)
	case "statutes":
		report, err = pipeline.ValidateChunkJSONL(file)
	default:
		return fmt.Errorf("unknown kind %q: must be rulings or statutes", c.String("kind"))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Checked %d records: %d valid, %d invalid\n",
		report.Total, report.Valid, report.Invalid)
	for _, issue := range report.Issues {
		fmt.Fprintf(os.Stderr, "  line %d: %s\n", issue.Line, issue.Reason)
	}
	return nil
}

func reportSummary(summary pipeline.Summary, written int) {
	fmt.Fprintf(os.Stderr, "Processed %d documents: %d succeeded, %d failed, %d records written\n",
		summary.Total, summary.Succeeded, summary.Failed, written)
	if summary.Unchanged > 0 {
		fmt.Fprintf(os.Stderr, "  %d stored chunks unchanged, skipped\n", summary.Unchanged)
	}
	for file, reason := range summary.Failures {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", file, reason)
	}
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
