// main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AI-Template-SDK/senso-analysis/internal/config"
	"github.com/AI-Template-SDK/senso-analysis/internal/models"
	"github.com/AI-Template-SDK/senso-analysis/internal/store"
	"github.com/AI-Template-SDK/senso-analysis/services"
	"github.com/joho/godotenv"
)

// analysisInput is the file format the upstream orchestration hands us:
// completed LLM responses (already fetched, possibly with empty fallbacks
// for timed-out calls), the tracked brand list, and optionally a batch of
// generated prompt candidates to deduplicate.
type analysisInput struct {
	Brands    []models.Brand `json:"brands"`
	Responses []string       `json:"responses"`
	Prompts   []string       `json:"prompts,omitempty"`
}

type analysisOutput struct {
	Summary        *models.AnalysisSummary `json:"summary,omitempty"`
	DedupedPrompts []string                `json:"deduped_prompts,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "path to the analysis input JSON file")
	outputPath := flag.String("output", "", "path for the result JSON (default: stdout)")
	persist := flag.Bool("persist", false, "store the run and metrics when a database is configured")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err != nil {
			log.Printf("Note: No .env or dev.env file loaded: %v", err)
		} else {
			log.Printf("Loaded dev.env file for local development")
		}
	} else {
		log.Printf("Loaded .env file")
	}

	cfg := config.Load()
	log.Printf("Environment: %s", cfg.Environment)

	if *inputPath == "" {
		log.Fatal("Usage: senso-analysis -input <file.json> [-output <file.json>] [-persist]")
	}

	input, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	ctx := context.Background()
	output := &analysisOutput{}

	if len(input.Responses) > 0 {
		evaluationService := services.NewEvaluationService()
		output.Summary = evaluationService.ProcessResponses(ctx, input.Responses, input.Brands)
	}

	if len(input.Prompts) > 0 {
		dedupeService := services.NewDedupeService(cfg)
		output.DedupedPrompts = dedupeService.Dedupe(input.Prompts)
		log.Printf("Deduplicated prompts: %d in, %d kept", len(input.Prompts), len(output.DedupedPrompts))
	}

	if *persist && output.Summary != nil {
		if cfg.DatabaseURL == "" {
			log.Printf("WARNING: -persist set but DATABASE_URL is not configured, skipping")
		} else if err := persistRun(ctx, cfg, output.Summary); err != nil {
			// Persistence is best-effort: the analysis result is still written.
			log.Printf("WARNING: failed to persist run: %v", err)
		} else {
			log.Printf("Stored run %s", output.Summary.Run.RunID)
		}
	}

	if err := writeOutput(*outputPath, output); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func readInput(path string) (*analysisInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var input analysisInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &input, nil
}

func writeOutput(path string, output *analysisOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func persistRun(ctx context.Context, cfg *config.Config, summary *models.AnalysisSummary) error {
	db, err := store.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}
	return db.SaveRun(ctx, summary.Run, summary.Metrics)
}
