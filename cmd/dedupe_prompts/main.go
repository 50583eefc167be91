// cmd/dedupe_prompts/main.go
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AI-Template-SDK/senso-analysis/internal/config"
	"github.com/AI-Template-SDK/senso-analysis/services"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Prompt Deduplication ===")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using existing environment variables")
	}

	// Load configuration from environment
	cfg := config.Load()
	fmt.Printf("Similarity threshold: %.2f, lead n-gram: %d tokens, max lead reuse: %d\n",
		cfg.Dedupe.SimilarityThreshold, cfg.Dedupe.LeadNgramSize, cfg.Dedupe.MaxLeadReuse)

	if len(os.Args) < 2 {
		log.Fatal("Usage: dedupe_prompts <prompts-file> (one candidate per line)")
	}

	candidates, err := readPrompts(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read prompts: %v", err)
	}
	fmt.Printf("Read %d candidates from %s\n", len(candidates), os.Args[1])

	service := services.NewDedupeService(cfg)
	survivors := service.Dedupe(candidates)

	fmt.Printf("Kept %d of %d candidates (%d rejected)\n\n",
		len(survivors), len(candidates), len(candidates)-len(survivors))
	for _, prompt := range survivors {
		fmt.Println(prompt)
	}
}

func readPrompts(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var prompts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prompts = append(prompts, line)
	}
	return prompts, scanner.Err()
}
