package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"wealthscribe/pkg/core/agent"
	"wealthscribe/pkg/core/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	if len(os.Args) < 2 {
		log.Fatal("Usage: extract <statement.pdf>")
	}
	path := os.Args[1]
	if _, err := os.Stat(path); err != nil {
		log.Fatalf("Error: cannot read %s: %v", path, err)
	}

	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	fmt.Printf("📂 Processing %s...\n", path)

	extractor := pipeline.New(agentMgr.GetProvider(agent.RoleExtraction))
	fin, err := extractor.Run(context.Background(), path)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrNoFinancialDataFound):
			log.Fatal(pipeline.NotFoundMessage)
		case errors.Is(err, pipeline.ErrExtractionUnavailable):
			log.Fatal("Extraction service unavailable, please retry later.")
		default:
			log.Fatalf("Extraction failed: %v", err)
		}
	}

	out, err := json.MarshalIndent(fin, "", "  ")
	if err != nil {
		log.Fatalf("Encoding result failed: %v", err)
	}
	fmt.Println(string(out))
	fmt.Println()
	fmt.Println(fin.Verdict())
}
