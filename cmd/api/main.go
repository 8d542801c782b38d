package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apichat "wealthscribe/pkg/api/chat"
	"wealthscribe/pkg/api/config"
	"wealthscribe/pkg/api/extract"
	"wealthscribe/pkg/core/agent"
	"wealthscribe/pkg/core/chat"
	"wealthscribe/pkg/core/pipeline"
	"wealthscribe/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize agent manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Optional persistence. The service runs fine without a database.
	var repo *store.ExtractionRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			log.Printf("[WARNING] Database unavailable, persistence disabled: %v", err)
		} else {
			repo = store.NewExtractionRepo()
			defer store.Close()
		}
	}

	extractor := pipeline.New(agentMgr.GetProvider(agent.RoleExtraction))
	assistant := chat.NewAssistant(agentMgr.GetProvider(agent.RoleAssistant))

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Extraction endpoint
	extractHandler := extract.NewHandler(extractor, assistant, repo)
	http.HandleFunc("/api/extract", extractHandler.HandleExtract)

	// Chat endpoint
	chatHandler := apichat.NewHandler(assistant, repo)
	http.HandleFunc("/api/chat", chatHandler.HandleChat)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("API server starting on :%s...", port)
	log.Println("  - GET  /api/config")
	log.Println("  - POST /api/config/switch")
	log.Println("  - POST /api/extract")
	log.Println("  - POST /api/chat")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("[FATAL] Server failed to start: %v", err)
	}
}
