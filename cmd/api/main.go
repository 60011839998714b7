package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/finnegil-spec/orbital-roi/pkg/api/config"
	roiapi "github.com/finnegil-spec/orbital-roi/pkg/api/roi"
	"github.com/finnegil-spec/orbital-roi/pkg/core/agent"
	"github.com/finnegil-spec/orbital-roi/pkg/core/narrative"
	"github.com/finnegil-spec/orbital-roi/pkg/core/prompt"
	"github.com/finnegil-spec/orbital-roi/pkg/core/report"
	"github.com/finnegil-spec/orbital-roi/pkg/core/scenario"
	"github.com/finnegil-spec/orbital-roi/pkg/core/settings"
)

func main() {
	// Load .env and environment
	cfg, err := settings.Load()
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
	if _, err := report.ParseCurrency(cfg.Currency); err != nil {
		fmt.Printf("[FATAL] ROI_CURRENCY: %v\n", err)
		os.Exit(1)
	}

	// Prompt library
	prompts := prompt.NewRegistry()
	if err := prompts.LoadFromDirectory(cfg.PromptsDir); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to built-in prompts")
	}

	// Model routing
	agentCfg, err := agent.LoadConfig(cfg.ModelsConfig)
	if err != nil {
		fmt.Printf("[WARNING] %v, using offline commentary\n", err)
	}
	agentMgr := agent.NewManager(agentCfg, agent.Credentials{
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
	})

	// Scenario presets
	scenarios, err := scenario.LoadDir(cfg.ScenarioDir)
	if err != nil {
		fmt.Printf("[WARNING] No scenarios loaded: %v\n", err)
		scenarios = []scenario.Scenario{scenario.Default()}
	}

	mux := http.NewServeMux()

	// Config endpoints
	config.NewHandler(agentMgr).Register(mux)

	// ROI endpoints
	writer := narrative.NewWriter(agentMgr, prompts, cfg.CommentaryTimeout)
	roiapi.NewHandler(scenarios, cfg.Currency, writer).Register(mux)

	fmt.Printf("API server starting on %s...\n", cfg.Addr)
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - GET  /api/roi/defaults")
	fmt.Println("  - POST /api/roi/evaluate")
	fmt.Println("  - POST /api/roi/report?format=md|html|xlsx|pdf|txt")
	fmt.Println("  - POST /api/roi/commentary")
	log.Printf("[ROI] %d scenarios, provider %s, currency %s", len(scenarios), agentMgr.GetActiveProvider(), cfg.Currency)

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
