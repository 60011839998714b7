// Package settings reads process configuration from the environment,
// after loading an optional .env file.
package settings

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings is shared by the API server and the command-line tools.
type Settings struct {
	Addr              string        `env:"ROI_ADDR" envDefault:":8080"`
	ModelsConfig      string        `env:"ROI_MODELS_CONFIG" envDefault:"config/models.yaml"`
	PromptsDir        string        `env:"ROI_PROMPTS_DIR" envDefault:"resources/prompts"`
	ScenarioDir       string        `env:"ROI_SCENARIO_DIR" envDefault:"scenarios"`
	Currency          string        `env:"ROI_CURRENCY" envDefault:"NOK"`
	CommentaryTimeout time.Duration `env:"ROI_COMMENTARY_TIMEOUT" envDefault:"20s"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiModel       string        `env:"ROI_GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
}

// Load reads the given .env files (default ".env"; missing files are
// ignored) and then parses the environment. Real environment variables
// win over .env entries.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// godotenv never overrides variables that are already set
		_ = godotenv.Load(f)
	}
	return Parse()
}

// Parse reads settings from the current environment only.
func Parse() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
