package llm

import (
	"context"
	"strings"
)

// OfflineProvider answers without any network call. It returns the bullet
// lines ("- ...") of the prompt, which is enough for a factual summary when
// no model is configured.
type OfflineProvider struct{}

var _ Provider = (*OfflineProvider)(nil)

func (p *OfflineProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var facts []string
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			facts = append(facts, line)
		}
	}
	return strings.Join(facts, "\n"), nil
}

func (p *OfflineProvider) AdaptInstructions(raw string) string {
	return raw
}
