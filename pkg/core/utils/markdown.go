package utils

import "strings"

// StripCodeFence removes a single outer ``` fence (with or without a
// language tag) that models like to wrap their answers in.
func StripCodeFence(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return cleaned
	}

	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimPrefix(cleaned, "```")

	// drop the language tag on the opening line
	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 && !strings.ContainsAny(cleaned[:nl], " \t") {
		cleaned = cleaned[nl+1:]
	}
	return strings.TrimSpace(cleaned)
}
