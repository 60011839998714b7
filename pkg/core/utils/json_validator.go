package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the usual hand-editing mistakes in a JSON document:
// unquoted keys, single quotes, trailing commas, comments and unclosed
// brackets.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSON converts an Hjson document to standard JSON.
func ParseHJSON(data string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(data), &result); err != nil {
		return "", fmt.Errorf("hjson parse failed: %w", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("hjson re-encode failed: %w", err)
	}
	return string(out), nil
}

// SmartParse decodes input into target, trying progressively more lenient
// readers:
// 1. Standard JSON
// 2. JSON repair
// 3. Hjson
//
// It returns the JSON text that was finally accepted.
func SmartParse(input string, target interface{}) (string, error) {
	// 1. Strict
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return input, nil
	}

	// 2. Repair
	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return repaired, nil
		}
	}

	// 3. Hjson
	converted, err := ParseHJSON(input)
	if err != nil {
		return "", fmt.Errorf("smart parse: no strategy accepted input: %w", err)
	}
	if err := json.Unmarshal([]byte(converted), target); err != nil {
		return "", fmt.Errorf("smart parse: decoded hjson does not fit target: %w", err)
	}
	return converted, nil
}
