package suggest

import (
	"encoding/json"
	"errors"
	"strings"
)

// suggestionEnvelope is the object form both providers request. Some models
// still answer with a bare array; decodeSuggestions accepts both.
type suggestionEnvelope struct {
	Suggestions []suggestionPayload `json:"suggestions"`
}

func decodeSuggestions(raw string) ([]suggestionPayload, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, errors.New("empty payload")
	}
	var env suggestionEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err == nil && len(env.Suggestions) > 0 {
		return env.Suggestions, nil
	}
	var list []suggestionPayload
	if err := json.Unmarshal([]byte(cleaned), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// extractJSONFragment strips code fences and any prose around the outermost
// JSON value.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
