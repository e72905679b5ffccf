package strategy

import (
	"encoding/json"
	"fmt"
	"strings"

	"TrendEngine/internal/domain"
)

var requiredKeys = []string{"theme_narrative", "monday_video", "wednesday_post", "friday_card", "seo_notes"}

// ParsePlaybook decodes model output into a playbook. Prose around the JSON
// object is tolerated; a reply missing any top-level section is rejected.
func ParsePlaybook(raw string) (*domain.Playbook, error) {
	body, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := sections[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("playbook missing keys: %s", strings.Join(missing, ", "))
	}

	var pb domain.Playbook
	if err := json.Unmarshal(body, &pb); err != nil {
		return nil, fmt.Errorf("decode playbook: %w", err)
	}
	return &pb, nil
}

// extractObject returns raw when it is a JSON object, else the span between
// the first '{' and the last '}'.
func extractObject(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	return []byte(raw[start : end+1]), nil
}
