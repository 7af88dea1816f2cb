package llm

import (
	"encoding/json"
	"strings"

	domain "github.com/toolwarden/cli/internal/domain"
)

// keywordConfidence is assigned when the verdict had to be guessed from
// keywords instead of parsed from JSON.
const keywordConfidence = 0.3

type rawVerdict struct {
	Decision   string  `json:"decision"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// ParseVerdict turns a provider's free-text response into a verdict.
// Strict JSON extraction is attempted first; on failure a lenient keyword
// scan guesses the decision at low confidence, and with no recognizable
// keywords the verdict is an explicit zero-confidence abstention.
func ParseVerdict(text string) *domain.JudgeVerdict {
	if v := parseJSON(text); v != nil {
		return v
	}
	return parseKeywords(text)
}

// parseJSON extracts the outermost {...} object and validates its decision.
func parseJSON(text string) *domain.JudgeVerdict {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}

	decision := domain.DecisionOutcome(strings.ToLower(strings.TrimSpace(raw.Decision)))
	switch decision {
	case domain.DecisionAllow, domain.DecisionWarn, domain.DecisionModify,
		domain.DecisionContinue, domain.DecisionDeny, domain.DecisionBlock,
		domain.DecisionAbstain:
	default:
		return nil
	}

	return &domain.JudgeVerdict{
		Decision:   decision,
		Reason:     raw.Reason,
		Confidence: raw.Confidence,
	}
}

func parseKeywords(text string) *domain.JudgeVerdict {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "deny"):
		return &domain.JudgeVerdict{Decision: domain.DecisionDeny, Reason: "keyword match in unstructured response", Confidence: keywordConfidence}
	case strings.Contains(lower, "block"):
		return &domain.JudgeVerdict{Decision: domain.DecisionBlock, Reason: "keyword match in unstructured response", Confidence: keywordConfidence}
	case strings.Contains(lower, "allow"), strings.Contains(lower, "approve"):
		return &domain.JudgeVerdict{Decision: domain.DecisionAllow, Reason: "keyword match in unstructured response", Confidence: keywordConfidence}
	}

	return &domain.JudgeVerdict{Decision: domain.DecisionAbstain, Confidence: 0}
}
