package generator

import (
	"strings"

	"github.com/wuwenbin0122/persona-studio/internal/models"
)

// Fallback values used when the provider omits a field or sends the wrong shape.
var (
	DefaultName               = "Generated Persona"
	DefaultTitle              = "Professional"
	DefaultLocation           = "Unknown Location"
	DefaultPrimaryMotivation  = "Seeking efficiency and effectiveness"
	DefaultTrustDrivers       = []string{"Security", "Reliability", "Transparency"}
	DefaultAccessContext      = "Standard technology access"
	DefaultDecisionMaking     = "Data-driven approach"
	DefaultCommunicationStyle = "Clear and direct"
	DefaultLearningPreference = "Hands-on learning"
	DefaultTimeManagement     = "Structured and organized"
	DefaultUserVoiceQuotes    = []string{"I need tools that just work", "Time is my most valuable resource"}
	DefaultBiasConsiderations = []string{"Consider diverse perspectives", "Avoid assumptions"}
	DefaultInclusion          = []string{"Ensure accessibility", "Support diverse workflows"}
	DefaultProductImpact      = []string{"Focus on usability", "Prioritize core features"}
	DefaultMarketingImpact    = []string{"Highlight efficiency", "Show clear value"}
	DefaultDesignImpact       = []string{"Clean interface", "Intuitive navigation"}
	DefaultKeyTakeaway        = "This persona values efficiency and clear communication above all else."
)

type normalizer struct {
	defaulted []string
}

// Normalize maps a decoded provider object onto a complete draft. Every string
// comes back non-blank and every list non-empty. The second return value lists
// the dotted paths that were filled from defaults.
func Normalize(raw map[string]any) (models.PersonaDraft, []string) {
	n := &normalizer{}

	insights := object(raw, "behavioralInsights")
	ethics := object(raw, "ethicsAssessment")
	impact := object(raw, "strategicImpact")

	draft := models.PersonaDraft{
		Name:              n.str(raw, "name", "name", DefaultName),
		Title:             n.str(raw, "title", "title", DefaultTitle),
		Location:          n.str(raw, "location", "location", DefaultLocation),
		PrimaryMotivation: n.str(raw, "primaryMotivation", "primaryMotivation", DefaultPrimaryMotivation),
		TrustDrivers:      n.list(raw, "trustDrivers", "trustDrivers", DefaultTrustDrivers),
		AccessContext:     n.str(raw, "accessContext", "accessContext", DefaultAccessContext),
		BehavioralInsights: models.BehavioralInsights{
			DecisionMaking:     n.str(insights, "decisionMaking", "behavioralInsights.decisionMaking", DefaultDecisionMaking),
			CommunicationStyle: n.str(insights, "communicationStyle", "behavioralInsights.communicationStyle", DefaultCommunicationStyle),
			LearningPreference: n.str(insights, "learningPreference", "behavioralInsights.learningPreference", DefaultLearningPreference),
			TimeManagement:     n.str(insights, "timeManagement", "behavioralInsights.timeManagement", DefaultTimeManagement),
		},
		UserVoiceQuotes: n.list(raw, "userVoiceQuotes", "userVoiceQuotes", DefaultUserVoiceQuotes),
		EthicsAssessment: models.EthicsAssessment{
			BiasConsiderations:     n.list(ethics, "biasConsiderations", "ethicsAssessment.biasConsiderations", DefaultBiasConsiderations),
			InclusionOpportunities: n.list(ethics, "inclusionOpportunities", "ethicsAssessment.inclusionOpportunities", DefaultInclusion),
		},
		StrategicImpact: models.StrategicImpact{
			Product:   n.list(impact, "product", "strategicImpact.product", DefaultProductImpact),
			Marketing: n.list(impact, "marketing", "strategicImpact.marketing", DefaultMarketingImpact),
			Design:    n.list(impact, "design", "strategicImpact.design", DefaultDesignImpact),
		},
		KeyTakeaway: n.str(raw, "keyTakeaway", "keyTakeaway", DefaultKeyTakeaway),
	}

	return draft, n.defaulted
}

func (n *normalizer) str(obj map[string]any, key, path, fallback string) string {
	if value, ok := obj[key].(string); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	n.defaulted = append(n.defaulted, path)
	return fallback
}

func (n *normalizer) list(obj map[string]any, key, path string, fallback []string) []string {
	if items, ok := obj[key].([]any); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			text, ok := item.(string)
			if !ok {
				continue
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	n.defaulted = append(n.defaulted, path)
	return append([]string(nil), fallback...)
}

// object returns the nested record under key, or nil; reads from a nil map are safe.
func object(obj map[string]any, key string) map[string]any {
	nested, _ := obj[key].(map[string]any)
	return nested
}
