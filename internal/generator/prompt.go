package generator

import (
	"fmt"
	"strings"

	"github.com/wuwenbin0122/persona-studio/internal/models"
)

const notSpecified = "Not specified"

const SystemPrompt = "You are an expert UX researcher and strategist who creates detailed, empathetic user personas. " +
	"Generate realistic, actionable personas that go beyond demographics to include motivation, trust, access, and behavioral insights. " +
	"Reply with a single JSON object and nothing else."

const personaShape = `{
  "name": "First Last",
  "title": "Job title",
  "location": "City, State/Country",
  "primaryMotivation": "A paragraph on what drives this user",
  "trustDrivers": ["4-5 trust factors"],
  "accessContext": "A paragraph on their technology and environment",
  "behavioralInsights": {
    "decisionMaking": "How they make decisions",
    "communicationStyle": "How they communicate",
    "learningPreference": "How they prefer to learn",
    "timeManagement": "How they manage time"
  },
  "userVoiceQuotes": ["3 authentic-sounding quotes"],
  "ethicsAssessment": {
    "biasConsiderations": ["3-4 potential bias risks"],
    "inclusionOpportunities": ["3-4 inclusion suggestions"]
  },
  "strategicImpact": {
    "product": ["3-4 product recommendations"],
    "marketing": ["3-4 marketing recommendations"],
    "design": ["3-4 design recommendations"]
  },
  "keyTakeaway": "A summary paragraph with strategic insights"
}`

// BuildPrompt renders the request into the persona prompt sent to the provider.
func BuildPrompt(req models.PersonaRequestInput) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Generate a comprehensive user persona for a %s in the %s industry.\n\n", req.ProductType, req.Industry))
	builder.WriteString(fmt.Sprintf("Product Description: %s\n", req.ProductDescription))
	builder.WriteString(fmt.Sprintf("Primary User Goal: %s\n", req.PrimaryUserGoal))
	builder.WriteString(fmt.Sprintf("User Context: %s\n", orNotSpecified(req.UserContext)))
	builder.WriteString(fmt.Sprintf("Challenges: %s\n", orNotSpecified(req.Challenges)))
	builder.WriteString(fmt.Sprintf("Ethics Considerations: %s\n", orNotSpecified(req.EthicsConsiderations)))
	builder.WriteString(fmt.Sprintf("Trust Factors: %s\n", orNotSpecified(req.TrustFactors)))
	builder.WriteString(fmt.Sprintf("Additional Notes: %s\n\n", orNotSpecified(req.AdditionalNotes)))
	builder.WriteString("Return the persona as JSON with exactly this structure:\n")
	builder.WriteString(personaShape)
	builder.WriteString("\n\nMake the persona realistic, detailed, and actionable. Focus on motivation, behavior, and context rather than just demographics. ")
	builder.WriteString("Respond with valid JSON only, no additional text.")
	return builder.String()
}

func orNotSpecified(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return notSpecified
	}
	return *value
}
