package web

import "github.com/wuwenbin0122/persona-studio/internal/models"

// DemoPersona is the sample shown on /demo. It is never stored, so it has no id.
func DemoPersona() *models.Persona {
	return &models.Persona{
		PersonaDraft: models.PersonaDraft{
			Name:              "Sarah Chen",
			Title:             "Senior Product Manager",
			Location:          "San Francisco, CA",
			PrimaryMotivation: "Sarah is driven by the need to make data-driven decisions that improve user experience while balancing business objectives. She seeks tools that provide actionable insights without overwhelming complexity, allowing her to communicate findings effectively to both technical and non-technical stakeholders.",
			TrustDrivers: []string{
				"Transparent methodology and data sources",
				"Peer recommendations and case studies",
				"Integration with existing workflow tools",
				"Responsive customer support and documentation",
			},
			AccessContext: "Sarah primarily works from a modern office environment with high-speed internet, using a MacBook Pro and dual monitors. She occasionally works remotely and needs tools that function reliably across different network conditions. She values mobile accessibility for reviewing insights during commutes and client meetings.",
			BehavioralInsights: models.BehavioralInsights{
				DecisionMaking:     "Prefers to validate hypotheses with data before making recommendations",
				CommunicationStyle: "Values clear, visual presentations that tell a compelling story",
				LearningPreference: "Learns best through hands-on exploration and guided tutorials",
				TimeManagement:     "Operates under tight deadlines, values efficiency and quick insights",
			},
			UserVoiceQuotes: []string{
				"I need tools that help me tell the story behind the data, not just show me numbers.",
				"Time is my biggest constraint. If a tool takes more than 10 minutes to learn, I won't use it.",
				"I trust recommendations from my network more than any marketing material.",
			},
			EthicsAssessment: models.EthicsAssessment{
				BiasConsiderations: []string{
					"Tech-industry perspective may not represent all user types",
					"High digital literacy could bias toward complex solutions",
					"Geographic location influences timezone and cultural assumptions",
				},
				InclusionOpportunities: []string{
					"Consider users with varying levels of technical expertise",
					"Design for different work environments and access patterns",
					"Account for diverse communication and learning styles",
				},
			},
			StrategicImpact: models.StrategicImpact{
				Product: []string{
					"Prioritize intuitive navigation",
					"Include data export features",
					"Optimize for mobile viewing",
				},
				Marketing: []string{
					"Lead with peer testimonials",
					"Showcase integration capabilities",
					"Emphasize time-saving benefits",
				},
				Design: []string{
					"Focus on clean, scannable layouts",
					"Provide contextual help options",
					"Enable customizable dashboards",
				},
			},
			KeyTakeaway: "Sarah represents the efficiency-driven professional who values tools that enhance her expertise rather than replace it. Success with this persona requires building trust through transparency, providing immediate value, and supporting her role as a strategic communicator within her organization.",
		},
	}
}
