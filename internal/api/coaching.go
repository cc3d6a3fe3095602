package api

import "sales-insights-go/internal/types"

// coachingNudges synthesizes coaching text for a call. Metric-driven nudges
// come first when the call's analytics warrant them, followed by the standard
// playbook trio.
func coachingNudges(call *types.Call) []types.CoachingNudge {
	nudges := []types.CoachingNudge{}

	if call.AgentTalkRatio != nil && *call.AgentTalkRatio > 0.65 {
		nudges = append(nudges, types.CoachingNudge{
			Title:      "Balance the Conversation",
			Suggestion: "The agent carried most of this call. Leave more room for the customer to talk through their needs.",
		})
	}
	if call.CustomerSentimentScore != nil && *call.CustomerSentimentScore < 0 {
		nudges = append(nudges, types.CoachingNudge{
			Title:      "Acknowledge Frustration",
			Suggestion: "Customer sentiment trended negative. Name the concern explicitly before moving to solutions.",
		})
	}

	nudges = append(nudges,
		types.CoachingNudge{
			Title:      "Active Listening",
			Suggestion: "Practice active listening by summarizing customer concerns before responding.",
		},
		types.CoachingNudge{
			Title:      "Solution Focus",
			Suggestion: "Focus on providing solutions rather than just explaining features.",
		},
		types.CoachingNudge{
			Title:      "Closing Technique",
			Suggestion: "Use assumptive closing techniques to guide the conversation toward a positive outcome.",
		},
	)
	return nudges
}
