package analyzer

import "fmt"

const promptTemplate = `
You are a customer service AI analysis tool. Your job is to process customer feedback and provide structured insights.

Input Data:
- User Rating: %d/5
- User Review: "%s"

Task:
Analyze the input and provide a JSON response with exactly these keys:
1. "user_response": A polite, empathetic, and specific reply to the user (max 2 sentences). For positive reviews, express appreciation. For negative reviews, apologize and validate their feelings.
2. "summary": A concise, 5-10 word **root-cause summary** of the feedback (e.g., "Slow service and cold food issue").
3. "action": A single, concrete, and measurable recommended next step for the admin (e.g., "Schedule retraining for front-of-house staff on order speed.").

Ensure the final output is ONLY a valid JSON object.
`

// BuildPrompt embeds rating and review verbatim. The review is untrusted and is
// not escaped; the parser copes with whatever comes back.
func BuildPrompt(rating int, review string) string {
	return fmt.Sprintf(promptTemplate, rating, review)
}
