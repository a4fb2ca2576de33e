package analyzer

// Fallback values substituted when analysis fails.
const (
	FallbackUserResponse = "Thank you for sharing your experience. We are currently experiencing a system issue and will address your feedback shortly."
	FallbackSummary      = "System/API Error"
	FallbackAction       = "Check system logs and API usage."
)

// Analysis is the structured payload extracted from the model response.
type Analysis struct {
	UserResponse string `json:"user_response"`
	Summary      string `json:"summary"`
	Action       string `json:"action"`
}

// Fallback returns the fixed triple used whenever analysis fails.
func Fallback() Analysis {
	return Analysis{
		UserResponse: FallbackUserResponse,
		Summary:      FallbackSummary,
		Action:       FallbackAction,
	}
}

// IsFallback reports whether a summary/action pair came from Fallback rather
// than from the model. Stored records only keep the strings, so this is the
// only way downstream consumers can tell the two apart.
func IsFallback(summary, action string) bool {
	return summary == FallbackSummary && action == FallbackAction
}

func (a Analysis) IsFallback() bool {
	return IsFallback(a.Summary, a.Action)
}
