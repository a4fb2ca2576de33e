package analyzer

import "errors"

var (
	// ErrExternalService wraps any failure of the text-generation call.
	ErrExternalService = errors.New("analyzer: external service error")
	// ErrParse means no candidate in the response decoded as a JSON object.
	ErrParse = errors.New("analyzer: no structured payload in response")
	// ErrMissingFields means a payload decoded but carried none of the expected keys.
	ErrMissingFields = errors.New("analyzer: payload has none of the expected fields")
)

// reason maps an analysis error to a short metrics label.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrExternalService):
		return "external"
	case errors.Is(err, ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, ErrParse):
		return "parse"
	default:
		return "unknown"
	}
}
