package analyzer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

const (
	keyUserResponse = "user_response"
	keySummary      = "summary"
	keyAction       = "action"
)

// ParseResponse extracts an Analysis from raw model output. Candidates are
// tried in order: ```json fenced blocks, top-level {...} spans, then the whole
// trimmed text. The first candidate that decodes to an object with at least
// one non-empty expected key wins; absent keys become "".
func ParseResponse(raw string) (Analysis, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Analysis{}, fmt.Errorf("%w: empty response", ErrParse)
	}

	candidates := fencedCandidates(text)
	candidates = append(candidates, objectCandidates(text)...)
	candidates = append(candidates, text)

	sawObject := false
	for _, c := range candidates {
		fields, err := decodeObject(c)
		if err != nil {
			continue
		}
		sawObject = true
		if a, ok := fromFields(fields); ok {
			return a, nil
		}
	}
	if sawObject {
		return Analysis{}, ErrMissingFields
	}
	return Analysis{}, fmt.Errorf("%w: %q", ErrParse, clip(text, 120))
}

func fencedCandidates(text string) []string {
	matches := fencedJSON.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// objectCandidates returns every balanced top-level {...} span in text, in order.
// Braces inside JSON string literals are ignored.
func objectCandidates(text string) []string {
	var out []string
	depth, start := 0, -1
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			// quotes only delimit strings inside an object; prose outside may
			// contain unbalanced quotes.
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, text[start:i+1])
				start = -1
			}
		}
	}
	return out
}

func decodeObject(candidate string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		// literal null
		return nil, fmt.Errorf("not an object")
	}
	return fields, nil
}

// fromFields reports false when no expected key carries a non-empty value.
func fromFields(fields map[string]json.RawMessage) (Analysis, bool) {
	get := func(key string) string {
		raw, ok := fields[key]
		if !ok {
			return ""
		}
		return stringValue(raw)
	}
	a := Analysis{
		UserResponse: get(keyUserResponse),
		Summary:      get(keySummary),
		Action:       get(keyAction),
	}
	return a, a != Analysis{}
}

// stringValue unquotes JSON strings and keeps any other value in its JSON form.
func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	v := strings.TrimSpace(string(raw))
	if v == "null" {
		return ""
	}
	return v
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
