package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripcraft/internal/models/response_models"
	"tripcraft/pkg/utils"
)

type ResponseValidatorInterface interface {
	ValidateItinerary(raw string) (response_models.Itinerary, error)
	ValidateSuggestions(raw string) ([]string, error)
}

type ResponseValidator struct {
	strict bool
}

// NewResponseValidator returns a validator that, when strict is set, also
// checks every day against the documented {time, activity} shape.
func NewResponseValidator(strict bool) *ResponseValidator {
	return &ResponseValidator{strict: strict}
}

// ValidateItinerary parses raw model output as an ordered JSON object.
// Chronological order of times is never checked.
func (v *ResponseValidator) ValidateItinerary(raw string) (response_models.Itinerary, error) {
	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &itinerary); err != nil {
		return response_models.Itinerary{}, fmt.Errorf("%w: itinerary: %v", utils.ErrMalformedResponse, err)
	}

	if v.strict {
		for _, day := range itinerary.Days {
			if err := checkScheduledDay(day.Value); err != nil {
				return response_models.Itinerary{}, fmt.Errorf("%w: itinerary day %q: %v", utils.ErrMalformedResponse, day.Label, err)
			}
		}
	}

	return itinerary, nil
}

// ValidateSuggestions requires a JSON array whose elements are all strings.
func (v *ResponseValidator) ValidateSuggestions(raw string) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("%w: suggestions: %v", utils.ErrMalformedResponse, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: suggestions: not an array", utils.ErrMalformedResponse)
	}

	suggestions := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("%w: suggestion %d is not a string", utils.ErrMalformedResponse, i)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func checkScheduledDay(value json.RawMessage) error {
	var entries []map[string]any
	if err := json.Unmarshal(value, &entries); err != nil || entries == nil {
		return fmt.Errorf("expected an array of objects")
	}
	for i, entry := range entries {
		for _, field := range []string{"time", "activity"} {
			s, ok := entry[field].(string)
			if !ok || strings.TrimSpace(s) == "" {
				return fmt.Errorf("entry %d: missing %s", i, field)
			}
		}
	}
	return nil
}

// stripCodeFence removes one markdown fence wrapping the whole text, such as
// ```json ... ```. Anything else around the JSON is left for the parser to reject.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(s[3:], "```")
	// drop the info string ("json") on the opening line
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if info := strings.TrimSpace(body[:nl]); !strings.ContainsAny(info, "{[\"") {
			body = body[nl+1:]
		}
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	return strings.TrimSpace(body)
}
