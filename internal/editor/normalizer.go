package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"tripcraft/internal/models/response_models"
)

const NoTimePlaceholder = "(No time)"

// ErrUnexpectedShape means the itinerary could not be rendered at all: the
// top level is not an object or a day is not a list.
var ErrUnexpectedShape = errors.New("unexpected itinerary shape")

// NormalizeItinerary turns an itinerary response body into editor state,
// keeping the day order of the body.
func NormalizeItinerary(raw []byte, ids IDGenerator) (*State, error) {
	var itinerary response_models.Itinerary
	if err := json.Unmarshal(raw, &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return FromItinerary(itinerary, ids)
}

func FromItinerary(itinerary response_models.Itinerary, ids IDGenerator) (*State, error) {
	state := NewState(ids)
	for _, day := range itinerary.Days {
		var elements []json.RawMessage
		if err := json.Unmarshal(day.Value, &elements); err != nil || elements == nil {
			return nil, fmt.Errorf("%w: %q is not a list of activities", ErrUnexpectedShape, day.Label)
		}

		activities := make([]Activity, 0, len(elements))
		for _, element := range elements {
			dec := json.NewDecoder(bytes.NewReader(element))
			dec.UseNumber()
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrUnexpectedShape, day.Label, err)
			}
			activities = append(activities, NormalizeActivity(v, ids))
		}
		state.putDay(day.Label, activities)
	}
	return state, nil
}

// NormalizeActivity accepts a decoded {time, activity} object, a
// "time: description" string, or any other JSON value, which is rendered to
// text first.
func NormalizeActivity(v any, ids IDGenerator) Activity {
	a := Activity{ID: ids.NewID(ActivityIDPrefix)}

	switch val := v.(type) {
	case map[string]any:
		a.Time = strings.TrimSpace(textOf(val["time"]))
		if a.Time == "" {
			a.Time = NoTimePlaceholder
		}
		a.Activity = textOf(val["activity"])
	case string:
		a.Time, a.Activity = SplitActivityText(val)
	default:
		a.Time, a.Activity = SplitActivityText(textOf(val))
	}
	return a
}

// SplitActivityText splits "9:00 AM: Visit the museum" at the first colon
// that is not part of a clock time. Without such a colon the first word is
// taken as the time.
func SplitActivityText(s string) (timePart, activity string) {
	s = strings.TrimSpace(s)

	if i := separatorColon(s); i >= 0 {
		timePart = strings.TrimSpace(s[:i])
		activity = strings.TrimSpace(s[i+1:])
	} else if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		timePart = s[:i]
		activity = strings.TrimSpace(s[i:])
	} else {
		timePart = s
	}

	if timePart == "" {
		timePart = NoTimePlaceholder
	}
	return timePart, activity
}

// NormalizeSuggestions builds pool entries; pool activities have no time.
func NormalizeSuggestions(items []string, ids IDGenerator) []Activity {
	pool := make([]Activity, 0, len(items))
	for _, item := range items {
		pool = append(pool, Activity{ID: ids.NewID(PoolIDPrefix), Activity: item})
	}
	return pool
}

func separatorColon(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		return i
	}
	return -1
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func textOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
