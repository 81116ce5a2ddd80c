package response_models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ItineraryDay is one entry of the day-label → activities object. Value is
// kept raw so a lenient pass-through does not reshape what the model sent.
type ItineraryDay struct {
	Label string
	Value json.RawMessage
}

// Itinerary is a JSON object whose key order is significant: the order days
// were written in is the order they are displayed in.
type Itinerary struct {
	Days []ItineraryDay
}

// ScheduledActivity is the documented shape of one itinerary entry.
type ScheduledActivity struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (it Itinerary) Labels() []string {
	labels := make([]string, len(it.Days))
	for i, d := range it.Days {
		labels[i] = d.Label
	}
	return labels
}

// Set replaces the value for label in place, or appends a new day.
func (it *Itinerary) Set(label string, value json.RawMessage) {
	for i := range it.Days {
		if it.Days[i].Label == label {
			it.Days[i].Value = value
			return
		}
	}
	it.Days = append(it.Days, ItineraryDay{Label: label, Value: value})
}

func (it Itinerary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range it.Days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(d.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if err := json.Compact(&buf, d.Value); err != nil {
			return nil, fmt.Errorf("day %q: %w", d.Label, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts only a JSON object. A repeated key keeps its first
// position and its last value.
func (it *Itinerary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("itinerary must be a JSON object")
	}

	parsed := Itinerary{Days: []ItineraryDay{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("day %q: %w", label, err)
		}
		parsed.Set(label, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after itinerary object")
	}

	*it = parsed
	return nil
}
