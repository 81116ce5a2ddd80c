package request_models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DayCount accepts a JSON number or a numeric string; browser forms send
// number inputs as strings.
type DayCount int

func (d *DayCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*d = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("days: %q is not a whole number", s)
		}
		*d = DayCount(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("days: %w", err)
	}
	*d = DayCount(n)
	return nil
}

type ItineraryRequest struct {
	Destination string   `json:"destination" binding:"required"`
	Days        DayCount `json:"days" binding:"required,min=1"`
	Interests   string   `json:"interests" binding:"required"`
}

type SuggestionRequest struct {
	Destination string `json:"destination" binding:"required"`
	Interests   string `json:"interests" binding:"required"`
}
