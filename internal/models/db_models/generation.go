package db_models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type GenerationKind string

const (
	GenerationKindItinerary   GenerationKind = "itinerary"
	GenerationKindSuggestions GenerationKind = "suggestions"
)

type GenerationStatus string

const (
	GenerationStatusOK            GenerationStatus = "ok"
	GenerationStatusUpstreamError GenerationStatus = "upstream_error"
	GenerationStatusMalformed     GenerationStatus = "malformed"
)

// GenerationRecord is one call to the completion service, kept for
// diagnosing bad model output. The raw text never leaves the server.
type GenerationRecord struct {
	BaseModel
	TraceID      string           `gorm:"size:64;index"`
	Kind         GenerationKind   `gorm:"size:32;index"`
	Provider     string           `gorm:"size:32"`
	Model        string           `gorm:"size:64"`
	Request      datatypes.JSON   // the validated request body
	InterestTags pq.StringArray   `gorm:"type:text"` // stored in postgres array literal form
	Prompt       string           `gorm:"type:text"`
	RawOutput    string           `gorm:"type:text"`
	Status       GenerationStatus `gorm:"size:32;index"`
	ErrorText    string           `gorm:"type:text"`
	LatencyMs    int64
}
