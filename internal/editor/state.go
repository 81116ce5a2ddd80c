package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"tripcraft/internal/models/response_models"
)

var (
	ErrDayNotFound      = errors.New("day not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrUnknownField     = errors.New("unknown activity field")
)

const (
	FieldTime     = "time"
	FieldActivity = "activity"

	NewActivityTime = "9:00 AM"
	NewActivityText = "New Activity"
)

type Activity struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type day struct {
	label      string
	activities []Activity
}

// State is one editing session: ordered days plus the pool of suggested
// activities not yet placed. It is not safe for concurrent use.
type State struct {
	days []day
	pool []Activity
	ids  IDGenerator
}

func NewState(ids IDGenerator) *State {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &State{ids: ids}
}

// AddDay appends "Day N" where N is one more than the current number of days.
// After removals that label can already exist; that day then keeps its
// position and its activities are cleared.
func (s *State) AddDay() string {
	label := fmt.Sprintf("Day %d", len(s.days)+1)
	if i := s.dayIndex(label); i >= 0 {
		s.days[i].activities = []Activity{}
		return label
	}
	s.days = append(s.days, day{label: label, activities: []Activity{}})
	return label
}

// RemoveDay drops a day and its activities. Remaining days keep their labels.
func (s *State) RemoveDay(label string) error {
	i := s.dayIndex(label)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrDayNotFound, label)
	}
	s.days = slices.Delete(s.days, i, i+1)
	return nil
}

func (s *State) AddActivity(label string) (Activity, error) {
	i := s.dayIndex(label)
	if i < 0 {
		return Activity{}, fmt.Errorf("%w: %q", ErrDayNotFound, label)
	}
	a := Activity{ID: s.ids.NewID(ActivityIDPrefix), Time: NewActivityTime, Activity: NewActivityText}
	s.days[i].activities = append(s.days[i].activities, a)
	return a, nil
}

func (s *State) RemoveActivity(label, id string) error {
	d, j, err := s.find(label, id)
	if err != nil {
		return err
	}
	d.activities = slices.Delete(d.activities, j, j+1)
	return nil
}

// EditActivity sets one field verbatim; values are not validated.
func (s *State) EditActivity(label, id, field, value string) error {
	if field != FieldTime && field != FieldActivity {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	d, j, err := s.find(label, id)
	if err != nil {
		return err
	}
	if field == FieldTime {
		d.activities[j].Time = value
	} else {
		d.activities[j].Activity = value
	}
	return nil
}

// Reorder moves fromID to the position currently held by toID, shifting the
// activities in between. Items are moved, not swapped.
func (s *State) Reorder(label, fromID, toID string) error {
	d, from, err := s.find(label, fromID)
	if err != nil {
		return err
	}
	to := slices.IndexFunc(d.activities, func(a Activity) bool { return a.ID == toID })
	if to < 0 {
		return fmt.Errorf("%w: %q in %q", ErrActivityNotFound, toID, label)
	}
	if from == to {
		return nil
	}

	moved := d.activities[from]
	d.activities = slices.Delete(d.activities, from, from+1)
	d.activities = slices.Insert(d.activities, to, moved)
	return nil
}

// Transfer moves a pool activity to the end of a day.
func (s *State) Transfer(activityID, toDay string) error {
	i := s.dayIndex(toDay)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrDayNotFound, toDay)
	}
	j := slices.IndexFunc(s.pool, func(a Activity) bool { return a.ID == activityID })
	if j < 0 {
		return fmt.Errorf("%w: %q in suggestions", ErrActivityNotFound, activityID)
	}

	a := s.pool[j]
	s.pool = slices.Delete(s.pool, j, j+1)
	s.days[i].activities = append(s.days[i].activities, a)
	return nil
}

// SetSuggestions replaces the pool with a new batch.
func (s *State) SetSuggestions(pool []Activity) {
	s.pool = slices.Clone(pool)
}

func (s *State) Days() []string {
	labels := make([]string, len(s.days))
	for i, d := range s.days {
		labels[i] = d.label
	}
	return labels
}

func (s *State) Activities(label string) ([]Activity, error) {
	i := s.dayIndex(label)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrDayNotFound, label)
	}
	return slices.Clone(s.days[i].activities), nil
}

func (s *State) Pool() []Activity {
	return slices.Clone(s.pool)
}

// MarshalJSON writes the days in order in the itinerary response shape.
// Ids and the pool are not part of it.
func (s *State) MarshalJSON() ([]byte, error) {
	var it response_models.Itinerary
	for _, d := range s.days {
		entries := make([]response_models.ScheduledActivity, len(d.activities))
		for j, a := range d.activities {
			entries[j] = response_models.ScheduledActivity{Time: a.Time, Activity: a.Activity}
		}
		value, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		it.Set(d.label, value)
	}
	return json.Marshal(it)
}

func (s *State) putDay(label string, activities []Activity) {
	if i := s.dayIndex(label); i >= 0 {
		s.days[i].activities = activities
		return
	}
	s.days = append(s.days, day{label: label, activities: activities})
}

func (s *State) dayIndex(label string) int {
	return slices.IndexFunc(s.days, func(d day) bool { return d.label == label })
}

func (s *State) find(label, id string) (*day, int, error) {
	i := s.dayIndex(label)
	if i < 0 {
		return nil, -1, fmt.Errorf("%w: %q", ErrDayNotFound, label)
	}
	d := &s.days[i]
	j := slices.IndexFunc(d.activities, func(a Activity) bool { return a.ID == id })
	if j < 0 {
		return nil, -1, fmt.Errorf("%w: %q in %q", ErrActivityNotFound, id, label)
	}
	return d, j, nil
}
