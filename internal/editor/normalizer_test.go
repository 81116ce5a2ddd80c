package editor

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var ignoreIDs = cmpopts.IgnoreFields(Activity{}, "ID")

func TestNormalizeItinerary_MixedElements(t *testing.T) {
	raw := `{
		"Day 2": [{"time": "9:00 AM", "activity": "Cathedral"}, "10:30 AM: Coffee at the market", "Sunset"],
		"Day 1": [{"activity": "Check in"}, {"time": "  ", "activity": "Walk"}, "Museum", 42, true, null]
	}`

	state, err := NormalizeItinerary([]byte(raw), &SequenceGenerator{})
	if err != nil {
		t.Fatalf("NormalizeItinerary: %v", err)
	}

	if diff := cmp.Diff([]string{"Day 2", "Day 1"}, state.Days()); diff != "" {
		t.Errorf("day order (-want +got):\n%s", diff)
	}

	day2, _ := state.Activities("Day 2")
	want2 := []Activity{
		{Time: "9:00 AM", Activity: "Cathedral"},
		{Time: "10:30 AM", Activity: "Coffee at the market"},
		{Time: "Sunset", Activity: ""},
	}
	if diff := cmp.Diff(want2, day2, ignoreIDs); diff != "" {
		t.Errorf("Day 2 (-want +got):\n%s", diff)
	}

	day1, _ := state.Activities("Day 1")
	want1 := []Activity{
		{Time: NoTimePlaceholder, Activity: "Check in"},
		{Time: NoTimePlaceholder, Activity: "Walk"},
		{Time: "Museum", Activity: ""},
		{Time: "42", Activity: ""},
		{Time: "true", Activity: ""},
		{Time: NoTimePlaceholder, Activity: ""},
	}
	if diff := cmp.Diff(want1, day1, ignoreIDs); diff != "" {
		t.Errorf("Day 1 (-want +got):\n%s", diff)
	}
}

func TestNormalizeItinerary_UniqueIDs(t *testing.T) {
	raw := `{"Day 1":["a","b","c"],"Day 2":[{"time":"1:00 PM","activity":"d"}]}`
	state, err := NormalizeItinerary([]byte(raw), UUIDGenerator{})
	if err != nil {
		t.Fatal(err)
	}
	state.SetSuggestions(NormalizeSuggestions([]string{"x", "y"}, UUIDGenerator{}))

	seen := map[string]bool{}
	collect := func(acts []Activity) {
		for _, a := range acts {
			if a.ID == "" || seen[a.ID] {
				t.Errorf("id %q empty or repeated", a.ID)
			}
			seen[a.ID] = true
		}
	}
	for _, label := range state.Days() {
		acts, _ := state.Activities(label)
		collect(acts)
	}
	collect(state.Pool())
	if len(seen) != 6 {
		t.Errorf("saw %d ids, want 6", len(seen))
	}
}

func TestNormalizeItinerary_UnexpectedShape(t *testing.T) {
	for _, raw := range []string{
		`["Day 1"]`,
		`"Day 1"`,
		`{"Day 1": "Museum"}`,
		`{"Day 1": {"time": "9:00 AM"}}`,
		`{"Day 1": null}`,
		`not json`,
	} {
		if _, err := NormalizeItinerary([]byte(raw), &SequenceGenerator{}); !errors.Is(err, ErrUnexpectedShape) {
			t.Errorf("%s: err = %v, want ErrUnexpectedShape", raw, err)
		}
	}
}

func TestNormalizeItinerary_Idempotent(t *testing.T) {
	raw := `{"Day 1":["9:00 AM: Breakfast", {"activity":"Hike"}, "Nap"],"Day 2":[]}`
	first, err := NormalizeItinerary([]byte(raw), &SequenceGenerator{})
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NormalizeItinerary(encoded, &SequenceGenerator{})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first.Days(), second.Days()); diff != "" {
		t.Fatalf("days changed (-first +second):\n%s", diff)
	}
	for _, label := range first.Days() {
		a, _ := first.Activities(label)
		b, _ := second.Activities(label)
		if diff := cmp.Diff(a, b, ignoreIDs); diff != "" {
			t.Errorf("%s changed (-first +second):\n%s", label, diff)
		}
	}
}

func TestSplitActivityText(t *testing.T) {
	tests := []struct {
		in, time, activity string
	}{
		{"9:00 AM: Visit museum", "9:00 AM", "Visit museum"},
		{"Lunch: Noodle bar", "Lunch", "Noodle bar"},
		{"  14:30 : Train to Nara ", "14:30", "Train to Nara"},
		{": Nothing before", NoTimePlaceholder, "Nothing before"},
		{"Note: see: details", "Note", "see: details"},
		{"Museum", "Museum", ""},
		{"Evening river cruise", "Evening", "river cruise"},
		{"9:00 Breakfast", "9:00", "Breakfast"},
		{"", NoTimePlaceholder, ""},
		{"10:", "10", ""},
	}

	for _, tt := range tests {
		gotTime, gotActivity := SplitActivityText(tt.in)
		if gotTime != tt.time || gotActivity != tt.activity {
			t.Errorf("SplitActivityText(%q) = (%q, %q), want (%q, %q)", tt.in, gotTime, gotActivity, tt.time, tt.activity)
		}
	}
}

func TestNormalizeSuggestions(t *testing.T) {
	got := NormalizeSuggestions([]string{"Night market", "Temple stay"}, &SequenceGenerator{})
	want := []Activity{
		{ID: "extra-1", Activity: "Night market"},
		{ID: "extra-2", Activity: "Temple stay"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pool (-want +got):\n%s", diff)
	}
	if got := NormalizeSuggestions(nil, &SequenceGenerator{}); len(got) != 0 {
		t.Errorf("empty batch = %v", got)
	}
}
