package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"tripcraft/internal/config"
	"tripcraft/internal/repositories"
	"tripcraft/internal/services"
	"tripcraft/pkg/utils"
)

type stubCompletion struct {
	response string
	err      error
	calls    int
}

func (s *stubCompletion) Complete(context.Context, string) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubCompletion) Provider() string { return "stub" }
func (s *stubCompletion) Model() string    { return "stub-model" }

func newTestRouter(t *testing.T, completion *stubCompletion) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	svc := services.NewItineraryService(
		completion,
		services.NewResponseValidator(false),
		repositories.NewGenerationRepository(nil),
		services.ItineraryServiceOptions{MaxDays: 30},
		logger,
	)
	itinerary := NewItineraryController(svc)
	health := NewHealthController(&config.Config{FrontendURL: "http://localhost:5173"}, nil, svc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(utils.TraceIDKey, "test-trace")
		c.Next()
	})
	r.GET("/", health.Root)
	r.GET("/ping", health.Ping)
	r.GET("/health", health.Health)
	api := r.Group("/api")
	api.POST("/generate-itinerary", itinerary.GenerateItineraryHandler)
	api.POST("/generate-suggestions", itinerary.GenerateSuggestionsHandler)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestGenerateItineraryHandler_Success(t *testing.T) {
	model := `{"Day 1":[{"time":"9:00 AM","activity":"Sensoji"}],"Day 2":[{"time":"10:00 AM","activity":"Ueno Park"}],"Day 3":[]}`
	completion := &stubCompletion{response: "```json\n" + model + "\n```"}
	r := newTestRouter(t, completion)

	w := post(r, "/api/generate-itinerary", `{"destination":"Tokyo","days":3,"interests":"history"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if w.Body.String() != model {
		t.Errorf("body = %s\nwant  %s", w.Body, model)
	}
	if completion.calls != 1 {
		t.Errorf("calls = %d, want 1", completion.calls)
	}
}

func TestGenerateItineraryHandler_DaysAsString(t *testing.T) {
	completion := &stubCompletion{response: `{"Day 1":[],"Day 2":[]}`}
	r := newTestRouter(t, completion)

	w := post(r, "/api/generate-itinerary", `{"destination":"Tokyo","days":"2","interests":"food"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
}

func TestGenerateItineraryHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"missing destination", `{"days":2,"interests":"food"}`, "Please provide destination, days, and interests"},
		{"blank destination", `{"destination":"   ","days":2,"interests":"food"}`, "Please provide destination, days, and interests"},
		{"missing days", `{"destination":"Tokyo","interests":"food"}`, "Please provide destination, days, and interests"},
		{"zero days", `{"destination":"Tokyo","days":0,"interests":"food"}`, "Please provide destination, days, and interests"},
		{"non-numeric days", `{"destination":"Tokyo","days":"three","interests":"food"}`, "Please provide destination, days, and interests"},
		{"missing interests", `{"destination":"Tokyo","days":2}`, "Please provide destination, days, and interests"},
		{"not json", `destination=Tokyo`, "Please provide destination, days, and interests"},
		{"too many days", `{"destination":"Tokyo","days":31,"interests":"food"}`, "Too many days requested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completion := &stubCompletion{response: `{}`}
			r := newTestRouter(t, completion)

			w := post(r, "/api/generate-itinerary", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			want := utils.ErrorResponse{Error: tt.want, TraceID: "test-trace"}
			if diff := cmp.Diff(want, decodeError(t, w)); diff != "" {
				t.Errorf("body (-want +got):\n%s", diff)
			}
			if completion.calls != 0 {
				t.Errorf("completion called %d times for an invalid request", completion.calls)
			}
		})
	}
}

func TestGenerateItineraryHandler_UpstreamFailures(t *testing.T) {
	for name, completion := range map[string]*stubCompletion{
		"prose wrapped": {response: `Sure! {"Day 1": []}`},
		"not an object": {response: `["Day 1"]`},
		"service error": {err: utils.ErrGenerationFailed},
	} {
		t.Run(name, func(t *testing.T) {
			r := newTestRouter(t, completion)

			w := post(r, "/api/generate-itinerary", `{"destination":"Tokyo","days":1,"interests":"food"}`)
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", w.Code)
			}
			got := decodeError(t, w)
			if got.Error != "Failed to generate itinerary" {
				t.Errorf("error = %q", got.Error)
			}
			if strings.Contains(w.Body.String(), "Sure!") {
				t.Error("raw model output leaked into the response")
			}
		})
	}
}

func TestGenerateSuggestionsHandler(t *testing.T) {
	completion := &stubCompletion{response: `["Night market","Hot springs"]`}
	r := newTestRouter(t, completion)

	w := post(r, "/api/generate-suggestions", `{"destination":"Taipei","interests":"food"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if w.Body.String() != `{"suggestions":["Night market","Hot springs"]}` {
		t.Errorf("body = %s", w.Body)
	}
}

func TestGenerateSuggestionsHandler_Errors(t *testing.T) {
	tests := []struct {
		name, body, response string
		code                 int
		want                 string
		calls                int
	}{
		{"missing interests", `{"destination":"Taipei"}`, `[]`, http.StatusBadRequest, "Please provide destination and interests", 0},
		{"missing destination", `{"interests":"food"}`, `[]`, http.StatusBadRequest, "Please provide destination and interests", 0},
		{"object instead of array", `{"destination":"Taipei","interests":"food"}`, `{"suggestions":["a"]}`, http.StatusInternalServerError, "Failed to generate suggestions", 1},
		{"numbers", `{"destination":"Taipei","interests":"food"}`, `[1,2,3]`, http.StatusInternalServerError, "Failed to generate suggestions", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completion := &stubCompletion{response: tt.response}
			r := newTestRouter(t, completion)

			w := post(r, "/api/generate-suggestions", tt.body)
			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			if got := decodeError(t, w).Error; got != tt.want {
				t.Errorf("error = %q, want %q", got, tt.want)
			}
			if completion.calls != tt.calls {
				t.Errorf("calls = %d, want %d", completion.calls, tt.calls)
			}
		})
	}
}
