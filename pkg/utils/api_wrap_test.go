package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	msgs := ErrorMessages{BadRequest: "bad", Failure: "failed"}

	tests := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{fmt.Errorf("check: %w", ErrInvalidInput), http.StatusBadRequest, "bad"},
		{ErrTooManyDays, http.StatusBadRequest, "Too many days requested"},
		{ErrRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{fmt.Errorf("x: %w", ErrGenerationFailed), http.StatusInternalServerError, "failed"},
		{fmt.Errorf("x: %w", ErrMalformedResponse), http.StatusInternalServerError, "failed"},
		{fmt.Errorf("something else"), http.StatusInternalServerError, "failed"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set(TraceIDKey, "trace-1")

		HandleServiceError(c, tt.err, msgs)

		if w.Code != tt.wantCode {
			t.Errorf("%v: code = %d, want %d", tt.err, w.Code, tt.wantCode)
		}
		var body ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error != tt.wantMsg || body.TraceID != "trace-1" {
			t.Errorf("%v: body = %+v", tt.err, body)
		}
	}
}

func TestIsUpstreamError(t *testing.T) {
	if !IsUpstreamError(fmt.Errorf("a: %w", ErrMalformedResponse)) {
		t.Error("malformed should be upstream")
	}
	if IsUpstreamError(ErrInvalidInput) {
		t.Error("invalid input is not upstream")
	}
}
