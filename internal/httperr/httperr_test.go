package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInvalidSlot, http.StatusBadRequest},
		{KindInvalidAvailability, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.kind))
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("admit: %w", Conflict("time_conflict", "taken"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   Kind
		wantCode   string
	}{
		{"conflict", Conflict("time_conflict", "Slot already booked."), http.StatusConflict, KindConflict, "time_conflict"},
		{"invalid slot", InvalidSlot("outside_working_hours", "Outside."), http.StatusBadRequest, KindInvalidSlot, "outside_working_hours"},
		{"not found", ErrNotFound("service_not_found", "Missing."), http.StatusNotFound, KindNotFound, "service_not_found"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, KindInternal, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Respond(c, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)

			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
