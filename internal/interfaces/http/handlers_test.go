package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lexserve/backoffice/internal/application/service"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

func TestHandlers_ServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handlers{logger: nopLogger{}}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", service.NotFoundError("service request", 1), http.StatusNotFound},
		{"missing field", service.MissingFieldError("reason"), http.StatusBadRequest},
		{"invalid transition", service.InvalidTransitionError("approved", "approve"), http.StatusConflict},
		{"duplicate payment", service.DuplicatePaymentError(1, 2), http.StatusConflict},
		{"unkinded error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.serviceError(c, "test failure", tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandlers_ServiceErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handlers{logger: nopLogger{}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.serviceError(c, "test failure", errors.New("sql: driver exploded"))

	assert.NotContains(t, w.Body.String(), "driver exploded")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestActorFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("headers present", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		c.Request.Header.Set("X-Actor-ID", "ops-7")
		c.Request.Header.Set("X-Actor-Role", "reviewer")

		actor := actorFrom(c)
		assert.Equal(t, "ops-7", actor.ID)
		assert.Equal(t, "reviewer", actor.Role)
	})

	t.Run("headers absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		actor := actorFrom(c)
		assert.Equal(t, "system", actor.ID)
		assert.Equal(t, "admin", actor.Role)
	})
}
