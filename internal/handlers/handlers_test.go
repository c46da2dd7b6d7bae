package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/futsalhub/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("booking x: %w", models.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("time slot already booked: %w", models.ErrConflict), http.StatusConflict},
		{"forbidden", fmt.Errorf("owner only: %w", models.ErrForbidden), http.StatusForbidden},
		{"validation", fmt.Errorf("bad interval: %w", models.ErrValidation), http.StatusBadRequest},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRespondError_InternalHidesDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("mongo: topology closed"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "topology")
	assert.Contains(t, w.Body.String(), "Server error")
}

func TestParseObjectID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, ok := parseObjectID(c, "not-an-id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	id, ok := parseObjectID(c, "64f1c0ffee0000000000abcd")
	assert.True(t, ok)
	assert.Equal(t, "64f1c0ffee0000000000abcd", id.Hex())
}
