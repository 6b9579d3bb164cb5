package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit_backend/internal/domain"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, StatusFor(domain.KindValidation))
	assert.Equal(t, http.StatusBadRequest, StatusFor(domain.KindConstraint))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(domain.KindAuth))
	assert.Equal(t, http.StatusNotFound, StatusFor(domain.KindNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(domain.KindConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(domain.KindUnexpected))
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"classified", domain.NotFound("Habit not found"), http.StatusNotFound, "Habit not found"},
		{"unexpected hides detail", errors.New("pq: connection reset"), http.StatusInternalServerError, "Failed to fetch habits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(c, "list habits", tt.err, "Failed to fetch habits")

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators(), "second registration is a no-op")

	type req struct {
		Color string `binding:"omitempty,hexcolor6"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(req{Color: "#6B7280"}))
	assert.NoError(t, binding.Validator.ValidateStruct(req{}))
	assert.Error(t, binding.Validator.ValidateStruct(req{Color: "#6B72"}))
	assert.Error(t, binding.Validator.ValidateStruct(req{Color: "6B7280A"}))
}

type bindTarget struct {
	Name        string   `json:"name"        binding:"required,max=5"`
	Frequency   string   `json:"frequency"   binding:"omitempty,oneof=daily weekly"`
	TargetCount *int     `json:"targetCount" binding:"omitempty,min=1"`
	TagIDs      []string `json:"tagIds"      binding:"omitempty,dive,uuid"`
}

type bindQuery struct {
	Limit int `form:"limit"`
}

func TestWriteBindError_HidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	tests := []struct {
		name      string
		target    string
		body      string
		wantError string
	}{
		{"missing field", "/", `{}`, "Invalid request: name is required"},
		{"too long", "/", `{"name":"abcdef"}`, "Invalid request: name must be at most 5 characters"},
		{"oneof", "/", `{"name":"a","frequency":"yearly"}`, "Invalid request: frequency must be one of: daily weekly"},
		{"zero pointer", "/", `{"name":"a","targetCount":0}`, "Invalid request: targetCount must be at least 1"},
		{"dive", "/", `{"name":"a","tagIds":["nope"]}`, "Invalid request: tagIds[0] must be a valid UUID"},
		{"wrong type", "/", `{"name":"a","targetCount":"x"}`, "Invalid request: targetCount has the wrong type"},
		{"malformed json", "/", `{"name":`, "Invalid request"},
		{"query parse", "/?limit=abc", "", "Invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var err error
			if tt.body == "" {
				err = c.ShouldBindQuery(&bindQuery{})
			} else {
				err = c.ShouldBindJSON(&bindTarget{})
			}
			require.Error(t, err)

			WriteBindError(c, "test", err)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
			for _, leak := range []string{"Key: '", "Go struct field", "strconv", "bindTarget"} {
				assert.NotContains(t, w.Body.String(), leak)
			}
		})
	}
}
