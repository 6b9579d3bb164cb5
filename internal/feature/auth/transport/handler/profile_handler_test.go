package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit_backend/internal/domain/entity"
	"habit_backend/internal/feature/auth/usecase"
	jwtmw "habit_backend/internal/platform/jwt"
)

type mockProfileUsecase struct {
	GetFunc    func(ctx context.Context, userID string) (*entity.User, error)
	UpdateFunc func(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error)
	DeleteFunc func(ctx context.Context, userID string) error
}

var _ ProfileUsecase = (*mockProfileUsecase)(nil)

func (m *mockProfileUsecase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return m.GetFunc(ctx, userID)
}

func (m *mockProfileUsecase) UpdateProfile(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error) {
	return m.UpdateFunc(ctx, userID, patch)
}

func (m *mockProfileUsecase) DeleteAccount(ctx context.Context, userID string) error {
	return m.DeleteFunc(ctx, userID)
}

func profileRouter(uc ProfileUsecase, authenticated bool) *gin.Engine {
	h := NewProfileHandler(uc)
	router := gin.New()
	g := router.Group("/users/me")
	if authenticated {
		g.Use(func(c *gin.Context) { c.Set(jwtmw.ContextUserID, testUser.ID) })
	}
	g.GET("", h.Get)
	g.PUT("", h.Update)
	g.DELETE("", h.Delete)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProfileHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockProfileUsecase{GetFunc: func(ctx context.Context, userID string) (*entity.User, error) {
			assert.Equal(t, testUser.ID, userID)
			return testUser, nil
		}}

		w := doRequest(profileRouter(uc, true), http.MethodGet, "/users/me", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		user := decode(t, w)["user"].(map[string]any)
		assert.Equal(t, "test@example.com", user["email"])
	})

	t.Run("user gone", func(t *testing.T) {
		uc := &mockProfileUsecase{GetFunc: func(ctx context.Context, userID string) (*entity.User, error) {
			return nil, usecase.ErrUserNotFound
		}}

		w := doRequest(profileRouter(uc, true), http.MethodGet, "/users/me", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, gin.H{"error": "User not found"}, decode(t, w))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := doRequest(profileRouter(&mockProfileUsecase{}, false), http.MethodGet, "/users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfileHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		updateFunc     func(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success: partial update",
			body: gin.H{"firstName": "Alicia"},
			updateFunc: func(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error) {
				require.NotNil(t, patch.FirstName)
				assert.Equal(t, "Alicia", *patch.FirstName)
				assert.Nil(t, patch.Username)
				assert.Nil(t, patch.LastName)
				return testUser, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: username too short",
			body:           gin.H{"username": "ab"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request: username must be at least 3 characters",
		},
		{
			name: "failure: username taken",
			body: gin.H{"username": "bob"},
			updateFunc: func(ctx context.Context, userID string, patch entity.UserPatch) (*entity.User, error) {
				return nil, usecase.ErrUsernameTaken
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "Username already taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockProfileUsecase{UpdateFunc: tt.updateFunc}

			w := doRequest(profileRouter(uc, true), http.MethodPut, "/users/me", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			if tt.expectedError != "" {
				assert.Contains(t, body["error"], tt.expectedError)
				return
			}
			assert.Equal(t, "Profile updated successfully", body["message"])
		})
	}
}

func TestProfileHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockProfileUsecase{DeleteFunc: func(ctx context.Context, userID string) error { return nil }}

		w := doRequest(profileRouter(uc, true), http.MethodDelete, "/users/me", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, gin.H{"message": "Account deleted successfully"}, decode(t, w))
	})

	t.Run("unexpected error", func(t *testing.T) {
		uc := &mockProfileUsecase{DeleteFunc: func(ctx context.Context, userID string) error { return errors.New("boom") }}

		w := doRequest(profileRouter(uc, true), http.MethodDelete, "/users/me", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, gin.H{"error": "Failed to delete account"}, decode(t, w))
	})
}
