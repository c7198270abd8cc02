package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskKeeper/internal/auth"
	"taskKeeper/internal/middleware"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "taskKeeper", time.Hour)
	userID := uuid.New()

	token, err := tokens.Generate(userID)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := middleware.GetUserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, gotID)
		w.WriteHeader(http.StatusOK)
	})

	protected := middleware.Auth(tokens)(next)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "валидный токен пропускается",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "без токена - 401",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "мусор вместо токена - 403",
			header:         "Bearer not-a-token",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "токен с чужим секретом - 403",
			header:         "Bearer " + foreignToken(t, userID),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func foreignToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	other := auth.NewTokenManager("other-secret", "taskKeeper", time.Hour)
	token, err := other.Generate(userID)
	require.NoError(t, err)
	return token
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	_, ok := middleware.GetUserID(req.Context())
	assert.False(t, ok)
}
