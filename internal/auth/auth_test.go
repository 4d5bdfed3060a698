package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarukBas12/servistakip-sub000/internal/auth"
)

const secret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := auth.GenerateToken(secret, userID, "depo@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := auth.ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "depo@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(secret, uuid.New(), "a@b.c", "user", time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.GenerateToken(secret, uuid.New(), "a@b.c", "user", -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(secret, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("sifre123")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "sifre123"))
	assert.False(t, auth.CheckPassword(hash, "sifre124"))
}

func TestMiddleware(t *testing.T) {
	userID := uuid.New()

	token, err := auth.GenerateToken(secret, userID, "depo@example.com", "admin", time.Hour)
	require.NoError(t, err)

	handler := auth.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userID, auth.UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	type testCase struct {
		name       string
		authHeader string
		wantStatus int
	}

	tests := []testCase{
		{name: "ValidToken", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "MissingHeader", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "NotBearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "GarbageToken", authHeader: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
