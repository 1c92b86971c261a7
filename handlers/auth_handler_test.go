package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/services"
)

const testJWTSecret = "test-secret"

type stubAuthService struct {
	registerErr error
	loginErr    error
	user        *models.User
}

func (s *stubAuthService) Register(_ context.Context, email, _ string) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &models.User{ID: "u-1", Email: email}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*models.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &models.User{ID: "u-1", Email: email}, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignupHandlerValidation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testJWTSecret)

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"both fields missing", `{}`, "Missing required fields: email, password"},
		{"password missing", `{"email":"a@b.com"}`, "Missing required fields: password"},
		{"email missing", `{"password":"secret123"}`, "Missing required fields: email"},
		{"malformed email", `{"email":"not-an-email","password":"secret123"}`, "Invalid email address."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.SignupHandler, "/api/v1/auth/signup", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, decodeError(t, rec))
		})
	}
}

func TestSignupHandlerSuccess(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testJWTSecret)

	rec := postJSON(t, h.SignupHandler, "/api/v1/auth/signup", `{"email":"a@b.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Signup successful", body["message"])
	assert.Equal(t, "u-1", body["user_id"])
}

func TestSignupHandlerEmailTaken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: services.ErrAuthEmailTaken}, testJWTSecret)

	rec := postJSON(t, h.SignupHandler, "/api/v1/auth/signup", `{"email":"a@b.com","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandlerIssuesVerifiableToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testJWTSecret)

	rec := postJSON(t, h.LoginHandler, "/api/v1/auth/login", `{"email":"a@b.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body["message"])
	require.NotEmpty(t, body["token"])

	// Токен подписан нашим секретом и несёт user_id/email.
	parsed, err := jwt.Parse(body["token"], func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "a@b.com", claims["email"])
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: services.ErrAuthInvalidCredentials}, testJWTSecret)

	rec := postJSON(t, h.LoginHandler, "/api/v1/auth/login", `{"email":"a@b.com","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, testJWTSecret)

	rec := postJSON(t, h.LogoutHandler, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Logout successful", body["message"])
}
