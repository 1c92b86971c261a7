package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mychesstour/chesstour-api/middleware"
	"github.com/mychesstour/chesstour-api/services"
	"github.com/mychesstour/chesstour-api/utils"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateCredentials собирает все отсутствующие поля в одно сообщение,
// а затем проверяет формат email.
func validateCredentials(input credentialsInput) error {
	var missing []string
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if !utils.IsValidEmail(input.Email) {
		return errors.New("Invalid email address.")
	}
	return nil
}

// SignupHandler обрабатывает POST /api/v1/auth/signup.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateCredentials(input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input.Email, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "Signup successful",
		"user_id": user.ID,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LoginHandler обрабатывает POST /api/v1/auth/login и выдаёт JWT.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateCredentials(input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	response := jsonResponse{
		"message": "Login successful",
		"user_id": user.ID,
		"token":   tokenString,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LogoutHandler обрабатывает POST /api/v1/auth/logout. Токены stateless,
// серверу отзывать нечего — клиент просто забывает токен.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{"message": "Logout successful"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MeHandler обрабатывает GET /api/v1/auth/me (за middleware.Authenticate).
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	email, _ := middleware.GetEmailFromContext(r.Context())

	response := jsonResponse{
		"user_id": userID,
		"email":   email,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
