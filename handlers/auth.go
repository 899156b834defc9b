package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/services"
)

type AuthHandler struct {
	UserRepo      repository.UserRepositoryInterface
	Carts         *services.CartService
	JWTSecret     []byte
	JWTExpiration time.Duration
}

func NewAuthHandler(userRepo repository.UserRepositoryInterface, carts *services.CartService, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		UserRepo:      userRepo,
		Carts:         carts,
		JWTSecret:     []byte(jwtSecret),
		JWTExpiration: jwtExpiration,
	}
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// GuestID, when present, identifies a guest cart to merge into the
	// user's cart after a successful login.
	GuestID *string `json:"guest_id,omitempty"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	user, err := h.UserRepo.GetByUsername(payload.Username)
	if err != nil {
		WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	if !user.CheckPassword(payload.Password) {
		WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	expirationTime := time.Now().Add(h.JWTExpiration)
	claims := &jwt.RegisteredClaims{
		Subject:   fmt.Sprint(user.ID),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "fotospatagonia-backend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTSecret)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "token_generation_failed", "failed to generate token")
		return
	}

	if payload.GuestID != nil && *payload.GuestID != "" && h.Carts != nil {
		// a failed merge must not block the login itself
		if err := h.Carts.TransferGuestCart(*payload.GuestID, user.ID); err != nil {
			log.Printf("Error transferring guest cart %s to user %d: %v", *payload.GuestID, user.ID, err)
		}
	}

	userForResponse := *user
	userForResponse.PasswordHash = ""

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     tokenString,
		User:      userForResponse,
		ExpiresAt: expirationTime,
	})
}

type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user account with no permissions. An administrator
// grants permission keys afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request payload")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "username and password are required")
		return
	}
	if len(payload.Password) < 8 {
		WriteAPIError(w, http.StatusBadRequest, "weak_password", "password must be at least 8 characters")
		return
	}

	if _, err := h.UserRepo.GetByUsername(payload.Username); err == nil {
		WriteAPIError(w, http.StatusConflict, "username_taken", "username already exists")
		return
	}

	newUser := &models.User{Username: payload.Username}
	if err := newUser.SetPassword(payload.Password); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "registration_failed", "failed to process password")
		return
	}

	if err := h.UserRepo.Create(newUser); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "registration_failed", "failed to create user")
		return
	}

	newUser.PasswordHash = ""
	writeJSON(w, http.StatusCreated, newUser)
}

// Me returns the authenticated user attached by AuthMiddleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok || user == nil {
		WriteAPIError(w, http.StatusUnauthorized, "unauthenticated", "no authenticated user")
		return
	}
	userForResponse := *user
	userForResponse.PasswordHash = ""
	writeJSON(w, http.StatusOK, userForResponse)
}
