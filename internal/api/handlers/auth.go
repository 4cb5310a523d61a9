package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/caption-stream/backend/internal/api/middleware"
	"github.com/caption-stream/backend/internal/auth"
)

type AuthHandler struct {
	jwt          *auth.JWTService
	adminUser    string
	adminPwdHash string
}

// NewAuthHandler authenticates against the single configured admin user;
// there is no user store.
func NewAuthHandler(jwt *auth.JWTService, adminUser, adminPwdHash string) *AuthHandler {
	return &AuthHandler{jwt: jwt, adminUser: adminUser, adminPwdHash: adminPwdHash}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username != h.adminUser || !auth.CheckPassword(req.Password, h.adminPwdHash) {
		jsonError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.jwt.GenerateToken(req.Username, "admin")
	if err != nil {
		jsonError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := loginResponse{Token: token}
	resp.User.Username = req.Username
	resp.User.Role = "admin"

	jsonResponse(w, resp, http.StatusOK)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"username": claims.Username,
		"role":     claims.Role,
	}, http.StatusOK)
}

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
