package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jyelen1110/alfies-server/internal/models"
	"github.com/jyelen1110/alfies-server/internal/utils"
	"gorm.io/gorm"
)

// loginRequest is the credential payload
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login verifies credentials and issues an access token
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.UserAuth
	err := r.db.WithContext(req.Context()).
		Where("email = ? AND is_active = ?", body.Email, true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !utils.CheckPasswordHash(body.Password, user.Password)) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := utils.GenerateToken(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	now := time.Now().UTC()
	r.db.Model(&user).Update("last_login", now)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
