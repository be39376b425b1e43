// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/homepro/config"
	"p9e.in/homepro/middleware"
	"p9e.in/homepro/models"
)

type registerReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		http.Error(w, "email, password and full_name are required", http.StatusBadRequest)
		return
	}
	if req.UserType == "" {
		req.UserType = string(models.UserTypeCustomer)
	}
	if !models.ValidUserType(models.UserType(req.UserType)) {
		http.Error(w, "user_type must be customer or contractor", http.StatusBadRequest)
		return
	}
	// hash pw
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	p := models.Profile{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		UserType:     models.UserType(req.UserType),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if req.Phone != "" {
		p.Phone = &req.Phone
	}
	if err := config.DB.Create(&p).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "email already registered", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	token, err := middleware.GenerateToken(p.ID.String(), string(p.UserType), p.FullName, p.Email)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(loginResp{
		Token: token,
		User: userPayload{
			ID:       p.ID,
			FullName: p.FullName,
			Email:    p.Email,
			Phone:    p.Phone,
			UserType: string(p.UserType),
		},
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}
type userPayload struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    *string   `json:"phone,omitempty"`
	UserType string    `json:"user_type"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var p models.Profile
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&p).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !p.IsActive {
		http.Error(w, "account disabled", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := middleware.GenerateToken(p.ID.String(), string(p.UserType), p.FullName, p.Email)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}
	out := loginResp{
		Token: token,
		User: userPayload{
			ID:       p.ID,
			FullName: p.FullName,
			Email:    p.Email,
			Phone:    p.Phone,
			UserType: string(p.UserType),
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetCurrentUser returns the caller's profile. Resolution goes through the
// middleware so a stale row falls back to the claims snapshot instead of 404.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	if middleware.GetClaims(r) == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	p := middleware.GetProfile(r)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userPayload{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
		UserType: string(p.UserType),
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req changePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.NewPassword) < 8 {
		http.Error(w, "new password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	var p models.Profile
	if err := config.DB.First(&p, "id = ?", claims.UserID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		http.Error(w, "current password is incorrect", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	if err := config.DB.Model(&p).Update("password_hash", string(hash)).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "password updated"})
}

type updateProfileReq struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile edits identity fields. user_type is set once at registration
// and is not editable here.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var p models.Profile
	if err := config.DB.First(&p, "id = ?", claims.UserID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil && strings.TrimSpace(*req.FullName) != "" {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&p).Updates(updates).Error; err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userPayload{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
		UserType: string(p.UserType),
	})
}

// GetAllUsers lists active profiles for the admin console.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	userType := r.URL.Query().Get("user_type")

	q := config.DB.Where("is_active = ?", true)
	if userType != "" {
		q = q.Where("user_type = ?", userType)
	}

	var profiles []models.Profile
	if err := q.Order("created_at DESC").Find(&profiles).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]userPayload, len(profiles))
	for i, p := range profiles {
		out[i] = userPayload{
			ID:       p.ID,
			FullName: p.FullName,
			Email:    p.Email,
			Phone:    p.Phone,
			UserType: string(p.UserType),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(out),
		"data":  out,
	})
}
