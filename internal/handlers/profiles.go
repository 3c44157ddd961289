package handlers

import (
	"log"
	"net/http"
	"strings"

	"logmed-backend/internal/database"
	"logmed-backend/internal/middleware"
	"logmed-backend/internal/models"
	"logmed-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// UpdateMe changes the caller's name, avatar or password.
func UpdateMe(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetSessionFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.UpdateProfileRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		profile, err := database.GetProfile(db, claims.ProfileID)
		if err != nil {
			respondStoreError(w, err, "Perfil")
			return
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				utils.RespondError(w, http.StatusBadRequest, "O nome não pode ficar em branco")
				return
			}
			profile.Name = name
		}
		if req.AvatarURL != nil {
			profile.AvatarURL = optionalString(*req.AvatarURL)
		}
		if req.Password != nil {
			if len(*req.Password) < minPasswordLength {
				utils.RespondError(w, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
				return
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
				return
			}
			profile.Password = string(hashed)
		}

		if err := database.UpdateProfile(db, profile); err != nil {
			respondStoreError(w, err, "Perfil")
			return
		}
		utils.RespondJSON(w, http.StatusOK, profile.ToProfileResponse())
	}
}

// ListProfiles returns every back-office profile (admin only).
func ListProfiles(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := database.ListProfiles(db)
		if err != nil {
			respondStoreError(w, err, "Perfis")
			return
		}

		resp := make([]models.ProfileResponse, 0, len(profiles))
		for i := range profiles {
			resp = append(resp, profiles[i].ToProfileResponse())
		}
		utils.RespondJSON(w, http.StatusOK, resp)
	}
}

// UpdateProfileRole promotes or demotes a profile (admin only). The change
// applies to the profile's open sessions on their next request.
func UpdateProfileRole(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateRoleRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Role != models.RoleAdmin && req.Role != models.RoleOperator {
			utils.RespondError(w, http.StatusBadRequest, "Role must be 'admin' or 'operator'")
			return
		}

		if claims, ok := middleware.GetSessionFromContext(r); ok && claims.ProfileID == id && req.Role != models.RoleAdmin {
			utils.RespondError(w, http.StatusBadRequest, "Você não pode remover o seu próprio acesso de administrador")
			return
		}

		if err := database.UpdateProfileRole(db, id, req.Role); err != nil {
			respondStoreError(w, err, "Perfil")
			return
		}

		log.Printf("🔑 Profile %s role set to %s", id, req.Role)
		utils.RespondMessage(w, http.StatusOK, "Permissão atualizada")
	}
}

type RegisterFCMTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

// RegisterFCMToken stores the caller's push token.
func RegisterFCMToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetSessionFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req RegisterFCMTokenRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Token == "" {
			utils.RespondError(w, http.StatusBadRequest, "Token is required")
			return
		}
		switch req.DeviceType {
		case "":
			req.DeviceType = "web"
		case "web", "ios", "android":
		default:
			utils.RespondError(w, http.StatusBadRequest, "device_type must be 'web', 'ios' or 'android'")
			return
		}

		if err := database.RegisterFCMToken(db, claims.ProfileID, req.Token, req.DeviceType); err != nil {
			respondStoreError(w, err, "Token")
			return
		}

		log.Printf("📱 FCM token registered for %s (%s)", claims.Email, req.DeviceType)
		utils.RespondMessage(w, http.StatusOK, "Token registrado")
	}
}
