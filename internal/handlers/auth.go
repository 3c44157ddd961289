package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"logmed-backend/internal/database"
	"logmed-backend/internal/middleware"
	"logmed-backend/internal/models"
	"logmed-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK        bool                    `json:"ok"`
	Token     string                  `json:"token,omitempty"`
	ExpiresAt int64                   `json:"expires_at,omitempty"`
	Profile   *models.ProfileResponse `json:"profile,omitempty"`
}

// Login checks the credentials, opens a session and returns a token bound to it.
func Login(db *sqlx.DB, secret string, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		log.Printf("🔐 Login attempt for: %s", req.Email)

		profile, err := database.GetProfileByEmail(db, req.Email)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				log.Printf("❌ Profile lookup failed: %v", err)
			} else {
				log.Printf("❌ Profile not found: %s", req.Email)
			}
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		respondSession(w, db, secret, ttl, profile, http.StatusOK)
	}
}

// SignUp creates an operator profile and signs it in.
func SignUp(db *sqlx.DB, secret string, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignUpRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Name = strings.TrimSpace(req.Name)
		if req.Email == "" || req.Name == "" || req.Password == "" {
			utils.RespondError(w, http.StatusBadRequest, "Nome, e-mail e senha são obrigatórios")
			return
		}
		if len(req.Password) < minPasswordLength {
			utils.RespondError(w, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Failed to hash password: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		profile := &models.Profile{
			Email:    req.Email,
			Password: string(hashed),
			Name:     req.Name,
			Role:     models.RoleOperator,
		}
		if err := database.CreateProfile(db, profile); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				utils.RespondError(w, http.StatusConflict, "Já existe uma conta com este e-mail")
				return
			}
			respondStoreError(w, err, "Perfil")
			return
		}

		log.Printf("✅ Profile created: %s", profile.Email)
		respondSession(w, db, secret, ttl, profile, http.StatusCreated)
	}
}

func respondSession(w http.ResponseWriter, db *sqlx.DB, secret string, ttl time.Duration, profile *models.Profile, status int) {
	session, err := database.CreateSession(db, profile.ID, ttl)
	if err != nil {
		log.Printf("❌ %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, err := middleware.IssueToken(secret, session, profile)
	if err != nil {
		log.Printf("❌ Failed to sign token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	resp := profile.ToProfileResponse()
	log.Printf("✅ Session opened: %s (%s)", profile.Email, profile.Role)
	utils.RespondJSON(w, status, LoginResponse{
		OK:        true,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Profile:   &resp,
	})
}

// Logout revokes the caller's session; its token stops working immediately.
func Logout(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetSessionFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := database.RevokeSession(db, claims.SessionID); err != nil && !errors.Is(err, database.ErrNotFound) {
			respondStoreError(w, err, "Sessão")
			return
		}

		log.Printf("👋 Session closed: %s", claims.Email)
		utils.RespondMessage(w, http.StatusOK, "Sessão encerrada")
	}
}

// GetSession returns the caller's current profile.
func GetSession(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetSessionFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		profile, err := database.GetProfile(db, claims.ProfileID)
		if err != nil {
			respondStoreError(w, err, "Perfil")
			return
		}
		utils.RespondJSON(w, http.StatusOK, profile.ToProfileResponse())
	}
}
