package database

import (
	"fmt"
	"strings"
	"time"

	"logmed-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const profileColumns = `id, email, password, name, role, avatar_url, created_at, updated_at`

func ListProfiles(db *sqlx.DB) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := db.Select(&profiles, `SELECT `+profileColumns+` FROM profiles ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func GetProfile(db *sqlx.DB, id string) (*models.Profile, error) {
	var p models.Profile
	if err := db.Get(&p, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "profile")
	}
	return &p, nil
}

// GetProfileByEmail matches the email case-insensitively.
func GetProfileByEmail(db *sqlx.DB, email string) (*models.Profile, error) {
	var p models.Profile
	err := db.Get(&p, `SELECT `+profileColumns+` FROM profiles WHERE LOWER(email) = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, notFound(err, "profile")
	}
	return &p, nil
}

// CreateProfile inserts a profile. Password must already be hashed.
func CreateProfile(db *sqlx.DB, p *models.Profile) error {
	now := time.Now().Unix()
	p.ID = uuid.New().String()
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Role == "" {
		p.Role = models.RoleOperator
	}

	_, err := db.NamedExec(`
		INSERT INTO profiles (id, email, password, name, role, avatar_url, created_at, updated_at)
		VALUES (:id, :email, :password, :name, :role, :avatar_url, :created_at, :updated_at)
	`, p)
	if err != nil {
		return writeErr(err, "create profile")
	}
	return nil
}

func UpdateProfile(db *sqlx.DB, p *models.Profile) error {
	p.UpdatedAt = time.Now().Unix()
	res, err := db.NamedExec(`
		UPDATE profiles
		SET name = :name, avatar_url = :avatar_url, password = :password, updated_at = :updated_at
		WHERE id = :id
	`, p)
	if err != nil {
		return writeErr(err, "update profile")
	}
	return affected(res, "update profile")
}

func UpdateProfileRole(db *sqlx.DB, id, role string) error {
	res, err := db.Exec(`UPDATE profiles SET role = $1, updated_at = $2 WHERE id = $3`,
		role, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update profile role: %w", err)
	}
	return affected(res, "update profile role")
}

// CreateSession opens a session for the profile that expires after ttl.
func CreateSession(db *sqlx.DB, profileID string, ttl time.Duration) (*models.Session, error) {
	now := time.Now()
	s := &models.Session{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	_, err := db.NamedExec(`
		INSERT INTO sessions (id, profile_id, created_at, expires_at)
		VALUES (:id, :profile_id, :created_at, :expires_at)
	`, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

func GetSession(db *sqlx.DB, id string) (*models.Session, error) {
	var s models.Session
	err := db.Get(&s, `SELECT id, profile_id, created_at, expires_at, revoked_at FROM sessions WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err, "session")
	}
	return &s, nil
}

func RevokeSession(db *sqlx.DB, id string) error {
	res, err := db.Exec(`UPDATE sessions SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`,
		time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return affected(res, "revoke session")
}

// DeleteStaleSessions removes sessions that expired or were revoked before now.
func DeleteStaleSessions(db *sqlx.DB, now time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= $1 OR revoked_at IS NOT NULL`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// RegisterFCMToken stores the device token, moving it to profileID if another
// profile registered it before.
func RegisterFCMToken(db *sqlx.DB, profileID, token, deviceType string) error {
	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO fcm_tokens (profile_id, token, device_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (token) DO UPDATE SET
			profile_id = EXCLUDED.profile_id,
			device_type = EXCLUDED.device_type,
			updated_at = EXCLUDED.updated_at
	`, profileID, token, deviceType, now)
	if err != nil {
		return fmt.Errorf("failed to register fcm token: %w", err)
	}
	return nil
}

// LatestFCMToken returns the most recently registered token of a profile.
func LatestFCMToken(db *sqlx.DB, profileID string) (*models.FCMToken, error) {
	var t models.FCMToken
	err := db.Get(&t, `
		SELECT id, profile_id, token, device_type, created_at, updated_at
		FROM fcm_tokens WHERE profile_id = $1
		ORDER BY updated_at DESC LIMIT 1
	`, profileID)
	if err != nil {
		return nil, notFound(err, "fcm token")
	}
	return &t, nil
}
