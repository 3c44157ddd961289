package database

import (
	"errors"
	"log"

	"logmed-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin profile when no admin exists yet.
// Nothing is seeded when email or password is empty.
func SeedAdmin(db *sqlx.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("✓ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed...")
		return nil
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM profiles WHERE role = $1", models.RoleAdmin); err != nil {
		return err
	}
	if count > 0 {
		log.Println("✓ Admin profile already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding admin profile...")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p := &models.Profile{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrador",
		Role:     models.RoleAdmin,
	}
	if err := CreateProfile(db, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			log.Printf("⚠️  Profile %s exists without admin role, promoting", email)
			existing, err := GetProfileByEmail(db, email)
			if err != nil {
				return err
			}
			return UpdateProfileRole(db, existing.ID, models.RoleAdmin)
		}
		return err
	}

	log.Printf("  ✓ Created admin: %s", p.Email)
	return nil
}
