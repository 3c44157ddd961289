package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"logmed-backend/internal/config"
	"logmed-backend/internal/database"
	"logmed-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "login e-mail of the new profile")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", models.RoleOperator, "'operator' or 'admin'")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *role != models.RoleOperator && *role != models.RoleAdmin {
		log.Fatalf("❌ Invalid role %q, expected 'operator' or 'admin'", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	profile := &models.Profile{
		Email:    *email,
		Password: string(hashed),
		Name:     *name,
		Role:     *role,
	}
	if err := database.CreateProfile(db, profile); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			log.Fatalf("⚠️  Profile already exists: %s", *email)
		}
		log.Fatalf("❌ Failed to create profile %s: %v", *email, err)
	}

	log.Printf("✅ Created %s profile: %s (%s)", profile.Role, profile.Email, profile.ID)
}
