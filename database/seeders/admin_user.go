package seeders

import (
	"log"
	"os"

	"fleetflow/constants"
	"fleetflow/models/user"
	"fleetflow/services/authtoken"

	"gorm.io/gorm"
)

// SeedAdminUser ensures at least one admin account exists so the API is
// reachable on a fresh database. Credentials come from the environment and
// fall back to development defaults.
func SeedAdminUser(db *gorm.DB) {
	log.Printf("🔍 Checking admin user presence...")

	var count int64
	if err := db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to count admin users: %v", err)
		return
	}

	if count > 0 {
		log.Printf("✅ Admin user already present. No seeding needed.")
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "fleetflow-admin"
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@fleetflow.local"
	}

	hash, err := authtoken.HashPassword(password)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	admin := user.User{
		Username:     username,
		Email:        &email,
		FullName:     "Fleet Administrator",
		Role:         user.RoleAdmin,
		PasswordHash: hash,
		Permissions:  user.StringSlice(constants.PermissionsForRole(string(user.RoleAdmin))),
		Active:       true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ Failed to seed admin user: %v", err)
		return
	}

	log.Printf("✅ Seeded admin user %q", username)
}
