package main

import (
	"log"

	"nanotasks/internal/config"
	"nanotasks/internal/database"
	"nanotasks/internal/models"

	"gorm.io/gorm"
)

// Standalone migration runner: applies the schema and seeds the admin
// account from ADMIN_EMAIL if it does not exist yet.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.App.AdminEmail == "" {
		log.Println("ADMIN_EMAIL not set, skipping admin seed")
		return
	}

	db := database.GetDB()

	var admin models.User
	err = db.Where("email = ?", cfg.App.AdminEmail).First(&admin).Error
	switch err {
	case nil:
		if admin.Role != models.RoleAdmin {
			if err := db.Model(&admin).Update("role", models.RoleAdmin).Error; err != nil {
				log.Fatalf("Failed to promote admin user: %v", err)
			}
			log.Printf("Promoted %s to admin", cfg.App.AdminEmail)
		} else {
			log.Printf("Admin user %s already exists", cfg.App.AdminEmail)
		}
	case gorm.ErrRecordNotFound:
		admin = models.User{
			Email: cfg.App.AdminEmail,
			Name:  "Administrator",
			Role:  models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
		log.Printf("Seeded admin user %s", cfg.App.AdminEmail)
	default:
		log.Fatalf("Failed to look up admin user: %v", err)
	}
}
