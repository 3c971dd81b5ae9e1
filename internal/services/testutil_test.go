package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
)

// setupTestDB opens a fresh in-memory sqlite database. :memory: is unique
// per connection unless using cache=shared, and gorm pools connections, so
// each test gets its own named shared database instead.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Submission{},
		&models.Withdrawal{},
		&models.Payment{},
		&models.CoinTransaction{},
		&models.Notification{},
		&models.PlatformStats{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role, coin int64) *models.User {
	t.Helper()

	user := &models.User{Email: email, Name: email, Role: role, Coin: coin}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func principalFor(user *models.User) auth.Principal {
	return auth.Principal{Email: user.Email, Role: user.Role}
}

func userBalance(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("failed to load user %s: %v", email, err)
	}
	return user.Coin
}
