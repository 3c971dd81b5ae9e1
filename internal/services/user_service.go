package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
)

// UserService handles account creation and admin user management.
type UserService struct {
	db          *gorm.DB
	workerBonus int64
	buyerBonus  int64
}

// NewUserService creates a new UserService. workerBonus and buyerBonus are
// the signup coin grants per role.
func NewUserService(db *gorm.DB, workerBonus, buyerBonus int64) *UserService {
	return &UserService{db: db, workerBonus: workerBonus, buyerBonus: buyerBonus}
}

// Upsert finds or creates a user by email. Re-posting an existing email is
// a no-op, so the first-sign-in hook can fire on every login. New workers
// and buyers start with their signup coin grant.
func (s *UserService) Upsert(ctx context.Context, req *models.RegisterRequest) (*models.User, bool, error) {
	role := req.Role
	if role == "" {
		role = models.RoleWorker
	}
	if !models.ValidRole(role) || role == models.RoleAdmin {
		return nil, false, ErrInvalidInput
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	user = models.User{
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Role:      role,
	}
	switch role {
	case models.RoleWorker:
		user.Coin = s.workerBonus
	case models.RoleBuyer:
		user.Coin = s.buyerBonus
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Two concurrent first sign-ins race on the unique email index; the
		// loser reads the winner's row.
		if isDuplicateKey(err) {
			var existing models.User
			if ferr := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; ferr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, true, nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole changes a user's role. Admin only, enforced here as well as at
// the route gate.
func (s *UserService) UpdateRole(ctx context.Context, principal auth.Principal, userID uint, role models.Role) (*models.User, error) {
	if principal.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidInput
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user. Admin only.
func (s *UserService) Delete(ctx context.Context, principal auth.Principal, userID uint) error {
	if principal.Role != models.RoleAdmin {
		return ErrForbidden
	}

	res := s.db.WithContext(ctx).Delete(&models.User{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TopWorkers returns the highest-earning workers for the landing page.
func (s *UserService) TopWorkers(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 6
	}
	var workers []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleWorker).
		Order("coin DESC").
		Limit(limit).
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}
