package services

import (
	"context"

	"gorm.io/gorm"

	"nanotasks/internal/models"
)

// LedgerService is the single path through which user coin balances change.
// Credit and Debit run on the caller's transaction handle so a balance
// change commits or aborts together with the rest of its unit of work.
// Every mutation also appends a CoinTransaction row.
type LedgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Credit atomically adds amount coins to the user's balance.
func (s *LedgerService) Credit(tx *gorm.DB, email string, amount int64, txType models.CoinTransactionType, description string) error {
	if amount <= 0 {
		return ErrInvalidInput
	}

	res := tx.Model(&models.User{}).
		Where("email = ?", email).
		UpdateColumn("coin", gorm.Expr("coin + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return s.record(tx, email, amount, txType, description)
}

// Debit atomically removes amount coins from the user's balance. The
// conditional update is the negative-balance guard: the row only matches
// while coin >= amount, so concurrent debits cannot overdraw.
func (s *LedgerService) Debit(tx *gorm.DB, email string, amount int64, txType models.CoinTransactionType, description string) error {
	if amount <= 0 {
		return ErrInvalidInput
	}

	res := tx.Model(&models.User{}).
		Where("email = ? AND coin >= ?", email, amount).
		UpdateColumn("coin", gorm.Expr("coin - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientFunds
	}

	return s.record(tx, email, -amount, txType, description)
}

// Balance returns the user's current coin balance.
func (s *LedgerService) Balance(ctx context.Context, email string) (int64, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return user.Coin, nil
}

// History returns the user's ledger entries, newest first.
func (s *LedgerService) History(ctx context.Context, email string) ([]models.CoinTransaction, error) {
	var entries []models.CoinTransaction
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *LedgerService) record(tx *gorm.DB, email string, amount int64, txType models.CoinTransactionType, description string) error {
	entry := &models.CoinTransaction{
		Email:       email,
		Amount:      amount,
		Type:        txType,
		Description: description,
	}
	return tx.Create(entry).Error
}
