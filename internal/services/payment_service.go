package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nanotasks/internal/models"
)

// coinPackages is the static price list for coin purchases.
var coinPackages = []models.CoinPackage{
	{Coin: 10, Price: decimal.New(1, 0)},
	{Coin: 150, Price: decimal.New(10, 0)},
	{Coin: 500, Price: decimal.New(20, 0)},
	{Coin: 1000, Price: decimal.New(35, 0)},
}

// PaymentService records successful external charges and credits the bought
// coins. The only obligation is crediting exactly once per charge signal,
// enforced by the unique idempotency key on Payment.
type PaymentService struct {
	db     *gorm.DB
	ledger *LedgerService
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(db *gorm.DB, ledger *LedgerService) *PaymentService {
	return &PaymentService{db: db, ledger: ledger}
}

// RecordCharge inserts the payment row and credits the coins in one
// transaction. A replay with the same idempotency key hits the unique index
// and returns the stored payment without a second credit.
func (s *PaymentService) RecordCharge(ctx context.Context, email string, req *models.RecordPaymentRequest) (*models.Payment, error) {
	// The key column is sized for a uuid; longer client keys would only
	// fail at insert time.
	if req.Coin < 1 || req.Price.IsNegative() || req.Price.IsZero() || len(req.IdempotencyKey) > 36 {
		return nil, ErrInvalidInput
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	}

	payment := &models.Payment{
		IdempotencyKey: key,
		Email:          email,
		Price:          req.Price,
		Coin:           req.Coin,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return s.ledger.Credit(tx, email, req.Coin, models.TxTypePurchase,
			fmt.Sprintf("purchased %d coins for %s", req.Coin, req.Price.StringFixed(2)))
	})
	if err != nil {
		if isDuplicateKey(err) {
			var existing models.Payment
			if ferr := s.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return payment, nil
}

// ListByBuyer returns a buyer's payment history, newest first.
func (s *PaymentService) ListByBuyer(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// CoinPackages returns the purchasable coin bundles.
func (s *PaymentService) CoinPackages() []models.CoinPackage {
	return coinPackages
}

// isDuplicateKey reports whether err is a unique-constraint violation, from
// gorm's translated error or straight from the postgres driver.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
