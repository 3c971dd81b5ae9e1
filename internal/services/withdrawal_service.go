package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
)

// WithdrawalService converts earned coins into external payout requests.
// Coins are debited from the worker at request time and held against the
// request, so a worker can never request more than they hold or spend the
// same coins across overlapping requests. Approval marks the external payout
// done; rejection returns the hold.
type WithdrawalService struct {
	db       *gorm.DB
	ledger   *LedgerService
	notifier *NotificationService
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(db *gorm.DB, ledger *LedgerService, notifier *NotificationService) *WithdrawalService {
	return &WithdrawalService{db: db, ledger: ledger, notifier: notifier}
}

// Request debits the hold and inserts a pending withdrawal in one
// transaction. An over-balance request fails with ErrInsufficientFunds.
func (s *WithdrawalService) Request(ctx context.Context, principal auth.Principal, req *models.WithdrawalRequest) (*models.Withdrawal, error) {
	if req.WithdrawalCoin < 1 {
		return nil, ErrInvalidInput
	}

	var worker models.User
	if err := s.db.WithContext(ctx).Where("email = ?", principal.Email).First(&worker).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	withdrawal := &models.Withdrawal{
		Reference:      uuid.New().String(),
		WorkerEmail:    principal.Email,
		WorkerName:     worker.Name,
		WithdrawalCoin: req.WithdrawalCoin,
		PaymentSystem:  req.PaymentSystem,
		AccountNumber:  req.AccountNumber,
		Status:         models.WithdrawalStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.Debit(tx, principal.Email, req.WithdrawalCoin, models.TxTypeWithdrawalHold,
			fmt.Sprintf("hold for withdrawal %s", withdrawal.Reference)); err != nil {
			return err
		}
		return tx.Create(withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	return withdrawal, nil
}

// Approve marks a pending withdrawal approved. The coins were already
// debited at request time; approval records that the external payout went
// out. Replaying an approval fails with ErrInvalidTransition.
func (s *WithdrawalService) Approve(ctx context.Context, principal auth.Principal, withdrawalID uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, withdrawalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
			Update("status", models.WithdrawalStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		withdrawal.Status = models.WithdrawalStatusApproved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, withdrawal.WorkerEmail,
		fmt.Sprintf("Your withdrawal of %d coins was approved", withdrawal.WithdrawalCoin),
		"/dashboard/withdrawals")

	return &withdrawal, nil
}

// Reject marks a pending withdrawal rejected and returns the held coins to
// the worker, as one unit.
func (s *WithdrawalService) Reject(ctx context.Context, principal auth.Principal, withdrawalID uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, withdrawalID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.Withdrawal{}).
			Where("id = ? AND status = ?", withdrawalID, models.WithdrawalStatusPending).
			Update("status", models.WithdrawalStatusRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		withdrawal.Status = models.WithdrawalStatusRejected

		return s.ledger.Credit(tx, withdrawal.WorkerEmail, withdrawal.WithdrawalCoin, models.TxTypeWithdrawalReturn,
			fmt.Sprintf("returned hold for withdrawal %s", withdrawal.Reference))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, withdrawal.WorkerEmail,
		fmt.Sprintf("Your withdrawal of %d coins was rejected, the coins are back on your balance", withdrawal.WithdrawalCoin),
		"/dashboard/withdrawals")

	return &withdrawal, nil
}

// ListByWorker returns all withdrawal requests made by a worker.
func (s *WithdrawalService) ListByWorker(ctx context.Context, email string) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	if err := s.db.WithContext(ctx).
		Where("worker_email = ?", email).
		Order("created_at DESC").
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// ListPending returns the admin approval queue, oldest first.
func (s *WithdrawalService) ListPending(ctx context.Context) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.WithdrawalStatusPending).
		Order("created_at ASC").
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}
