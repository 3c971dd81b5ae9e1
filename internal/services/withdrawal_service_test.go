package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"nanotasks/internal/models"
)

func newWithdrawalFixture(t *testing.T) (*gorm.DB, *WithdrawalService) {
	t.Helper()

	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	notifier := NewNotificationService(db)
	return db, NewWithdrawalService(db, ledger, notifier)
}

func TestWithdrawalRequestHoldsCoins(t *testing.T) {
	db, withdrawals := newWithdrawalFixture(t)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 100)

	w, err := withdrawals.Request(context.Background(), principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 60,
		PaymentSystem:  "paypal",
		AccountNumber:  "acct-1",
	})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if w.Status != models.WithdrawalStatusPending {
		t.Errorf("expected pending status, got %s", w.Status)
	}
	if w.Reference == "" {
		t.Error("expected a reference code")
	}
	// The hold debits immediately.
	if got := userBalance(t, db, "worker@test.com"); got != 40 {
		t.Errorf("expected balance 40 after hold, got %d", got)
	}
}

func TestWithdrawalRequestOverBalance(t *testing.T) {
	db, withdrawals := newWithdrawalFixture(t)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 50)

	_, err := withdrawals.Request(context.Background(), principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 51,
		PaymentSystem:  "paypal",
		AccountNumber:  "acct-1",
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var count int64
	db.Model(&models.Withdrawal{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no withdrawal row, got %d", count)
	}
	if got := userBalance(t, db, "worker@test.com"); got != 50 {
		t.Errorf("expected balance unchanged at 50, got %d", got)
	}
}

func TestWithdrawalOverlappingRequestsCannotDoubleSpend(t *testing.T) {
	db, withdrawals := newWithdrawalFixture(t)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 100)

	ctx := context.Background()
	if _, err := withdrawals.Request(ctx, principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 70, PaymentSystem: "paypal", AccountNumber: "acct-1",
	}); err != nil {
		t.Fatalf("first Request failed: %v", err)
	}

	// The first hold already took 70, so the same coins cannot back a
	// second request.
	_, err := withdrawals.Request(ctx, principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 70, PaymentSystem: "paypal", AccountNumber: "acct-1",
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds for overlapping request, got %v", err)
	}
}

func TestWithdrawalApproveIsTerminal(t *testing.T) {
	db, withdrawals := newWithdrawalFixture(t)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 100)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin, 0)

	ctx := context.Background()
	w, err := withdrawals.Request(ctx, principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 30, PaymentSystem: "bkash", AccountNumber: "acct-2",
	})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	approved, err := withdrawals.Approve(ctx, principalFor(admin), w.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != models.WithdrawalStatusApproved {
		t.Errorf("expected approved status, got %s", approved.Status)
	}
	// No second debit on approval; the hold already took the coins.
	if got := userBalance(t, db, "worker@test.com"); got != 70 {
		t.Errorf("expected balance 70, got %d", got)
	}

	if _, err := withdrawals.Approve(ctx, principalFor(admin), w.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approve, got %v", err)
	}
	if _, err := withdrawals.Reject(ctx, principalFor(admin), w.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on reject after approve, got %v", err)
	}
	if got := userBalance(t, db, "worker@test.com"); got != 70 {
		t.Errorf("balance changed on replay: got %d", got)
	}
}

func TestWithdrawalRejectReturnsHold(t *testing.T) {
	db, withdrawals := newWithdrawalFixture(t)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 100)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin, 0)

	ctx := context.Background()
	w, err := withdrawals.Request(ctx, principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 30, PaymentSystem: "bkash", AccountNumber: "acct-2",
	})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	rejected, err := withdrawals.Reject(ctx, principalFor(admin), w.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != models.WithdrawalStatusRejected {
		t.Errorf("expected rejected status, got %s", rejected.Status)
	}
	if got := userBalance(t, db, "worker@test.com"); got != 100 {
		t.Errorf("expected hold returned, balance 100, got %d", got)
	}

	// The returned hold must not come back twice.
	if _, err := withdrawals.Reject(ctx, principalFor(admin), w.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second reject, got %v", err)
	}
	if got := userBalance(t, db, "worker@test.com"); got != 100 {
		t.Errorf("balance changed on replay: got %d", got)
	}
}

func TestWithdrawalListPendingOrder(t *testing.T) {
	db, withdrawals := newWithdrawalFixture(t)
	worker := createTestUser(t, db, "worker@test.com", models.RoleWorker, 100)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin, 0)

	ctx := context.Background()
	first, err := withdrawals.Request(ctx, principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 10, PaymentSystem: "paypal", AccountNumber: "a",
	})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	second, err := withdrawals.Request(ctx, principalFor(worker), &models.WithdrawalRequest{
		WithdrawalCoin: 20, PaymentSystem: "paypal", AccountNumber: "a",
	})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if _, err := withdrawals.Approve(ctx, principalFor(admin), first.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	pending, err := withdrawals.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Errorf("expected only the second request pending, got %+v", pending)
	}
}
