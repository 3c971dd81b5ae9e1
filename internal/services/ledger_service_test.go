package services

import (
	"context"
	"errors"
	"testing"

	"nanotasks/internal/models"
)

func TestLedgerCreditAndDebit(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	createTestUser(t, db, "worker@test.com", models.RoleWorker, 100)

	if err := ledger.Credit(db, "worker@test.com", 40, models.TxTypeEarning, "test credit"); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if got := userBalance(t, db, "worker@test.com"); got != 140 {
		t.Errorf("expected balance 140, got %d", got)
	}

	if err := ledger.Debit(db, "worker@test.com", 90, models.TxTypeWithdrawalHold, "test debit"); err != nil {
		t.Fatalf("Debit failed: %v", err)
	}
	if got := userBalance(t, db, "worker@test.com"); got != 50 {
		t.Errorf("expected balance 50, got %d", got)
	}
}

func TestLedgerDebitInsufficientFunds(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	createTestUser(t, db, "worker@test.com", models.RoleWorker, 30)

	err := ledger.Debit(db, "worker@test.com", 31, models.TxTypeWithdrawalHold, "too much")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Balance untouched, no ledger entry written.
	if got := userBalance(t, db, "worker@test.com"); got != 30 {
		t.Errorf("expected balance 30, got %d", got)
	}
	var entries int64
	db.Model(&models.CoinTransaction{}).Count(&entries)
	if entries != 0 {
		t.Errorf("expected 0 ledger entries, got %d", entries)
	}
}

func TestLedgerUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	if err := ledger.Credit(db, "ghost@test.com", 10, models.TxTypeEarning, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Credit: expected ErrNotFound, got %v", err)
	}
	if err := ledger.Debit(db, "ghost@test.com", 10, models.TxTypeEscrow, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Debit: expected ErrNotFound, got %v", err)
	}
}

func TestLedgerInvalidAmounts(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	createTestUser(t, db, "worker@test.com", models.RoleWorker, 10)

	if err := ledger.Credit(db, "worker@test.com", 0, models.TxTypeEarning, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Credit zero: expected ErrInvalidInput, got %v", err)
	}
	if err := ledger.Debit(db, "worker@test.com", -5, models.TxTypeEscrow, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Debit negative: expected ErrInvalidInput, got %v", err)
	}
}

func TestLedgerHistoryReconciles(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	createTestUser(t, db, "worker@test.com", models.RoleWorker, 0)

	ctx := context.Background()
	amounts := []int64{25, 50, 10}
	for _, a := range amounts {
		if err := ledger.Credit(db, "worker@test.com", a, models.TxTypeEarning, "credit"); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}
	}
	if err := ledger.Debit(db, "worker@test.com", 30, models.TxTypeWithdrawalHold, "debit"); err != nil {
		t.Fatalf("Debit failed: %v", err)
	}

	entries, err := ledger.History(ctx, "worker@test.com")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 ledger entries, got %d", len(entries))
	}

	var sum int64
	for _, e := range entries {
		sum += e.Amount
	}
	if balance := userBalance(t, db, "worker@test.com"); sum != balance {
		t.Errorf("ledger sum %d does not reconcile with balance %d", sum, balance)
	}
}
