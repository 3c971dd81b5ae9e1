package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"nanotasks/internal/models"
)

func TestRecordChargeCreditsCoins(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, NewLedgerService(db))
	createTestUser(t, db, "buyer@test.com", models.RoleBuyer, 0)

	payment, err := payments.RecordCharge(context.Background(), "buyer@test.com", &models.RecordPaymentRequest{
		Coin:  150,
		Price: decimal.New(10, 0),
	})
	if err != nil {
		t.Fatalf("RecordCharge failed: %v", err)
	}

	if payment.IdempotencyKey == "" {
		t.Error("expected a generated idempotency key")
	}
	if got := userBalance(t, db, "buyer@test.com"); got != 150 {
		t.Errorf("expected balance 150, got %d", got)
	}
}

func TestRecordChargeIdempotentReplay(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, NewLedgerService(db))
	createTestUser(t, db, "buyer@test.com", models.RoleBuyer, 0)

	ctx := context.Background()
	req := &models.RecordPaymentRequest{
		Coin:           500,
		Price:          decimal.New(20, 0),
		IdempotencyKey: "charge-abc-123",
	}

	first, err := payments.RecordCharge(ctx, "buyer@test.com", req)
	if err != nil {
		t.Fatalf("first RecordCharge failed: %v", err)
	}

	// The provider redelivers the same charge signal.
	second, err := payments.RecordCharge(ctx, "buyer@test.com", req)
	if err != nil {
		t.Fatalf("replayed RecordCharge failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("replay created a new payment: %d vs %d", first.ID, second.ID)
	}
	if got := userBalance(t, db, "buyer@test.com"); got != 500 {
		t.Errorf("expected exactly one credit of 500, got balance %d", got)
	}
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 payment row, got %d", count)
	}
}

func TestRecordChargeValidation(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, NewLedgerService(db))
	createTestUser(t, db, "buyer@test.com", models.RoleBuyer, 0)

	ctx := context.Background()
	if _, err := payments.RecordCharge(ctx, "buyer@test.com", &models.RecordPaymentRequest{
		Coin: 0, Price: decimal.New(10, 0),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero coins: expected ErrInvalidInput, got %v", err)
	}
	if _, err := payments.RecordCharge(ctx, "buyer@test.com", &models.RecordPaymentRequest{
		Coin: 10, Price: decimal.Zero,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero price: expected ErrInvalidInput, got %v", err)
	}
	// A key longer than the column would only fail at insert time.
	if _, err := payments.RecordCharge(ctx, "buyer@test.com", &models.RecordPaymentRequest{
		Coin: 10, Price: decimal.New(1, 0), IdempotencyKey: strings.Repeat("x", 37),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("oversized key: expected ErrInvalidInput, got %v", err)
	}

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no payment rows after rejected charges, got %d", count)
	}
	if got := userBalance(t, db, "buyer@test.com"); got != 0 {
		t.Errorf("expected no credit after rejected charges, got %d", got)
	}
}

func TestRecordChargeUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, NewLedgerService(db))

	_, err := payments.RecordCharge(context.Background(), "ghost@test.com", &models.RecordPaymentRequest{
		Coin: 10, Price: decimal.New(1, 0),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The payment row must roll back with the failed credit.
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("expected 0 payment rows, got %d", count)
	}
}

func TestCoinPackages(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, NewLedgerService(db))

	packages := payments.CoinPackages()
	if len(packages) == 0 {
		t.Fatal("expected a non-empty price list")
	}
	for _, p := range packages {
		if p.Coin < 1 || !p.Price.IsPositive() {
			t.Errorf("invalid package: %+v", p)
		}
	}
}
