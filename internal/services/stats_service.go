package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nanotasks/internal/models"
)

// StatsService produces read-only dashboard rollups. Nothing here mutates
// state.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsService
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// AdminStats returns the platform-wide rollup.
func (s *StatsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Where("role = ?", models.RoleWorker).Count(&stats.TotalWorkers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleBuyer).Count(&stats.TotalBuyers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Select("COALESCE(SUM(coin), 0)").Scan(&stats.TotalCoins).Error; err != nil {
		return nil, err
	}

	var totalPayments decimal.NullDecimal
	if err := db.Model(&models.Payment{}).Select("SUM(price)").Scan(&totalPayments).Error; err != nil {
		return nil, err
	}
	if totalPayments.Valid {
		stats.TotalPayments = totalPayments.Decimal
	}

	return stats, nil
}

// BuyerStats returns the per-buyer rollup: posted tasks, slots still
// waiting for workers, and coins paid out through approved submissions.
func (s *StatsService) BuyerStats(ctx context.Context, email string) (*models.BuyerStats, error) {
	stats := &models.BuyerStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Task{}).Where("buyer_email = ?", email).Count(&stats.TaskCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Task{}).
		Where("buyer_email = ?", email).
		Select("COALESCE(SUM(required_workers), 0)").
		Scan(&stats.PendingSlots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Submission{}).
		Where("buyer_email = ? AND status = ?", email, models.SubmissionStatusApproved).
		Select("COALESCE(SUM(payable_amount), 0)").
		Scan(&stats.TotalPaid).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// WorkerStats returns the per-worker rollup: submission counts and total
// earnings from approved submissions.
func (s *StatsService) WorkerStats(ctx context.Context, email string) (*models.WorkerStats, error) {
	stats := &models.WorkerStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Submission{}).Where("worker_email = ?", email).Count(&stats.TotalSubmissions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Submission{}).
		Where("worker_email = ? AND status = ?", email, models.SubmissionStatusPending).
		Count(&stats.PendingSubmissions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Submission{}).
		Where("worker_email = ? AND status = ?", email, models.SubmissionStatusApproved).
		Select("COALESCE(SUM(payable_amount), 0)").
		Scan(&stats.TotalEarnings).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Snapshot persists a PlatformStats row with the current platform counters.
// Called by the periodic stats job.
func (s *StatsService) Snapshot(ctx context.Context) (*models.PlatformStats, error) {
	snapshot := &models.PlatformStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&snapshot.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleWorker).Count(&snapshot.TotalWorkers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleBuyer).Count(&snapshot.TotalBuyers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Select("COALESCE(SUM(coin), 0)").Scan(&snapshot.TotalCoins).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Task{}).Where("required_workers > 0").Count(&snapshot.OpenTasks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Submission{}).Where("status = ?", models.SubmissionStatusPending).Count(&snapshot.PendingSubmissions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&snapshot.PendingWithdrawals).Error; err != nil {
		return nil, err
	}

	if err := db.Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}
