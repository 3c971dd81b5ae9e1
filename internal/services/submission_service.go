package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
)

// SubmissionService owns the submission state machine:
// pending -> approved or pending -> rejected, each exactly once.
// Submitting reserves a task slot, rejection releases it, approval pays the
// worker. Each transition is a single database transaction.
type SubmissionService struct {
	db       *gorm.DB
	ledger   *LedgerService
	notifier *NotificationService
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(db *gorm.DB, ledger *LedgerService, notifier *NotificationService) *SubmissionService {
	return &SubmissionService{db: db, ledger: ledger, notifier: notifier}
}

// Submit reserves one worker slot on the task and inserts a pending
// submission with the pay rate frozen from the task. The conditional slot
// decrement and the insert commit as one unit, so a reserved slot always has
// a submission and required_workers can never go negative.
func (s *SubmissionService) Submit(ctx context.Context, principal auth.Principal, req *models.SubmitRequest) (*models.Submission, error) {
	var submission *models.Submission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, req.TaskID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if task.BuyerEmail == principal.Email {
			return ErrForbidden
		}

		res := tx.Model(&models.Task{}).
			Where("id = ? AND required_workers > 0", req.TaskID).
			UpdateColumn("required_workers", gorm.Expr("required_workers - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotsExhausted
		}

		var worker models.User
		if err := tx.Where("email = ?", principal.Email).First(&worker).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		submission = &models.Submission{
			TaskID:        task.ID,
			TaskTitle:     task.TaskTitle,
			WorkerEmail:   principal.Email,
			WorkerName:    worker.Name,
			BuyerEmail:    task.BuyerEmail,
			Detail:        req.Detail,
			PayableAmount: task.PayableAmount,
			Status:        models.SubmissionStatusPending,
		}
		return tx.Create(submission).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, submission.BuyerEmail,
		fmt.Sprintf("%s submitted work for %q", submission.WorkerEmail, submission.TaskTitle),
		"/dashboard/buyer-home")

	return submission, nil
}

// Approve moves a pending submission to approved and credits the worker the
// frozen payable_amount. The conditional status flip makes a replay fail
// with ErrInvalidTransition instead of crediting twice.
func (s *SubmissionService) Approve(ctx context.Context, principal auth.Principal, submissionID uint) (*models.Submission, error) {
	var submission models.Submission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, submissionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if principal.Role != models.RoleAdmin && submission.BuyerEmail != principal.Email {
			return ErrForbidden
		}

		res := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submissionID, models.SubmissionStatusPending).
			Update("status", models.SubmissionStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		submission.Status = models.SubmissionStatusApproved

		return s.ledger.Credit(tx, submission.WorkerEmail, submission.PayableAmount, models.TxTypeEarning,
			fmt.Sprintf("earning for task %q", submission.TaskTitle))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, submission.WorkerEmail,
		fmt.Sprintf("You earned %d coins for %q from %s", submission.PayableAmount, submission.TaskTitle, submission.BuyerEmail),
		"/dashboard/worker-home")

	return &submission, nil
}

// Reject moves a pending submission to rejected and releases the reserved
// slot back onto the task, as one unit. If the task is already gone the
// release is skipped; the submission still terminates.
func (s *SubmissionService) Reject(ctx context.Context, principal auth.Principal, submissionID uint) (*models.Submission, error) {
	var submission models.Submission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, submissionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if principal.Role != models.RoleAdmin && submission.BuyerEmail != principal.Email {
			return ErrForbidden
		}

		res := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submissionID, models.SubmissionStatusPending).
			Update("status", models.SubmissionStatusRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		submission.Status = models.SubmissionStatusRejected

		return tx.Model(&models.Task{}).
			Where("id = ?", submission.TaskID).
			UpdateColumn("required_workers", gorm.Expr("required_workers + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, submission.WorkerEmail,
		fmt.Sprintf("Your submission for %q was rejected", submission.TaskTitle),
		"/dashboard/worker-home")

	return &submission, nil
}

// ListByWorker returns all submissions made by a worker, newest first.
func (s *SubmissionService) ListByWorker(ctx context.Context, email string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.db.WithContext(ctx).
		Where("worker_email = ?", email).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListByBuyer returns all submissions against a buyer's tasks, pending
// first so the review queue sits on top.
func (s *SubmissionService) ListByBuyer(ctx context.Context, email string) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := s.db.WithContext(ctx).
		Where("buyer_email = ?", email).
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
