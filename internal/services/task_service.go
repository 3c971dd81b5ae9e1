package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nanotasks/internal/auth"
	"nanotasks/internal/models"
)

// TaskService owns the task lifecycle: creation with escrow, descriptive
// edits, and deletion with refund of unfilled slots.
type TaskService struct {
	db     *gorm.DB
	ledger *LedgerService
}

// NewTaskService creates a new TaskService
func NewTaskService(db *gorm.DB, ledger *LedgerService) *TaskService {
	return &TaskService{db: db, ledger: ledger}
}

// Create validates the draft, debits the buyer required_workers *
// payable_amount coins as escrow and inserts the task, all in one
// transaction.
func (s *TaskService) Create(ctx context.Context, principal auth.Principal, req *models.CreateTaskRequest) (*models.Task, error) {
	if req.RequiredWorkers < 1 || req.PayableAmount < 1 {
		return nil, ErrInvalidInput
	}

	task := &models.Task{
		BuyerEmail:      principal.Email,
		TaskTitle:       req.TaskTitle,
		TaskDetail:      req.TaskDetail,
		SubmissionInfo:  req.SubmissionInfo,
		RequiredWorkers: req.RequiredWorkers,
		PayableAmount:   req.PayableAmount,
		CompletionDate:  req.CompletionDate,
		ImageURL:        req.ImageURL,
	}

	escrow := int64(req.RequiredWorkers) * req.PayableAmount

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.Debit(tx, principal.Email, escrow, models.TxTypeEscrow,
			fmt.Sprintf("escrow for task %q", req.TaskTitle)); err != nil {
			return err
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Edit updates descriptive fields only. Slot count, pay rate and owner are
// immutable after creation so the escrow held for the task can never drift.
func (s *TaskService) Edit(ctx context.Context, principal auth.Principal, taskID uint, req *models.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if task.BuyerEmail != principal.Email {
			return ErrForbidden
		}

		updates := map[string]interface{}{}
		if req.TaskTitle != nil {
			updates["task_title"] = *req.TaskTitle
		}
		if req.TaskDetail != nil {
			updates["task_detail"] = *req.TaskDetail
		}
		if req.SubmissionInfo != nil {
			updates["submission_info"] = *req.SubmissionInfo
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&task, taskID).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Delete removes a task, refunding the buyer the escrow still held for
// unfilled slots. Deletion is refused while pending submissions exist so a
// submission can never lose the slot it reserved. Terminal submissions are
// removed with the task.
func (s *TaskService) Delete(ctx context.Context, principal auth.Principal, taskID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Self-assignment write-locks the row, so the slot count read below
		// cannot be changed by a racing submit before the delete commits.
		res := tx.Model(&models.Task{}).
			Where("id = ?", taskID).
			UpdateColumn("required_workers", gorm.Expr("required_workers"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return err
		}

		if principal.Role != models.RoleAdmin && task.BuyerEmail != principal.Email {
			return ErrForbidden
		}

		var pending int64
		if err := tx.Model(&models.Submission{}).
			Where("task_id = ? AND status = ?", taskID, models.SubmissionStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingSubmissions
		}

		if refund := int64(task.RequiredWorkers) * task.PayableAmount; refund > 0 {
			if err := s.ledger.Credit(tx, task.BuyerEmail, refund, models.TxTypeRefund,
				fmt.Sprintf("refund for deleted task %q", task.TaskTitle)); err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.Task{}, taskID).Error; err != nil {
			return err
		}

		return tx.Where("task_id = ?", taskID).Delete(&models.Submission{}).Error
	})
}

// ListOpen returns tasks that still have open worker slots.
func (s *TaskService) ListOpen(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Where("required_workers > 0").
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByBuyer returns all tasks posted by a buyer.
func (s *TaskService) ListByBuyer(ctx context.Context, email string) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Where("buyer_email = ?", email).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get retrieves a task by ID
func (s *TaskService) Get(ctx context.Context, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}
