package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Submission is one worker's entry against a task slot. PayableAmount is
// copied from the task at submit time so later task changes or deletion
// cannot alter what the worker is owed.
type Submission struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	TaskID        uint             `gorm:"not null;index" json:"task_id"`
	TaskTitle     string           `gorm:"size:255" json:"task_title"`
	WorkerEmail   string           `gorm:"size:255;not null;index" json:"worker_email"`
	WorkerName    string           `gorm:"size:255" json:"worker_name"`
	BuyerEmail    string           `gorm:"size:255;not null;index" json:"buyer_email"`
	Detail        string           `gorm:"type:text" json:"submission_detail"`
	PayableAmount int64            `gorm:"not null" json:"payable_amount"`
	Status        SubmissionStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName specifies the table name for Submission model
func (Submission) TableName() string {
	return "submissions"
}

// SubmitRequest is the worker payload for submitting work against a task.
type SubmitRequest struct {
	TaskID uint   `json:"task_id" binding:"required"`
	Detail string `json:"submission_detail" binding:"required"`
}
