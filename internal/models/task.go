package models

import (
	"time"
)

// Task is a unit of paid work posted by a buyer. RequiredWorkers counts the
// remaining open slots; the coins for those slots are already held in escrow
// against the buyer's balance.
type Task struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BuyerEmail      string     `gorm:"size:255;not null;index" json:"buyer_email"`
	TaskTitle       string     `gorm:"size:255;not null" json:"task_title"`
	TaskDetail      string     `gorm:"type:text" json:"task_detail"`
	SubmissionInfo  string     `gorm:"type:text" json:"submission_info"`
	RequiredWorkers int        `gorm:"not null" json:"required_workers"`
	PayableAmount   int64      `gorm:"not null" json:"payable_amount"`
	CompletionDate  *time.Time `json:"completion_date,omitempty"`
	ImageURL        *string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tasks"
}

// CreateTaskRequest is the buyer payload for posting a task.
type CreateTaskRequest struct {
	TaskTitle       string     `json:"task_title" binding:"required"`
	TaskDetail      string     `json:"task_detail"`
	SubmissionInfo  string     `json:"submission_info"`
	RequiredWorkers int        `json:"required_workers" binding:"required"`
	PayableAmount   int64      `json:"payable_amount" binding:"required"`
	CompletionDate  *time.Time `json:"completion_date"`
	ImageURL        *string    `json:"image_url"`
}

// UpdateTaskRequest carries the descriptive fields a buyer may edit after
// creation. Slot count, pay rate and ownership are frozen at creation time.
type UpdateTaskRequest struct {
	TaskTitle      *string `json:"task_title"`
	TaskDetail     *string `json:"task_detail"`
	SubmissionInfo *string `json:"submission_info"`
}
