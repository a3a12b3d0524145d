// Package models defines the records persisted by the store
package models

import (
	"slices"
	"time"
)

type (
	// TaskStatus is the workflow state of a task.
	TaskStatus string

	// TaskPriority ranks a task.
	TaskPriority string
)

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Categories are the suggested task categories. Any other value is accepted.
var Categories = []string{"work", "study", "life", "other"}

// Priorities lists the valid priorities from lowest to highest.
var Priorities = []TaskPriority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

// User is a registered account.
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
}

// Task is the unit of work that focus sessions are attributed to.
type Task struct {
	CreatedAt          time.Time    `json:"created_at"            yaml:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"            yaml:"updated_at"`
	PlannedDate        *time.Time   `json:"planned_date,omitempty" yaml:"planned_date,omitempty"`
	ID                 string       `json:"id"                    yaml:"id"`
	UserID             string       `json:"user_id"               yaml:"user_id"`
	Title              string       `json:"title"                 yaml:"title"`
	Description        string       `json:"description,omitempty" yaml:"description,omitempty"`
	Category           string       `json:"category"              yaml:"category"`
	Priority           TaskPriority `json:"priority"              yaml:"priority"`
	Status             TaskStatus   `json:"status"                yaml:"status"`
	EstimatedPomodoros int          `json:"estimated_pomodoros"   yaml:"estimated_pomodoros"`
	ActualPomodoros    int          `json:"actual_pomodoros"      yaml:"actual_pomodoros"`
}

// Session is a completed focus session.
type Session struct {
	StartedAt       time.Time `json:"started_at"       yaml:"started_at"`
	CompletedAt     time.Time `json:"completed_at"     yaml:"completed_at"`
	ID              string    `json:"id"               yaml:"id"`
	UserID          string    `json:"user_id"          yaml:"user_id"`
	TaskID          string    `json:"task_id"          yaml:"task_id"`
	DurationMinutes int       `json:"duration_minutes" yaml:"duration_minutes"`
	Completed       bool      `json:"completed"        yaml:"completed"`
}

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	return slices.Contains(Priorities, p)
}
