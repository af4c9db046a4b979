package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// Task is a tracked work item that may reference a document. DocumentName is
// a snapshot of the referenced document's filename taken when the link was
// last set; it is not kept in sync with later renames or removals.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	DocumentID   string       `json:"document_id,omitempty"`
	DocumentName string       `json:"document_name,omitempty"`
	Reminder     *time.Time   `json:"reminder,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TaskInput carries the caller-supplied fields for task creation.
type TaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	DocumentID  string
	Reminder    *time.Time
}

// TaskPatch is a partial task update: nil fields are left untouched. A
// pointer to the zero value clears the corresponding optional field (an empty
// DocumentID drops the link, a zero DueDate removes the due date).
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
	DocumentID  *string
	Reminder    *time.Time
}

// TaskGroups is the four-bucket temporal view. Buckets are pairwise disjoint;
// a non-completed task without a due date belongs to none of them.
type TaskGroups struct {
	Overdue   []Task `json:"overdue"`
	DueToday  []Task `json:"due_today"`
	Upcoming  []Task `json:"upcoming"`
	Completed []Task `json:"completed"`
}
