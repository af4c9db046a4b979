package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/officemate/office-mate/internal/core/domain"
	"github.com/officemate/office-mate/internal/core/ports"
)

// TaskService owns task mutation: validation, id assignment, partial merges
// and the document-name snapshot taken whenever a document link is set.
type TaskService struct {
	tasks ports.TaskRepository
	docs  ports.DocumentRepository
	now   func() time.Time
}

func NewTaskService(tasks ports.TaskRepository, docs ports.DocumentRepository, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		tasks: tasks,
		docs:  docs,
		now:   now,
	}
}

func (s *TaskService) Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", errors.New("title is required"))
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", errors.New("unknown status "+string(status)))
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", errors.New("unknown priority "+string(priority)))
	}

	now := s.now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     normalizeDate(input.DueDate),
		Reminder:    copyTime(input.Reminder),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.DocumentID != "" {
		name, err := s.resolveDocumentName(ctx, input.DocumentID)
		if err != nil {
			return nil, err
		}
		task.DocumentID = input.DocumentID
		task.DocumentName = name
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch == (domain.TaskPatch{}) {
		return task, nil
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "update task", errors.New("title is required"))
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, domain.WrapError(domain.ErrInvalidInput, "update task", errors.New("unknown status "+string(*patch.Status)))
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, domain.WrapError(domain.ErrInvalidInput, "update task", errors.New("unknown priority "+string(*patch.Priority)))
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		if patch.DueDate.IsZero() {
			task.DueDate = nil
		} else {
			task.DueDate = normalizeDate(patch.DueDate)
		}
	}
	if patch.Reminder != nil {
		if patch.Reminder.IsZero() {
			task.Reminder = nil
		} else {
			task.Reminder = copyTime(patch.Reminder)
		}
	}
	if patch.DocumentID != nil {
		if *patch.DocumentID == "" {
			task.DocumentID = ""
			task.DocumentName = ""
		} else {
			name, err := s.resolveDocumentName(ctx, *patch.DocumentID)
			if err != nil {
				return nil, err
			}
			task.DocumentID = *patch.DocumentID
			task.DocumentName = name
		}
	}

	task.UpdatedAt = s.now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "set task status", errors.New("unknown status "+string(status)))
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = status
	task.UpdatedAt = s.now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleCompletion flips a completed task back to pending and moves any other
// task straight to completed, skipping in_progress on the way back.
func (s *TaskService) ToggleCompletion(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := domain.TaskStatusCompleted
	if task.Status == domain.TaskStatusCompleted {
		next = domain.TaskStatusPending
	}
	return s.SetStatus(ctx, id, next)
}

func (s *TaskService) List(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	if status != "" && !status.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list tasks", errors.New("unknown status "+string(status)))
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return tasks, nil
	}
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == status {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func (s *TaskService) Groups(ctx context.Context) (*domain.TaskGroups, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	groups := GroupTasks(tasks, s.now())
	return &groups, nil
}

// resolveDocumentName snapshots the referenced document's filename. A
// reference that does not resolve is tolerated: the task keeps the id with an
// empty name and the operation succeeds.
func (s *TaskService) resolveDocumentName(ctx context.Context, documentID string) (string, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			slog.Warn("dangling_document_reference", "document_id", documentID)
			return "", nil
		}
		return "", err
	}
	return doc.Filename, nil
}

// normalizeDate strips the time-of-day component so due dates compare at
// calendar-day granularity.
func normalizeDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// copyTime detaches a stored timestamp from caller-owned memory.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
