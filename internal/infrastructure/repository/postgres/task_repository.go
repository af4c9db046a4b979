package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (
	id, title, description, status, priority, due_date, document_id, document_name, reminder, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		nullTime(task.DueDate), nullString(task.DocumentID), task.DocumentName, nullTime(task.Reminder),
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, status, priority, due_date, document_id, document_name, reminder, created_at, updated_at
FROM tasks
WHERE id = $1
`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get task", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET title = $2, description = $3, status = $4, priority = $5, due_date = $6,
	document_id = $7, document_name = $8, reminder = $9, updated_at = $10
WHERE id = $1
`,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		nullTime(task.DueDate), nullString(task.DocumentID), task.DocumentName, nullTime(task.Reminder),
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireRow(result, "update task", task.ID)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(result, "delete task", id)
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, status, priority, due_date, document_id, document_name, reminder, created_at, updated_at
FROM tasks
ORDER BY created_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority string
	var dueDate, reminder sql.NullTime
	var documentID sql.NullString

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &status, &priority,
		&dueDate, &documentID, &task.DocumentName, &reminder, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if dueDate.Valid {
		t := dueDate.Time.UTC()
		task.DueDate = &t
	}
	if reminder.Valid {
		t := reminder.Time.UTC()
		task.Reminder = &t
	}
	if documentID.Valid {
		task.DocumentID = documentID.String
	}
	return &task, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
