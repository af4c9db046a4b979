// Package memory provides the in-memory repository backend. Mutations are
// serialized per store with a single RWMutex; reads hand out copies so
// callers can never mutate shared state.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/officemate/office-mate/internal/core/domain"
)

type TaskRepository struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]domain.Task),
	}
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.ID]; exists {
		return domain.WrapError(domain.ErrInvalidInput, "create task", fmt.Errorf("duplicate id %s", task.ID))
	}
	r.order = append(r.order, task.ID)
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get task", fmt.Errorf("id=%s", id))
	}
	copyTask := task
	return &copyTask, nil
}

func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return domain.WrapError(domain.ErrNotFound, "update task", fmt.Errorf("id=%s", task.ID))
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete task", fmt.Errorf("id=%s", id))
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns tasks in insertion order.
func (r *TaskRepository) List(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}
