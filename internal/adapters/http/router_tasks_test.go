package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/officemate/office-mate/internal/config"
	"github.com/officemate/office-mate/internal/core/domain"
)

type tasksFake struct {
	err       error
	lastInput domain.TaskInput
	lastPatch domain.TaskPatch
	lastID    string
	deleted   []string
}

func (f *tasksFake) Create(_ context.Context, input domain.TaskInput) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastInput = input
	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	return &domain.Task{
		ID:        "t-1",
		Title:     input.Title,
		Status:    status,
		Priority:  input.Priority,
		DueDate:   input.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (f *tasksFake) Update(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastID = id
	f.lastPatch = patch
	return &domain.Task{ID: id, Title: "updated", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityMedium}, nil
}

func (f *tasksFake) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *tasksFake) SetStatus(_ context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Task{ID: id, Title: "t", Status: status, Priority: domain.TaskPriorityMedium}, nil
}

func (f *tasksFake) ToggleCompletion(_ context.Context, id string) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastID = id
	return &domain.Task{ID: id, Title: "t", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityMedium}, nil
}

func (f *tasksFake) List(_ context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Task{{ID: "t-1", Title: "t", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityMedium}}, nil
}

func (f *tasksFake) Groups(_ context.Context) (*domain.TaskGroups, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TaskGroups{
		Overdue:   []domain.Task{},
		DueToday:  []domain.Task{{ID: "t-1", Title: "t", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh}},
		Upcoming:  []domain.Task{},
		Completed: []domain.Task{},
	}, nil
}

type dashboardFake struct {
	err error
}

func (f *dashboardFake) Summary(context.Context) (*domain.DashboardSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DashboardSummary{
		TotalDocuments: 3,
		OpenTasks:      2,
		DueSoon:        1,
		CategoryCounts: map[domain.Category]int{
			domain.CategoryFinance:     2,
			domain.CategoryHR:          1,
			domain.CategoryProcurement: 0,
			domain.CategoryMaintenance: 0,
		},
	}, nil
}

func newTasksHandler(tasks *tasksFake, dashboard *dashboardFake) http.Handler {
	return NewRouter(config.Config{}, ingestFake{}, &finderFake{}, tasks, dashboard).Handler()
}

func TestCreateTaskParsesDueDate(t *testing.T) {
	tasks := &tasksFake{}
	handler := newTasksHandler(tasks, &dashboardFake{})

	payload, _ := json.Marshal(map[string]any{
		"title":    "Review budget",
		"priority": "high",
		"due_date": "2024-12-20",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}
	if tasks.lastInput.DueDate == nil {
		t.Fatalf("expected parsed due date")
	}
	want := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	if !tasks.lastInput.DueDate.Equal(want) {
		t.Fatalf("unexpected due date: %v", tasks.lastInput.DueDate)
	}
}

func TestCreateTaskRejectsBadDueDate(t *testing.T) {
	handler := newTasksHandler(&tasksFake{}, &dashboardFake{})

	payload, _ := json.Marshal(map[string]any{"title": "t", "due_date": "20-12-2024"})
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", bytesReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestCreateTaskMapsDomainInvalidInputTo400(t *testing.T) {
	handler := newTasksHandler(&tasksFake{
		err: domain.WrapError(domain.ErrInvalidInput, "create task", errors.New("title is required")),
	}, &dashboardFake{})

	payload, _ := json.Marshal(map[string]any{"title": "   "})
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", bytesReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUpdateTaskEmptyDueDateClearsField(t *testing.T) {
	tasks := &tasksFake{}
	handler := newTasksHandler(tasks, &dashboardFake{})

	payload := []byte(`{"due_date":""}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/tasks/t-1", bytesReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if tasks.lastPatch.DueDate == nil || !tasks.lastPatch.DueDate.IsZero() {
		t.Fatalf("expected zero due date pointer, got %v", tasks.lastPatch.DueDate)
	}
}

func TestUpdateTaskOmittedFieldsStayNil(t *testing.T) {
	tasks := &tasksFake{}
	handler := newTasksHandler(tasks, &dashboardFake{})

	payload := []byte(`{"title":"new title"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/tasks/t-1", bytesReader(payload))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if tasks.lastPatch.Title == nil || *tasks.lastPatch.Title != "new title" {
		t.Fatalf("expected title in patch, got %+v", tasks.lastPatch)
	}
	if tasks.lastPatch.DueDate != nil || tasks.lastPatch.Status != nil || tasks.lastPatch.DocumentID != nil {
		t.Fatalf("expected omitted fields to stay nil: %+v", tasks.lastPatch)
	}
}

func TestUpdateTaskReturns404ForMissing(t *testing.T) {
	handler := newTasksHandler(&tasksFake{
		err: domain.WrapError(domain.ErrNotFound, "get task", errors.New("id=missing")),
	}, &dashboardFake{})

	req := httptest.NewRequest(http.MethodPatch, "/v1/tasks/missing", bytesReader([]byte(`{"title":"x"}`)))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestDeleteTaskReturns204(t *testing.T) {
	tasks := &tasksFake{}
	handler := newTasksHandler(tasks, &dashboardFake{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/tasks/t-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if len(tasks.deleted) != 1 || tasks.deleted[0] != "t-1" {
		t.Fatalf("unexpected deletions: %v", tasks.deleted)
	}
}

func TestToggleTaskEndpoint(t *testing.T) {
	tasks := &tasksFake{}
	handler := newTasksHandler(tasks, &dashboardFake{})

	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/t-1/toggle", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if tasks.lastID != "t-1" {
		t.Fatalf("expected toggle for t-1, got %q", tasks.lastID)
	}

	var resp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != string(domain.TaskStatusCompleted) {
		t.Fatalf("unexpected status: %+v", resp)
	}
}

func TestToggleTaskRequiresPost(t *testing.T) {
	handler := newTasksHandler(&tasksFake{}, &dashboardFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/tasks/t-1/toggle", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestTaskGroupsEndpointAlwaysHasFourBuckets(t *testing.T) {
	handler := newTasksHandler(&tasksFake{}, &dashboardFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/tasks/groups", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, bucket := range []string{"overdue", "due_today", "upcoming", "completed"} {
		if _, ok := resp[bucket]; !ok {
			t.Fatalf("missing bucket %q in %v", bucket, resp)
		}
	}
}

func TestDashboardEndpoint(t *testing.T) {
	handler := newTasksHandler(&tasksFake{}, &dashboardFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp struct {
		TotalDocuments int                     `json:"total_documents"`
		OpenTasks      int                     `json:"open_tasks"`
		DueSoon        int                     `json:"due_soon"`
		CategoryCounts map[domain.Category]int `json:"category_counts"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalDocuments != 3 || resp.OpenTasks != 2 || resp.DueSoon != 1 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
	if len(resp.CategoryCounts) != 4 {
		t.Fatalf("expected all four categories, got %v", resp.CategoryCounts)
	}
}

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
