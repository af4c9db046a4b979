package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
)

// taskRepoFake keeps tasks in insertion order, mirroring the memory
// repository's contract.
type taskRepoFake struct {
	order []string
	byID  map[string]domain.Task
	err   error
}

func newTaskRepoFake() *taskRepoFake {
	return &taskRepoFake{byID: make(map[string]domain.Task)}
}

func (f *taskRepoFake) Create(_ context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	f.order = append(f.order, task.ID)
	f.byID[task.ID] = *task
	return nil
}

func (f *taskRepoFake) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get task", fmt.Errorf("id=%s", id))
	}
	copyTask := task
	return &copyTask, nil
}

func (f *taskRepoFake) Update(_ context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[task.ID]; !ok {
		return domain.WrapError(domain.ErrNotFound, "update task", fmt.Errorf("id=%s", task.ID))
	}
	f.byID[task.ID] = *task
	return nil
}

func (f *taskRepoFake) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.WrapError(domain.ErrNotFound, "delete task", fmt.Errorf("id=%s", id))
	}
	delete(f.byID, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *taskRepoFake) List(_ context.Context) ([]domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Task, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

type docRepoFake struct {
	order []string
	byID  map[string]domain.Document
	err   error
}

func newDocRepoFake(docs ...domain.Document) *docRepoFake {
	f := &docRepoFake{byID: make(map[string]domain.Document)}
	for _, doc := range docs {
		f.order = append(f.order, doc.ID)
		f.byID[doc.ID] = doc
	}
	return f
}

func (f *docRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	f.order = append(f.order, doc.ID)
	f.byID[doc.ID] = *doc
	return nil
}

func (f *docRepoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get document", fmt.Errorf("id=%s", id))
	}
	copyDoc := doc
	return &copyDoc, nil
}

func (f *docRepoFake) List(_ context.Context) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Document, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *docRepoFake) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	if f.err != nil {
		return f.err
	}
	doc, ok := f.byID[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "update document status", fmt.Errorf("id=%s", id))
	}
	doc.Status = status
	doc.Error = errMessage
	f.byID[id] = doc
	return nil
}

func (f *docRepoFake) SaveClassification(_ context.Context, id string, cls domain.Classification) error {
	if f.err != nil {
		return f.err
	}
	doc, ok := f.byID[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "save classification", fmt.Errorf("id=%s", id))
	}
	doc.Category = cls.Category
	doc.Tags = cls.Tags
	doc.Confidence = cls.Confidence
	doc.Summary = cls.Summary
	f.byID[id] = doc
	return nil
}

type classifierFake struct {
	cls domain.Classification
	err error
}

func (f classifierFake) Classify(context.Context, string) (domain.Classification, error) {
	if f.err != nil {
		return domain.Classification{}, f.err
	}
	if f.cls.Category == "" {
		return domain.Classification{Category: domain.CategoryFinance}, nil
	}
	return f.cls, nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var errFakeDown = errors.New("backend down")
