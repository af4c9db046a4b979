package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
)

type DocumentRepository struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]domain.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		docs: make(map[string]domain.Document),
	}
}

func (r *DocumentRepository) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[doc.ID]; exists {
		return domain.WrapError(domain.ErrInvalidInput, "create document", fmt.Errorf("duplicate id %s", doc.ID))
	}
	stored := *doc
	stored.Tags = copyTags(doc.Tags)
	r.order = append(r.order, doc.ID)
	r.docs[doc.ID] = stored
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get document", fmt.Errorf("id=%s", id))
	}
	copyDoc := doc
	copyDoc.Tags = copyTags(doc.Tags)
	return &copyDoc, nil
}

// List returns documents in insertion order.
func (r *DocumentRepository) List(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Document, 0, len(r.order))
	for _, id := range r.order {
		doc := r.docs[id]
		doc.Tags = copyTags(doc.Tags)
		out = append(out, doc)
	}
	return out, nil
}

func (r *DocumentRepository) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "update document status", fmt.Errorf("id=%s", id))
	}
	doc.Status = status
	doc.Error = errMessage
	doc.UpdatedAt = time.Now().UTC()
	r.docs[id] = doc
	return nil
}

func (r *DocumentRepository) SaveClassification(_ context.Context, id string, cls domain.Classification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "save classification", fmt.Errorf("id=%s", id))
	}
	doc.Category = cls.Category
	doc.Tags = copyTags(cls.Tags)
	doc.Confidence = cls.Confidence
	doc.Summary = cls.Summary
	doc.UpdatedAt = time.Now().UTC()
	r.docs[id] = doc
	return nil
}

func copyTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
