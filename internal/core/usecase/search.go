package usecase

import (
	"context"
	"strings"

	"github.com/officemate/office-mate/internal/core/domain"
	"github.com/officemate/office-mate/internal/core/ports"
)

// DocumentSearchService answers document searches and single-document reads.
type DocumentSearchService struct {
	docs  ports.DocumentRepository
	tasks ports.TaskRepository
}

func NewDocumentSearchService(docs ports.DocumentRepository, tasks ports.TaskRepository) *DocumentSearchService {
	return &DocumentSearchService{
		docs:  docs,
		tasks: tasks,
	}
}

func (s *DocumentSearchService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Document, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if MatchDocument(doc, filter) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// GetDetails returns the document together with the tasks referencing it.
// There is no back-reference on the document; linked tasks are found by
// scanning the task collection.
func (s *DocumentSearchService) GetDetails(ctx context.Context, id string) (*domain.DocumentDetails, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	linked := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.DocumentID == doc.ID {
			linked = append(linked, task)
		}
	}
	return &domain.DocumentDetails{
		Document:    *doc,
		LinkedTasks: linked,
	}, nil
}

// MatchDocument reports whether a document satisfies the filter: the text
// predicate (case-insensitive substring on filename or any tag, vacuously
// true for an empty query) AND the category predicate AND the optional
// created-at bounds.
func MatchDocument(doc domain.Document, filter domain.SearchFilter) bool {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if query != "" {
		if !strings.Contains(strings.ToLower(doc.Filename), query) && !anyTagContains(doc.Tags, query) {
			return false
		}
	}

	category := filter.Category
	if category != "" && category != "all" && string(doc.Category) != category {
		return false
	}

	if filter.From != nil && doc.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && doc.CreatedAt.After(*filter.To) {
		return false
	}
	return true
}

func anyTagContains(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
