package ports

import (
	"context"
	"io"

	"github.com/officemate/office-mate/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// classification. ProcessByID reports the classification it persisted so the
// caller can instrument it.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) (domain.Classification, error)
}

// DocumentFinder is the inbound read model for documents.
type DocumentFinder interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Document, error)
	GetDetails(ctx context.Context, id string) (*domain.DocumentDetails, error)
}

// TaskManager is the inbound contract for task mutation and listing.
type TaskManager interface {
	Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	ToggleCompletion(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)
	Groups(ctx context.Context) (*domain.TaskGroups, error)
}

// DashboardReader produces the aggregate dashboard view.
type DashboardReader interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}
