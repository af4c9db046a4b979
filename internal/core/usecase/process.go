package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/officemate/office-mate/internal/core/domain"
	"github.com/officemate/office-mate/internal/core/ports"
)

// ProcessDocumentUseCase runs the worker-side pipeline: extract text from the
// stored file, classify it, persist the classification and flip the document
// to ready. Any failure marks the document failed with the error message.
type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
	}
}

// ProcessByID returns the classification it persisted so callers can record
// confidence per category.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (domain.Classification, error) {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return domain.Classification{}, fmt.Errorf("set status=processing: %w", err)
	}

	classification, err := uc.classifyDocument(ctx, documentID)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return domain.Classification{}, fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return domain.Classification{}, err
	}

	if err := uc.repo.SaveClassification(ctx, documentID, classification); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return domain.Classification{}, fmt.Errorf("save classification: %w; mark failed status: %v", err, failErr)
		}
		return domain.Classification{}, fmt.Errorf("save classification: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return domain.Classification{}, fmt.Errorf("set status=ready: %w", err)
	}
	return classification, nil
}

func (uc *ProcessDocumentUseCase) classifyDocument(ctx context.Context, documentID string) (domain.Classification, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("extract text: %w", err)
	}
	// Scanned images and empty files yield no text; fall back to the filename
	// so the document still ends up in one of the fixed categories.
	if strings.TrimSpace(text) == "" {
		text = doc.Filename
	}

	classification, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classify document: %w", err)
	}
	return classification, nil
}
