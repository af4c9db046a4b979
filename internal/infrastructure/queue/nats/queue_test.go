package nats

import (
	"testing"
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
)

func TestEventRoundTripKeepsPublishInstant(t *testing.T) {
	published := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	payload, err := encodeEvent(domain.DocumentUploadedEvent{
		DocumentID:  "doc-1",
		PublishedAt: published,
	})
	if err != nil {
		t.Fatalf("encodeEvent() error = %v", err)
	}

	event, err := decodeEvent(payload)
	if err != nil {
		t.Fatalf("decodeEvent() error = %v", err)
	}
	if event.DocumentID != "doc-1" {
		t.Fatalf("expected document id doc-1, got %q", event.DocumentID)
	}
	if !event.PublishedAt.Equal(published) {
		t.Fatalf("publish instant must survive the wire, got %v", event.PublishedAt)
	}
}

func TestDecodeEventRejectsBadPayloads(t *testing.T) {
	if _, err := decodeEvent([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
	if _, err := decodeEvent([]byte(`{"published_at":"2025-03-10T12:00:00Z"}`)); err == nil {
		t.Fatalf("expected error for missing document_id")
	}
}
