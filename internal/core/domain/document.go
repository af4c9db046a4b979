package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

type Category string

const (
	CategoryFinance     Category = "Finance"
	CategoryHR          Category = "HR"
	CategoryProcurement Category = "Procurement"
	CategoryMaintenance Category = "Maintenance"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{CategoryFinance, CategoryHR, CategoryProcurement, CategoryMaintenance}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFinance, CategoryHR, CategoryProcurement, CategoryMaintenance:
		return true
	}
	return false
}

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Category    Category       `json:"category"`
	Tags        []string       `json:"tags,omitempty"`
	Confidence  float64        `json:"confidence,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type Classification struct {
	Category   Category `json:"category"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
	Summary    string   `json:"summary"`
}

// SearchFilter narrows document searches. An empty or "all" category matches
// every category; nil date bounds are open-ended.
type SearchFilter struct {
	Query    string
	Category string
	From     *time.Time
	To       *time.Time
}

// DocumentDetails is the read model for a single document, including the
// tasks that reference it.
type DocumentDetails struct {
	Document
	LinkedTasks []Task `json:"linked_tasks"`
}

// DocumentUploadedEvent is the queue payload handed from the upload API to
// the processing worker. PublishedAt lets the worker measure how long the
// event sat in the queue.
type DocumentUploadedEvent struct {
	DocumentID  string    `json:"document_id"`
	PublishedAt time.Time `json:"published_at"`
}
