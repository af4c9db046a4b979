package domain

// DashboardSummary is the aggregate read model for the dashboard view.
// DueSoon counts non-completed tasks whose due date lies strictly after the
// reference day and within the configured forward window; a task due today is
// not counted here even though it shows up in the due-today bucket.
type DashboardSummary struct {
	TotalDocuments  int              `json:"total_documents"`
	OpenTasks       int              `json:"open_tasks"`
	DueSoon         int              `json:"due_soon"`
	CategoryCounts  map[Category]int `json:"category_counts"`
	UrgentTasks     []Task           `json:"urgent_tasks"`
	RecentDocuments []Document       `json:"recent_documents"`
}
