package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
	"github.com/officemate/office-mate/internal/core/ports"
)

// DashboardOptions bound the dashboard's list sections.
type DashboardOptions struct {
	DueSoonWindowDays int
	UrgentTaskLimit   int
	RecentDocLimit    int
}

func (o DashboardOptions) normalize() DashboardOptions {
	if o.DueSoonWindowDays <= 0 {
		o.DueSoonWindowDays = 7
	}
	if o.UrgentTaskLimit <= 0 {
		o.UrgentTaskLimit = 3
	}
	if o.RecentDocLimit <= 0 {
		o.RecentDocLimit = 5
	}
	return o
}

// DashboardService composes the stores into the summary view.
type DashboardService struct {
	docs  ports.DocumentRepository
	tasks ports.TaskRepository
	opts  DashboardOptions
	now   func() time.Time
}

func NewDashboardService(
	docs ports.DocumentRepository,
	tasks ports.TaskRepository,
	opts DashboardOptions,
	now func() time.Time,
) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		docs:  docs,
		tasks: tasks,
		opts:  opts.normalize(),
		now:   now,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	openTasks := 0
	for _, task := range tasks {
		if task.Status != domain.TaskStatusCompleted {
			openTasks++
		}
	}

	counts := make(map[domain.Category]int, len(domain.Categories()))
	for _, category := range domain.Categories() {
		counts[category] = 0
	}
	for _, doc := range docs {
		counts[doc.Category]++
	}

	return &domain.DashboardSummary{
		TotalDocuments:  len(docs),
		OpenTasks:       openTasks,
		DueSoon:         DueSoonCount(tasks, s.now(), s.opts.DueSoonWindowDays),
		CategoryCounts:  counts,
		UrgentTasks:     urgentTasks(tasks, s.opts.UrgentTaskLimit),
		RecentDocuments: recentDocuments(docs, s.opts.RecentDocLimit),
	}, nil
}

// urgentTasks returns open high-priority tasks, most recent first, capped to
// the display limit.
func urgentTasks(tasks []domain.Task, limit int) []domain.Task {
	urgent := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.Status != domain.TaskStatusCompleted && task.Priority == domain.TaskPriorityHigh {
			urgent = append(urgent, task)
		}
	}
	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].CreatedAt.After(urgent[j].CreatedAt)
	})
	if len(urgent) > limit {
		urgent = urgent[:limit]
	}
	return urgent
}

func recentDocuments(docs []domain.Document, limit int) []domain.Document {
	recent := make([]domain.Document, len(docs))
	copy(recent, docs)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
