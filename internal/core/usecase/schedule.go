package usecase

import (
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
)

// GroupTasks partitions tasks into the four temporal buckets relative to the
// given instant. Completed tasks land in Completed regardless of due date;
// the remaining buckets compare due dates at calendar-day granularity. A
// non-completed task without a due date is deliberately left out of every
// bucket: it only shows up in the flat listing.
func GroupTasks(tasks []domain.Task, now time.Time) domain.TaskGroups {
	groups := domain.TaskGroups{
		Overdue:   make([]domain.Task, 0),
		DueToday:  make([]domain.Task, 0),
		Upcoming:  make([]domain.Task, 0),
		Completed: make([]domain.Task, 0),
	}
	today := dayOf(now)

	for _, task := range tasks {
		if task.Status == domain.TaskStatusCompleted {
			groups.Completed = append(groups.Completed, task)
			continue
		}
		if task.DueDate == nil {
			continue
		}
		due := dayOf(*task.DueDate)
		switch {
		case due.Before(today):
			groups.Overdue = append(groups.Overdue, task)
		case due.Equal(today):
			groups.DueToday = append(groups.DueToday, task)
		default:
			groups.Upcoming = append(groups.Upcoming, task)
		}
	}
	return groups
}

// DueSoonCount counts non-completed tasks due strictly after today and no
// later than windowDays days out. A task due today does not count; that is
// the due-today bucket's business.
func DueSoonCount(tasks []domain.Task, now time.Time, windowDays int) int {
	today := dayOf(now)
	horizon := today.AddDate(0, 0, windowDays)

	count := 0
	for _, task := range tasks {
		if task.Status == domain.TaskStatusCompleted || task.DueDate == nil {
			continue
		}
		due := dayOf(*task.DueDate)
		if due.After(today) && !due.After(horizon) {
			count++
		}
	}
	return count
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
