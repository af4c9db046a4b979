package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/officemate/office-mate/internal/core/domain"
)

func searchFixtures() []domain.Document {
	return []domain.Document{
		{
			ID:        "1",
			Filename:  "Budget_Report_Q4.pdf",
			Category:  domain.CategoryFinance,
			Tags:      []string{"budget"},
			CreatedAt: time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Filename:  "Employee_Onboarding_Guide.docx",
			Category:  domain.CategoryHR,
			Tags:      []string{"onboarding", "policy"},
			CreatedAt: time.Date(2024, 12, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			Filename:  "HVAC_Service_Schedule.xlsx",
			Category:  domain.CategoryMaintenance,
			Tags:      []string{"hvac", "schedule"},
			CreatedAt: time.Date(2024, 12, 12, 11, 45, 0, 0, time.UTC),
		},
	}
}

func newSearchServiceForTest() *DocumentSearchService {
	return NewDocumentSearchService(newDocRepoFake(searchFixtures()...), newTaskRepoFake())
}

func TestSearchEmptyQueryAllCategoryReturnsEverything(t *testing.T) {
	svc := newSearchServiceForTest()

	docs, err := svc.Search(context.Background(), domain.SearchFilter{Query: "", Category: "all"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected full set, got %d", len(docs))
	}
}

func TestSearchCombinesTextAndCategoryPredicates(t *testing.T) {
	svc := newSearchServiceForTest()

	docs, err := svc.Search(context.Background(), domain.SearchFilter{Query: "budget", Category: "Finance"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "1" {
		t.Fatalf("expected doc 1, got %+v", docs)
	}

	docs, err = svc.Search(context.Background(), domain.SearchFilter{Query: "budget", Category: "HR"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("text match in the wrong category must not pass: %+v", docs)
	}
}

func TestSearchMatchesTagsCaseInsensitively(t *testing.T) {
	svc := newSearchServiceForTest()

	docs, err := svc.Search(context.Background(), domain.SearchFilter{Query: "HVAC"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "3" {
		t.Fatalf("expected tag match on doc 3, got %+v", docs)
	}

	docs, err = svc.Search(context.Background(), domain.SearchFilter{Query: "onboard"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "2" {
		t.Fatalf("expected substring tag match on doc 2, got %+v", docs)
	}
}

func TestSearchAppliesDateBounds(t *testing.T) {
	svc := newSearchServiceForTest()
	from := time.Date(2024, 12, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 14, 23, 59, 59, 0, time.UTC)

	docs, err := svc.Search(context.Background(), domain.SearchFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "2" {
		t.Fatalf("expected only doc 2 inside the window, got %+v", docs)
	}

	docs, err = svc.Search(context.Background(), domain.SearchFilter{From: &from})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("open-ended upper bound should keep docs 1 and 2, got %+v", docs)
	}
}

func TestGetDetailsCollectsLinkedTasks(t *testing.T) {
	docs := newDocRepoFake(searchFixtures()...)
	tasks := newTaskRepoFake()
	svc := NewDocumentSearchService(docs, tasks)

	seed := []domain.Task{
		{ID: "t1", Title: "review budget", DocumentID: "1"},
		{ID: "t2", Title: "unrelated"},
		{ID: "t3", Title: "file budget", DocumentID: "1"},
	}
	for i := range seed {
		if err := tasks.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	details, err := svc.GetDetails(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if details.Filename != "Budget_Report_Q4.pdf" {
		t.Fatalf("unexpected document: %+v", details.Document)
	}
	if len(details.LinkedTasks) != 2 || details.LinkedTasks[0].ID != "t1" || details.LinkedTasks[1].ID != "t3" {
		t.Fatalf("unexpected linked tasks: %+v", details.LinkedTasks)
	}
}

func TestGetDetailsMissingDocumentReturnsNotFound(t *testing.T) {
	svc := newSearchServiceForTest()

	_, err := svc.GetDetails(context.Background(), "nope")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
