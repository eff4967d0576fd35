package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGroupedCatalog_ZeroValue(t *testing.T) {
	var g GroupedCatalog
	if g.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d categories", g.Len())
	}
	if g.Courses("Anything") != nil {
		t.Fatal("expected nil courses for unknown category")
	}
}

func TestGroupedCatalog_FirstSeenOrder(t *testing.T) {
	var g GroupedCatalog
	g.Add("Programming", CourseSummary{ID: 3})
	g.Add("Design", CourseSummary{ID: 1})
	g.Add("Programming", CourseSummary{ID: 2})

	cats := g.Categories()
	if len(cats) != 2 || cats[0] != "Programming" || cats[1] != "Design" {
		t.Fatalf("unexpected category order: %v", cats)
	}

	prog := g.Courses("Programming")
	if len(prog) != 2 || prog[0].ID != 3 || prog[1].ID != 2 {
		t.Fatalf("unexpected course order: %+v", prog)
	}
}

func TestGroupedCatalog_CategoriesIsACopy(t *testing.T) {
	var g GroupedCatalog
	g.Add("A", CourseSummary{ID: 1})

	cats := g.Categories()
	cats[0] = "mutated"

	if g.Categories()[0] != "A" {
		t.Fatal("Categories must not expose internal state")
	}
}

func TestGroupedCatalog_Each(t *testing.T) {
	var g GroupedCatalog
	g.Add("B", CourseSummary{ID: 1})
	g.Add("A", CourseSummary{ID: 2})

	var seen []string
	g.Each(func(category string, courses []CourseSummary) {
		seen = append(seen, category)
		if len(courses) != 1 {
			t.Errorf("%s: expected 1 course, got %d", category, len(courses))
		}
	})
	if len(seen) != 2 || seen[0] != "B" || seen[1] != "A" {
		t.Fatalf("unexpected iteration order: %v", seen)
	}
}

func TestCourse_Summary(t *testing.T) {
	c := Course{
		ID:       7,
		Name:     "Data Science",
		Price:    decimal.RequireFromString("24999.00"),
		Duration: "6 months",
		Category: "Analytics",
	}
	s := c.Summary()
	if s.ID != 7 || s.Name != "Data Science" || s.Duration != "6 months" {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !s.Price.Equal(c.Price) {
		t.Fatalf("price not preserved: %s", s.Price)
	}
}
