package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/magmaminds/admissions/services/catalog/domain/models"
)

func course(id int64, name, price, duration, category string) models.Course {
	return models.Course{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Duration: duration,
		Category: category,
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	g := GroupByCategory(nil)
	if g.Len() != 0 {
		t.Fatalf("expected no categories, got %d", g.Len())
	}
}

func TestGroupByCategory_ExactMembership(t *testing.T) {
	rows := []models.Course{
		course(1, "Python Basics", "4999.00", "2 months", "Programming"),
		course(2, "UI Fundamentals", "3999.50", "6 weeks", "Design"),
		course(3, "Go in Practice", "7999.00", "3 months", "Programming"),
		course(4, "Figma Pro", "2999.00", "4 weeks", "Design"),
		course(5, "Data Science", "24999.00", "6 months", "Analytics"),
	}

	g := GroupByCategory(rows)

	if got := g.Categories(); len(got) != 3 || got[0] != "Programming" || got[1] != "Design" || got[2] != "Analytics" {
		t.Fatalf("unexpected category order: %v", got)
	}

	total := 0
	g.Each(func(category string, courses []models.CourseSummary) {
		total += len(courses)
		for _, cs := range courses {
			var src models.Course
			for _, r := range rows {
				if r.ID == cs.ID {
					src = r
				}
			}
			if src.Category != category {
				t.Errorf("course %d grouped under %q, belongs to %q", cs.ID, category, src.Category)
			}
			if src.Name != cs.Name || src.Duration != cs.Duration || !src.Price.Equal(cs.Price) {
				t.Errorf("course %d fields not preserved: %+v vs %+v", cs.ID, cs, src)
			}
		}
	})
	if total != len(rows) {
		t.Fatalf("expected %d courses across groups, got %d", len(rows), total)
	}
}

func TestGroupByCategory_KeepsRowOrderWithinCategory(t *testing.T) {
	rows := []models.Course{
		course(9, "Later", "1.00", "1 week", "X"),
		course(2, "Earlier", "1.00", "1 week", "X"),
	}
	got := GroupByCategory(rows).Courses("X")
	if len(got) != 2 || got[0].ID != 9 || got[1].ID != 2 {
		t.Fatalf("row order not preserved: %+v", got)
	}
}
