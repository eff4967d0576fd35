package models

import "github.com/shopspring/decimal"

// Course is a catalog row joined with its category name.
// Courses are read-only from this service's perspective.
type Course struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Duration string
	Category string
}

// Summary drops the category, which becomes the grouping key.
func (c Course) Summary() CourseSummary {
	return CourseSummary{
		ID:       c.ID,
		Name:     c.Name,
		Price:    c.Price,
		Duration: c.Duration,
	}
}

// CourseSummary is the per-course entry of a GroupedCatalog.
type CourseSummary struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Duration string
}

// GroupedCatalog maps category name to its courses. Categories keep the order
// in which they were first added; courses keep their append order.
// The zero value is an empty catalog ready to use. Readers take a value
// receiver so a returned catalog can be queried directly.
type GroupedCatalog struct {
	order   []string
	courses map[string][]CourseSummary
}

// Add appends a course under category, registering the category on first use.
func (g *GroupedCatalog) Add(category string, c CourseSummary) {
	if g.courses == nil {
		g.courses = make(map[string][]CourseSummary)
	}
	if _, ok := g.courses[category]; !ok {
		g.order = append(g.order, category)
	}
	g.courses[category] = append(g.courses[category], c)
}

// Categories returns category names in first-seen order.
func (g GroupedCatalog) Categories() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Courses returns the courses grouped under category, or nil if absent.
func (g GroupedCatalog) Courses(category string) []CourseSummary {
	return g.courses[category]
}

// Len returns the number of categories.
func (g GroupedCatalog) Len() int {
	return len(g.order)
}

// Each calls fn for every category in first-seen order.
func (g GroupedCatalog) Each(fn func(category string, courses []CourseSummary)) {
	for _, name := range g.order {
		fn(name, g.courses[name])
	}
}
