// Package services contains stateless domain services for the catalog bounded context.
package services

import "github.com/magmaminds/admissions/services/catalog/domain/models"

// GroupByCategory groups courses by category name. Categories appear in the
// order their first course appears in rows; each course keeps its
// id, name, price and duration unchanged.
func GroupByCategory(rows []models.Course) models.GroupedCatalog {
	var g models.GroupedCatalog
	for _, c := range rows {
		g.Add(c.Category, c.Summary())
	}
	return g
}
