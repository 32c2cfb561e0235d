package postgres

import (
	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/repositories"
)

// SharedHelpers contains common query builders
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyCourseFilters applies catalogue filters to course queries
func (h *SharedHelpers) ApplyCourseFilters(query *gorm.DB, filters repositories.CourseFilters) *gorm.DB {
	if filters.Category != nil && *filters.Category != "" {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.JobRole != nil && *filters.JobRole != "" {
		query = query.Where("job_role = ?", *filters.JobRole)
	}
	if filters.IsPremium != nil {
		query = query.Where("is_premium = ?", *filters.IsPremium)
	}
	if filters.Level != nil && *filters.Level != "" {
		query = query.Where("level = ?", *filters.Level)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CreatorID != nil {
		query = query.Where("creator_id = ?", *filters.CreatorID)
	}
	return query
}

// ApplyJobFilters applies board filters to job queries
func (h *SharedHelpers) ApplyJobFilters(query *gorm.DB, filters repositories.JobFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PostedBy != nil {
		query = query.Where("posted_by = ?", *filters.PostedBy)
	}
	if filters.Type != nil && *filters.Type != "" {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Remote != nil && *filters.Remote != "" {
		query = query.Where("remote = ?", *filters.Remote)
	}
	if filters.Query != nil && *filters.Query != "" {
		like := "%" + *filters.Query + "%"
		query = query.Where("title LIKE ? OR company LIKE ?", like, like)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at":  true,
		"updated_at":  true,
		"id":          true,
		"title":       true,
		"status":      true,
		"price":       true,
		"level":       true,
		"match_score": true,
		"applied_at":  true,
		"enrolled_at": true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
