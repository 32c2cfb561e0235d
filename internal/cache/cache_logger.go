package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern and logs failures
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys and logs failures
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// CourseKey is the cache key of a single course
func CourseKey(courseID uint) string {
	return fmt.Sprintf("id:%d", courseID)
}

// InsightKey is the cache key of an industry insight
func InsightKey(industry string) string {
	return "industry:" + industry
}

// CourseStatsKey is the cache key of a course's enrollment count
func CourseStatsKey(courseID uint) string {
	return fmt.Sprintf("course:%d:enrollments", courseID)
}

// InvalidateCourseCache drops a course and everything derived from it
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeDelete(ctx, cm.Course, CourseKey(courseID))
	SafeDelete(ctx, cm.Stats, CourseStatsKey(courseID))
}

// InvalidateEnrollmentStats drops cached enrollment counts for a course
func InvalidateEnrollmentStats(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeDelete(ctx, cm.Stats, CourseStatsKey(courseID))
}

// InvalidateInsightCache drops a cached industry insight
func InvalidateInsightCache(ctx context.Context, cm *CacheManager, industry string) {
	SafeDelete(ctx, cm.Insight, InsightKey(industry))
}

// InvalidateUserCache drops every cached entry for a user
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID string) {
	SafeInvalidatePattern(ctx, cm.User, userID+":*")
	SafeDelete(ctx, cm.User, userID)
}
