package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/models"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Subjects(ctx context.Context) ([]string, error)
	Terms(ctx context.Context) ([]string, error)
	HubUnits(ctx context.Context) ([]string, error)
}

// CourseSearchResult is a cached catalog page.
type CourseSearchResult struct {
	Courses    []models.Course   `json:"courses"`
	Pagination models.Pagination `json:"pagination"`
	CacheHit   bool              `json:"-"`
}

// CourseService serves catalog lookups with an optional Redis cache in
// front of the database.
type CourseService struct {
	repo   courseRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewCourseService constructs a course service.
func NewCourseService(repo courseRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Search lists catalog courses matching the filter.
func (s *CourseService) Search(ctx context.Context, filter models.CourseFilter) (*CourseSearchResult, error) {
	key := searchCacheKey(filter)
	var cached CourseSearchResult
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		cached.CacheHit = true
		return &cached, nil
	}

	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 50
	}
	result := &CourseSearchResult{
		Courses:    courses,
		Pagination: models.Pagination{Page: page, PageSize: size, TotalCount: total},
	}

	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		s.logger.Warn("failed to cache course search", zap.Error(err))
	}
	return result, nil
}

// Get loads one course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Subjects returns the distinct catalog department codes.
func (s *CourseService) Subjects(ctx context.Context) ([]string, error) {
	const key = "catalog:subjects"
	var cached []string
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	subjects, err := s.repo.Subjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []string{}
	}
	if err := s.cache.Set(ctx, key, subjects, s.ttl); err != nil {
		s.logger.Warn("failed to cache subjects", zap.Error(err))
	}
	return subjects, nil
}

// Terms returns the distinct catalog term labels.
func (s *CourseService) Terms(ctx context.Context) ([]string, error) {
	const key = "catalog:terms"
	var cached []string
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	terms, err := s.repo.Terms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	if terms == nil {
		terms = []string{}
	}
	if err := s.cache.Set(ctx, key, terms, s.ttl); err != nil {
		s.logger.Warn("failed to cache terms", zap.Error(err))
	}
	return terms, nil
}

// HubUnits returns the distinct Hub requirement labels in the catalog.
func (s *CourseService) HubUnits(ctx context.Context) ([]string, error) {
	const key = "catalog:hub_units"
	var cached []string
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	units, err := s.repo.HubUnits(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list hub units")
	}
	if units == nil {
		units = []string{}
	}
	if err := s.cache.Set(ctx, key, units, s.ttl); err != nil {
		s.logger.Warn("failed to cache hub units", zap.Error(err))
	}
	return units, nil
}

func searchCacheKey(filter models.CourseFilter) string {
	return fmt.Sprintf("catalog:search:q=%s|s=%s|t=%s|h=%s|st=%s|p=%d|ps=%d|sb=%s|so=%s",
		strings.ToLower(filter.Query),
		strings.Join(filter.Subjects, ","),
		strings.Join(filter.Terms, ","),
		strings.Join(filter.HubUnits, ","),
		strings.Join(filter.Statuses, ","),
		filter.Page, filter.PageSize, filter.SortBy, filter.SortOrder)
}
