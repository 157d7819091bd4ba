package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/schedule"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
)

type selectionStore interface {
	ListPlans(ctx context.Context, userID string) ([]models.Plan, error)
	FindPlan(ctx context.Context, userID, planID string) (*models.Plan, error)
	CreatePlan(ctx context.Context, userID, name, term string) (*models.Plan, error)
	DeletePlan(ctx context.Context, userID, planID string) error
	ListCourseIDs(ctx context.Context, planID string) ([]string, error)
	AddCourse(ctx context.Context, planID, courseID string) error
	RemoveCourse(ctx context.Context, planID, courseID string) error
	Clear(ctx context.Context, planID string) error
	Replace(ctx context.Context, planID string, courseIDs []string) error
}

type courseCatalog interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Course, error)
}

// PlanResult pairs a plan with its derived schedule snapshot.
type PlanResult struct {
	Plan     models.Plan             `json:"plan"`
	Schedule models.ScheduleSnapshot `json:"schedule"`
}

// AddCourseResult reports a snapshot after an add along with the
// conflicts introduced by the newly added course.
type AddCourseResult struct {
	Plan         models.Plan               `json:"plan"`
	Schedule     models.ScheduleSnapshot   `json:"schedule"`
	NewConflicts []models.ScheduleConflict `json:"new_conflicts"`
}

// PlannerService owns course selections and derives schedules from
// them. Every mutation recomputes the snapshot from scratch.
type PlannerService struct {
	plans   selectionStore
	catalog courseCatalog
	metrics *MetricsService
	logger  *zap.Logger
}

// NewPlannerService constructs a planner service.
func NewPlannerService(plans selectionStore, catalog courseCatalog, metrics *MetricsService, logger *zap.Logger) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{plans: plans, catalog: catalog, metrics: metrics, logger: logger}
}

// ListPlans returns the user's plans.
func (s *PlannerService) ListPlans(ctx context.Context, userID string) ([]models.Plan, error) {
	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	return plans, nil
}

// CreatePlan creates a new empty plan.
func (s *PlannerService) CreatePlan(ctx context.Context, userID, name, term string) (*models.Plan, error) {
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "plan name is required")
	}
	plan, err := s.plans.CreatePlan(ctx, userID, name, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create plan")
	}
	return plan, nil
}

// DeletePlan removes a plan owned by the user.
func (s *PlannerService) DeletePlan(ctx context.Context, userID, planID string) error {
	if err := s.plans.DeletePlan(ctx, userID, planID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete plan")
	}
	return nil
}

// Get returns the plan with its current schedule snapshot.
func (s *PlannerService) Get(ctx context.Context, userID, planID string) (*PlanResult, error) {
	plan, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.buildSnapshot(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: *plan, Schedule: snapshot}, nil
}

// AddCourse adds a course to the selection and reports the conflicts
// the addition introduced. Adding a course already in the plan is a
// no-op that still returns the current snapshot.
func (s *PlannerService) AddCourse(ctx context.Context, userID, planID, courseID string) (*AddCourseResult, error) {
	plan, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	before, err := s.buildSnapshot(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := s.plans.AddCourse(ctx, planID, courseID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add course")
	}
	after, err := s.buildSnapshot(ctx, planID)
	if err != nil {
		return nil, err
	}

	return &AddCourseResult{
		Plan:         *plan,
		Schedule:     after,
		NewConflicts: conflictDelta(before.Conflicts, after.Conflicts),
	}, nil
}

// RemoveCourse drops a course from the selection.
func (s *PlannerService) RemoveCourse(ctx context.Context, userID, planID, courseID string) (*PlanResult, error) {
	plan, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if err := s.plans.RemoveCourse(ctx, planID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not in plan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove course")
	}
	snapshot, err := s.buildSnapshot(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: *plan, Schedule: snapshot}, nil
}

// Clear empties the selection, leaving the plan itself in place.
func (s *PlannerService) Clear(ctx context.Context, userID, planID string) (*PlanResult, error) {
	plan, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Clear(ctx, planID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear plan")
	}
	return &PlanResult{Plan: *plan, Schedule: schedule.EmptySnapshot()}, nil
}

// Replace swaps the selection wholesale with the given ordered ids.
// Unknown ids are rejected before anything is written.
func (s *PlannerService) Replace(ctx context.Context, userID, planID string, courseIDs []string) (*PlanResult, error) {
	plan, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	courses, err := s.catalog.FindByIDs(ctx, courseIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	if len(courses) != len(dedupe(courseIDs)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "one or more course ids are unknown")
	}
	if err := s.plans.Replace(ctx, planID, dedupe(courseIDs)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace courses")
	}
	snapshot, err := s.buildSnapshot(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &PlanResult{Plan: *plan, Schedule: snapshot}, nil
}

// Validate derives the conflict report for an arbitrary course id list
// without touching any stored plan.
func (s *PlannerService) Validate(ctx context.Context, courseIDs []string) (*models.ScheduleValidation, error) {
	courses, err := s.resolveCourses(ctx, dedupe(courseIDs))
	if err != nil {
		return nil, err
	}
	snapshot := s.derive(courses)
	return &models.ScheduleValidation{
		Valid:        !snapshot.HasConflicts,
		Conflicts:    snapshot.Conflicts,
		TotalCredits: snapshot.TotalCredits,
	}, nil
}

// Snapshot returns the derived schedule for a plan. Export flows use
// this together with the resolved course list.
func (s *PlannerService) Snapshot(ctx context.Context, userID, planID string) (*models.Plan, []models.Course, models.ScheduleSnapshot, error) {
	plan, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, nil, models.ScheduleSnapshot{}, err
	}
	ids, err := s.plans.ListCourseIDs(ctx, planID)
	if err != nil {
		return nil, nil, models.ScheduleSnapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plan courses")
	}
	courses, err := s.resolveCourses(ctx, ids)
	if err != nil {
		return nil, nil, models.ScheduleSnapshot{}, err
	}
	return plan, courses, s.derive(courses), nil
}

func (s *PlannerService) loadPlan(ctx context.Context, userID, planID string) (*models.Plan, error) {
	plan, err := s.plans.FindPlan(ctx, userID, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan")
	}
	return plan, nil
}

func (s *PlannerService) buildSnapshot(ctx context.Context, planID string) (models.ScheduleSnapshot, error) {
	ids, err := s.plans.ListCourseIDs(ctx, planID)
	if err != nil {
		return models.ScheduleSnapshot{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plan courses")
	}
	courses, err := s.resolveCourses(ctx, ids)
	if err != nil {
		return models.ScheduleSnapshot{}, err
	}
	return s.derive(courses), nil
}

// resolveCourses loads courses and restores the selection order, which
// FindByIDs does not guarantee.
func (s *PlannerService) resolveCourses(ctx context.Context, ids []string) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	loaded, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	byID := make(map[string]models.Course, len(loaded))
	for _, course := range loaded {
		byID[course.ID] = course
	}
	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := byID[id]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (s *PlannerService) derive(courses []models.Course) models.ScheduleSnapshot {
	start := time.Now()
	snapshot := schedule.Build(courses)
	if s.metrics != nil {
		s.metrics.ObserveScheduleBuild(time.Since(start))
	}
	return snapshot
}

// conflictDelta returns conflicts present in after but not in before.
func conflictDelta(before, after []models.ScheduleConflict) []models.ScheduleConflict {
	seen := make(map[models.ScheduleConflict]bool, len(before))
	for _, c := range before {
		seen[c] = true
	}
	delta := []models.ScheduleConflict{}
	for _, c := range after {
		if !seen[c] {
			delta = append(delta, c)
		}
	}
	return delta
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
