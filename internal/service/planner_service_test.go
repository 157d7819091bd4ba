package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/schedule"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
)

type mockSelectionStore struct {
	plans     map[string]models.Plan
	selection map[string][]string
}

func newMockSelectionStore() *mockSelectionStore {
	return &mockSelectionStore{
		plans:     map[string]models.Plan{},
		selection: map[string][]string{},
	}
}

func (m *mockSelectionStore) ListPlans(ctx context.Context, userID string) ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range m.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockSelectionStore) FindPlan(ctx context.Context, userID, planID string) (*models.Plan, error) {
	if p, ok := m.plans[planID]; ok && p.UserID == userID {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSelectionStore) CreatePlan(ctx context.Context, userID, name, term string) (*models.Plan, error) {
	p := models.Plan{ID: "plan-" + name, UserID: userID, Name: name, Term: term, CreatedAt: time.Now()}
	m.plans[p.ID] = p
	return &p, nil
}

func (m *mockSelectionStore) DeletePlan(ctx context.Context, userID, planID string) error {
	if p, ok := m.plans[planID]; !ok || p.UserID != userID {
		return sql.ErrNoRows
	}
	delete(m.plans, planID)
	delete(m.selection, planID)
	return nil
}

func (m *mockSelectionStore) ListCourseIDs(ctx context.Context, planID string) ([]string, error) {
	return m.selection[planID], nil
}

func (m *mockSelectionStore) AddCourse(ctx context.Context, planID, courseID string) error {
	for _, id := range m.selection[planID] {
		if id == courseID {
			return nil
		}
	}
	m.selection[planID] = append(m.selection[planID], courseID)
	return nil
}

func (m *mockSelectionStore) RemoveCourse(ctx context.Context, planID, courseID string) error {
	ids := m.selection[planID]
	for i, id := range ids {
		if id == courseID {
			m.selection[planID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockSelectionStore) Clear(ctx context.Context, planID string) error {
	m.selection[planID] = nil
	return nil
}

func (m *mockSelectionStore) Replace(ctx context.Context, planID string, courseIDs []string) error {
	m.selection[planID] = append([]string(nil), courseIDs...)
	return nil
}

type mockCatalog struct {
	courses map[string]models.Course
}

func (m *mockCatalog) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCatalog) FindByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	var out []models.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func catalogCourse(id, code, days, start, end string, credits int) models.Course {
	return models.Course{
		ID:      id,
		Code:    code,
		Title:   "Course " + code,
		Section: "A1",
		Term:    "Fall 2025",
		Credits: credits,
		Meetings: models.MeetingList{
			{Days: days, StartTime: start, EndTime: end, Location: "CAS 224"},
		},
	}
}

func newTestPlanner(courses ...models.Course) (*PlannerService, *mockSelectionStore) {
	store := newMockSelectionStore()
	catalog := &mockCatalog{courses: map[string]models.Course{}}
	for _, c := range courses {
		catalog.courses[c.ID] = c
	}
	return NewPlannerService(store, catalog, nil, zap.NewNop()), store
}

func TestPlannerServiceEmptyPlan(t *testing.T) {
	svc, store := newTestPlanner()
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	result, err := svc.Get(context.Background(), "u1", plan.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.EmptySnapshot(), result.Schedule)
	_ = store
}

func TestPlannerServiceAddCourseReportsNewConflicts(t *testing.T) {
	lecture := catalogCourse("c1", "CAS CS 111", "MoWeFr", "10:10 AM", "11:00 AM", 4)
	clash := catalogCourse("c2", "CAS MA 123", "Mo", "10:30 AM", "11:20 AM", 4)
	svc, _ := newTestPlanner(lecture, clash)

	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	first, err := svc.AddCourse(context.Background(), "u1", plan.ID, "c1")
	require.NoError(t, err)
	assert.Empty(t, first.NewConflicts)
	assert.False(t, first.Schedule.HasConflicts)

	second, err := svc.AddCourse(context.Background(), "u1", plan.ID, "c2")
	require.NoError(t, err)
	require.Len(t, second.NewConflicts, 1)
	assert.Equal(t, "Monday", second.NewConflicts[0].Day)
	assert.Equal(t, 30, second.NewConflicts[0].OverlapMinutes)
	assert.True(t, second.Schedule.HasConflicts)
	assert.Equal(t, 8, second.Schedule.TotalCredits)
}

func TestPlannerServiceAddDuplicateIsIdempotent(t *testing.T) {
	lecture := catalogCourse("c1", "CAS CS 111", "MoWeFr", "10:10 AM", "11:00 AM", 4)
	svc, _ := newTestPlanner(lecture)
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	_, err = svc.AddCourse(context.Background(), "u1", plan.ID, "c1")
	require.NoError(t, err)
	result, err := svc.AddCourse(context.Background(), "u1", plan.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Schedule.CourseCount)
	assert.Empty(t, result.NewConflicts)
}

func TestPlannerServiceAddUnknownCourse(t *testing.T) {
	svc, _ := newTestPlanner()
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	_, err = svc.AddCourse(context.Background(), "u1", plan.ID, "nope")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPlannerServiceRemoveCourse(t *testing.T) {
	lecture := catalogCourse("c1", "CAS CS 111", "MoWeFr", "10:10 AM", "11:00 AM", 4)
	svc, _ := newTestPlanner(lecture)
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)
	_, err = svc.AddCourse(context.Background(), "u1", plan.ID, "c1")
	require.NoError(t, err)

	result, err := svc.RemoveCourse(context.Background(), "u1", plan.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, schedule.EmptySnapshot(), result.Schedule)

	_, err = svc.RemoveCourse(context.Background(), "u1", plan.ID, "c1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPlannerServiceReplaceRejectsUnknownIDs(t *testing.T) {
	lecture := catalogCourse("c1", "CAS CS 111", "MoWeFr", "10:10 AM", "11:00 AM", 4)
	svc, _ := newTestPlanner(lecture)
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	_, err = svc.Replace(context.Background(), "u1", plan.ID, []string{"c1", "ghost"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestPlannerServiceReplacePreservesOrder(t *testing.T) {
	a := catalogCourse("c1", "CAS CS 111", "Mo", "9:00 AM", "10:00 AM", 4)
	b := catalogCourse("c2", "CAS MA 123", "Tu", "9:00 AM", "10:00 AM", 4)
	svc, _ := newTestPlanner(a, b)
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	result, err := svc.Replace(context.Background(), "u1", plan.ID, []string{"c2", "c1"})
	require.NoError(t, err)
	require.Len(t, result.Schedule.Courses, 2)
	assert.Equal(t, "c2", result.Schedule.Courses[0].ID)
	assert.Equal(t, "c1", result.Schedule.Courses[1].ID)
	for _, event := range result.Schedule.Events {
		if event.CourseID == "c2" {
			assert.Equal(t, schedule.ColorFor(0), event.Color)
		} else {
			assert.Equal(t, schedule.ColorFor(1), event.Color)
		}
	}
}

func TestPlannerServiceValidate(t *testing.T) {
	a := catalogCourse("c1", "CAS CS 111", "MoWeFr", "10:10 AM", "11:00 AM", 4)
	b := catalogCourse("c2", "CAS MA 123", "Mo", "10:30 AM", "11:20 AM", 4)
	svc, _ := newTestPlanner(a, b)

	valid, err := svc.Validate(context.Background(), []string{"c1"})
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, 4, valid.TotalCredits)

	invalid, err := svc.Validate(context.Background(), []string{"c1", "c2", "c1"})
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
	require.Len(t, invalid.Conflicts, 1)
	assert.Equal(t, 8, invalid.TotalCredits)
}

func TestPlannerServicePlanScoping(t *testing.T) {
	svc, _ := newTestPlanner()
	plan, err := svc.CreatePlan(context.Background(), "u1", "fall", "Fall 2025")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "someone-else", plan.ID)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
