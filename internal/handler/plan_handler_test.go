package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/middleware"
	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/service"
)

type planStoreStub struct {
	plan      models.Plan
	selection []string
}

func (s *planStoreStub) ListPlans(ctx context.Context, userID string) ([]models.Plan, error) {
	return []models.Plan{s.plan}, nil
}

func (s *planStoreStub) FindPlan(ctx context.Context, userID, planID string) (*models.Plan, error) {
	if planID == s.plan.ID && userID == s.plan.UserID {
		return &s.plan, nil
	}
	return nil, sql.ErrNoRows
}

func (s *planStoreStub) CreatePlan(ctx context.Context, userID, name, term string) (*models.Plan, error) {
	return &models.Plan{ID: "p-new", UserID: userID, Name: name, Term: term, CreatedAt: time.Now()}, nil
}

func (s *planStoreStub) DeletePlan(ctx context.Context, userID, planID string) error { return nil }

func (s *planStoreStub) ListCourseIDs(ctx context.Context, planID string) ([]string, error) {
	return s.selection, nil
}

func (s *planStoreStub) AddCourse(ctx context.Context, planID, courseID string) error {
	s.selection = append(s.selection, courseID)
	return nil
}

func (s *planStoreStub) RemoveCourse(ctx context.Context, planID, courseID string) error {
	return nil
}

func (s *planStoreStub) Clear(ctx context.Context, planID string) error { return nil }

func (s *planStoreStub) Replace(ctx context.Context, planID string, courseIDs []string) error {
	s.selection = courseIDs
	return nil
}

type catalogStub struct {
	courses map[string]models.Course
}

func (s *catalogStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *catalogStub) FindByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	var out []models.Course
	for _, id := range ids {
		if c, ok := s.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestPlanHandler() *PlanHandler {
	store := &planStoreStub{plan: models.Plan{ID: "p1", UserID: "u1", Name: "fall", Term: "Fall 2025"}}
	catalog := &catalogStub{courses: map[string]models.Course{
		"c1": {
			ID: "c1", Code: "CAS CS 111", Title: "Intro to CS", Credits: 4,
			Meetings: models.MeetingList{{Days: "MoWeFr", StartTime: "10:10 AM", EndTime: "11:00 AM"}},
		},
		"c2": {
			ID: "c2", Code: "CAS MA 123", Title: "Calculus", Credits: 4,
			Meetings: models.MeetingList{{Days: "Mo", StartTime: "10:30 AM", EndTime: "11:20 AM"}},
		},
	}}
	planner := service.NewPlannerService(store, catalog, nil, zap.NewNop())
	return NewPlanHandler(planner)
}

func TestPlanHandlerGetRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestPlanHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/plans/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}

	handler.Get(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlanHandlerGetReturnsSchedule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestPlanHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/plans/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.PlanResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "p1", envelope.Data.Plan.ID)
	assert.Equal(t, 0, envelope.Data.Schedule.CourseCount)
}

func TestPlanHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestPlanHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandlerValidateIsPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestPlanHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string][]string{"course_ids": {"c1", "c2"}})
	req := httptest.NewRequest(http.MethodPost, "/schedule/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Validate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.ScheduleValidation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Valid)
	require.Len(t, envelope.Data.Conflicts, 1)
	assert.Equal(t, "Monday", envelope.Data.Conflicts[0].Day)
}

func TestPlanHandlerAddCourseUnknownCourse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestPlanHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]string{"course_id": "ghost"})
	req := httptest.NewRequest(http.MethodPost, "/plans/p1/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.AddCourse(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
