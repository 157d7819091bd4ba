package handler

import (
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

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/service"
)

type courseRepoStub struct {
	courses    []models.Course
	lastFilter models.CourseFilter
}

func (s *courseRepoStub) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	s.lastFilter = filter
	return s.courses, len(s.courses), nil
}

func (s *courseRepoStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	for _, c := range s.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *courseRepoStub) Subjects(ctx context.Context) ([]string, error) {
	return []string{"CS"}, nil
}

func (s *courseRepoStub) Terms(ctx context.Context) ([]string, error) {
	return []string{"Fall 2025"}, nil
}

func (s *courseRepoStub) HubUnits(ctx context.Context) ([]string, error) {
	return []string{"Critical Thinking", "Quantitative Reasoning I"}, nil
}

func TestCourseHandlerSearchParsesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &courseRepoStub{courses: []models.Course{{ID: "c1", Code: "CAS CS 111"}}}
	handler := NewCourseHandler(service.NewCourseService(repo, nil, time.Minute, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses?q=intro&subject=CS,MA&term=Fall+2025&hub=Critical+Thinking&page=2&limit=10", nil)

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "intro", repo.lastFilter.Query)
	assert.Equal(t, []string{"CS", "MA"}, repo.lastFilter.Subjects)
	assert.Equal(t, []string{"Fall 2025"}, repo.lastFilter.Terms)
	assert.Equal(t, []string{"Critical Thinking"}, repo.lastFilter.HubUnits)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 10, repo.lastFilter.PageSize)

	var envelope struct {
		Data       []models.Course    `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}

func TestCourseHandlerHubUnits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(service.NewCourseService(&courseRepoStub{}, nil, time.Minute, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/hub-units", nil)

	handler.HubUnits(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []string{"Critical Thinking", "Quantitative Reasoning I"}, envelope.Data)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(service.NewCourseService(&courseRepoStub{}, nil, time.Minute, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
