package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/service"
	"github.com/alexkm13/scarlet-planner/pkg/response"
)

// CourseHandler exposes catalog endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// Search godoc
// @Summary Search catalog courses
// @Tags Courses
// @Produce json
// @Param q query string false "Search by code, title or instructor"
// @Param subject query string false "Comma separated department codes"
// @Param term query string false "Comma separated term labels"
// @Param hub query string false "Comma separated Hub requirements"
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) Search(c *gin.Context) {
	var filter models.CourseFilter
	filter.Query = strings.TrimSpace(c.Query("q"))
	filter.Subjects = splitCSV(c.Query("subject"))
	filter.Terms = splitCSV(c.Query("term"))
	filter.HubUnits = splitCSV(c.Query("hub"))
	filter.Statuses = splitCSV(c.Query("status"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	result, err := h.courses.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Courses, &result.Pagination, map[string]interface{}{"cached": result.CacheHit})
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Subjects godoc
// @Summary List catalog subjects
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/subjects [get]
func (h *CourseHandler) Subjects(c *gin.Context) {
	subjects, err := h.courses.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Terms godoc
// @Summary List catalog terms
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/terms [get]
func (h *CourseHandler) Terms(c *gin.Context) {
	terms, err := h.courses.Terms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}

// HubUnits godoc
// @Summary List catalog Hub requirements
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/hub-units [get]
func (h *CourseHandler) HubUnits(c *gin.Context) {
	units, err := h.courses.HubUnits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, units, nil)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
