package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexkm13/scarlet-planner/internal/service"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
	"github.com/alexkm13/scarlet-planner/pkg/response"
)

// PlanHandler exposes plan and schedule endpoints.
type PlanHandler struct {
	planner *service.PlannerService
}

// NewPlanHandler constructs PlanHandler.
func NewPlanHandler(planner *service.PlannerService) *PlanHandler {
	return &PlanHandler{planner: planner}
}

type createPlanRequest struct {
	Name string `json:"name" binding:"required"`
	Term string `json:"term"`
}

type addCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

type replaceCoursesRequest struct {
	CourseIDs []string `json:"course_ids"`
}

type validateScheduleRequest struct {
	CourseIDs []string `json:"course_ids" binding:"required"`
}

// List godoc
// @Summary List the user's plans
// @Tags Plans
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	plans, err := h.planner.ListPlans(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}

// Create godoc
// @Summary Create a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body createPlanRequest true "Plan payload"
// @Success 201 {object} response.Envelope
// @Router /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.planner.CreatePlan(c.Request.Context(), claims.UserID, req.Name, req.Term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// Delete godoc
// @Summary Delete a plan
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.planner.DeletePlan(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Get a plan with its derived schedule
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.planner.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AddCourse godoc
// @Summary Add a course to a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param payload body addCourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /plans/{id}/courses [post]
func (h *PlanHandler) AddCourse(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req addCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.planner.AddCourse(c.Request.Context(), claims.UserID, c.Param("id"), req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RemoveCourse godoc
// @Summary Remove a course from a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{id}/courses/{courseId} [delete]
func (h *PlanHandler) RemoveCourse(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.planner.RemoveCourse(c.Request.Context(), claims.UserID, c.Param("id"), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Clear godoc
// @Summary Remove all courses from a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{id}/courses [delete]
func (h *PlanHandler) Clear(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.planner.Clear(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ReplaceCourses godoc
// @Summary Replace a plan's whole selection
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param payload body replaceCoursesRequest true "Ordered course ids"
// @Success 200 {object} response.Envelope
// @Router /plans/{id}/courses [put]
func (h *PlanHandler) ReplaceCourses(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req replaceCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.planner.Replace(c.Request.Context(), claims.UserID, c.Param("id"), req.CourseIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Validate godoc
// @Summary Check an arbitrary course list for conflicts
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body validateScheduleRequest true "Course ids"
// @Success 200 {object} response.Envelope
// @Router /schedule/validate [post]
func (h *PlanHandler) Validate(c *gin.Context) {
	var req validateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.planner.Validate(c.Request.Context(), req.CourseIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
