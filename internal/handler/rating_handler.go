package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexkm13/scarlet-planner/internal/service"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
	"github.com/alexkm13/scarlet-planner/pkg/response"
)

// RatingHandler exposes instructor rating lookups.
type RatingHandler struct {
	ratings *service.RatingService
}

// NewRatingHandler constructs RatingHandler.
func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Get godoc
// @Summary Get an instructor rating
// @Tags Ratings
// @Produce json
// @Param name path string true "Instructor name"
// @Success 200 {object} response.Envelope
// @Router /ratings/{name} [get]
func (h *RatingHandler) Get(c *gin.Context) {
	rating, err := h.ratings.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rating, nil)
}

type batchRatingRequest struct {
	Instructors []string `json:"instructors" binding:"required"`
}

// Batch godoc
// @Summary Look up several instructor ratings at once
// @Tags Ratings
// @Accept json
// @Produce json
// @Param payload body batchRatingRequest true "Instructor names"
// @Success 200 {object} response.Envelope
// @Router /ratings/batch [post]
func (h *RatingHandler) Batch(c *gin.Context) {
	var req batchRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ratings, err := h.ratings.GetBatch(c.Request.Context(), req.Instructors)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ratings, nil)
}
