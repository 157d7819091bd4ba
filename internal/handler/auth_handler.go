package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/service"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
	"github.com/alexkm13/scarlet-planner/pkg/response"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login godoc
// @Summary Authenticate and issue tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Refresh godoc
// @Summary Exchange a refresh token for new tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.RefreshToken(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Me godoc
// @Summary Return the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.UserInfo{
		ID:       claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
	}, nil)
}
