package hackathon

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hackhub/internal/middleware"
	"hackhub/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// The countdown is visible before login.
	public.GET("/hackathon", h.Current)

	protected.PUT("/hackathon", middleware.AdminOnly(), h.Upsert)
}

// Current returns hackathon metadata and whether it is running right now.
// @Summary		Hackathon status
// @Tags		Hackathon
// @Success	200	{object}	map[string]interface{}
// @Router		/hackathon [GET]
func (h *Handler) Current(c *gin.Context) {
	status, err := h.svc.Current(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hackathon": status})
}

// Upsert replaces the hackathon metadata. Admin only.
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertHackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	status, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hackathon": status})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "End date must be after start date")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No hackathon configured")
	default:
		log.Error().Err(err).Msg("hackathon request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
