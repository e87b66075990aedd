package submission

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hackhub/internal/domain"
	"hackhub/internal/middleware"
	"hackhub/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/submissions", h.Create)
	protected.GET("/submissions", h.List)
	protected.GET("/submissions/mine", h.ListMine)
	protected.GET("/submissions/:id", h.GetByID)
	protected.GET("/submissions/:id/file", h.DownloadFile)
	protected.GET("/challenges/:id/submissions", h.ListByChallenge)
	protected.DELETE("/submissions/:id", h.Delete)

	protected.PATCH("/submissions/:id/score", middleware.JudgeOnly(), h.SetScore)
}

// Create uploads a submission archive for a challenge.
// @Summary		Submit to a challenge
// @Tags		Submissions
// @Security	BearerAuth
// @Accept		multipart/form-data
// @Param		challenge_id	formData	int		true	"Challenge ID"
// @Param		file			formData	file	true	"Submission archive"
// @Success	201	{object}	map[string]interface{}
// @Router		/submissions [POST]
func (h *Handler) Create(c *gin.Context) {
	challengeID, err := strconv.ParseInt(c.PostForm("challenge_id"), 10, 64)
	if err != nil || challengeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid challenge ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File is required")
		return
	}
	if fileHeader.Size > MaxFileSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the size limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot read uploaded file")
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), c.GetInt64("account_id"), challengeID, fileHeader.Filename, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"submission": sub})
}

// SetScore records a judge's score and feedback for a submission.
// @Summary		Score a submission
// @Tags		Submissions
// @Security	BearerAuth
// @Param		request	body	ScoreRequest	true	"Score and feedback"
// @Success	200	{object}	map[string]interface{}
// @Router		/submissions/:id/score [PATCH]
func (h *Handler) SetScore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, err := h.svc.SetScore(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

func (h *Handler) List(c *gin.Context) {
	submissions, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

func (h *Handler) ListMine(c *gin.Context) {
	submissions, err := h.svc.ListByAccount(c.Request.Context(), c.GetInt64("account_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

func (h *Handler) ListByChallenge(c *gin.Context) {
	challengeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || challengeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid challenge ID")
		return
	}

	submissions, err := h.svc.ListByChallenge(c.Request.Context(), challengeID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	sub, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	sub.File = nil
	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

// DownloadFile streams the stored archive back to the caller.
func (h *Handler) DownloadFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	sub, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+sub.FileName+`"`)
	c.Data(http.StatusOK, "application/octet-stream", sub.File)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	roles, _ := c.Get("roles")
	isAdmin := false
	if rs, ok := roles.([]string); ok {
		for _, r := range rs {
			if r == domain.RoleAdmin {
				isAdmin = true
			}
		}
	}

	if err := h.svc.Delete(c.Request.Context(), id, c.GetInt64("account_id"), isAdmin); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "submission deleted"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Submission not found")
	case errors.Is(err, ErrChallengeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Challenge not found")
	case errors.Is(err, ErrDeadlinePassed):
		response.Error(c, http.StatusForbidden, "DEADLINE_PASSED", "Challenge deadline has passed")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the size limit")
	case errors.Is(err, ErrNotSubmissionOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Submission belongs to another account")
	default:
		log.Error().Err(err).Msg("submission request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
