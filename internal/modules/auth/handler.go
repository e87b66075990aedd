package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hackhub/internal/domain"
	"hackhub/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/google", h.LoginWithGoogle)
		authGroup.POST("/microsoft", h.LoginWithMicrosoft)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.GetMe)
	protected.PATCH("/users/me", h.UpdateMe)
}

// LoginWithGoogle exchanges a Google ID token for a platform token pair.
// @Summary		Log in with Google
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Google ID token"
// @Success	200	{object}	map[string]interface{}
// @Router		/auth/google [POST]
func (h *Handler) LoginWithGoogle(c *gin.Context) {
	h.login(c, domain.ProviderGoogle)
}

// LoginWithMicrosoft exchanges a Microsoft ID token for a platform token pair.
// @Summary		Log in with Microsoft
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Microsoft ID token"
// @Success	200	{object}	map[string]interface{}
// @Router		/auth/microsoft [POST]
func (h *Handler) LoginWithMicrosoft(c *gin.Context) {
	h.login(c, domain.ProviderMicrosoft)
}

func (h *Handler) login(c *gin.Context, provider domain.Provider) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.LoginWithProviderToken(c.Request.Context(), provider, req.IDToken)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AuthResponse{
		Account:          toAccountPublic(result.Account),
		AccessToken:      result.AccessToken,
		RefreshToken:     result.RefreshToken,
		ExpiresIn:        result.ExpiresIn,
		SessionExpiresAt: result.SessionExpiresAt,
	})
}

// Refresh rotates a refresh token and returns a fresh token pair.
// @Summary		Refresh the token pair
// @Tags		Auth
// @Param		request	body	RefreshRequest	true	"Current refresh token"
// @Success	200	{object}	map[string]interface{}
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	response.Success(c, http.StatusOK, RefreshResponse{
		AccessToken:      result.AccessToken,
		RefreshToken:     result.RefreshToken,
		ExpiresIn:        result.ExpiresIn,
		SessionExpiresAt: result.SessionExpiresAt,
	})
}

// Logout revokes the presented refresh token.
// @Summary		Log out
// @Tags		Auth
// @Param		request	body	LogoutRequest	true	"Refresh token to revoke"
// @Success	200	{object}	map[string]interface{}
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		log.Error().Err(err).Msg("logout failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log out")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GetMe returns the authenticated account's profile.
// @Summary		Current account
// @Tags		Auth
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Router		/users/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	accountID := c.GetInt64("account_id")
	if accountID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	account, err := h.service.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": toAccountPublic(account)})
}

// UpdateMe updates the caller's self-maintained profile fields.
// @Summary		Update own profile
// @Tags		Auth
// @Security	BearerAuth
// @Param		request	body	UpdateProfileRequest	true	"Profile fields"
// @Success	200	{object}	map[string]interface{}
// @Router		/users/me [PATCH]
func (h *Handler) UpdateMe(c *gin.Context) {
	accountID := c.GetInt64("account_id")
	if accountID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	account, err := h.service.UpdateProfile(c.Request.Context(), accountID, req)
	if err != nil {
		log.Error().Err(err).Msg("profile update failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": toAccountPublic(account)})
}

// respondAuthError maps the auth taxonomy onto client codes. The re-login
// class (token not found / expired / session expired) tells the client to
// silently re-authenticate; the incident class (reuse detected / owner
// mismatch) carries force_logout so clients drop every device session.
func (h *Handler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid")
	case errors.Is(err, ErrAccountConflict):
		response.Error(c, http.StatusConflict, "ACCOUNT_CONFLICT", "Email is already linked to a different identity")
	case errors.Is(err, ErrTokenNotFound):
		response.Error(c, http.StatusUnauthorized, "TOKEN_NOT_FOUND", "Please log in again")
	case errors.Is(err, ErrTokenExpired):
		response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Please log in again")
	case errors.Is(err, ErrSessionExpired):
		response.Error(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired, please log in again")
	case errors.Is(err, ErrTokenReuseDetected):
		response.ErrorWithDetails(c, http.StatusUnauthorized, "TOKEN_REUSE_DETECTED",
			"All sessions have been revoked", gin.H{"force_logout": true})
	case errors.Is(err, ErrTokenOwnerMismatch):
		response.ErrorWithDetails(c, http.StatusUnauthorized, "TOKEN_OWNER_MISMATCH",
			"All sessions have been revoked", gin.H{"force_logout": true})
	case errors.Is(err, ErrAccountInactive):
		response.Error(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is deactivated")
	default:
		log.Error().Err(err).Msg("auth request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
