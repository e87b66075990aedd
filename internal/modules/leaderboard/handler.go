package leaderboard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"hackhub/internal/pkg/response"
	"hackhub/internal/pkg/tokens"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware for the REST
	// surface; the websocket endpoint accepts any origin and relies on the
	// access token instead.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	svc    *Service
	hub    *Hub
	issuer *tokens.Issuer
}

func NewHandler(svc *Service, hub *Hub, issuer *tokens.Issuer) *Handler {
	return &Handler{svc: svc, hub: hub, issuer: issuer}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/leaderboard", h.Standings)

	// Browsers cannot set Authorization on websocket upgrades, so the token
	// also travels as a query parameter.
	public.GET("/ws/leaderboard", h.Subscribe)
}

// Standings returns the current score table.
// @Summary		Leaderboard standings
// @Tags		Leaderboard
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Router		/leaderboard [GET]
func (h *Handler) Standings(c *gin.Context) {
	rows, err := h.svc.Standings(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("standings request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"standings": rows})
}

// Subscribe upgrades the connection and streams standings snapshots until the
// client disconnects.
func (h *Handler) Subscribe(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		raw, _ = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if _, err := h.issuer.ParseAccessToken(raw); err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Access token is invalid or expired")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	// Register before the snapshot so a score change landing in between is
	// still broadcast to this connection; the hub's write lock keeps the
	// snapshot and any concurrent broadcast from interleaving on the socket.
	h.hub.Register(conn)

	// Initial snapshot so the client does not wait for the next score change.
	if rows, err := h.svc.Standings(c.Request.Context()); err == nil {
		if err := h.hub.Send(conn, StandingsMessage{Type: "standings", Standings: rows}); err != nil {
			return
		}
	}

	// Reader loop only drains control frames; clients never send data.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
