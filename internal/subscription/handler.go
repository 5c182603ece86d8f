package subscription

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brea-backend/internal/server/respond"
)

// Handler exposes the plans catalog and the simulated checkout.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches subscription routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.listPlans)
	rg.GET("/subscription", h.status)
	rg.POST("/subscription", h.activate)
}

// RegisterDevRoutes attaches dev-only subscription routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscription/reset", h.reset)
}

func (h *Handler) listPlans(c *gin.Context) {
	respond.OK(c, Plans)
}

func (h *Handler) status(c *gin.Context) {
	respond.OK(c, h.Svc.Status())
}

type activateRequest struct {
	Plan string `json:"plan"`
	Card Card   `json:"card"`
}

func (h *Handler) activate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	status, err := h.Svc.Activate(c.Request.Context(), req.Plan, req.Card)
	if err != nil {
		var cardErr *CardError
		switch {
		case errors.Is(err, ErrUnknownPlan):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown plan", nil)
		case errors.As(err, &cardErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Por favor, completa todos los campos de la tarjeta correctamente.", []map[string]string{
				{"field": cardErr.Field, "issue": cardErr.Issue},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to activate subscription", nil)
		}
		return
	}

	respond.OK(c, status)
}

func (h *Handler) reset(c *gin.Context) {
	h.Svc.Reset()
	c.Status(http.StatusNoContent)
}
