package preferences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autojobber-backend/internal/shared/server/middleware"
	"autojobber-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job preference routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-preferences", h.create)
	rg.GET("/job-preferences", h.history)
	rg.GET("/job-preferences/active", h.active)
	rg.PUT("/job-preferences/:id", h.update)
	rg.PUT("/job-preferences/:id/active", h.activate)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	pref, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Title:       req.Title,
		Industry:    req.Industry,
		Location:    req.Location,
		WorkMode:    req.WorkMode,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		CompanySize: req.CompanySize,
		Keywords:    req.Keywords,
	})
	if err != nil {
		h.respondError(c, err, "failed to create preference")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(pref))
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	list, err := h.Svc.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.respondError(c, err, "failed to list preferences")
		return
	}

	resp := make([]PreferenceResponse, 0, len(list))
	for _, pref := range list {
		resp = append(resp, toResponse(pref))
	}
	respond.OK(c, resp)
}

func (h *Handler) active(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	pref, err := h.Svc.Active(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "failed to fetch active preference")
		return
	}
	respond.OK(c, toResponse(pref))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	prefID := c.Param("id")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	pref, err := h.Svc.Update(c.Request.Context(), userID, prefID, UpdateInput{
		Title:       req.Title,
		Industry:    req.Industry,
		Location:    req.Location,
		WorkMode:    req.WorkMode,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		CompanySize: req.CompanySize,
		Keywords:    req.Keywords,
	})
	if err != nil {
		h.respondError(c, err, "failed to update preference")
		return
	}
	respond.OK(c, toResponse(pref))
}

func (h *Handler) activate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	prefID := c.Param("id")

	if err := h.Svc.Activate(c.Request.Context(), userID, prefID); err != nil {
		h.respondError(c, err, "failed to activate preference")
		return
	}
	respond.OK(c, gin.H{"preferenceId": prefID, "isActive": true})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "preference not found", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "concurrent update, retry", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func parseQueryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
