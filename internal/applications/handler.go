package applications

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

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.create)
	rg.GET("/applications", h.list)
	rg.GET("/applications/:id", h.get)
	rg.PUT("/applications/:id", h.update)
	rg.DELETE("/applications/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := CreateInput{
		JobTitle:   req.JobTitle,
		Company:    req.Company,
		Status:     req.Status,
		Notes:      req.Notes,
		MatchScore: req.MatchScore,
	}
	if req.ApplicationDate != "" {
		date, err := parseDate(req.ApplicationDate)
		if err != nil {
			h.respondError(c, err, "invalid application date")
			return
		}
		in.ApplicationDate = date
	}
	if req.FollowUpDate != nil && *req.FollowUpDate != "" {
		date, err := parseDate(*req.FollowUpDate)
		if err != nil {
			h.respondError(c, err, "invalid follow-up date")
			return
		}
		in.FollowUpDate = &date
	}

	app, err := h.Svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.respondError(c, err, "failed to create application")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(app))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	list, err := h.Svc.List(c.Request.Context(), userID, c.Query("status"), limit, offset)
	if err != nil {
		h.respondError(c, err, "failed to list applications")
		return
	}
	resp := make([]ApplicationResponse, 0, len(list))
	for _, app := range list {
		resp = append(resp, toResponse(app))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	app, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch application")
		return
	}
	respond.OK(c, toResponse(app))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := UpdateInput{
		JobTitle:   req.JobTitle,
		Company:    req.Company,
		Status:     req.Status,
		Notes:      req.Notes,
		Feedback:   req.Feedback,
		MatchScore: req.MatchScore,
	}
	if req.ApplicationDate != nil {
		date, err := parseDate(*req.ApplicationDate)
		if err != nil {
			h.respondError(c, err, "invalid application date")
			return
		}
		in.ApplicationDate = &date
	}
	if req.FollowUpDate != nil {
		if *req.FollowUpDate == "" {
			in.ClearFollowUp = true
		} else {
			date, err := parseDate(*req.FollowUpDate)
			if err != nil {
				h.respondError(c, err, "invalid follow-up date")
				return
			}
			in.FollowUpDate = &date
		}
	}

	app, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		h.respondError(c, err, "failed to update application")
		return
	}
	respond.OK(c, toResponse(app))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete application")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
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
