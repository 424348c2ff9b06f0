package ratings

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

// RegisterRoutes attaches company rating routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/company-ratings", h.create)
	rg.GET("/company-ratings/mine", h.mine)
	rg.GET("/company-ratings/company/:name", h.company)
	rg.GET("/company-ratings/top", h.top)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rating, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		CompanyName:      req.CompanyName,
		JobApplicationID: req.JobApplicationID,
		Overall:          req.OverallRating,
		Interview:        req.InterviewRating,
		WorkLife:         req.WorkLifeRating,
		Compensation:     req.CompRating,
		Growth:           req.GrowthRating,
		Review:           req.Review,
		Pros:             req.Pros,
		Cons:             req.Cons,
		Anonymous:        req.Anonymous,
	})
	if err != nil {
		h.respondError(c, err, "failed to create rating")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(rating))
}

func (h *Handler) mine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	list, err := h.Svc.Mine(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.respondError(c, err, "failed to list ratings")
		return
	}
	resp := make([]RatingResponse, 0, len(list))
	for _, rating := range list {
		resp = append(resp, toResponse(rating))
	}
	respond.OK(c, resp)
}

func (h *Handler) company(c *gin.Context) {
	name := c.Param("name")

	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)

	stats, rows, err := h.Svc.Company(c.Request.Context(), name, limit, offset)
	if err != nil {
		h.respondError(c, err, "failed to fetch company ratings")
		return
	}
	resp := companyResponse{
		Stats:   toStatsResponse(stats),
		Ratings: make([]RatingResponse, 0, len(rows)),
	}
	for _, rating := range rows {
		resp.Ratings = append(resp.Ratings, toResponse(rating))
	}
	respond.OK(c, resp)
}

func (h *Handler) top(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 10)

	top, err := h.Svc.Top(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err, "failed to fetch top companies")
		return
	}
	resp := make([]TopCompanyResponse, 0, len(top))
	for _, company := range top {
		resp = append(resp, TopCompanyResponse{
			CompanyName: company.CompanyName,
			RatingCount: company.Count,
			AvgOverall:  company.AvgOverall,
		})
	}
	respond.OK(c, resp)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "rating not found", nil)
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
