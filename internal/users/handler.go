package users

import (
	"errors"
	"net/http"
	"time"

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

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.update)
}

type updateRequest struct {
	FullName string `json:"fullName"`
}

// UserResponse is the outward-facing representation of a profile.
type UserResponse struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.Get(
		c.Request.Context(),
		middleware.UserIDFromContext(c),
		middleware.UserEmailFromContext(c),
		middleware.UserNameFromContext(c),
	)
	if err != nil {
		h.respondError(c, err, "failed to fetch profile")
		return
	}
	respond.OK(c, toResponse(user))
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Update(
		c.Request.Context(),
		middleware.UserIDFromContext(c),
		middleware.UserEmailFromContext(c),
		req.FullName,
	)
	if err != nil {
		h.respondError(c, err, "failed to update profile")
		return
	}
	respond.OK(c, toResponse(user))
}

func toResponse(user User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
