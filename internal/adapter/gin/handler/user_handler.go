package handler

import (
	"net/http"

	"user-registration-service/internal/usecase/user"
	apperrors "user-registration-service/pkg/errors"
	"user-registration-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc           user.Usecase
	log          *zap.Logger
	strictStatus bool
}

// NewUserHandler creates a new UserHandler. With strictStatus unset every
// service failure is answered with 400; otherwise persistence failures get 500.
func NewUserHandler(uc user.Usecase, log *zap.Logger, strictStatus bool) *UserHandler {
	return &UserHandler{
		uc:           uc,
		log:          log,
		strictStatus: strictStatus,
	}
}

// RegisterUserRequest represents the HTTP request body for registering a user.
// JSON and urlencoded form bodies are both accepted.
type RegisterUserRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register handles POST /api/
func (h *UserHandler) Register(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		// An unreadable body carries no fields; the usecase rejects it.
		// This includes non-string name or email values.
		log.Warn("could not bind register request", zap.Error(err))
		req = RegisterUserRequest{}
	}

	resp, err := h.uc.Register(c.Request.Context(), user.RegisterRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(*resp))
}

// List handles GET /api/
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toResponse(u)
	}

	c.JSON(http.StatusOK, out)
}

// NotFound answers every request that matched no route.
func NotFound(c *gin.Context) {
	err := apperrors.ErrRouteNotFound
	c.JSON(apperrors.HTTPStatus(err), ErrorResponse{Error: err.Error()})
}

// respondError converts usecase errors to HTTP responses
func (h *UserHandler) respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if h.strictStatus {
		status = apperrors.HTTPStatus(err)
	}

	logger.WithContext(c.Request.Context(), h.log).Warn("request failed",
		zap.String("kind", string(apperrors.KindOf(err))),
		zap.Int("status", status),
		zap.Error(err),
	)

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func toResponse(u user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
