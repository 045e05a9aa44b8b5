package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"user-crud-service/internal/usecase/user"
	pkgerrors "user-crud-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Every field must be present; empty strings are accepted.
type CreateUserRequest struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for a partial update.
// Absent and null fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ReplaceUserRequest represents the HTTP request body for a full replace
type ReplaceUserRequest struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is the fixed acknowledgement returned by mutating routes
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Acknowledgement messages.
const (
	MsgUserInserted = "new user inserted"
	MsgUserUpdated  = "user updated"
	MsgUserReplaced = "user replaced"
	MsgUserDeleted  = "user deleted"
)

// LookupUsers handles GET /users?id=&name=&email=
func (h *UserHandler) LookupUsers(c *gin.Context) {
	var req user.LookupUsersRequest

	if idStr, ok := c.GetQuery("id"); ok {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			h.log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_id",
				Message: "User ID must be a valid number",
			})
			return
		}
		req.ID = &id
	}
	if name, ok := c.GetQuery("name"); ok {
		req.Name = &name
	}
	if email, ok := c.GetQuery("email"); ok {
		req.Email = &email
	}

	resp, err := h.uc.LookupUsers(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, "LookupUsers", err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
		}
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, "CreateUser", err)
		return
	}

	c.Header("Location", fmt.Sprintf("/users?id=%d", resp.ID))
	c.JSON(http.StatusCreated, MessageResponse{Msg: MsgUserInserted})
}

// UpdateUser handles PATCH /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, "UpdateUser", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Msg: MsgUserUpdated})
}

// ReplaceUser handles PUT /users/:id
func (h *UserHandler) ReplaceUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ReplaceUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid replace user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	err := h.uc.ReplaceUser(c.Request.Context(), user.ReplaceUserRequest{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, "ReplaceUser", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Msg: MsgUserReplaced})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if _, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		h.handleError(c, "DeleteUser", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Msg: MsgUserDeleted})
}

// parseID reads the :id path segment. On failure it writes the 400 response.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}

// handleError converts usecase errors to HTTP responses using the gRPC code
// each application error carries.
func (h *UserHandler) handleError(c *gin.Context, op string, err error) {
	code, slug, msg := pkgerrors.ToHTTP(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("Gin "+op+" failed", zap.Error(err))
	} else {
		h.log.Warn("Gin "+op+" rejected", zap.String("error", slug), zap.Error(err))
	}

	c.JSON(code, ErrorResponse{
		Error:   slug,
		Message: msg,
	})
}
