package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/radityaqb/go-user-accounts/internal/application"
	"github.com/radityaqb/go-user-accounts/pkg/response"
	"github.com/radityaqb/go-user-accounts/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name            string `json:"name" binding:"required,username"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"password_confirm" binding:"required,pwd"`
}

type updateUserRequest struct {
	Name  string `json:"name" binding:"required,username"`
	Email string `json:"email" binding:"required,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required,pwd"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,pwd"`
}

// respondError is the single point translating service outcomes into the
// uniform error body. failMsg covers the generic write-failure path of the
// calling endpoint; anything unrecognized is a storage fault and maps to 500.
func (h *UserHandler) respondError(c *gin.Context, err error, failMsg string) {
	switch {
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusUnprocessableEntity, response.TypeUnprocessable, "Unknown user")
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error(c, http.StatusUnprocessableEntity, response.TypeEmailTaken, "This email is already taken, try using another")
	case errors.Is(err, userapp.ErrInvalidPassword):
		response.Error(c, http.StatusUnprocessableEntity, response.TypeInvalidPassword, failMsg)
	case errors.Is(err, userapp.ErrOperationFailed):
		response.Error(c, http.StatusUnprocessableEntity, response.TypeUnprocessable, failMsg)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("unexpected error")
		}
		response.Error(c, http.StatusInternalServerError, response.TypeInternal, "Internal server error")
	}
}

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.TypeValidation, "Invalid request payload", validation.ToDetails(err))
		return
	}
	if req.Password != req.PasswordConfirm {
		response.Error(c, http.StatusUnprocessableEntity, response.TypeInvalidPassword, "Password and password confirmation do not match")
		return
	}
	if err := h.Svc.CreateUser(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		h.respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": req.Name, "email": req.Email})
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.TypeValidation, "Invalid request payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdateUser(c.Request.Context(), id, req.Name, req.Email); err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ChangePassword PATCH /users/:id/password
// Order matters: confirm match, then user existence, then current password,
// then the write. A mismatched confirmation never reaches the service.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id := c.Param("id")
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.TypeValidation, "Invalid request payload", validation.ToDetails(err))
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		response.Error(c, http.StatusUnprocessableEntity, response.TypeInvalidPassword, "New password and confirm password do not match")
		return
	}
	if _, err := h.Svc.GetUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to change password")
		return
	}
	if !h.Svc.IsValidPassword(c.Request.Context(), id, req.CurrentPassword) {
		response.Error(c, http.StatusUnprocessableEntity, response.TypeInvalidPassword, "Current password is incorrect")
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.respondError(c, err, "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Search GET /search/users?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.respondError(c, err, "Failed to search users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits})
}
