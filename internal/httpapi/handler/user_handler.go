package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/policy"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user-management routes. Everything here
// requires authentication; the per-target policy decision happens in
// the handlers because "me" and admin access share paths.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	users := router.Group("/users", auth)
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:username", h.Get)
		users.PATCH("/:username", h.Update)
		users.DELETE("/:username", h.Delete)
	}
}

// resolveTarget maps the self-reference sentinel onto the actor's own
// username and picks the matching policy resource.
func resolveTarget(c *gin.Context, actor *models.User) (username string, resource policy.Resource) {
	username = c.Param("username")
	if actor != nil && (username == models.SelfReference || username == actor.Username) {
		return actor.Username, policy.ResourceUserSelf
	}
	return username, policy.ResourceUserAny
}

// List returns all users.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	if !policy.Can(policy.RoleOf(actor), policy.ActionRead, policy.ResourceUserAny, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create adds a user with an explicit role.
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)
	if !policy.Can(policy.RoleOf(actor), policy.ActionCreate, policy.ResourceUserAny, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Get returns a profile: own profile via "me" for anyone, others
// admin-only.
// GET /api/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	actor := middleware.Actor(c)
	username, resource := resolveTarget(c, actor)
	if !policy.Can(policy.RoleOf(actor), policy.ActionRead, resource, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	user, err := h.userService.Get(c.Request.Context(), username)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update patches a profile. A role field from a non-admin actor is
// silently dropped by the service, not rejected.
// PATCH /api/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)
	username, resource := resolveTarget(c, actor)
	if !policy.Can(policy.RoleOf(actor), policy.ActionUpdate, resource, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, username, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a user. Deleting through the self-reference is never
// allowed, whatever the role.
// DELETE /api/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)
	username := c.Param("username")
	if username == models.SelfReference {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "cannot delete through the self reference"})
		return
	}
	if !policy.Can(policy.RoleOf(actor), policy.ActionDelete, policy.ResourceUserAny, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	if err := h.userService.Delete(c.Request.Context(), username); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
