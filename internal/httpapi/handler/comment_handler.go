package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/policy"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes nested under a review.
func (h *CommentHandler) RegisterRoutes(reviews *gin.RouterGroup, auth gin.HandlerFunc) {
	comments := reviews.Group("/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
		comments.POST("", auth, middleware.Authorize(policy.ActionCreate, policy.ResourceComment), h.Create)
		comments.PATCH("/:comment_id", auth, h.Update)
		comments.DELETE("/:comment_id", auth, h.Delete)
	}
}

func commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return id, true
}

// List returns a review's comments, newest first.
// GET .../reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	rid, ok := reviewID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListByReview(c.Request.Context(), rid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Get returns one comment.
// GET .../comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	rid, ok := reviewID(c)
	if !ok {
		return
	}
	cid, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), rid, cid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Create attaches a comment to a review.
// POST .../reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	rid, ok := reviewID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.Actor(c), rid, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update edits a comment, owner or moderator/admin only.
// PATCH .../comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	rid, ok := reviewID(c)
	if !ok {
		return
	}
	cid, ok := commentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.Actor(c), rid, cid, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment.
// DELETE .../comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	rid, ok := reviewID(c)
	if !ok {
		return
	}
	cid, ok := commentID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.Actor(c), rid, cid); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
