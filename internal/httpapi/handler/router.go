package handler

import (
	"time"

	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the router wires up.
type Services struct {
	Auth     service.AuthService
	User     service.UserService
	Category service.CategoryService
	Genre    service.GenreService
	Title    service.TitleService
	Review   service.ReviewService
	Comment  service.CommentService
}

// NewRouter assembles the gin engine: request logging, recovery, the
// per-IP limiter on auth endpoints, and every resource group.
func NewRouter(logger *zap.Logger, svcs Services, limiterCfg middleware.RateLimiterConfig) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	requireAuth := middleware.RequireAuth(svcs.Auth)
	limiter := middleware.RateLimiterMiddleware(limiterCfg)

	api := r.Group("/api")

	NewAuthHandler(svcs.Auth).RegisterRoutes(api, limiter)
	NewUserHandler(svcs.User).RegisterRoutes(api, requireAuth)
	NewCategoryHandler(svcs.Category).RegisterRoutes(api, requireAuth)
	NewGenreHandler(svcs.Genre).RegisterRoutes(api, requireAuth)
	NewTitleHandler(svcs.Title).RegisterRoutes(api, requireAuth)

	titles := api.Group("/titles")
	NewReviewHandler(svcs.Review).RegisterRoutes(titles, requireAuth)

	reviews := titles.Group("/:title_id/reviews")
	NewCommentHandler(svcs.Comment).RegisterRoutes(reviews, requireAuth)

	return r
}
