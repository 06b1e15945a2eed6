package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

// NewRouter wires the API surface. Route naming follows the frontend
// contract: /api/users registers, /api/auth logs in.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	githubHandler *GithubHandler,
	jwtSvc *auth.JWTService,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/users", authHandler.Register)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("", authHandler.Login)
			authRoutes.GET("", authMiddleware, authHandler.Me)
		}

		profileRoutes := api.Group("/profile")
		{
			profileRoutes.GET("", profileHandler.List)
			profileRoutes.GET("/user/:user_id", profileHandler.GetByUserID)
			profileRoutes.GET("/github/:username", githubHandler.GetRepos)

			profileRoutes.GET("/me", authMiddleware, profileHandler.GetMine)
			profileRoutes.POST("", authMiddleware, profileHandler.Upsert)
			profileRoutes.DELETE("", authMiddleware, profileHandler.DeleteAccount)

			profileRoutes.PUT("/experience", authMiddleware, profileHandler.AddExperience)
			profileRoutes.DELETE("/experience/:exp_id", authMiddleware, profileHandler.RemoveExperience)
			profileRoutes.PUT("/education", authMiddleware, profileHandler.AddEducation)
			profileRoutes.DELETE("/education/:edu_id", authMiddleware, profileHandler.RemoveEducation)
		}
	}

	return router
}
