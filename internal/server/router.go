package server

import (
	"net/http"
	"time"

	"gigboard/internal/auth"
	"gigboard/internal/notify"
	"gigboard/internal/repository"
	bidhandler "gigboard/services/bids/handler"
	gighandler "gigboard/services/gigs/handler"
	userhandler "gigboard/services/users/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the router wires together.
type Deps struct {
	Store       repository.Store
	Tokens      *auth.TokenManager
	Hub         *notify.Hub
	Users       userhandler.UserServiceInterface
	Gigs        gighandler.GigServiceInterface
	Bids        bidhandler.BidServiceInterface
	Hire        bidhandler.HireServiceInterface
	CORSOrigins []string
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	usersHandler := userhandler.NewUsersHandler(deps.Users)
	gigsHandler := gighandler.NewGigsHandler(deps.Gigs)
	bidsHandler := bidhandler.NewBidsHandler(deps.Bids, deps.Hire)

	authRequired := auth.RequireAuth(deps.Tokens, deps.Store.Users())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	router.POST("/api/auth/register", usersHandler.RegisterHandler)
	router.POST("/api/auth/login", usersHandler.LoginHandler)

	users := router.Group("/api/users")
	{
		users.POST("/refresh-token", usersHandler.RefreshTokenHandler)
		users.POST("/logout", authRequired, usersHandler.LogoutHandler)
		users.GET("/current-user", authRequired, usersHandler.CurrentUserHandler)
		users.POST("/change-password", authRequired, usersHandler.ChangePasswordHandler)
		users.PATCH("/update-account", authRequired, usersHandler.UpdateAccountHandler)
		users.PATCH("/avatar", authRequired, usersHandler.UpdateAvatarHandler)
		users.PATCH("/cover-image", authRequired, usersHandler.UpdateCoverImageHandler)
	}

	gigs := router.Group("/api/gigs", authRequired)
	{
		gigs.GET("", gigsHandler.ListOpenGigsHandler)
		gigs.GET("/getById/:id", gigsHandler.GetGigByIDHandler)
		gigs.GET("/search", gigsHandler.SearchGigsHandler)
		gigs.GET("/my", gigsHandler.MyGigsHandler)
		gigs.POST("", gigsHandler.CreateGigHandler)
		gigs.PATCH("/:id", gigsHandler.UpdateGigHandler)
		gigs.DELETE("/:id", gigsHandler.DeleteGigHandler)
	}

	bids := router.Group("/api/bids", authRequired)
	{
		bids.POST("", bidsHandler.PlaceBidHandler)
		bids.GET("/my", bidsHandler.MyBidsHandler)
		bids.GET("/:gigId", bidsHandler.BidsForGigHandler)
		bids.PATCH("/:bidId/hire", bidsHandler.HireBidHandler)
	}

	router.GET("/ws", authRequired, notify.WSHandler(deps.Hub))

	return router
}
