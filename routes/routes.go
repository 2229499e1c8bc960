package routes

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"travelapp-backend/config"
	"travelapp-backend/controllers"
	"travelapp-backend/utils"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Identity         utils.IdentityResolver
	Auth             *controllers.AuthController
	Users            *controllers.UserController
	Reservations     *controllers.ReservationController
	Tours            *controllers.TourController
	TourReservations *controllers.TourReservationController
	GraphQL          gin.HandlerFunc
}

func SetupRouter(cfg config.Config, logger *slog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := make(map[string]bool, len(cfg.CORSOrigins))
	for _, origin := range cfg.CORSOrigins {
		origins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origins[origin]
		},
	}))

	r.Use(config.PerformanceLogger(logger))
	r.Use(utils.AuthMiddleware(h.Identity))

	r.GET("/", controllers.APIRoot)

	r.POST("/register/", h.Auth.Register)
	r.POST("/login/", h.Auth.Login)
	r.POST("/token/refresh/", h.Auth.Refresh)
	r.POST("/logout/", h.Auth.Logout)

	api := r.Group("/api")
	{
		// User routes
		users := api.Group("/users")
		{
			users.GET("/", h.Users.List)
			users.POST("/", h.Users.Create)
			users.GET("/:id/", h.Users.Get)
			users.PUT("/:id/", h.Users.Update)
			users.PATCH("/:id/", h.Users.Update)
			users.DELETE("/:id/", h.Users.Delete)
		}

		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.GET("/", h.Reservations.List)
			reservations.POST("/", h.Reservations.Create)
			reservations.GET("/:id/", h.Reservations.Get)
			reservations.PUT("/:id/", h.Reservations.Update)
			reservations.PATCH("/:id/", h.Reservations.Update)
			reservations.DELETE("/:id/", h.Reservations.Delete)
		}

		// Tour routes
		tours := api.Group("/tours")
		{
			tours.GET("/", h.Tours.List)
			tours.POST("/", h.Tours.Create)
			tours.GET("/standard/", h.Tours.Standard)
			tours.GET("/:id/", h.Tours.Get)
			tours.PUT("/:id/", h.Tours.Replace)
			tours.PATCH("/:id/", h.Tours.Patch)
			tours.DELETE("/:id/", h.Tours.Delete)
		}

		// Tour reservation routes
		links := api.Group("/tour-reservations")
		{
			links.GET("/", h.TourReservations.List)
			links.POST("/", h.TourReservations.Create)
			links.GET("/:id/", h.TourReservations.Get)
			links.PUT("/:id/", h.TourReservations.Update)
			links.PATCH("/:id/", h.TourReservations.Update)
			links.DELETE("/:id/", h.TourReservations.Delete)
		}
	}

	r.POST("/graphql/", h.GraphQL)
	r.GET("/graphql/", h.GraphQL)

	return r
}
