package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"travelapp-backend/config"
	"travelapp-backend/controllers"
	"travelapp-backend/graph"
	"travelapp-backend/repository"
	"travelapp-backend/routes"
	"travelapp-backend/services"
	"travelapp-backend/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	tourRepo := repository.NewTourRepository(db)
	linkRepo := repository.NewTourReservationRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authService := services.NewAuthService(userRepo, tokenRepo, tokens, cfg.BcryptCost, logger)
	reservationService := services.NewReservationService(reservationRepo, userRepo, logger)
	tourService := services.NewTourService(tourRepo, userRepo, logger)
	linkService := services.NewTourReservationService(linkRepo, reservationRepo, tourRepo, logger)
	userService := services.NewUserService(userRepo, cfg.BcryptCost, logger)

	schema, err := graph.NewSchema(&graph.Resolver{
		Reservations:     reservationService,
		Tours:            tourService,
		TourReservations: linkService,
		Users:            userRepo,
	})
	if err != nil {
		log.Fatalf("graphql: %v", err)
	}

	scheduler := services.NewScheduler(logger)
	if err := scheduler.Add("token-purge", cfg.TokenPurgeSpec, func(ctx context.Context) error {
		_, err := authService.PurgeExpiredTokens(ctx)
		return err
	}); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	if cfg.TwilioEnabled() {
		sender := services.NewTwilioSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFromPhone)
		reminders := services.NewReminderService(tourRepo, linkRepo, repository.NewReminderLogRepository(db), sender, logger)
		if err := scheduler.Add("tour-reminders", cfg.ReminderSpec, func(ctx context.Context) error {
			_, err := reminders.SendTourReminders(ctx)
			return err
		}); err != nil {
			log.Fatalf("scheduler: %v", err)
		}
	} else {
		logger.Info("twilio credentials missing, tour reminders disabled", "event", "reminder.disabled")
	}
	scheduler.Start()

	r := routes.SetupRouter(cfg, logger, routes.Handlers{
		Identity:         authService,
		Auth:             &controllers.AuthController{Auth: authService},
		Users:            &controllers.UserController{Users: userService, PageSize: cfg.PageSize},
		Reservations:     &controllers.ReservationController{Reservations: reservationService, PageSize: cfg.PageSize},
		Tours:            &controllers.TourController{Tours: tourService, PageSize: cfg.PageSize},
		TourReservations: &controllers.TourReservationController{TourReservations: linkService, PageSize: cfg.PageSize},
		GraphQL:          graph.Handler(schema, logger),
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", "event", "server.start", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "event", "server.shutdown", "error", err)
	}
	logger.Info("server stopped", "event", "server.stop")
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
