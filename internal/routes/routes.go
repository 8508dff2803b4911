package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/config"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/events"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/handlers"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/identity"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/middleware"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/repository"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/services"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/session"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/theme"
	sessionws "github.com/Noaaaaa59/powerlifting-app-v2/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	identityRepo := repository.NewIdentityRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	liftRepo := repository.NewLiftRecordRepository(db)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
	}

	broker := identity.NewBroker()
	sessionStore := session.NewStore()
	sessionController := session.NewController(sessionStore, profileRepo)
	sessionController.Start(broker)

	themeController := theme.NewController(nil)
	sessionStore.Subscribe(func(snap session.Snapshot) {
		if snap.Profile != nil {
			themeController.SyncFromPreferences(&snap.Profile.Preferences)
		} else {
			themeController.SyncFromPreferences(nil)
		}
	})

	sessionHub := sessionws.NewHub()
	go sessionHub.Run()
	sessionStore.Subscribe(sessionHub.Publish)

	onboardingService := services.NewOnboardingService(profileRepo, liftRepo, publisher)
	profileService := services.NewProfileService(profileRepo, liftRepo)

	authHandler := handlers.NewAuthHandler(identityRepo, profileRepo, broker, cfg.JWTSecret)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, sessionController)
	profileHandler := handlers.NewProfileHandler(profileService, sessionController)
	themeHandler := handlers.NewThemeHandler(themeController)
	streamHandler := handlers.NewStreamHandler(sessionStore, sessionController, sessionHub, cfg.JWTSecret)

	if cfg.EnableMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Post("/logout", middleware.AuthRequired(cfg.JWTSecret), authHandler.Logout)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	authProtected.Get("/profile", profileHandler.GetProfile)
	authProtected.Put("/profile/preferences", profileHandler.UpdatePreferences)
	authProtected.Get("/lifts", profileHandler.ListLiftRecords)
	authProtected.Get("/theme", themeHandler.GetTheme)

	onboardingRoutes := authProtected.Group("/onboarding")
	onboardingRoutes.Post("", onboardingHandler.Complete)
	onboardingRoutes.Post("/steps/:step/validate", onboardingHandler.ValidateStep)

	api.Use("/v1/ws", streamHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(streamHandler.HandleWebSocket))
}
