package main

import (
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/talenthub/auth-service/internal/app"
	"github.com/talenthub/auth-service/internal/config"
	"github.com/talenthub/auth-service/internal/controllers"
	"github.com/talenthub/auth-service/internal/middleware"
	"github.com/talenthub/auth-service/internal/repositories"
	"github.com/talenthub/auth-service/internal/services"
	"github.com/talenthub/auth-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	principalRepo := repositories.NewPrincipalRepository(application.DB)

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	signingKeys := services.NewSigningKeys(cfg.RSAPrivateKey, cfg.RSAPublicKey)
	codec := services.NewTokenCodec(signingKeys)

	// One explicitly constructed blacklist shared by the token service and
	// the auth middleware; its lifetime is the process.
	blacklist := services.NewTokenBlacklistService(cfg.RevokeAllHorizon)

	tokenService := services.NewTokenService(cfg, codec, blacklist, principalRepo)
	authService := services.NewAuthService(tokenService, principalRepo)
	registrationService := services.NewRegistrationService(principalRepo, tokenService)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(authService, tokenService)
	registrationController := controllers.NewRegistrationController(registrationService)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	// /api/auth
	authRouter := router.PathPrefix("/api/auth").Subrouter()

	authRouter.HandleFunc("/login", authController.Login).Methods("POST")
	authRouter.HandleFunc("/refresh-token", authController.RefreshToken).Methods("POST")
	authRouter.HandleFunc("/logout", authController.Logout).Methods("POST")
	authRouter.HandleFunc("/introspect", authController.Introspect).Methods("POST")
	authRouter.HandleFunc("/register/company", registrationController.RegisterCompany).Methods("POST")
	authRouter.HandleFunc("/register/applicant", registrationController.RegisterApplicant).Methods("POST")

	// Protected endpoints require a valid, non-blacklisted token
	protected := authRouter.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(tokenService))
	protected.HandleFunc("/me", authController.Me).Methods("GET")

	//----------------------------------------------------------------------
	// Hourly blacklist sweep via cron
	//----------------------------------------------------------------------
	c := cron.New()

	_, schErr := c.AddFunc(config.BlacklistSweepSchedule, func() {
		blacklist.SweepExpired()
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule blacklist sweep job")
	}

	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
