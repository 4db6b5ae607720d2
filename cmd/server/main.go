package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prizeladder/internal/config"
	"prizeladder/internal/database"
	"prizeladder/internal/game"
	"prizeladder/internal/handlers"
	"prizeladder/internal/repository"
	"prizeladder/internal/security"
	"prizeladder/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Warn early when the bank cannot fill a ladder
	if counts, err := questionRepo.CountByLevel(); err != nil {
		log.Printf("Warning: Failed to check question bank: %v", err)
	} else {
		for level := 0; level < game.LevelCount; level++ {
			if counts[level] == 0 {
				log.Printf("Warning: question bank has no questions at level %d, games cannot start", level)
			}
		}
	}

	// Build the prize plan, overridable from the environment
	plan := buildPrizePlan(cfg)
	if err := plan.Validate(); err != nil {
		log.Fatalf("Invalid prize plan: %v", err)
	}

	engine := game.NewEngine(game.SystemClock{}, plan, cfg.GameTimeLimit)

	// Initialize services
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = security.GenerateSessionID()
		log.Println("Warning: JWT_SECRET not set, issued tokens will not survive a restart")
	}
	tokens := security.NewTokenManager(jwtSecret, "prizeladder", cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, cfg.SessionDuration)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	gameService := service.NewGameService(engine, gameRepo, questionRepo, userRepo, emailService)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"github": {
			Name: "github",
			Config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				Endpoint:     github.Endpoint,
				Scopes:       []string{"read:user", "user:email"},
			},
			UserInfoURL: "https://api.github.com/user",
		},
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, tokens)
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	authHandler := handlers.NewAuthHandler(authService, emailService, tokens, oauthProviders, cfg.AppBaseURL)
	gameHandler := handlers.NewGameHandler(gameService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /auth/register", handlers.RateLimit(loginLimiter, authHandler.Register))
	mux.HandleFunc("POST /auth/login", handlers.RateLimit(loginLimiter, authHandler.Login))
	mux.HandleFunc("POST /auth/guest", handlers.RateLimit(loginLimiter, authHandler.Guest))
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /prizes", gameHandler.PrizeLadder)

	// Protected routes
	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /games", middleware.RequireAuth(gameHandler.Create))
	mux.HandleFunc("GET /games", middleware.RequireAuth(gameHandler.History))
	mux.HandleFunc("GET /games/current", middleware.RequireAuth(gameHandler.Current))
	mux.HandleFunc("POST /games/current/answer", middleware.RequireAuth(gameHandler.Answer))
	mux.HandleFunc("POST /games/current/take-money", middleware.RequireAuth(gameHandler.TakeMoney))
	mux.HandleFunc("POST /games/current/help/{kind}", middleware.RequireAuth(gameHandler.UseHelp))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// buildPrizePlan applies any configured ladder and fireproof overrides on
// top of the defaults
func buildPrizePlan(cfg *config.Config) game.PrizePlan {
	plan := game.DefaultPrizePlan()

	if len(cfg.PrizeLadder) > 0 {
		if len(cfg.PrizeLadder) != game.LevelCount {
			log.Fatalf("PRIZE_LADDER must list %d prizes, got %d", game.LevelCount, len(cfg.PrizeLadder))
		}
		copy(plan.Prizes[:], cfg.PrizeLadder)
	}
	if cfg.FireproofLevels != nil {
		plan.Fireproof = cfg.FireproofLevels
	}

	return plan
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
