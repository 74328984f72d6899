package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"fundbackend/clients/discord"
	"fundbackend/config"
	"fundbackend/db"
	"fundbackend/handlers"
	"fundbackend/middleware"
	"fundbackend/services"
	"fundbackend/services/discordaccounts"
	"fundbackend/services/discordservers"
	"fundbackend/services/oauthstate"
	"fundbackend/services/organizations"
	"fundbackend/services/txmanager"
	"fundbackend/services/users"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "fundbackend",
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	organizationsRepo := db.NewPostgresOrganizationsRepository(dbConn, cfg.DatabaseSchema)
	discordServersRepo := db.NewPostgresDiscordServersRepository(dbConn, cfg.DatabaseSchema)
	discordAccountsRepo := db.NewPostgresDiscordUserAccountsRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	var noncesRepo oauthstate.NoncesRepository = oauthstate.NewNoopNoncesRepository()
	if cfg.RedisConfig.IsConfigured() {
		redisClient, err := db.NewRedisClient(context.Background(), cfg.RedisConfig.URL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		noncesRepo = db.NewRedisOAuthNoncesRepository(redisClient)
	} else {
		log.Printf("⚠️ Redis not configured - OAuth states are not single-use")
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}

	usersService := users.NewUsersService(usersRepo)
	organizationsService := organizations.NewOrganizationsService(organizationsRepo)
	oauthStateService := oauthstate.NewOAuthStateService(cfg.SecretKey, noncesRepo)
	discordAccountsService := discordaccounts.NewDiscordAccountsService(
		discordAccountsRepo,
		discord.NewDiscordUserClientFactory(httpClient, cfg.DiscordConfig.APIBaseURL),
	)

	var discordServersService services.DiscordServersService
	if cfg.DiscordConfig.IsConfigured() {
		botClient := discord.NewDiscordBotClient(httpClient, cfg.DiscordConfig.APIBaseURL, cfg.DiscordConfig.BotToken)
		discordServersService = discordservers.NewDiscordServersService(
			discordServersRepo,
			organizationsRepo,
			botClient,
			txManager,
		)
	} else {
		log.Printf("⚠️ Discord not configured - bot installs are disabled")
		discordServersService = discordservers.NewOptionalDiscordServersService()
	}

	oauthClient := discord.NewDiscordOAuthClient(httpClient, discord.OAuthSettings{
		ClientID:       cfg.DiscordConfig.ClientID,
		ClientSecret:   cfg.DiscordConfig.ClientSecret,
		BotPermissions: cfg.DiscordConfig.BotPermissions,
		PublicBaseURL:  cfg.PublicBaseURL,
	})

	discordHandler := handlers.NewDiscordAPIHandler(
		organizationsService,
		discordServersService,
		discordAccountsService,
		oauthStateService,
		oauthClient,
		cfg.FrontendBaseURL,
	)
	discordHTTPHandler := handlers.NewDiscordHTTPHandler(discordHandler)
	authMiddleware := middleware.NewClerkAuthMiddleware(usersService, cfg.ClerkConfig.SecretKey)

	// Create a new router
	router := mux.NewRouter()
	discordHTTPHandler.SetupEndpoints(router.PathPrefix("/api/v1").Subrouter(), authMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
