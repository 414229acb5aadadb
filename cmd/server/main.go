package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/config"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/handlers"
	"github.com/artwork-tools/artwork-admin/internal/logging"
	"github.com/artwork-tools/artwork-admin/internal/middleware"
	"github.com/artwork-tools/artwork-admin/internal/notify"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/artwork-tools/artwork-admin/internal/storage"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	// Load configuration
	cfg := config.Load()
	cfg.BindFlags(pflag.CommandLine)
	pflag.Parse()

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	catalog, err := config.LoadRoleCatalog(cfg.RolesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load role catalog")
	}
	if err := database.Seed(db, catalog); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles and permissions")
	}

	store, err := storage.NewLocalStore(cfg.StorageDir, cfg.StorageURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open file storage")
	}

	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, invitation emails are only logged")
		mailer = notify.NewLogMailer(log)
	}
	dispatcher := notify.NewDispatcher(mailer, log, constants.MailWorkers, constants.MailQueueSize)

	// Initialize AI service
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize repositories and services
	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	invitations := repository.NewInvitationRepository(db)
	departments := repository.NewDepartmentRepository(db)
	projects := repository.NewProjectRepository(db)
	checklists := repository.NewChecklistRepository(db)
	areas := repository.NewAreaRepository(db)
	policy := authz.NewPolicy()

	authService := services.NewAuthService(users, constants.AdminRole)
	userService := services.NewUserService(users, roles, store, policy)
	checklistService := services.NewChecklistService(checklists, projects, users, suggester, policy)

	h := handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authService, userService, checklistService),
		Invitations: handlers.NewInvitationHandler(services.NewInvitationService(invitations, users, roles, departments, dispatcher, policy, cfg.AppURL)),
		Users:       handlers.NewUserHandler(userService),
		Departments: handlers.NewDepartmentHandler(services.NewDepartmentService(departments, users, store, policy)),
		Projects:    handlers.NewProjectHandler(services.NewProjectService(projects, users, departments, policy)),
		Checklists:  handlers.NewChecklistHandler(checklistService),
		Areas:       handlers.NewAreaHandler(services.NewAreaService(areas, users, policy)),
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(logging.Middleware(log), gin.Recovery())

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	handlers.RegisterRoutes(r, h, handlers.RouteConfig{
		Users: users,
		RateLimit: middleware.RateLimitConfig{
			Requests: cfg.AcceptRateRequests,
			Window:   cfg.AcceptRateWindow,
		},
		StorageDir: cfg.StorageDir,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdown(srv, dispatcher, log)
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func shutdown(srv *http.Server, dispatcher *notify.Dispatcher, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Error().Err(err).Msg("mail queue did not drain")
	}
}
