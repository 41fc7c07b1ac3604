package app

import (
	"fmt"

	"github.com/bookboxapp/bookbox/internal/config"
	"github.com/bookboxapp/bookbox/internal/db"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	EmailService        *service.EmailService
	SubscriptionService *service.SubscriptionService
	UsageCounter        *service.UsageCounter
	EntitlementGuard    *service.EntitlementGuard
	BoxService          *service.BoxService
	FavoriteService     *service.FavoriteService
	VisitService        *service.VisitService
	ContentService      *service.ContentService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations unless the deploy manages them separately
	if cfg.DBAutoMigrate {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %v", err)
		}
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	subscriptionRepository := repository.NewSubscriptionRepository(database)
	boxRepository := repository.NewBoxRepository(database)
	favoriteRepository := repository.NewFavoriteRepository(database)
	visitRepository := repository.NewVisitRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	subscriptionService := service.NewSubscriptionService(subscriptionRepository)

	// Entitlements: static tier policy + live usage counts
	usageCounter := service.NewUsageCounter(boxRepository, favoriteRepository, visitRepository)
	entitlementGuard := service.NewEntitlementGuard(service.NewTierPolicy(), usageCounter, subscriptionService)

	boxService := service.NewBoxService(boxRepository, entitlementGuard, fileStorage)
	favoriteService := service.NewFavoriteService(favoriteRepository, boxRepository, entitlementGuard, boxService)
	visitService := service.NewVisitService(visitRepository, boxRepository, entitlementGuard, fileStorage)
	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		subscriptionService,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenPasswordResetExpiry,
	)
	userService := service.NewUserService(userRepository, boxRepository, fileStorage, emailService, boxService)
	contentService := service.NewContentService(cfg.ContentPath)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		EmailService:        emailService,
		SubscriptionService: subscriptionService,
		UsageCounter:        usageCounter,
		EntitlementGuard:    entitlementGuard,
		BoxService:          boxService,
		FavoriteService:     favoriteService,
		VisitService:        visitService,
		ContentService:      contentService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
