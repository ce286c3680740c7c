package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/contacts/internal/config"
	"github.com/templui/contacts/internal/db"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/service"
	"github.com/templui/contacts/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Storage         storage.Storage
	AuthService     *service.AuthService
	UserService     *service.UserService
	CategoryService *service.CategoryService
	PictureService  *service.PictureService
	ContactService  *service.ContactService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	contactRepository := repository.NewContactRepository(database)

	// Storage
	pictureStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	authService := service.NewAuthService(
		userRepository,
		cfg.JWTSecret,
		cfg.SecureCookies,
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository)
	categoryService := service.NewCategoryService(categoryRepository)
	pictureService := service.NewPictureService(pictureStorage)
	contactService := service.NewContactService(contactRepository, categoryService, pictureService)

	return &App{
		Cfg:             cfg,
		DB:              database,
		Storage:         pictureStorage,
		AuthService:     authService,
		UserService:     userService,
		CategoryService: categoryService,
		PictureService:  pictureService,
		ContactService:  contactService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
