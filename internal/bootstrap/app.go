package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"autojobber-backend/internal/applications"
	"autojobber-backend/internal/notify"
	"autojobber-backend/internal/parser"
	"autojobber-backend/internal/preferences"
	"autojobber-backend/internal/ratings"
	"autojobber-backend/internal/resumes"
	"autojobber-backend/internal/shared/config"
	"autojobber-backend/internal/shared/server"
	"autojobber-backend/internal/shared/storage/cache"
	"autojobber-backend/internal/shared/storage/db"
	"autojobber-backend/internal/shared/storage/object"
	localstore "autojobber-backend/internal/shared/storage/object/local"
	s3store "autojobber-backend/internal/shared/storage/object/s3"
	"autojobber-backend/internal/shared/telemetry"
	"autojobber-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cache  *cache.Cache

	ResumesRepo      resumes.Repo
	PreferencesRepo  preferences.Repo
	RatingsRepo      ratings.Repo
	ApplicationsRepo applications.Repo
	UsersRepo        users.Repo

	ResumesService      *resumes.Service
	PreferencesService  *preferences.Service
	RatingsService      *ratings.Service
	ApplicationsService *applications.Service
	UsersService        *users.Service

	Digester *notify.Digester
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	statsCache := buildCache(cfg)

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cache:  statsCache,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		DB:                  sqlDB,
		UsersHandler:        users.NewHandler(app.UsersService),
		ResumesHandler:      resumes.NewHandler(app.ResumesService),
		PreferencesHandler:  preferences.NewHandler(app.PreferencesService),
		RatingsHandler:      ratings.NewHandler(app.RatingsService),
		ApplicationsHandler: applications.NewHandler(app.ApplicationsService),
	})

	return app, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			telemetry.Warn("bootstrap.cache_close_failed", map[string]any{"error": err.Error()})
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			telemetry.Warn("bootstrap.db_close_failed", map[string]any{"error": err.Error()})
		}
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildCache connects to redis when configured. Cache trouble never blocks
// startup: aggregates just fall through to the database.
func buildCache(cfg config.Config) *cache.Cache {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	c, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		telemetry.Warn("bootstrap.cache_unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	return c
}

func buildParser(cfg config.Config) parser.Parser {
	if strings.TrimSpace(cfg.ParserURL) != "" {
		return parser.NewHTTPClient(cfg.ParserURL)
	}
	return parser.LocalParser{}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.PreferencesRepo = &preferences.PGRepo{DB: app.DB}
		app.RatingsRepo = &ratings.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.PreferencesRepo = preferences.NewMemoryRepo()
		app.RatingsRepo = ratings.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.ResumesService = &resumes.Service{
		Store:        app.Store,
		Repo:         app.ResumesRepo,
		Parser:       buildParser(app.Config),
		ParseTimeout: app.Config.ParserTimeout,
	}
	app.PreferencesService = &preferences.Service{Repo: app.PreferencesRepo}

	app.RatingsService = &ratings.Service{
		Repo:       app.RatingsRepo,
		MinRatings: app.Config.TopMinRatings,
	}
	if app.Cache != nil {
		app.RatingsService.Cache = app.Cache
	}

	app.ApplicationsService = &applications.Service{
		Repo:    app.ApplicationsRepo,
		Resumes: app.ResumesRepo,
		Prefs:   app.PreferencesRepo,
	}
	app.UsersService = &users.Service{Repo: app.UsersRepo}

	app.Digester = &notify.Digester{
		Apps:   app.ApplicationsRepo,
		Users:  app.UsersService,
		Sender: buildSender(app.Config),
	}
}

func buildSender(cfg config.Config) notify.EmailSender {
	port, err := strconv.Atoi(strings.TrimSpace(cfg.SMTPPort))
	if err != nil || port <= 0 {
		port = 587
	}
	return &notify.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     port,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
