package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "github.com/JOULifestyle/Contact-Management-App/internal/auth"
	"github.com/JOULifestyle/Contact-Management-App/internal/contacts"
	"github.com/JOULifestyle/Contact-Management-App/internal/importer"
	"github.com/JOULifestyle/Contact-Management-App/internal/mailer"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/auth"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/config"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/storage/db"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/storage/object"
	localstore "github.com/JOULifestyle/Contact-Management-App/internal/shared/storage/object/local"
	s3store "github.com/JOULifestyle/Contact-Management-App/internal/shared/storage/object/s3"
	"github.com/JOULifestyle/Contact-Management-App/internal/users"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Tokens *auth.Tokens
	Mailer mailer.Mailer

	UsersRepo    users.Repo
	ContactsRepo contacts.Repo

	UsersService    *users.Service
	ContactsService *contacts.Service
	ImportService   *importer.Service

	UsersHandler    *users.Handler
	ContactsHandler *contacts.Handler
	ImportHandler   *importer.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		log.Printf("bootstrap: JWT_SECRET empty; using a dev-only secret")
		secret = "dev-only-secret"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: auth.New(secret),
		Mailer: buildMailer(cfg),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Tokens:          app.Tokens,
		UsersHandler:    app.UsersHandler,
		ContactsHandler: app.ContactsHandler,
		ImportHandler:   app.ImportHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
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

func buildMailer(cfg config.Config) mailer.Mailer {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		log.Printf("bootstrap: SMTP_HOST empty; reset links are logged instead of mailed")
		return mailer.LogMailer{}
	}
	return &mailer.SMTPMailer{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ContactsRepo = &contacts.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ContactsRepo = contacts.NewMemoryRepo()
	}

	resetURLBase := strings.TrimRight(app.Config.UIURL, "/") + "/reset-password"
	app.UsersService = users.NewService(app.UsersRepo, app.Tokens, app.Mailer, resetURLBase)
	app.ContactsService = contacts.NewService(app.ContactsRepo, app.Config.DefaultPhoneRegion)
	app.ImportService = importer.NewService(app.ContactsRepo, app.Config.DefaultPhoneRegion)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.ContactsHandler = contacts.NewHandler(app.ContactsService, app.Store, app.Config.BaseURL)
	app.ImportHandler = importer.NewHandler(app.ImportService)

	if app.Config.GoogleClientID != "" && app.Config.GoogleClientSecret != "" {
		app.GoogleAuth = googleauth.NewGoogleService(
			app.Config.GoogleClientID,
			app.Config.GoogleClientSecret,
			app.Config.GoogleRedirectURL,
			app.Config.UIURL,
			app.UsersService,
		)
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
