package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/kozmoai/site/internal/feat/blog"
	"github.com/kozmoai/site/internal/feat/booking"
	"github.com/kozmoai/site/internal/feat/leads"
	"github.com/kozmoai/site/internal/feat/pages"
	"github.com/kozmoai/site/internal/web"
	"github.com/kozmoai/site/pkg/kz/app"
	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/database"
	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/metrics"
	"github.com/kozmoai/site/pkg/kz/middleware"
)

//go:embed assets/migrations/sqlite/*.sql assets/migrations/postgres/*.sql
var migrationsFS embed.FS

//go:embed assets/content
var contentFS embed.FS

//go:embed assets/static
var staticFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error", "").Errorf("Cannot load config: %v", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	log.Infof("Starting KozmoAI site [%s mode]", cfg.Env)
	if cfg.Database.IsPostgres() {
		log.Info("Database: postgres")
	} else {
		log.Infof("Database: %s", cfg.Database.Path)
	}

	db := database.New(migrationsFS, cfg, log)

	blogService := blog.NewService(contentFS, log)
	pagesService := pages.NewService(contentFS, log)
	leadsService := leads.NewService(db, cfg, log)
	surfaces := leads.NewRegistry(leadsService, cfg, log)

	blogHandler := blog.NewHandler(blogService, log)
	pagesHandler := pages.NewHandler(pagesService, db, log)
	leadsHandler := leads.NewHandler(leadsService, surfaces, cfg, log)
	bookingHandler := booking.NewHandler(booking.NewWidget(cfg.Booking), log)

	fileServer := web.NewFileServer(staticFS, log)
	metricsEndpoint := metrics.NewEndpoint(cfg, log)

	router := chi.NewRouter()
	middleware.DefaultStack(router, log)

	lc := app.Setup(log,
		db,
		blogService, pagesService, leadsService, surfaces,
		pagesHandler, blogHandler, leadsHandler, bookingHandler,
		fileServer, metricsEndpoint,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := lc.Start(ctx, router); err != nil {
		log.Errorf("Startup failed: %v", err)
		os.Exit(1)
	}

	if err := lc.Serve(ctx, router, cfg.Server.Addr); err != nil {
		log.Errorf("Server error: %v", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
