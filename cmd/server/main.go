package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lrbooking/config"
	"lrbooking/db"
	"lrbooking/db/mongo"
	"lrbooking/db/postgres"
	"lrbooking/db/redis"
	"lrbooking/handlers"
	"lrbooking/logger"
	"lrbooking/metrics"
	"lrbooking/repository"
	"lrbooking/routes"
	"lrbooking/services"
	"lrbooking/utils"
)

type stores struct {
	bookings repository.BookingRepository
	sequence repository.Sequencer
	settings repository.SettingsRepository
	options  repository.OptionStore
	parties  repository.PartyCache
	conn     db.DB
}

func openStores(cfg *config.Config, log *logger.Logger) (*stores, error) {
	kind, err := db.ParseDBType(cfg.DBType)
	if err != nil {
		return nil, err
	}
	switch kind {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL); err != nil {
			return nil, err
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if cfg.PostgresMaxConns > 0 {
			pg.Pool.MaxOpen = cfg.PostgresMaxConns
		}
		if err := pg.Connect(); err != nil {
			return nil, err
		}
		bookings := repository.NewPostgresBookingRepo(pg.Conn)
		opts := repository.NewPostgresOptionRepo(pg.Conn)
		log.Infow("connected to postgres")
		return &stores{
			bookings: bookings,
			sequence: bookings,
			settings: repository.NewPostgresSettingsRepo(pg.Conn),
			options:  opts,
			parties:  opts,
			conn:     pg,
		}, nil

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase)
		if err := mg.Connect(); err != nil {
			return nil, err
		}
		bookings := repository.NewMongoBookingRepo(mg.Client, cfg.MongoDatabase)
		opts := repository.NewMongoOptionRepo(mg.Client, cfg.MongoDatabase)
		log.Infow("connected to mongo", "database", cfg.MongoDatabase)
		return &stores{
			bookings: bookings,
			sequence: bookings,
			settings: repository.NewMongoSettingsRepo(mg.Client, cfg.MongoDatabase),
			options:  opts,
			parties:  opts,
			conn:     mg,
		}, nil

	default:
		mem := repository.NewMemoryStore()
		log.Warnw("using in-memory store, data is lost on restart")
		return &stores{bookings: mem, sequence: mem, settings: mem, options: mem, parties: mem}, nil
	}
}

func main() {
	// Load config from .env or the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	st, err := openStores(cfg, log)
	if err != nil {
		log.Fatalw("database setup failed", "dbType", cfg.DBType, "error", err)
	}
	if st.conn != nil {
		defer func() { _ = st.conn.Disconnect() }()
	}

	// Redis takes over option lists and history when configured.
	if cfg.RedisAddr != "" {
		rdb := redis.NewRedisDB(cfg.RedisAddr)
		if err := rdb.Connect(); err != nil {
			log.Fatalw("redis connect failed", "addr", cfg.RedisAddr, "error", err)
		}
		defer func() { _ = rdb.Disconnect() }()
		st.options = repository.NewRedisOptionStore(rdb.Client, cfg.RedisPrefix)
		log.Infow("option lists served from redis", "addr", cfg.RedisAddr)
	}

	var renderer services.Renderer
	switch cfg.PDFEngine {
	case "gotenberg":
		g := utils.NewGotenbergRenderer(cfg.GotenbergURL)
		if err := g.Ping(context.Background()); err != nil {
			log.Warnw("gotenberg not reachable yet", "url", cfg.GotenbergURL, "error", err)
		}
		renderer = g
	default:
		renderer = &utils.ChromeRenderer{}
	}

	local := &utils.LocalStore{Dir: cfg.PDFSavePath}
	var store services.FileStore = local
	var fallback services.FileStore
	if cfg.R2.Enabled() {
		r2, err := utils.NewR2Store(context.Background(), cfg.R2)
		if err != nil {
			log.Fatalw("r2 setup failed", "error", err)
		}
		store, fallback = r2, local
	} else {
		log.Infow("R2 not configured, PDFs are written locally", "dir", cfg.PDFSavePath)
	}

	loc := cfg.Location()
	m := metrics.New(prometheus.DefaultRegisterer)

	bookingService := services.NewBookingService(st.bookings, st.sequence, st.options, st.parties, log)
	bookingService.Files = store
	bookingService.Location = loc
	bookingService.Metrics = m
	settingsService := services.NewSettingsService(st.settings, log)
	reportService := services.NewReportService(repository.NewPDFRepository(st.bookings, st.settings), loc)
	documentService := services.NewDocumentService(bookingService, reportService, settingsService, renderer, store, fallback, log)
	documentService.Metrics = m

	handler := routes.SetupRoutes(routes.Deps{
		Logger:       log.WithComponent("http"),
		Bookings:     &handlers.BookingHandler{Service: bookingService},
		Options:      &handlers.OptionHandler{Service: bookingService},
		Settings:     &handlers.SettingsHandler{Service: settingsService},
		Reports:      &handlers.ReportHandler{Service: reportService},
		PDF:          &handlers.PDFHandler{Documents: documentService},
		PDFRateLimit: cfg.PDFRateLimit,
		Health: func(ctx context.Context) error {
			if st.conn == nil {
				return nil
			}
			return st.conn.Ping(ctx)
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	go func() {
		log.Infow("server running", "port", cfg.Port, "dbType", cfg.DBType, "pdfEngine", cfg.PDFEngine)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
	log.Infow("server stopped")
}
