package router

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "dog-users-api/docs"
	"dog-users-api/internal/adapters/dogceo"
	mem "dog-users-api/internal/adapters/storage/memory"
	pg "dog-users-api/internal/adapters/storage/postgres"
	"dog-users-api/internal/config"
	"dog-users-api/internal/domain/dogs"
	"dog-users-api/internal/domain/users"
	"dog-users-api/internal/middleware"
	"dog-users-api/internal/platform/logger"
	"dog-users-api/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Config nil => config.New() (defaults).
	Config *config.Config

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: reemplaza al cliente dog.ceo (tests).
	Catalog dogs.Catalog
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	catalog := opts.Catalog
	if catalog == nil {
		client, err := dogceo.NewClient(dogceo.Config{
			BaseURL:   cfg.DogAPIBaseURL,
			Timeout:   cfg.DogAPITimeout,
			UserAgent: cfg.DogAPIUserAgent,
		}, dogceo.WithLogger(log), dogceo.WithMetrics(opts.Metrics))
		if err != nil {
			return nil, fmt.Errorf("router: %w", err)
		}
		catalog = client
	}

	r := chi.NewRouter()

	// Recoverer va adentro de AccessLog y Metrics para que un panic
	// quede registrado como 500.
	r.Use(chimw.RequestID)
	r.Use(middleware.EchoRequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled && opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	if cfg.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	var userRepo users.Repository
	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
	}

	// Services por módulo
	dogsSvc := dogs.NewService(catalog)
	usersSvc := users.NewService(userRepo)

	// Rutas por módulo
	dogs.RegisterRoutes(r, dogsSvc, log)
	users.RegisterRoutes(r, usersSvc, log)

	return r, nil
}
