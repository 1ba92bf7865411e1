package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"socialfeed/config"
	gqlin "socialfeed/internal/adapter/in/graphql"
	"socialfeed/internal/adapter/in/httpapi"
	feedbus "socialfeed/internal/adapter/out/feedbus/inmemory"
	"socialfeed/internal/adapter/out/imagestore"
	memstore "socialfeed/internal/adapter/out/storage/inmemory"
	pgstore "socialfeed/internal/adapter/out/storage/postgres"
	"socialfeed/internal/service"
	"socialfeed/pkg/logger"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	cfg  config.Config
	srv  *http.Server
	pool *pgxpool.Pool
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		postStorage service.PostStorage
		userStorage service.UserStorage
		pool        *pgxpool.Pool
	)

	switch cfg.StorageType {
	case "postgres":
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		postStorage = pgstore.NewPostStorage(pool, trmpgx.DefaultCtxGetter)
		userStorage = pgstore.NewUserStorage(pool, trmpgx.DefaultCtxGetter)

	default:
		postStorage = memstore.NewPostStorage()
		userStorage = memstore.NewUserStorage()
	}

	bus := feedbus.New(0)
	images := imagestore.NewDiskStore(cfg.ImagesDir)

	postSvc := service.NewPostService(postStorage, userStorage, bus, images)

	resolver := gqlin.NewResolver(postSvc)
	es := gqlin.NewExecutableSchema(gqlin.Config{Resolvers: resolver})
	gqlSrv := handler.New(es)

	gqlSrv.AddTransport(transport.POST{})
	gqlSrv.AddTransport(&transport.Websocket{
		KeepAlivePingInterval: time.Duration(cfg.WS.KeepAliveSeconds) * time.Second,
	})
	gqlSrv.Use(extension.Introspection{})
	gqlSrv.SetErrorPresenter(gqlin.ErrorPresenter)

	imageHandler := httpapi.NewImageHandler(images)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}).Handler)
	r.Use(httpapi.Identity([]byte(cfg.JWTSecret)))

	r.Handle("/query", gqlSrv)
	r.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	r.Put("/post-image", imageHandler.Upload)
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized", "addr", addr, "storage", cfg.StorageType, "images", cfg.ImagesDir)
	return &App{cfg: cfg, srv: srv, pool: pool}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shCtx)
		if a.pool != nil {
			a.pool.Close()
		}
		return nil

	case err := <-errCh:
		if a.pool != nil {
			a.pool.Close()
		}
		return err
	}
}
