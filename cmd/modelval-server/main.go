package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	modelval "github.com/goliatone/go-modelval"
	"github.com/goliatone/go-modelval/components/validation"
	"github.com/goliatone/go-modelval/internal/config"
	"github.com/goliatone/go-modelval/internal/registry"
	"github.com/goliatone/go-modelval/pkg/schema"
)

func main() {
	cfg, err := config.ParseServer()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *registry.Store
	if cfg.DBPath != "" {
		opened, err := registry.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		store = opened
		defer func() {
			_ = store.Close()
		}()
	}

	v := modelval.New(modelval.WithLogger(logger))

	if err := loadStartupModel(ctx, cfg, logger, v, store); err != nil {
		return err
	}

	opts := []validation.OptionFn{validation.WithLogger(logger)}
	if store != nil {
		opts = append(opts, validation.WithStore(store))
	}
	component := validation.New(v, opts...)

	router := mux.NewRouter()
	paths, err := component.RegisterRoutes(routerMux{router}, cfg.BasePath)
	if err != nil {
		return err
	}
	for _, path := range paths {
		logger.Info("route mounted", "path", path)
	}
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// loadStartupModel seeds the validator from a definition source or a registry
// entry. A server with neither starts unloaded; callers load over HTTP.
func loadStartupModel(ctx context.Context, cfg config.Server, logger *slog.Logger, v modelval.Validator, store *registry.Store) error {
	switch {
	case cfg.ModelSource != "":
		loader := modelval.NewLoader(schema.WithHTTPFallback(10 * time.Second))
		doc, err := loader.Load(ctx, parseSource(cfg.ModelSource))
		if err != nil {
			return err
		}
		return v.LoadModel(ctx, doc.Text(), cfg.RootType)
	case cfg.ModelName != "" && store != nil:
		stored, err := store.Get(ctx, cfg.ModelName)
		if err != nil {
			return err
		}
		rootType := cfg.RootType
		if rootType == "" {
			rootType = stored.RootType
		}
		return v.LoadModel(ctx, stored.Definition, rootType)
	default:
		logger.Info("starting without a model")
		return nil
	}
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

// routerMux adapts *mux.Router to the component Mux interface.
type routerMux struct {
	router *mux.Router
}

func (m routerMux) Handle(pattern string, handler http.Handler) {
	m.router.Handle(pattern, handler)
}

func newLogger(cfg config.Server) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
