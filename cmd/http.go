package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oseayemenre/upepo/internal/api"
	"github.com/oseayemenre/upepo/internal/auth"
	"github.com/oseayemenre/upepo/internal/config"
	"github.com/oseayemenre/upepo/internal/logger"
	"github.com/oseayemenre/upepo/internal/pages"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

const uploadFolder = "upepo"

type Server struct {
	logger      logger.Logger
	objectStore store.ObjectStore
	store       *store.PostgresStore
	sessions    *auth.Sessions
	config      *config.Config
	registry    *prometheus.Registry
}

func (s *Server) Mount() (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	api.New(r, s.logger, s.objectStore, s.store, s.sessions, s.config, s.registry).RegisterRoutes()

	views, err := pages.New(s.store, s.logger)

	if err != nil {
		return nil, err
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.LoadSessionUser(s.sessions, s.store, s.logger))
		views.Routes(r)
	})

	return r, nil
}

func newObjectStore(ctx context.Context, cfg *config.Config) (store.ObjectStore, error) {
	switch cfg.ObjectStore {
	case config.ObjectStoreCloudinary:
		cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret)

		if err != nil {
			return nil, fmt.Errorf("error configuring cloudinary: %w", err)
		}

		return store.NewCloudinaryStore(cld, uploadFolder), nil
	case config.ObjectStoreS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))

		if err != nil {
			return nil, fmt.Errorf("error loading aws config: %w", err)
		}

		return store.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Region), nil
	default:
		return store.NoopObjectStore{}, nil
	}
}

func HTTPCommand(ctx context.Context, envFile *string) *cobra.Command {
	var addr int
	var env string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "run the upepo http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

			d, err := setup(*envFile, env)

			if err != nil {
				return err
			}

			defer d.close()

			if cmd.Flags().Changed("addr") || d.config.Addr == 0 {
				d.config.Addr = addr
			}

			sessions, err := auth.NewSessions(d.config.SessionSecret, d.config.StoreSecure)

			if err != nil {
				return err
			}

			if d.config.GoogleEnabled() {
				auth.UseGoogle(sessions, d.config.GoogleClientID, d.config.GoogleClientSecret, d.config.Host+"/api/v1/auth/google/callback")
			}

			objectStore, err := newObjectStore(ctx, d.config)

			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			server := &Server{
				logger:      d.logger,
				objectStore: objectStore,
				store:       d.store,
				sessions:    sessions,
				config:      d.config,
				registry:    registry,
			}

			handler, err := server.Mount()

			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", d.config.Addr),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       15 * time.Minute,
			}
			errCh := make(chan error, 1)

			d.logger.Info("server startup", "status", fmt.Sprintf("server starting on port: %d", d.config.Addr), "env", d.config.Env, "objectStore", d.config.ObjectStore)

			go func() {
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err

			case <-sig:
				d.logger.Info("server shutdown", "status", "kill signal received")
				ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("error shutting down server: %w", err)
				}

				d.logger.Info("server shutdown", "status", "shutdown complete")
				return nil
			}
		},
	}

	cmd.Flags().IntVarP(&addr, "addr", "a", 8080, "server port")
	cmd.Flags().StringVarP(&env, "env", "e", "", "current working environment (dev or prod), overrides ENV")

	return cmd
}
