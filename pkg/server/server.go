/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server implements a mock posts backend.
package server

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/core/pkg/options"
	"github.com/unikorn-cloud/core/pkg/server/errors"
	"github.com/unikorn-cloud/posts/pkg/metrics"
	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/server/auth"
	"github.com/unikorn-cloud/posts/pkg/server/handler"
	"github.com/unikorn-cloud/posts/pkg/server/middleware"
	"github.com/unikorn-cloud/posts/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Server struct {
	// CoreOptions are common across all services.
	CoreOptions options.CoreOptions

	// Options control the HTTP server.
	Options Options

	// HandlerOptions sets options for the HTTP handler.
	HandlerOptions handler.Options
}

func (s *Server) AddFlags(flags *pflag.FlagSet) {
	s.CoreOptions.AddFlags(flags)
	s.Options.AddFlags(flags)
	s.HandlerOptions.AddFlags(flags)
}

func (s *Server) SetupLogging() {
	s.CoreOptions.SetupLogging()
}

// OpenStore returns the configured backend.
func OpenStore(ctx context.Context, o *Options) (store.Store, error) {
	if o.DatabaseURL == "" {
		return store.NewMemory(), nil
	}

	return store.OpenPostgres(ctx, o.DatabaseURL)
}

// Seed creates numbered posts when the store has none.
func Seed(ctx context.Context, s store.Store, count int) error {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return err
	}

	if len(posts) != 0 {
		return nil
	}

	for i := 1; i <= count; i++ {
		if _, err := s.CreatePost(ctx, fmt.Sprintf("Post %d", i)); err != nil {
			return fmt.Errorf("seeding posts: %w", err)
		}
	}

	log.FromContext(ctx).Info("seeded posts", "count", count)

	return nil
}

func handleParameterError(w http.ResponseWriter, r *http.Request, err error) {
	errors.HandleError(w, r, errors.OAuth2InvalidRequest("invalid parameter").WithError(err))
}

// NewRouter builds the API, metrics are registered with the registry and
// served on /metrics.
func NewRouter(s store.Store, o *Options, handlerOptions *handler.Options, registry *prometheus.Registry) (http.Handler, error) {
	doc, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	metricsServer, err := metrics.NewServer(registry)
	if err != nil {
		return nil, err
	}

	secret := o.TokenSecret
	if secret == "" {
		secret = uuid.NewString()
	}

	issuer := auth.NewIssuer([]byte(secret), o.TokenValidity)

	h, err := handler.New(s, issuer, handlerOptions)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(metricsServer.Middleware)

	if o.ValidateRequests {
		validator, err := middleware.NewValidator(doc)
		if err != nil {
			return nil, err
		}

		router.Use(validator.Middleware)
	}

	router.Method(http.MethodGet, "/metrics", metricsServer.Handler())

	chiServerOptions := openapi.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: handleParameterError,
	}

	if o.RequireAuth {
		chiServerOptions.Middlewares = append(chiServerOptions.Middlewares, issuer.Middleware)
	}

	return openapi.HandlerWithOptions(h, chiServerOptions), nil
}

// Run serves the API until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger := log.Log.WithName("server")

	ctx = log.IntoContext(ctx, logger)

	backend, err := OpenStore(ctx, &s.Options)
	if err != nil {
		return err
	}

	defer backend.Close()

	if err := Seed(ctx, backend, s.Options.SeedPosts); err != nil {
		return err
	}

	router, err := NewRouter(backend, &s.Options, &s.HandlerOptions, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadHeaderTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Options.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown failed")
		}
	}()

	logger.Info("listening", "address", s.Options.ListenAddress, "requireAuth", s.Options.RequireAuth)

	if err := server.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
