// Package web serves the word cloud page and its JSON/PNG API.
package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/AnechkaShv/wordcloud-generator/internal/config"
	"github.com/AnechkaShv/wordcloud-generator/internal/generator"
	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

// Server wraps the router with graceful shutdown.
type Server struct {
	cfg    *config.Config
	router *mux.Router
	log    zerolog.Logger
}

func New(cfg *config.Config, log zerolog.Logger, gen *generator.Generator, base params.StopwordSet) *Server {
	logger := log.With().Str("component", "http").Logger()
	handler := NewWordCloudHandler(gen, base, cfg)

	r := mux.NewRouter()
	r.Use(requestID(logger), instrument)

	r.HandleFunc("/", handler.Index).Methods(http.MethodGet)
	r.HandleFunc("/", handler.Generate).Methods(http.MethodPost)
	r.HandleFunc("/api/wordcloud", handler.GenerateAPI).Methods(http.MethodPost)
	r.HandleFunc("/api/stopwords", handler.Stopwords).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return &Server{
		cfg:    cfg,
		router: r,
		log:    logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP listener and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("Word Cloud Service is running")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
