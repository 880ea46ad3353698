package httpserver

import (
	"context"
	"net/http"
	"time"

	"employee_project/internal/middleware"
	"employee_project/internal/session"
	"employee_project/internal/utils"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type Options struct {
	Schema   *graphqlgo.Schema
	Tokens   *utils.TokenIssuer
	Sessions session.Store

	// Idempotency is optional; nil disables response replay.
	Idempotency    middleware.Cache
	IdempotencyTTL time.Duration

	CORSOrigins []string
	Registry    *prometheus.Registry
}

func NewHandler(opts Options) http.Handler {
	metrics := middleware.NewMetrics(opts.Registry)

	var graphqlHandler http.Handler = &relay.Handler{Schema: opts.Schema}
	if opts.Idempotency != nil {
		graphqlHandler = middleware.Idempotency(opts.Idempotency, opts.IdempotencyTTL)(graphqlHandler)
	}
	graphqlHandler = middleware.Session(opts.Tokens, opts.Sessions)(graphqlHandler)
	graphqlHandler = onlyPost(graphqlHandler)

	mux := http.NewServeMux()
	mux.Handle("/graphql", metrics.Instrument("/graphql", graphqlHandler))
	mux.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	return middleware.Tracing(cors.New(corsOptions(opts.CORSOrigins)).Handler(mux))
}

// corsOptions allows credentialed requests only from explicitly listed origins.
func corsOptions(origins []string) cors.Options {
	credentials := len(origins) > 0
	for _, origin := range origins {
		if origin == "*" {
			credentials = false
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.IdempotencyHeader},
		AllowCredentials: credentials,
	}
}

func onlyPost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
