// Package mockserver is an in-memory stand-in for the payments API, used by
// the client tests and by "paykit mock serve". Request bodies are decoded
// through the same union types as the client.
package mockserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/gork-labs/paykit/pkg/models"
)

var log = logging.Logger("paykit/mockserver")

// Server serves the customers, checkouts, meters, events and products
// endpoints from memory.
type Server struct {
	mux            *chi.Mux
	token          string
	now            func() time.Time
	organizationID string

	mu            sync.RWMutex
	customers     map[string]*models.Customer
	customerOrder []string
	checkouts     map[string]*models.Checkout
	meters        map[string]*models.Meter
	meterOrder    []string
	products      map[string]*models.Product
	events        []models.EventCreate
}

type Option func(*Server)

// WithToken only accepts requests bearing token. Without it any non-empty
// bearer token is accepted.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithClock sets the time source for resource timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(opts ...Option) *Server {
	s := &Server{
		now:            time.Now,
		organizationID: uuid.NewString(),
		customers:      make(map[string]*models.Customer),
		checkouts:      make(map[string]*models.Checkout),
		meters:         make(map[string]*models.Meter),
		products:       make(map[string]*models.Product),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(s.authenticate)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "Not found")
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Post("/", s.createCustomer)
			r.Get("/{id}", s.getCustomer)
			r.Patch("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.deleteCustomer)
		})
		r.Route("/checkouts", func(r chi.Router) {
			r.Post("/", s.createCheckout)
			r.Get("/{id}", s.getCheckout)
		})
		r.Route("/meters", func(r chi.Router) {
			r.Get("/", s.listMeters)
			r.Post("/", s.createMeter)
			r.Get("/{id}", s.getMeter)
		})
		r.Post("/events/ingest", s.ingestEvents)
		r.Route("/products", func(r chi.Router) {
			r.Post("/", s.createProduct)
			r.Get("/{id}", s.getProduct)
		})
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", addr, "organization_id", s.organizationID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Infow("stopped", "addr", addr)
	return nil
}

// Events returns a copy of every ingested event, in ingestion order.
func (s *Server) Events() []models.EventCreate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.EventCreate(nil), s.events...)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" || (s.token != "" && token != s.token) {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or missing access token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).String(),
		)
	})
}
