// Package http serves the budget dashboard: a server-rendered page, a JSON
// API, and a rendered chart image, all backed by the snapshot loader.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"budgetview/internal/cache"
	"budgetview/internal/core"
	applog "budgetview/internal/log"
	"budgetview/internal/middleware/trace"
	"budgetview/internal/services"
	appweb "budgetview/web"
)

// SnapshotLoader is the loader surface the handlers need.
type SnapshotLoader interface {
	Load(ctx context.Context) (services.Snapshot, error)
	Invalidate()
}

type Server struct {
	http.Server

	loader         SnapshotLoader
	formatter      *core.CurrencyFormatter
	excludedGroups []string
	templates      *template.Template
	rateLimiter    *rateLimiter
	tracer         *trace.Middleware

	// Rendered pie charts keyed by selected group.
	chartCache *cache.LRU[[]byte]

	// Injected clock so classifier output is deterministic in tests.
	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, templates, and middleware, returning a
// ready-to-run server.
func NewServer(addr string, loader SnapshotLoader, formatter *core.CurrencyFormatter, excludedGroups []string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		loader:         loader,
		formatter:      formatter,
		excludedGroups: excludedGroups,
		rateLimiter:    newRateLimiter(),
		chartCache:     cache.NewLRU[[]byte](20, time.Minute),
		now:            time.Now,
	}
	s.tracer = trace.NewMiddleware(extractClientIP)
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(mux),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets from the embedded FS.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.secure(s.handleDashboardPage))
	mux.HandleFunc("/api/dashboard", s.secure(s.handleDashboardAPI))
	mux.HandleFunc("/api/categories/", s.secure(s.handleCategoryTransactions))
	mux.HandleFunc("/api/refresh", s.secure(s.handleRefresh))
	mux.HandleFunc("/chart.png", s.secure(s.handleChart))
	mux.HandleFunc("/healthz", s.handleHealth)

	return s
}

// ChartCache exposes the chart cache for cleanup registration.
func (s *Server) ChartCache() cache.Cleaner {
	return s.chartCache
}

// Shutdown stops background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// secure wraps a handler with security headers and per-client rate limiting.
func (s *Server) secure(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applySecurityHeaders(w)

		ip := extractClientIP(r)
		if !s.rateLimiter.allow(ip) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", applog.FieldClientIP, ip)
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		h(w, r)
	}
}

// Per-client request limiter: 60 requests per minute per IP.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, ok := rl.clients[clientIP]
	if !ok || now.Sub(client.lastRequest) > time.Minute {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for ip, client := range rl.clients {
				if client.lastRequest.Before(cutoff) {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
