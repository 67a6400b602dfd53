// Package http exposes the JSON API: profiles, categories, expenses,
// income, budgets, period-bounded aggregates, statement import and CSV
// export. The active profile is resolved from a cookie at this edge and
// passed explicitly into every storage call.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"spendtrack/internal/cache"
	"spendtrack/internal/core"
	"spendtrack/internal/middleware/ratelimit"
	"spendtrack/internal/middleware/security"
	"spendtrack/internal/middleware/trace"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

// ProfileCookie carries the active profile id between requests.
const ProfileCookie = "profile_id"

// DefaultProfileID is assumed when the cookie is absent or unreadable.
const DefaultProfileID int64 = 1

type Server struct {
	http.Server

	repo      *storage.SQLiteRepository
	analytics *services.AnalyticsService
	credit    *services.CreditService
	export    *services.ExportService

	limiter      *ratelimit.Limiter
	cacheManager *cache.Manager

	summaryCache   *cache.LRUCache[core.Summary]
	analyticsCache *cache.LRUCache[core.Analytics]

	maxUploadBytes int64
	now            func() time.Time

	shutdownOnce sync.Once
}

// Options configures a Server. Zero values fall back to sane defaults.
type Options struct {
	Addr               string
	Repo               *storage.SQLiteRepository
	Analytics          *services.AnalyticsService
	Credit             *services.CreditService
	Export             *services.ExportService
	CacheTTL           time.Duration
	CacheSize          int
	RateLimitPerMinute int
	MaxUploadBytes     int64
}

// NewServer wires routes, middleware and response caches, returning a
// ready-to-run server.
func NewServer(opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 200
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 << 20
	}

	s := &Server{
		repo:           opts.Repo,
		analytics:      opts.Analytics,
		credit:         opts.Credit,
		export:         opts.Export,
		limiter:        ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		cacheManager:   cache.NewManager(),
		summaryCache:   cache.NewLRUCache[core.Summary](opts.CacheSize, opts.CacheTTL),
		analyticsCache: cache.NewLRUCache[core.Analytics](opts.CacheSize, opts.CacheTTL),
		maxUploadBytes: opts.MaxUploadBytes,
		now:            time.Now,
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.analyticsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	s.Server = http.Server{
		Addr:    opts.Addr,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/profiles", s.handleListProfiles)
	mux.HandleFunc("POST /api/profile/switch", s.handleSwitchProfile)
	mux.HandleFunc("POST /api/profile/update", s.handleUpdateProfile)
	mux.HandleFunc("POST /api/profile/theme", s.handleUpdateTheme)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /api/categories/{name}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/income", s.handleListIncome)
	mux.HandleFunc("POST /api/income", s.handleCreateIncome)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)

	mux.HandleFunc("GET /api/budgets", s.handleGetBudgets)
	mux.HandleFunc("POST /api/budgets/monthly", s.handleSetMonthlyBudget)
	mux.HandleFunc("POST /api/budgets/categories", s.handleSetCategoryBudgets)

	mux.HandleFunc("POST /api/credit/upload", s.handleCreditUpload)
	mux.HandleFunc("GET /api/credit/statements", s.handleListStatements)

	mux.HandleFunc("GET /api/export", s.handleExport)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(extractClientIP)

	var handler http.Handler = mux
	handler = s.withRateLimit(handler)
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)
	return handler
}

// withRateLimit throttles mutating requests per client IP; reads pass
// through untouched.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodDelete {
			if !s.limiter.Allow(extractClientIP(r)) {
				w.Header().Set("Retry-After", "60")
				writeError(r.Context(), w, http.StatusTooManyRequests, codeBadRequest,
					"rate limit exceeded, try again later")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// currentProfile resolves the active profile id from the request cookie.
func currentProfile(r *http.Request) int64 {
	c, err := r.Cookie(ProfileCookie)
	if err != nil {
		return DefaultProfileID
	}
	id, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil || id < 1 {
		return DefaultProfileID
	}
	return id
}

func setProfileCookie(w http.ResponseWriter, profileID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     ProfileCookie,
		Value:    strconv.FormatInt(profileID, 10),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func aggregateKey(profileID int64, period core.Period, start, end string) string {
	return fmt.Sprintf("%d:%s:%s:%s", profileID, period, start, end)
}

// invalidateProfile drops every cached aggregate of the profile. Called
// after any write that could change summary or analytics output.
func (s *Server) invalidateProfile(profileID int64) {
	prefix := strconv.FormatInt(profileID, 10) + ":"
	s.summaryCache.DeletePrefix(prefix)
	s.analyticsCache.DeletePrefix(prefix)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		writeJSON(r.Context(), w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": err.Error(),
		})
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "ok",
	})
}

// Shutdown stops the background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
