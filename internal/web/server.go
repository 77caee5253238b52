package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"ai-rewriter/internal/auth"
	"ai-rewriter/internal/history"
	"ai-rewriter/internal/rewrite"
	"ai-rewriter/internal/stats"
)

const sessionCookie = "rewriter_session"

// Server is the HTTP front-end: server-rendered pages for the rewrite
// form, history and stats views, plus a small JSON API over the same core.
type Server struct {
	authSvc    *auth.Service
	rewriter   *rewrite.Service
	store      history.Store
	agg        *stats.Aggregator
	server     *http.Server
	port       int
	sessionTTL time.Duration
	language   string
	startTime  time.Time
}

func NewServer(authSvc *auth.Service, rewriter *rewrite.Service, store history.Store, agg *stats.Aggregator, port int, sessionTTL time.Duration, language string) *Server {
	return &Server{
		authSvc:    authSvc,
		rewriter:   rewriter,
		store:      store,
		agg:        agg,
		port:       port,
		sessionTTL: sessionTTL,
		language:   language,
		startTime:  time.Now(),
	}
}

// Start registers all routes and serves until Stop is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.routes(),
		// WriteTimeout must outlast the slowest generation call.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("starting web server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("GET /{$}", s.requirePage(s.handleHome))
	mux.HandleFunc("POST /rewrite", s.requirePage(s.handleRewrite))
	mux.HandleFunc("GET /history", s.requirePage(s.handleHistory))
	mux.HandleFunc("POST /history/clear", s.requirePage(s.handleClearHistory))
	mux.HandleFunc("GET /stats", s.requirePage(s.handleStats))

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/rewrite", s.requireAPI(s.handleAPIRewrite))
	mux.HandleFunc("GET /api/history", s.requireAPI(s.handleAPIHistory))
	mux.HandleFunc("GET /api/stats", s.requireAPI(s.handleAPIStats))
	mux.HandleFunc("GET /api/stats/daily", s.requireAPI(s.handleAPIDaily))

	return mux
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// requirePage gates a page handler behind a live session, redirecting
// browsers to the login form.
func (s *Server) requirePage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authSvc.Check(s.sessionToken(r)) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// requireAPI gates an API handler behind a live session with a 401 JSON body.
func (s *Server) requireAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authSvc.Check(s.sessionToken(r)) {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}
