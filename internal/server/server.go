// Package server provides the HTTP REST API for the resume structurer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-structurer/internal/db"
	"github.com/jonathan/resume-structurer/internal/enhance"
	"github.com/jonathan/resume-structurer/internal/llm"
	"github.com/jonathan/resume-structurer/internal/parsing"
	"github.com/jonathan/resume-structurer/internal/server/ratelimit"
	"github.com/jonathan/resume-structurer/internal/types"
)

// DefaultMaxUploadBytes bounds uploaded files when Config.MaxUploadBytes is unset
const DefaultMaxUploadBytes = 10 << 20

// Store persists parse results. *db.DB implements it.
type Store interface {
	SaveParsedResume(ctx context.Context, r *db.ParsedResume) (uuid.UUID, error)
	GetParsedResume(ctx context.Context, id uuid.UUID) (*db.ParsedResume, error)
	ListParsedResumes(ctx context.Context, limit, offset int) ([]db.ParsedResumeSummary, int, error)
	Close()
}

// Enhancer rewrites resume content. *enhance.Enhancer implements it.
type Enhancer interface {
	Enhance(ctx context.Context, req enhance.Request) (*enhance.Response, error)
	EnhanceDocument(ctx context.Context, doc *types.ResumeDocument, rc enhance.Context) (*types.ResumeDocument, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	store          Store
	enhancer       Enhancer
	llmClient      llm.Client
	parser         *parsing.Parser
	docxParser     *parsing.Parser
	maxUploadBytes int64
	allowedOrigins []string
	rateLimiter    *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string // optional; enables /resumes and persistence
	APIKey         string // optional; enables /enhance
	MaxUploadBytes int64
	AllowedOrigins []string // empty allows any origin
	LLM            *llm.Config
	Parser         *parsing.Parser // nil uses the default options
	DocxParser     *parsing.Parser // used for .docx uploads; nil falls back to Parser
	RateLimit      *ratelimit.Config
}

// New creates a new server instance, connecting the database and model client when configured
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	var store Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		store = database
	} else {
		log.Printf("[server] DATABASE_URL not set; storage endpoints disabled")
	}

	var client llm.Client
	var enhancer Enhancer
	if cfg.APIKey != "" {
		c, err := llm.NewClient(ctx, cfg.LLM, cfg.APIKey)
		if err != nil {
			if store != nil {
				store.Close()
			}
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		client = c
		enhancer = enhance.New(c)
	} else {
		log.Printf("[server] GEMINI_API_KEY not set; enhancement endpoints disabled")
	}

	s := newServer(cfg, store, enhancer)
	s.llmClient = client
	return s, nil
}

// newServer wires a server around already-constructed backends
func newServer(cfg Config, store Store, enhancer Enhancer) *Server {
	parser := cfg.Parser
	if parser == nil {
		parser, _ = parsing.NewParser(parsing.DefaultOptions())
	}
	docxParser := cfg.DocxParser
	if docxParser == nil {
		docxParser = parser
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		store:          store,
		enhancer:       enhancer,
		parser:         parser,
		docxParser:     docxParser,
		maxUploadBytes: maxUpload,
		allowedOrigins: cfg.AllowedOrigins,
		rateLimiter:    ratelimit.NewLimiter(rlConfig),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Parsing
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /upload", s.handleUpload)

	// Enhancement
	mux.HandleFunc("POST /enhance", s.handleEnhance)
	mux.HandleFunc("POST /enhance/document", s.handleEnhanceDocument)

	// Stored results
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // document enhancement makes several model calls
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("[server] stopped")
	return nil
}

// Close releases the rate limiter, database pool and model client
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("[server] failed to close model client: %v", err)
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.allowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(s.allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d %s in %v", r.Method, r.URL.Path, rec.status, r.RemoteAddr, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"storage":  s.store != nil,
		"enhancer": s.enhancer != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail writes err with the status HTTPStatus assigns it. Internal errors are
// logged and reported generically.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] rate limit exceeded: limit=%d remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
