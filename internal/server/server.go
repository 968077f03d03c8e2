// Package server serves the portfolio page, its HTMX fragments, the small
// JSON API and the admin area.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/view"
)

// Server wires the site content to HTTP.
type Server struct {
	cfg       *config.Config
	site      *content.Site
	tmpl      *template.Template
	submitter contact.Submitter
	store     *metrics.Store
	limiter   *ipLimiter

	adminToken string
	// track records a visit; replaced in tests.
	track func(ip, userAgent, path string)
	// background counts visit recording and cleanup goroutines. Run waits
	// for them so the store outlives every write.
	background sync.WaitGroup
}

// Deps are the optional collaborators of a Server.
type Deps struct {
	// Store enables visitor tracking and the admin dashboard. May be nil.
	Store *metrics.Store
	// Submitter handles contact form submissions. Defaults to contact.Discard.
	Submitter contact.Submitter
}

// New builds a server for site.
func New(cfg *config.Config, site *content.Site, deps Deps) (*Server, error) {
	if cfg.ContactRatePerMinute <= 0 {
		return nil, fmt.Errorf("contact rate must be positive, got %d", cfg.ContactRatePerMinute)
	}

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	token, err := metrics.NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin token: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		site:       site,
		tmpl:       tmpl,
		submitter:  deps.Submitter,
		store:      deps.Store,
		limiter:    newIPLimiter(cfg.ContactRatePerMinute),
		adminToken: token,
	}
	if s.submitter == nil {
		s.submitter = contact.Discard{}
	}
	s.track = s.recordVisit

	return s, nil
}

// Router returns the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.tmpl)

	if s.trackingEnabled() {
		r.Use(s.visitorTracking())
		log.Println("Privacy: visitor tracking enabled with hashed IP addresses")
	}

	r.StaticFS("/static", http.FS(view.Static()))

	r.GET("/", s.handleIndex)
	r.GET("/projects", s.handleProjects)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.rateLimit(), s.handleContact)
	r.GET("/privacy", s.handlePrivacy)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/content", s.handleContent)
	api.POST("/timeline/connector", s.handleConnector)
	api.POST("/contact", s.rateLimit(), s.handleContactJSON)

	if s.adminEnabled() {
		s.setupAdminRoutes(r)
		log.Printf("Admin access available at: /admin/login")
	}

	return r
}

func (s *Server) trackingEnabled() bool {
	return s.store != nil && s.cfg.TrackingEnabled
}

func (s *Server) adminEnabled() bool {
	return s.store != nil && s.cfg.AdminEnabled()
}

// Run serves until ctx is cancelled, then shuts down gracefully. It returns
// once pending visit writes and the cleanup loop have finished.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	defer s.background.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.trackingEnabled() {
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			s.store.RunCleanup(ctx, 24*time.Hour, s.cfg.Retention)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
