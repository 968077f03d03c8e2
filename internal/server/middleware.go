package server

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var untrackedPrefixes = []string{
	"/static/",
	"/admin/",
	"/api/",
	"/favicon",
	"/privacy",
	"/healthz",
}

// visitorTracking records page views. Static assets, the admin area and
// API calls are skipped, and so is anyone sending Do Not Track.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, userAgent := c.ClientIP(), c.GetHeader("User-Agent")
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			s.track(ip, userAgent, path)
		}()
		c.Next()
	}
}

func (s *Server) recordVisit(ip, userAgent, path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.store.Record(ctx, ip, userAgent, path); err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// hashedClient is what gets logged instead of a raw client IP.
func (s *Server) hashedClient(c *gin.Context) string {
	if s.store == nil {
		return "unknown"
	}
	return s.store.HashIP(c.ClientIP())
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.allow(c.ClientIP()) {
			log.Printf("Rate limit exceeded for %s on %s", s.hashedClient(c), c.Request.URL.Path)
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	perMin   int
	idleTTL  time.Duration
	maxIdle  int
	lastScan time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*clientLimiter),
		perMin:  perMinute,
		idleTTL: 10 * time.Minute,
		maxIdle: 1024,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.clients) > l.maxIdle && now.Sub(l.lastScan) > time.Minute {
		for key, cl := range l.clients {
			if now.Sub(cl.lastSeen) > l.idleTTL {
				delete(l.clients, key)
			}
		}
		l.lastScan = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin),
		}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.Allow()
}
