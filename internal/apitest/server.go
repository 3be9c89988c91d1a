// Package apitest runs an in-memory flock backend on gin for tests. It keeps
// records in slices (insertion order), issues short-lived JWTs and lets tests
// inject failures per route.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/flock-console/internal/models"
)

const (
	// Prefix is the API prefix the server mounts its routes under.
	Prefix = "/api/v1"

	signingSecret = "apitest-secret"
)

// Credentials accepted by the login endpoint.
const (
	Email    = "shepherd@example.com"
	Password = "correct-horse"
)

// Server is an in-memory flock backend.
type Server struct {
	httpServer *httptest.Server

	mu          sync.Mutex
	nextID      int64
	sheep       []models.Sheep
	events      []models.HealthEvent
	pairs       []models.MatingPair
	tokens      map[string]bool
	resetTokens map[string]string
	faults      map[string]int
	hits        map[string]int
	lastHeaders http.Header
	tokenTTL    time.Duration
	delay       time.Duration
}

// New starts a server and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &Server{
		nextID:      1,
		tokens:      make(map[string]bool),
		resetTokens: make(map[string]string),
		faults:      make(map[string]int),
		hits:        make(map[string]int),
		tokenTTL:    time.Hour,
	}
	s.httpServer = httptest.NewServer(s.router())
	t.Cleanup(s.httpServer.Close)
	return s
}

// BaseURL is the API root clients should be configured with.
func (s *Server) BaseURL() string {
	return s.httpServer.URL + Prefix
}

// Fail makes every request matching method and path (relative to the prefix,
// numeric ids written as :id) answer with status until Reset.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+path] = status
}

// Reset clears injected failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]int)
}

// SetDelay slows every request down, for in-flight tests.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// SetTokenTTL changes the lifetime of issued access tokens.
func (s *Server) SetTokenTTL(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenTTL = d
}

// Hits counts requests that reached method and path (ids as :id).
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeaders.Clone()
}

// Token issues a valid access token without going through login.
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked()
}

// ResetTokenFor returns the reset token mailed to email, if any.
func (s *Server) ResetTokenFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.resetTokens {
		if owner == email {
			return token
		}
	}
	return ""
}

// AddSheep seeds a sheep and returns it with its assigned id.
func (s *Server) AddSheep(sheep models.Sheep) models.Sheep {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheep.ID = s.allocLocked()
	if sheep.Status == "" {
		sheep.Status = models.SheepActive
	}
	s.sheep = append(s.sheep, sheep)
	return sheep
}

// AddHealthEvent seeds a health event.
func (s *Server) AddHealthEvent(event models.HealthEvent) models.HealthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.allocLocked()
	s.events = append(s.events, event)
	return event
}

// AddMatingPair seeds a mating pair, expanding ram and ewe.
func (s *Server) AddMatingPair(pair models.MatingPair) models.MatingPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair.ID = s.allocLocked()
	s.pairs = append(s.pairs, pair)
	return s.expandLocked(pair)
}

// MatingPairs returns the stored pairs in insertion order.
func (s *Server) MatingPairs() []models.MatingPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MatingPair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Sheep returns the stored sheep in insertion order.
func (s *Server) Sheep() []models.Sheep {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sheep, len(s.sheep))
	copy(out, s.sheep)
	return out
}

func (s *Server) allocLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Server) issueLocked() string {
	claims := models.TokenClaims{
		Email: Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			ID:        strconv.FormatInt(s.allocLocked(), 10),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		panic(fmt.Sprintf("sign token: %v", err))
	}
	s.tokens[token] = true
	return token
}

func (s *Server) expandLocked(pair models.MatingPair) models.MatingPair {
	for i := range s.sheep {
		sheep := s.sheep[i]
		if sheep.ID == pair.RamID {
			pair.Ram = &sheep
		}
		if sheep.ID == pair.EweID {
			pair.Ewe = &sheep
		}
	}
	return pair
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.track())

	api := r.Group(Prefix)
	auth := api.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)
	auth.POST("/password-reset/request", s.requestReset)
	auth.POST("/password-reset/confirm", s.confirmReset)

	secured := api.Group("", s.requireToken())
	secured.POST("/auth/logout", s.logout)
	secured.POST("/auth/refresh", s.refresh)
	secured.GET("/users/me", s.me)

	secured.GET("/sheep", s.listSheep)
	secured.POST("/sheep", s.createSheep)
	secured.GET("/sheep/available-rams", s.availableSheep(models.SexMale))
	secured.GET("/sheep/available-ewes", s.availableSheep(models.SexFemale))
	secured.GET("/sheep/:id", s.getSheep)
	secured.PUT("/sheep/:id", s.updateSheep)
	secured.DELETE("/sheep/:id", s.deleteSheep)

	secured.GET("/health", s.listHealth)
	secured.GET("/health/overdue", s.overdueHealth)
	secured.POST("/health", s.createHealth)
	secured.GET("/health/:id", s.getHealth)
	secured.PUT("/health/:id", s.updateHealth)
	secured.DELETE("/health/:id", s.deleteHealth)

	secured.GET("/mating-pairs", s.listPairs)
	secured.POST("/mating-pairs", s.createPair)
	secured.GET("/mating-pairs/:id", s.getPair)
	secured.PUT("/mating-pairs/:id", s.updatePair)
	secured.DELETE("/mating-pairs/:id", s.deletePair)

	secured.GET("/notifications", s.notifications(models.NotificationsAll))
	secured.GET("/notifications/health", s.notifications(models.NotificationsHealth))
	secured.GET("/notifications/mating", s.notifications(models.NotificationsMating))
	secured.GET("/notifications/weaning", s.notifications(models.NotificationsWeaning))
	return r
}

// track records hits, applies the configured delay and injected failures.
func (s *Server) track() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + normalise(strings.TrimPrefix(c.Request.URL.Path, Prefix))
		s.mu.Lock()
		s.hits[key]++
		s.lastHeaders = c.Request.Header.Clone()
		status, failing := s.faults[key]
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if failing {
			c.AbortWithStatusJSON(status, gin.H{"detail": fmt.Sprintf("injected failure %d", status)})
			return
		}
		c.Next()
	}
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		s.mu.Lock()
		valid := s.tokens[parts[1]]
		s.mu.Unlock()
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}
		c.Set("token", parts[1])
		c.Next()
	}
}

func normalise(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": what + " not found"})
}

func timeToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
