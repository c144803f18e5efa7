// Package mockapi is an in-memory implementation of the document API used
// by "docgrid mock-server" and by integration tests.
package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/docgrid/internal/core/logging"
	"github.com/colonyops/docgrid/internal/core/record"
)

// DefaultPassword is accepted for any non-empty username.
const DefaultPassword = "password"

// Issuer is set on every token the server signs.
const Issuer = "docgrid-mock"

// Error codes written to the envelope's error_code.
const (
	CodeBadRequest   = 1
	CodeUnauthorized = 2004
	CodeNotFound     = 2005
	CodeInternal     = 2006
)

const authHeader = "x-auth"

// Config configures a Server.
type Config struct {
	Password string
	Secret   []byte
	TokenTTL time.Duration
}

// Server holds the records and issued tokens in memory.
type Server struct {
	password string
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger

	mu       sync.RWMutex
	records  []record.Record
	failNext int
}

// New creates an empty server. A random signing secret is generated when
// none is configured.
func New(cfg Config) *Server {
	if cfg.Password == "" {
		cfg.Password = DefaultPassword
	}
	if len(cfg.Secret) == 0 {
		id := uuid.New()
		cfg.Secret = id[:]
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &Server{
		password: cfg.Password,
		secret:   cfg.Secret,
		tokenTTL: cfg.TokenTTL,
		log:      logging.Component("mockapi"),
	}
}

// Seed appends records. Records without an id get one assigned.
func (s *Server) Seed(recs ...record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		s.records = append(s.records, r)
	}
}

// Records returns a snapshot of the stored records.
func (s *Server) Records() []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// FailNext makes the next n record requests fail with an internal error.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// IssueToken signs a session token for username.
func (s *Server) IssueToken(username string) (string, error) {
	now := time.Now()
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   username,
		Issuer:    Issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(s.tokenTTL)),
		ID:        uuid.NewString(),
	}).SignedString(s.secret)
}

func (s *Server) verify(token string) (string, error) {
	parsed, err := gojwt.ParseWithClaims(token, &gojwt.RegisteredClaims{}, func(*gojwt.Token) (any, error) {
		return s.secret, nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}), gojwt.WithIssuer(Issuer))
	if err != nil {
		return "", err
	}
	return parsed.Claims.GetSubject()
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	docs := r.Group("/ru/data/v3/testmethods/docs")
	docs.POST("/login", s.login)

	userdocs := docs.Group("/userdocs", s.requireToken(), s.injectFailures())
	{
		userdocs.GET("/get", s.list)
		userdocs.POST("/create", s.create)
		userdocs.POST("/set/:id", s.set)
		userdocs.POST("/delete/:id", s.remove)
	}

	return r
}

type envelope struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message,omitempty"`
	Data         any    `json:"data"`
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Data: data})
}

func fail(c *gin.Context, status, code int, msg string) {
	c.AbortWithStatusJSON(status, envelope{ErrorCode: code, ErrorMessage: msg})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(authHeader)
		if token == "" {
			fail(c, http.StatusUnauthorized, CodeUnauthorized, "Access deny")
			return
		}
		user, err := s.verify(token)
		if err != nil {
			s.log.Debug().Err(err).Msg("rejected token")
			fail(c, http.StatusUnauthorized, CodeUnauthorized, "Access deny")
			return
		}
		c.Set("username", user)
		c.Next()
	}
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		inject := s.failNext > 0
		if inject {
			s.failNext--
		}
		s.mu.Unlock()

		if inject {
			fail(c, http.StatusInternalServerError, CodeInternal, "injected failure")
			return
		}
		c.Next()
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password != s.password {
		fail(c, http.StatusOK, CodeUnauthorized, "Access deny")
		return
	}

	token, err := s.IssueToken(req.Username)
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	respond(c, gin.H{"token": token})
}

func (s *Server) list(c *gin.Context) {
	respond(c, s.Records())
}

func (s *Server) create(c *gin.Context) {
	values, err := bindValues(c)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	rec := normalize(record.FromValues(uuid.NewString(), values))

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	respond(c, rec)
}

func (s *Server) set(c *gin.Context) {
	values, err := bindValues(c)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	id := c.Param("id")

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		fail(c, http.StatusNotFound, CodeNotFound, fmt.Sprintf("record %s not found", id))
		return
	}
	s.records[i] = normalize(s.records[i].Apply(values))
	rec := s.records[i]
	s.mu.Unlock()

	respond(c, rec)
}

func (s *Server) remove(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.records = slices.Delete(s.records, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		fail(c, http.StatusNotFound, CodeNotFound, fmt.Sprintf("record %s not found", id))
		return
	}
	respond(c, nil)
}

// indexOf requires s.mu.
func (s *Server) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r record.Record) bool { return r.ID == id })
}

func bindValues(c *gin.Context) (record.Values, error) {
	var values record.Values
	if err := c.ShouldBindJSON(&values); err != nil {
		return nil, errors.New("invalid request body")
	}
	for field := range values {
		if _, err := record.ParseField(field); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// normalize applies server-side defaults.
func normalize(r record.Record) record.Record {
	if r.DocumentStatus == "" {
		r.DocumentStatus = "pending"
	}
	return r
}
