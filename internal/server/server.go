// Package server exposes the verification workflow over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/document"
	"github.com/spigell/trusthire/internal/profile"
	"github.com/spigell/trusthire/internal/verification"
)

const (
	serviceName     = "trusthire"
	shutdownTimeout = 10 * time.Second
	// multipartOverhead is added to the upload limit to leave room for form fields.
	multipartOverhead = 1 << 20
)

// Verifier runs the verification use cases behind the API.
type Verifier interface {
	Verify(ctx context.Context, username, text string) (*verification.Report, error)
	ExtractSkills(text string) (*verification.Extraction, error)
	Profile(ctx context.Context, username string) (*profile.Profile, error)
}

// Documents turns uploaded resumes into text.
type Documents interface {
	Validate(name string, size int64) error
	Ingest(name string, r io.Reader) (*document.Document, error)
	MaxSize() int64
}

type Interviewer interface {
	Questions(ctx context.Context, skills, unverified []string) []string
}

type Config struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors-origins"`
	Version     string   `mapstructure:"-"`
}

type Server struct {
	cfg        Config
	engine     *gin.Engine
	verifier   Verifier
	documents  Documents
	interviews Interviewer
	logger     *zap.Logger
}

// New builds the router. Call Run to start listening.
func New(cfg Config, verifier Verifier, documents Documents, interviews Interviewer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{
		cfg:        cfg,
		verifier:   verifier,
		documents:  documents,
		interviews: interviews,
		logger:     logger,
	}

	g := gin.New()
	g.Use(requestLogger(logger), gin.Recovery())
	g.MaxMultipartMemory = documents.MaxSize() + multipartOverhead
	s.attachRoutes(g)
	s.engine = g

	return s
}

func (s *Server) attachRoutes(g *gin.Engine) {
	g.Use(cors.New(corsConfig(s.cfg.CORSOrigins)))

	g.GET("/", s.root)
	g.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "path": c.Request.URL.Path})
	})

	v1 := g.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/github-profile/:username", s.githubProfile)
		v1.POST("/interview-questions", s.interviewQuestions)

		uploads := v1.Group("", s.limitBody)
		uploads.POST("/verify", s.verify)
		uploads.POST("/extract-skills", s.extractSkills)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpSrv.Shutdown(shutCtx)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		logger.Debug("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.documents.MaxSize()+multipartOverhead)
	c.Next()
}

func (s *Server) respondError(c *gin.Context, err error) {
	err = verification.Classify(err)
	status := verification.HTTPStatus(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}

	c.AbortWithStatusJSON(status, gin.H{"error": verification.PublicMessage(err)})
}
