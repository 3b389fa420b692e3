package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spigell/trusthire/internal/document"
	"github.com/spigell/trusthire/internal/verification"
)

// GET /
func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "TrustHire resume verification API",
		"version": s.cfg.Version,
	})
}

// GET /api/v1/health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": s.cfg.Version,
	})
}

// POST /api/v1/verify
func (s *Server) verify(c *gin.Context) {
	doc, err := s.readResume(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	report, err := s.verifier.Verify(c.Request.Context(), c.PostForm("github_username"), doc.Text)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// POST /api/v1/extract-skills
func (s *Server) extractSkills(c *gin.Context) {
	doc, err := s.readResume(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	extraction, err := s.verifier.ExtractSkills(doc.Text)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, extraction)
}

// GET /api/v1/github-profile/:username
func (s *Server) githubProfile(c *gin.Context) {
	prof, err := s.verifier.Profile(c.Request.Context(), c.Param("username"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prof)
}

// POST /api/v1/interview-questions
func (s *Server) interviewQuestions(c *gin.Context) {
	var skills []string
	if err := c.ShouldBindJSON(&skills); err != nil {
		s.respondError(c, &verification.ValidationError{Message: "request body must be a JSON array of skills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": s.interviews.Questions(c.Request.Context(), skills, nil)})
}

func (s *Server) readResume(c *gin.Context) (*document.Document, error) {
	header, err := c.FormFile("resume")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, verification.FromDocument(document.ErrTooLarge)
		}
		return nil, &verification.ValidationError{Field: "resume", Message: "resume file is required"}
	}

	if err := s.documents.Validate(header.Filename, header.Size); err != nil {
		return nil, verification.FromDocument(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := s.documents.Ingest(header.Filename, f)
	if err != nil {
		return nil, verification.FromDocument(err)
	}

	return doc, nil
}
