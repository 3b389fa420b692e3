// Package verification runs the end-to-end check of a resume against a GitHub
// profile and classifies every failure into a small error taxonomy.
package verification

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/catalog"
	"github.com/spigell/trusthire/internal/extractor"
	"github.com/spigell/trusthire/internal/logger"
	"github.com/spigell/trusthire/internal/profile"
)

// Analyzer produces a profile for a username.
type Analyzer interface {
	Analyze(ctx context.Context, username string) (*profile.Profile, error)
}

type Service struct {
	analyzer Analyzer
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(analyzer Analyzer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		analyzer: analyzer,
		validate: newValidator(),
		logger:   log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Extraction is the result of skill extraction on a resume text.
type Extraction struct {
	Skills     []string                      `json:"skills"`
	Ranked     []extractor.Ranked            `json:"ranked_skills"`
	ByCategory map[catalog.Category][]string `json:"skills_by_category"`
	Total      int                           `json:"total_skills"`
	WordCount  int                           `json:"word_count"`
}

// ExtractSkills extracts and ranks the skills mentioned in text.
func (s *Service) ExtractSkills(text string) (*Extraction, error) {
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	skills := extractor.Extract(text)

	return &Extraction{
		Skills:     skills,
		Ranked:     extractor.Rank(skills, text),
		ByCategory: catalog.Group(skills),
		Total:      len(skills),
		WordCount:  len(strings.Fields(text)),
	}, nil
}

// Profile analyses the GitHub profile of username.
func (s *Service) Profile(ctx context.Context, username string) (*profile.Profile, error) {
	if err := s.validateUsername(username); err != nil {
		return nil, err
	}

	prof, err := s.analyzer.Analyze(ctx, username)
	if err != nil {
		return nil, classifyProfileError(username, err)
	}

	return prof, nil
}

// Verify compares the skills claimed in text with the evidence found in the
// GitHub profile of username.
func (s *Service) Verify(ctx context.Context, username, text string) (*Report, error) {
	id := s.newID()
	log := logger.WithFields(s.logger, logger.RequestFields(username, id)...)

	if err := s.validateUsername(username); err != nil {
		return nil, err
	}
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	resumeSkills := extractor.Extract(text)
	if len(resumeSkills) == 0 {
		return nil, &ExtractionError{Message: "no technical skills found in resume"}
	}

	log.Debug("resume skills extracted", zap.Strings("skills", resumeSkills))

	prof, err := s.analyzer.Analyze(ctx, username)
	if err != nil {
		return nil, classifyProfileError(username, err)
	}

	report, err := buildReport(id, username, s.now(), resumeSkills, prof)
	if err != nil {
		return nil, &InternalError{Err: err}
	}

	log.Info("verification completed",
		zap.Float64("match_percentage", report.MatchPercentage),
		zap.Float64("trust_score", report.TrustScore),
		zap.String("risk_level", string(report.RiskLevel)),
	)

	return report, nil
}

func classifyProfileError(username string, err error) error {
	if errors.Is(err, profile.ErrUserNotFound) {
		return &NotFoundError{Username: username}
	}
	return &UpstreamError{Err: err}
}
