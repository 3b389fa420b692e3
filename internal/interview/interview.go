// Package interview prepares questions a reviewer can ask to confirm the
// skills listed on a resume.
package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/ai"
)

var templates = []string{
	"What are the key concepts of %s?",
	"Explain a real-world project using %s.",
}

// Template returns the fixed questions for every skill, in input order.
func Template(skills []string) []string {
	questions := make([]string, 0, len(skills)*len(templates))
	for _, skill := range skills {
		for _, tpl := range templates {
			questions = append(questions, fmt.Sprintf(tpl, skill))
		}
	}
	return questions
}

type Service struct {
	generator ai.QuestionGenerator
	logger    *zap.Logger
}

// NewService returns a Service. A nil generator means template questions only.
func NewService(generator ai.QuestionGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

// Questions returns interview questions for skills. When a generator is
// configured and fails, template questions are returned instead.
func (s *Service) Questions(ctx context.Context, skills, unverified []string) []string {
	skills = clean(skills)
	if len(skills) == 0 {
		return []string{}
	}

	if s.generator == nil {
		return Template(skills)
	}

	questions, err := s.generator.Questions(ctx, skills, clean(unverified))
	if err != nil {
		s.logger.Warn("question generation failed, using templates", zap.Error(err))
		return Template(skills)
	}

	return questions
}

func clean(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
