package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/utils"
)

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength      = 200
	defaultQuestionsPerSkill = 2
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Interviewer asks Gemini for interview questions that probe claimed skills.
type Interviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	perSkill  int
	maxLogLen int
}

func NewInterviewer(generator contentGenerator, logger *zap.Logger, perSkill, maxLogLength int) *Interviewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if perSkill <= 0 {
		perSkill = defaultQuestionsPerSkill
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Interviewer{
		generator: generator,
		logger:    logger,
		perSkill:  perSkill,
		maxLogLen: maxLogLength,
	}
}

type questionRequest struct {
	Skills            []string `json:"skills"`
	Unverified        []string `json:"unverified"`
	QuestionsPerSkill int      `json:"questions_per_skill"`
}

type questionResponse struct {
	Questions []struct {
		Skill    string `json:"skill"`
		Question string `json:"question"`
	} `json:"questions"`
}

// Questions returns interview questions for skills. Unverified skills are
// asked about first.
func (i *Interviewer) Questions(ctx context.Context, skills, unverified []string) ([]string, error) {
	if len(skills) == 0 {
		return []string{}, nil
	}
	if unverified == nil {
		unverified = []string{}
	}

	payload, err := json.Marshal(questionRequest{
		Skills:            skills,
		Unverified:        unverified,
		QuestionsPerSkill: i.perSkill,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal question request: %w", err)
	}

	message := string(payload)
	i.logger.Debug("gemini question request",
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, i.maxLogLen)),
	)

	raw, err := i.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("gemini question response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, i.maxLogLen)),
	)

	return parseQuestions(raw)
}

func parseQuestions(raw string) ([]string, error) {
	var resp questionResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	questions := make([]string, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		questions = append(questions, text)
	}

	if len(questions) == 0 {
		return nil, errors.New("gemini response contains no questions")
	}

	return questions, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
