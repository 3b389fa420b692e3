package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/trusthire/internal/ai"
	"github.com/spigell/trusthire/internal/ai/gemini"
	"github.com/spigell/trusthire/internal/document"
	"github.com/spigell/trusthire/internal/github"
	"github.com/spigell/trusthire/internal/interview"
	"github.com/spigell/trusthire/internal/logger"
	"github.com/spigell/trusthire/internal/profile"
	"github.com/spigell/trusthire/internal/secrets"
	"github.com/spigell/trusthire/internal/verification"
)

// application holds the components shared by all commands.
type application struct {
	config     *Config
	logger     *zap.Logger
	verifier   *verification.Service
	documents  *document.Store
	interviews *interview.Service
}

func newApplication(ctx context.Context) *application {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting", zap.String("app", app), zap.String("version", version))

	token, err := secrets.Optional(secrets.Source{
		Name:  "github token",
		Value: config.GitHub.Token,
		File:  config.GitHub.TokenFile,
	})
	if err != nil {
		logger.Fatal("loading github token", zap.Error(err))
	}
	if token == "" {
		logger.Warn("github token is not configured, anonymous requests are limited to 60 per hour",
			zap.String("hint", "set GITHUB_TOKEN or github.token-file"),
		)
	}

	client, err := github.New(ctx, logger.Named("github"), github.Config{
		APIURL:    config.GitHub.APIURL,
		Token:     token,
		UserAgent: config.GitHub.UserAgent,
		Timeout:   config.GitHub.Timeout,
	})
	if err != nil {
		logger.Fatal("creating github client", zap.Error(err))
	}

	analyzer := profile.NewAnalyzer(client, logger.Named("profile"), profile.Config{
		MaxRepos:    config.GitHub.MaxRepos,
		Concurrency: config.GitHub.LanguageConcurrency,
	})

	documents, err := document.NewStore(config.Upload, logger.Named("document"))
	if err != nil {
		logger.Fatal("preparing upload storage", zap.Error(err))
	}

	generator, err := newQuestionGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("falling back to template interview questions", zap.Error(err))
	}

	return &application{
		config:     config,
		logger:     logger,
		verifier:   verification.NewService(analyzer, logger.Named("verification")),
		documents:  documents,
		interviews: interview.NewService(generator, logger.Named("interview")),
	}
}

// newQuestionGenerator returns nil without an error when AI is disabled.
func newQuestionGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.QuestionGenerator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:     apiKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
	}, log.Named("gemini"))
	if err != nil {
		return nil, err
	}

	interviewer := gemini.NewInterviewer(generator,
		logger.WithFields(log.Named("gemini"), logger.AIFields(gemini.Provider, generator.Model())...),
		cfg.Gemini.QuestionsPerSkill,
		cfg.Gemini.MaxLogLength,
	)

	return interviewer, nil
}

// readResume copies a local resume through the document store, the same
// path uploads take.
func (a *application) readResume(path string) (*document.Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &verification.ValidationError{Field: "resume", Message: "resume file is required"}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if err := a.documents.Validate(path, info.Size()); err != nil {
		return nil, verification.FromDocument(err)
	}

	doc, err := a.documents.Ingest(path, f)
	if err != nil {
		return nil, verification.FromDocument(err)
	}

	return doc, nil
}
