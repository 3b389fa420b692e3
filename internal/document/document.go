// Package document turns uploaded resumes into plain text. Uploads are
// written to a temporary directory and removed once their text is extracted.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMaxSize = 5 << 20
)

var DefaultExtensions = []string{".pdf", ".txt", ".md", ".html"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrExtraction      = errors.New("text extraction failed")
)

type Config struct {
	TempDir           string   `mapstructure:"temp-dir"`
	MaxSize           int64    `mapstructure:"max-size"`
	AllowedExtensions []string `mapstructure:"allowed-extensions"`
}

// Document is the text of an uploaded resume.
type Document struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

type Store struct {
	cfg     Config
	allowed map[string]struct{}
	logger  *zap.Logger
}

func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TempDir == "" {
		cfg.TempDir = filepath.Join(os.TempDir(), "trusthire-uploads")
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = DefaultExtensions
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := extractors[ext]; !ok {
			return nil, fmt.Errorf("%w: no extractor for %q", ErrUnsupportedType, ext)
		}
		allowed[ext] = struct{}{}
	}

	if err := os.MkdirAll(cfg.TempDir, 0o700); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	return &Store{cfg: cfg, allowed: allowed, logger: logger}, nil
}

// MaxSize returns the upload size limit in bytes.
func (s *Store) MaxSize() int64 {
	return s.cfg.MaxSize
}

// Validate checks the file name extension and, when known, the declared size.
func (s *Store) Validate(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := s.allowed[ext]; !ok {
		return fmt.Errorf("%w: %q, allowed: %s", ErrUnsupportedType, ext, strings.Join(s.cfg.AllowedExtensions, ", "))
	}
	if size > s.cfg.MaxSize {
		return fmt.Errorf("%w: %d bytes exceeds %.1fMB limit", ErrTooLarge, size, float64(s.cfg.MaxSize)/1024/1024)
	}
	return nil
}

// Save copies r into a uniquely named file in the temporary directory.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	if err := s.Validate(name, 0); err != nil {
		return "", err
	}

	path := filepath.Join(s.cfg.TempDir, uuid.NewString()+strings.ToLower(filepath.Ext(name)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, s.cfg.MaxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if written > s.cfg.MaxSize {
		os.Remove(path)
		return "", fmt.Errorf("%w: exceeds %.1fMB limit", ErrTooLarge, float64(s.cfg.MaxSize)/1024/1024)
	}

	s.logger.Debug("upload saved", zap.String("path", path), zap.Int64("bytes", written))

	return path, nil
}

// Extract reads the text of a saved upload and removes the file afterwards,
// whether or not extraction succeeded.
func (s *Store) Extract(path string) (*Document, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("remove upload file", zap.String("path", path), zap.Error(err))
		}
	}()

	ext := strings.ToLower(filepath.Ext(path))
	extract, ok := extractors[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	text, err := extract(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: document contains no text", ErrExtraction)
	}

	doc := &Document{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	}

	s.logger.Debug("document extracted",
		zap.String("type", ext),
		zap.Int("words", doc.WordCount),
		zap.Int("chars", doc.CharCount),
	)

	return doc, nil
}

// Ingest saves r under the extension of name and extracts its text.
func (s *Store) Ingest(name string, r io.Reader) (*Document, error) {
	path, err := s.Save(name, r)
	if err != nil {
		return nil, err
	}
	return s.Extract(path)
}
