package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldUsername is the structured log field key for the GitHub login under verification.
	FieldUsername = "username"
	// FieldReportID is the structured log field key for the verification report id.
	FieldReportID = "report_id"
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RequestFields describes a single verification request.
func RequestFields(username, reportID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldUsername, Value: username},
		StringField{Key: FieldReportID, Value: reportID},
	)
}

// AIFields describes the model used to generate interview questions.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
