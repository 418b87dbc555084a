package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

//go:embed tagger_prompt.md
var taggerPrompt string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Tagger asks Gemini for the named entities of a resume.
type Tagger struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewTagger(generator contentGenerator, log *zap.Logger, maxLogLength int) *Tagger {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Tagger{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (t *Tagger) Tag(ctx context.Context, text string) ([]extract.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	t.logger.Debug("gemini tag request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, t.maxLogLen)),
	)

	raw, err := t.generator.GenerateContent(ctx, taggerPrompt, text)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("gemini tag response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, t.maxLogLen)),
	)

	return parseEntities(raw)
}

// parseEntities accepts a bare JSON array or an object holding it under "entities".
func parseEntities(raw string) ([]extract.Entity, error) {
	var data any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if obj, ok := data.(map[string]any); ok {
		data = obj["entities"]
	}
	if data == nil {
		return nil, nil
	}

	var decoded []extract.Entity
	if err := mapstructure.Decode(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode gemini entities: %w", err)
	}

	entities := make([]extract.Entity, 0, len(decoded))
	for _, entity := range decoded {
		entity.Text = strings.TrimSpace(entity.Text)
		entity.Label = strings.ToUpper(strings.TrimSpace(entity.Label))
		if entity.Text == "" {
			continue
		}
		entities = append(entities, entity)
	}

	return entities, nil
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
