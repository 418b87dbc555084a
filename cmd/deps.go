package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/criteria"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/publish"
	"github.com/spigell/resume-screener/internal/secrets"
	"github.com/spigell/resume-screener/internal/storage"
)

const (
	providerProse  = "prose"
	providerGemini = "gemini"
)

// buildRegistry uses the roles from configuration, or the built-in ones when none are configured.
func buildRegistry(v *viper.Viper) (*criteria.Registry, error) {
	defs, err := criteria.Decode(v.Get("roles"))
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		defs = criteria.Defaults()
	}

	return criteria.New(defs...)
}

func newTagger(ctx context.Context, cfg *NERConfig, logger *zap.Logger) (extract.Tagger, error) {
	provider := providerProse
	if cfg != nil && strings.TrimSpace(cfg.Provider) != "" {
		provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	}

	switch provider {
	case providerProse:
		return extract.NewProseTagger(), nil
	case providerGemini:
		if cfg.Gemini == nil {
			return nil, fmt.Errorf("ner.gemini configuration is required for the gemini provider")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ner.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
		if err != nil {
			return nil, err
		}

		return gemini.NewTagger(generator, logger, cfg.Gemini.MaxLogLength), nil
	default:
		return nil, fmt.Errorf("unsupported ner provider: %s", cfg.Provider)
	}
}

func newDocumentReader(ctx context.Context, cfg *StorageConfig) (*storage.Router, error) {
	s3cfg := storage.Config{Region: storage.DefaultRegion}

	if cfg != nil && cfg.S3 != nil {
		s3cfg.Endpoint = strings.TrimSpace(cfg.S3.Endpoint)
		if region := strings.TrimSpace(cfg.S3.Region); region != "" {
			s3cfg.Region = region
		}

		access := secrets.Source{Name: "s3 access key", File: cfg.S3.AccessKeyFile}
		secret := secrets.Source{Name: "s3 secret key", File: cfg.S3.SecretKeyFile}
		if access.IsSet() || secret.IsSet() {
			keys, err := secrets.LoadAll(access, secret)
			if err != nil {
				return nil, err
			}
			s3cfg.AccessKey, s3cfg.SecretKey = keys[0], keys[1]
		}
	}

	objects, err := storage.NewS3(ctx, s3cfg)
	if err != nil {
		return nil, fmt.Errorf("building s3 client: %w", err)
	}

	return storage.NewRouter(objects), nil
}

// newPublisher returns nil when publishing is not configured.
func newPublisher(cfg *PublishConfig) (*publish.AMQP, error) {
	if cfg == nil || strings.TrimSpace(cfg.AMQPURL) == "" {
		return nil, nil
	}

	return publish.NewAMQP(strings.TrimSpace(cfg.AMQPURL), strings.TrimSpace(cfg.Exchange))
}
