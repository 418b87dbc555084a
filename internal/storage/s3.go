// Package storage fetches resumes from S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spigell/resume-screener/internal/document"
)

const (
	// Scheme prefixes object URIs, as in s3://bucket/key.
	Scheme = "s3://"

	DefaultRegion = "auto"
)

// Config describes the bucket endpoint. Leave Endpoint empty for AWS S3;
// Cloudflare R2 uses https://<account>.r2.cloudflarestorage.com.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 downloads objects addressed by s3:// URIs.
type S3 struct {
	client objectGetter
}

// NewS3 builds a client with static credentials when they are set and the
// default AWS credential chain otherwise.
func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{client: client}, nil
}

// IsObjectURI reports whether source addresses an object rather than a local file.
func IsObjectURI(source string) bool {
	return strings.HasPrefix(source, Scheme)
}

// ParseURI splits s3://bucket/key into its bucket and key.
func ParseURI(uri string) (string, string, error) {
	if !IsObjectURI(uri) {
		return "", "", fmt.Errorf("%q is not an %s URI", uri, Scheme)
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%q must have the form %sbucket/key", uri, Scheme)
	}

	return bucket, key, nil
}

// Fetch downloads the object behind uri. Every failure is a *document.ReadError.
func (s *S3) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, &document.ReadError{Source: uri, Cause: err}
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &document.ReadError{Source: uri, Cause: fmt.Errorf("get object: %w", err)}
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, &document.ReadError{Source: uri, Cause: fmt.Errorf("read object body: %w", err)}
	}

	return buf.Bytes(), nil
}

// Read fetches and parses the document behind uri.
func (s *S3) Read(ctx context.Context, uri string) (*document.Document, error) {
	data, err := s.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	return document.Parse(uri, data)
}
