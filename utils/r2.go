package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "lrbooking/config"
)

// R2Store uploads generated PDFs to a Cloudflare R2 bucket.
type R2Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewR2Store(ctx context.Context, cfg appconfig.R2Config) (*R2Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing required R2 configuration")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"), // R2 ignores the region but the signer needs one
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &R2Store{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Save uploads a PDF and returns its public URL.
func (r *R2Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Base(name)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return r.publicBase + "/" + url.PathEscape(key), nil
}

// Delete removes the object behind a URL returned by Save.
func (r *R2Store) Delete(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}
	_, err = r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(path.Base(u.Path)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete R2 object: %w", err)
	}
	return nil
}

// LocalStore writes PDFs under Dir. It is the fallback when uploads fail
// and the only store when R2 is not configured.
type LocalStore struct {
	Dir string
}

// Save writes the file and returns its path.
func (l *LocalStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", err
	}
	p := filepath.Join(l.Dir, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

func (l *LocalStore) Delete(ctx context.Context, p string) error {
	err := os.Remove(filepath.Join(l.Dir, filepath.Base(p)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
