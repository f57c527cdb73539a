package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"

	"qap/internal/config"
	"qap/internal/logging"
	"qap/internal/services"
)

// ObjectClient is the subset of *minio.Client used by Client.
type ObjectClient interface {
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// NewObjectClient connects to the configured endpoint using the credentials
// found at credsPath.
func NewObjectClient(cfg config.Storage, credsPath string) (*minio.Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init client", "endpoint is required", nil)
	}
	creds, err := resolveCredentials(credsPath, cfg.Profile)
	if err != nil {
		return nil, err
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "storage", "init client", endpoint, err)
	}
	return client, nil
}

// Client performs downloads into the working directory and directory uploads.
type Client struct {
	objects     ObjectClient
	workingDir  string
	concurrency int
	logger      *slog.Logger
}

// New wraps objects with the working directory and upload settings from cfg.
func New(objects ObjectClient, cfg *config.Config, logger *slog.Logger) *Client {
	concurrency := cfg.Storage.UploadConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Client{
		objects:     objects,
		workingDir:  cfg.Paths.WorkingDir,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(logger, "storage"),
	}
}

// CheckBucket verifies that the bucket named by uri is reachable.
func (c *Client) CheckBucket(ctx context.Context, uri string) error {
	loc, err := ParseURI(uri)
	if err != nil {
		return err
	}
	exists, err := c.objects.BucketExists(ctx, loc.Bucket)
	if err != nil {
		return services.Wrap(services.ErrTransient, "storage", "check bucket", loc.Bucket, err)
	}
	if !exists {
		return services.Wrap(services.ErrNotFound, "storage", "check bucket", fmt.Sprintf("bucket %q does not exist", loc.Bucket), nil)
	}
	return nil
}
