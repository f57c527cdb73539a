package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"

	"qap/internal/config"
	"qap/internal/fileutil"
	"qap/internal/logging"
	"qap/internal/services"
)

// Fetch downloads the object at remoteURI to <working_dir>/<key> and returns
// the local path. An existing local file is returned without downloading.
func (c *Client) Fetch(ctx context.Context, remoteURI string) (string, error) {
	loc, err := ParseURI(remoteURI)
	if err != nil {
		return "", err
	}
	if loc.Key == "" {
		return "", services.Wrap(services.ErrConfiguration, "storage", "fetch", remoteURI+" names a bucket, not an object", nil)
	}
	if strings.TrimSpace(c.workingDir) == "" {
		return "", services.Wrap(services.ErrConfiguration, "storage", "fetch", "working directory is not configured", nil)
	}

	localPath := filepath.Join(c.workingDir, filepath.FromSlash(loc.Key))
	if !strings.HasPrefix(localPath, filepath.Clean(c.workingDir)+string(filepath.Separator)) {
		return "", services.Wrap(services.ErrValidation, "storage", "fetch", "object key escapes the working directory", nil)
	}

	exists, err := fileutil.RegularFileExists(localPath)
	if err != nil {
		return "", services.Wrap(services.ErrFilesystem, "storage", "fetch", localPath, err)
	}
	if exists {
		c.logger.Info("object already downloaded; skipping",
			logging.String("uri", remoteURI),
			logging.String(logging.FieldPath, localPath),
		)
		return localPath, nil
	}

	if err := fileutil.EnsureParentDir(localPath); err != nil {
		return "", services.Wrap(services.ErrFilesystem, "storage", "fetch", localPath, err)
	}
	if err := c.objects.FGetObject(ctx, loc.Bucket, loc.Key, localPath, minio.GetObjectOptions{}); err != nil {
		return "", services.Wrap(services.ErrTransient, "storage", "fetch", remoteURI, err)
	}
	c.logger.Info("object downloaded",
		logging.String("uri", remoteURI),
		logging.String(logging.FieldPath, localPath),
	)
	return localPath, nil
}

// Store uploads every regular file under localDir to remotePrefix, keeping
// the relative layout. It returns the number of files uploaded. The first
// failed upload cancels the rest.
func (c *Client) Store(ctx context.Context, localDir, remotePrefix string) (int, error) {
	prefix, err := ParseURI(remotePrefix)
	if err != nil {
		return 0, err
	}

	files, err := listFiles(localDir)
	if err != nil {
		return 0, err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for _, rel := range files {
		source := filepath.Join(localDir, rel)
		target := prefix.Join(filepath.ToSlash(rel))
		group.Go(func() error {
			if _, err := c.objects.FPutObject(groupCtx, target.Bucket, target.Key, source, minio.PutObjectOptions{}); err != nil {
				return services.Wrap(services.ErrTransient, "storage", "upload", target.String(), err)
			}
			c.logger.Debug("object uploaded",
				logging.String(logging.FieldPath, source),
				logging.String("uri", target.String()),
			)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	c.logger.Info("directory uploaded",
		logging.String(logging.FieldPath, localDir),
		logging.String("uri", prefix.String()),
		logging.Int("files", len(files)),
	)
	return len(files), nil
}

// UploadOutput uploads the configured output directory to the configured
// output prefix.
func (c *Client) UploadOutput(ctx context.Context, cfg *config.Config) (int, error) {
	if strings.TrimSpace(cfg.Storage.OutputPrefix) == "" {
		return 0, services.Wrap(services.ErrConfiguration, "storage", "upload output", "storage.output_prefix is not set", nil)
	}
	return c.Store(ctx, cfg.Paths.OutputDir, cfg.Storage.OutputPrefix)
}

// listFiles returns the relative paths of regular files under
// root in lexical order.
func listFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "storage", "list files", root, err)
		}
		return nil, services.Wrap(services.ErrFilesystem, "storage", "list files", root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "storage", "list files", root+" is not a directory", nil)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "storage", "list files", root, err)
	}
	return files, nil
}
