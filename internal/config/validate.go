package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.UploadConcurrency > 64 {
		return fmt.Errorf("storage.upload_concurrency must be between 1 and 64, got %d", c.Storage.UploadConcurrency)
	}
	if prefix := c.Storage.OutputPrefix; prefix != "" && !strings.HasPrefix(strings.ToLower(prefix), "s3://") {
		return fmt.Errorf("storage.output_prefix %q must start with s3://", prefix)
	}
	for key, path := range map[string]string{
		"storage.creds_path":       c.Storage.CredsPath,
		"storage.write_creds_path": c.Storage.WriteCredsPath,
	} {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s: %s is a directory", key, path)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		return fmt.Errorf("logging.format must be console, json, or auto, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
