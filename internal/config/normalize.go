package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkingDir) == "" {
		c.Paths.WorkingDir = defaultWorkingDir
	}
	if c.Paths.WorkingDir, err = expandPath(c.Paths.WorkingDir); err != nil {
		return fmt.Errorf("paths.working_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	if value, ok := os.LookupEnv("QAP_S3_ENDPOINT"); ok && strings.TrimSpace(value) != "" {
		c.Storage.Endpoint = value
	}
	if value, ok := os.LookupEnv("QAP_CREDS_PATH"); ok && strings.TrimSpace(value) != "" && strings.TrimSpace(c.Storage.CredsPath) == "" {
		c.Storage.CredsPath = value
	}

	endpoint := strings.TrimSpace(c.Storage.Endpoint)
	// minio expects a bare host[:port]; accept URLs pasted from a console.
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
		c.Storage.UseSSL = true
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
		c.Storage.UseSSL = false
	}
	c.Storage.Endpoint = strings.TrimRight(endpoint, "/")
	if c.Storage.Endpoint == "" {
		c.Storage.Endpoint = defaultStorageEndpoint
	}

	c.Storage.Region = strings.TrimSpace(c.Storage.Region)
	if c.Storage.Region == "" {
		c.Storage.Region = defaultStorageRegion
	}
	c.Storage.Profile = strings.TrimSpace(c.Storage.Profile)
	if c.Storage.Profile == "" {
		c.Storage.Profile = defaultStorageProfile
	}
	c.Storage.OutputPrefix = strings.TrimSpace(c.Storage.OutputPrefix)
	if c.Storage.UploadConcurrency <= 0 {
		c.Storage.UploadConcurrency = defaultUploadConcurrency
	}

	var err error
	if c.Storage.CredsPath, err = expandPath(strings.TrimSpace(c.Storage.CredsPath)); err != nil {
		return fmt.Errorf("storage.creds_path: %w", err)
	}
	if c.Storage.WriteCredsPath, err = expandPath(strings.TrimSpace(c.Storage.WriteCredsPath)); err != nil {
		return fmt.Errorf("storage.write_creds_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
