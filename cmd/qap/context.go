package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"qap/internal/config"
	"qap/internal/logging"
	"qap/internal/storage"
)

// objectClientFactory opens the object store. Tests replace it with a fake.
type objectClientFactory func(cfg config.Storage, credsPath string) (storage.ObjectClient, error)

func openObjectClient(cfg config.Storage, credsPath string) (storage.ObjectClient, error) {
	return storage.NewObjectClient(cfg, credsPath)
}

type commandContext struct {
	configFlag  *string
	openObjects objectClientFactory

	configOnce   sync.Once
	config       *config.Config
	configExists bool
	configErr    error

	workspaceOnce sync.Once
	workspaceErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		openObjects: openObjectClient,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configExists = exists
	})
	return c.config, c.configErr
}

// ensureWorkspace loads the configuration and creates the working, output
// and log directories. Only commands that stage files call it.
func (c *commandContext) ensureWorkspace() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.workspaceOnce.Do(func() {
		c.workspaceErr = cfg.EnsureDirectories()
	})
	if c.workspaceErr != nil {
		return nil, c.workspaceErr
	}
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		// Without a config file the log directory is only used once a
		// command has created its workspace.
		if c.configExists || dirExists(cfg.Paths.LogDir) {
			c.logger, c.loggerErr = logging.NewFromConfig(cfg)
			return
		}
		c.logger, c.loggerErr = logging.NewStderrFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// storageClient opens the object store with read or write credentials.
func (c *commandContext) storageClient(write bool) (*storage.Client, error) {
	cfg, err := c.ensureWorkspace()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	credsPath := cfg.ReadCredsPath()
	if write {
		credsPath = cfg.WriteCredsPath()
	}
	objects, err := c.openObjects(cfg.Storage, credsPath)
	if err != nil {
		return nil, err
	}
	return storage.New(objects, cfg, logger), nil
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
