package preflight

import (
	"context"
	"strings"

	"qap/internal/config"
)

// CheckStorageFromConfig evaluates the upload destination from config. An
// unset output prefix is reported as disabled and counts as passing.
func CheckStorageFromConfig(ctx context.Context, cfg *config.Config, checker BucketChecker) Result {
	const name = "Output storage"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	prefix := strings.TrimSpace(cfg.Storage.OutputPrefix)
	if prefix == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	return CheckStorage(ctx, name, checker, prefix)
}
