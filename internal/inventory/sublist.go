package inventory

import (
	"context"
	"log/slog"
	"path/filepath"

	"qap/internal/logging"
	"qap/internal/services"
)

// GenerateSublist scans siteFolder for scanType volumes and writes the
// resulting manifest to outPath.
func GenerateSublist(ctx context.Context, siteFolder, outPath string, scanType ScanType, logger *slog.Logger) (Manifest, Summary, error) {
	manifest, summary, err := BuildManifest(ctx, siteFolder, scanType, logger)
	if err != nil {
		return nil, summary, err
	}

	target, err := filepath.Abs(outPath)
	if err != nil {
		return nil, summary, services.Wrap(services.ErrFilesystem, "inventory", "resolve output", outPath, err)
	}
	if err := WriteFile(ctx, target, manifest); err != nil {
		return nil, summary, err
	}

	logging.WithContext(ctx, logging.NewComponentLogger(logger, "inventory")).Info("sublist written",
		logging.String(logging.FieldPath, target),
		logging.Int("entries", manifest.Len()),
	)
	return manifest, summary, nil
}
