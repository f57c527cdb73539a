package inventory

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"qap/internal/logging"
	"qap/internal/services"
)

// Scanner walks a site directory and builds a manifest.
type Scanner struct {
	fs     billy.Filesystem
	logger *slog.Logger
}

// NewScanner returns a scanner over filesystem. A nil logger discards output.
func NewScanner(filesystem billy.Filesystem, logger *slog.Logger) *Scanner {
	return &Scanner{
		fs:     filesystem,
		logger: logging.NewComponentLogger(logger, "inventory"),
	}
}

// NewOSScanner returns a scanner over the host filesystem.
func NewOSScanner(logger *slog.Logger) *Scanner {
	return NewScanner(osfs.New("/"), logger)
}

// Build traverses root depth-first in lexical order and records every volume
// file whose modality matches scanType. An unknown scanType yields an empty
// manifest. Only a missing or unreadable root is an error; entries below it
// that cannot be read are logged and skipped.
func (s *Scanner) Build(ctx context.Context, root string, scanType ScanType) (Manifest, Summary, error) {
	manifest := NewManifest()
	var summary Summary

	logger := logging.WithContext(ctx, s.logger).With(
		logging.String(logging.FieldPath, root),
		logging.String("scan_type", string(scanType)),
	)

	info, err := s.fs.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, summary, services.Wrap(services.ErrNotFound, "inventory", "open root", root, err)
		}
		return nil, summary, services.Wrap(services.ErrFilesystem, "inventory", "open root", root, err)
	}
	if !info.IsDir() {
		return nil, summary, services.Wrap(services.ErrValidation, "inventory", "open root", root+" is not a directory", nil)
	}

	want, ok := scanType.Modality()
	if !ok {
		// The root must still be listable; only the selector is allowed to
		// produce an empty result.
		if _, err := s.fs.ReadDir(root); err != nil {
			return nil, summary, services.Wrap(services.ErrFilesystem, "inventory", "read root", root, err)
		}
		logging.WarnWithContext(logger, "unknown scan type; manifest will be empty", "scan_type_invalid",
			logging.String(logging.FieldErrorHint, "use anat or func"),
			logging.String(logging.FieldImpact, "no scans recorded"),
		)
		return manifest, summary, nil
	}

	walkErr := util.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return services.Wrap(services.ErrFilesystem, "inventory", "read root", root, err)
			}
			summary.Unreadable++
			logging.WarnWithContext(logger, "skipping unreadable entry", "scan_entry_unreadable",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions below the site folder"),
				logging.String(logging.FieldImpact, "files under this entry are not in the manifest"),
			)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		summary.FilesVisited++
		s.visit(logger, manifest, &summary, root, path, want)
		return nil
	})
	if walkErr != nil {
		return nil, summary, walkErr
	}

	logger.Info("manifest built",
		logging.Int("entries", summary.Recorded),
		logging.Int("subjects", len(manifest)),
		logging.Int("files_visited", summary.FilesVisited),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("skipped", summary.ShortPaths+summary.Unclassified),
	)
	return manifest, summary, nil
}

func (s *Scanner) visit(logger *slog.Logger, manifest Manifest, summary *Summary, root, path string, want Modality) {
	name := filepath.Base(path)
	if !IsVolumeFile(name) {
		return
	}
	summary.VolumeFiles++

	subject, session, scan, ok := ParseIdentity(SplitSegments(root, path))
	if !ok {
		summary.ShortPaths++
		logger.Debug("skipping volume with too few path segments", logging.String(logging.FieldPath, path))
		return
	}

	modality, ok := Classify(scan, name)
	if !ok {
		summary.Unclassified++
		logger.Debug("skipping unclassified volume", logging.String(logging.FieldPath, path))
		return
	}
	if modality != want {
		summary.Filtered++
		return
	}

	id := Identity{Subject: subject, Session: session, Scan: scan, Modality: modality}
	if !manifest.Insert(id, path) {
		summary.Duplicates++
		existing, _ := manifest.Lookup(id)
		logger.Debug("duplicate scan ignored",
			logging.String(logging.FieldSubject, subject),
			logging.String(logging.FieldSession, session),
			logging.String(logging.FieldScan, scan),
			logging.String(logging.FieldPath, path),
			logging.String("kept", existing),
		)
		return
	}
	summary.Recorded++
}

// BuildManifest scans root on the host filesystem. root is made absolute
// first, so every recorded path is absolute. A root that is itself a symlink
// is resolved; links below it are not followed.
func BuildManifest(ctx context.Context, root string, scanType ScanType, logger *slog.Logger) (Manifest, Summary, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, Summary{}, services.Wrap(services.ErrFilesystem, "inventory", "resolve root", root, err)
	}
	if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
	}
	return NewOSScanner(logger).Build(ctx, abs, scanType)
}
