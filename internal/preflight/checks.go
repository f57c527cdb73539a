package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"qap/internal/services"
)

// BucketChecker reports whether the bucket behind an s3:// URI is reachable.
type BucketChecker interface {
	CheckBucket(ctx context.Context, uri string) error
}

// CheckReadableDir verifies that the directory exists and can be listed.
func CheckReadableDir(name, path string) Result {
	if failure := statDir(name, path); failure != nil {
		return *failure
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if failure := statDir(name, path); failure != nil {
		return *failure
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStorage verifies that the bucket named by uri is reachable within
// ten seconds.
func CheckStorage(ctx context.Context, name string, checker BucketChecker, uri string) Result {
	if strings.TrimSpace(uri) == "" {
		return Result{Name: name, Detail: "no destination configured"}
	}
	if checker == nil {
		return Result{Name: name, Detail: "storage client unavailable"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := checker.CheckBucket(checkCtx, uri); err != nil {
		return Result{Name: name, Detail: summarizeStorageError(uri, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable)", uri)}
}

// statDir returns a failed result when path is not an existing directory.
func statDir(name, path string) *Result {
	if strings.TrimSpace(path) == "" {
		return &Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return &Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return &Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	return nil
}

// summarizeStorageError produces a human-readable summary for bucket check failures.
func summarizeStorageError(uri string, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s (error: timed out)", uri)
	case errors.Is(err, services.ErrConfiguration):
		return fmt.Sprintf("%s (error: invalid uri)", uri)
	case errors.Is(err, services.ErrNotFound):
		return fmt.Sprintf("%s (error: bucket not found)", uri)
	default:
		return fmt.Sprintf("%s (error: %v)", uri, err)
	}
}
