// Package storage moves scan files and pipeline output between the local
// working directories and S3-compatible object storage.
//
// Remote locations are written as s3://bucket/key URIs. Downloads are
// idempotent: a file already present in the working directory is reused.
// Uploads mirror a local directory tree under a remote prefix.
package storage
