// Package config loads, normalizes, and validates qap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// QAP_S3_ENDPOINT and QAP_CREDS_PATH. The Config type centralizes the working
// and output directories, object-storage settings, and logging knobs so the
// CLIs discover everything in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
