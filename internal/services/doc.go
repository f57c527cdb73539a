// Package services defines shared utilities consumed by the inventory, storage,
// and command layers.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and command names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration vs filesystem vs transient) and map them to exit codes.
//
// Use these helpers when wiring new commands so operational behaviour (error
// handling, observability) stays uniform across the tool.
package services
