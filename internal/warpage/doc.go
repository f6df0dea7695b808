// Package warpage implements the surface-measurement analysis pipeline:
// discovery of measurement files, grid parsing, artifact cleaning, summary
// statistics, and cross-file color-range resolution.
//
// The Analyzer drives the stages end to end for one batch and produces a
// Session: the ordered set of surviving FileRecords plus the single
// ColorRange every visualisation of that batch shares. Per-file failures are
// recovered inside the Analyzer; only batch-level conditions
// (NoFilesFoundError, NoDataError) propagate to the caller.
//
// Rendering and export consume a Session read-only; nothing feeds back into
// the pipeline.
package warpage
