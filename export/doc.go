// Package export renders batch results to files: per-column square
// heatmaps (PNG and PDF), a correlation-matrix heatmap, a results-table
// CSV, and single-spectrum line plots.
//
// All rendering parameters live in an explicit [Style] value passed to
// each call. Nothing in this package mutates process-wide plotting
// state, so two exports with different styles can run side by side.
package export
