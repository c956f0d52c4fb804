package platform

// Package platform contains OS/platform integration glue: data directory
// resolution, filesystem helpers, and WAV file inspection.
