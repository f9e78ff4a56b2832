// Package validation binds request payloads and turns validator failures into
// 400 responses with per-field messages.
package validation
