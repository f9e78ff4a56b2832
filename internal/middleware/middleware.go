// Package middleware holds the global and route-level middleware: session
// authentication, role gating, request logging, CORS, rate limiting, tracing
// and panic recovery.
package middleware
