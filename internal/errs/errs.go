// Package errs defines the error types returned to API clients.
//
// Every failure that leaves a handler ends up as an HTTPError so clients get a
// consistent JSON body: a human readable `error` message (Spanish, shown as
// is by the portal UI), a stable machine `code`, and optional per-field
// details.
package errs
