// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// requests together with the caller's session, applies the workflow rules
// and calls the repositories.
package service
