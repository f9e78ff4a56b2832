// Package handler is the HTTP layer between the router and the services.
//
// Every endpoint goes through the same pipeline: bind path, query and body
// into a request DTO, validate it, call the service with the session user
// taken from the context, then write JSON or a file.
package handler
