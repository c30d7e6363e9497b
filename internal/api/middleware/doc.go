// Package middleware provides the HTTP middleware chain: request logging with
// trace IDs, panic recovery, request metrics and API key authentication.
package middleware
