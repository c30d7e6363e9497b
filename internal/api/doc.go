// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It translates HTTP concerns into task service
// operations.
package api
