// Package api provides helpers for end-to-end HTTP tests against the full
// router backed by a fresh in-memory store.
package api
