// Package testutils provides shared helpers for tests: task fixtures, HTTP
// response assertions and temporary config files.
//
// Helper functions follow these naming conventions:
//   - MustCreate*: build an entity in memory, failing the test on error
//   - MustInsert*: build an entity and store it
//   - Assert*: verify a response and fail the test on mismatch
//
// The api subpackage builds a full test server over a fresh in-memory store.
package testutils
