// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic; the only implementation today is the
// in-memory store in internal/platform/memory.
package store
