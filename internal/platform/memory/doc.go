// Package memory provides in-memory implementations of the storage
// interfaces defined in internal/store. Data lives only for the lifetime of
// the process.
package memory
