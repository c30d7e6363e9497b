// Package metrics exposes Prometheus collectors for the HTTP layer and the
// task store on a dedicated registry.
package metrics
