// Package service provides application-level services that sit between the
// HTTP handlers and the stores. Services apply domain rules, call the store,
// and publish lifecycle events.
package service
