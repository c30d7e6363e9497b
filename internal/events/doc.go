// Package events provides task lifecycle events and a synchronous in-process
// dispatcher.
//
// Services emit events without knowing which handlers will process them. The
// primary components are:
// - TaskEvent: a record that a task was created, updated or deleted
// - EventHandler: interface for components that consume events
// - EventEmitter: interface for components that publish events
package events
