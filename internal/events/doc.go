// Package events provides the task lifecycle events published by the task
// runner and the small in-memory fan-out used to deliver them.
//
// The primary components are:
// - TaskEvent: one lifecycle transition of one task
// - EventHandler: interface for components that react to events (metrics, audit logging)
// - EventEmitter: interface for components that publish events
package events
