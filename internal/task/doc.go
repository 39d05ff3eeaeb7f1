// Package task manages the lifecycle of asynchronous generation work: the
// volatile task registry (Store), the buffered job queue, the worker pool
// that drains it, and the Runner that moves each task through
// pending → processing → completed|failed. Content generation never blocks
// HTTP request handling; callers observe progress only through the Store.
package task
