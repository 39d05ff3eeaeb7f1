// Package pipeline holds the content pipelines, one per generation type.
//
// A pipeline runs a fixed sequence of generator calls and returns a value
// that is JSON-encoded into the task result. Optional per-item steps (the
// brand kit logo, each social media post, each website section) record a
// provider failure inline as {"error": "..."} and let the pipeline continue.
// Every other failure is returned from Run and fails the task.
package pipeline
