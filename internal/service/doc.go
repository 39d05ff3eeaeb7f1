// Package service implements the application use cases behind the HTTP API.
// It validates generation requests, registers task records and hands the
// detached pipeline runs to the task runner. Callers then poll the task
// record for the outcome.
package service
