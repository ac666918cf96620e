// Package task tracks the lifecycle of long-running pipeline jobs and
// streams progress to subscribers in real time.
//
// A Manager owns the in-memory task registry. The pipeline orchestrator
// creates a task, then applies partial updates at each stage boundary;
// every update fans an immutable snapshot out to all current subscribers.
// Delivery is best-effort: a slow subscriber never blocks the update or
// starves other subscribers.
//
// Status values define vocabulary only. No transition order is enforced -
// callers are trusted to move planning -> searching -> writing -> completed
// or failed themselves.
package task
