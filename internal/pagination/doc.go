// Package pagination coordinates "load more" behaviour for a scrollable list.
//
// This package contains the pagination state machine and its binding glue:
//   - State: page counter, per-page size, loaded-item total, loading and enabled flags
//   - Controller: reacts to scroll-near-end signals and host load results
//   - Builder: fluent, validated assembly of Options into a live Controller
//   - PageBindingCallback / ListView: the host and UI contracts
//
// A Controller is single-threaded. Every method must be called from the
// goroutine that owns the UI (the Bubble Tea update loop in this repository).
// Exhaustion is detected implicitly: a load that reports the same total as the
// previous one means the host has no more data.
package pagination
