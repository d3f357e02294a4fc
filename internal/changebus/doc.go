// Package changebus is an ordered, synchronous multicast notifier for
// property change events.
//
// Ownership boundary:
// - listener registration and removal
// - snapshot-ordered delivery on the caller's goroutine
// - per-listener fault isolation and failure aggregation
//
// Notify never queues and never spawns goroutines. A failing or panicking
// listener does not stop delivery to the listeners after it; every failure is
// collected into a NotifyError returned once the broadcast completes.
package changebus
