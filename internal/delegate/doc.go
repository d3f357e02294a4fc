// Package delegate implements capability delegation with selective override.
//
// Ownership boundary:
// - capability descriptors (named operation sets)
// - the backing execution contract
// - the immutable override table and its dispatch
//
// A Delegate presents a capability by forwarding every operation to its
// backing except those named in the override table. The table is validated
// and copied once in New; there is no way to rebind an operation afterwards.
// Delegates hold no locks; hosts that share one across goroutines serialise
// access themselves.
package delegate
