// Package property provides single-slot cells whose reads and writes pass
// through an interceptor.
//
// Interceptor kinds:
//   - Plain: stored value, optional validator.
//   - Computed: no storage; the compute func runs on every read.
//   - Lazy: the initializer runs on the first read only and is cached.
//   - Observable: stored value; every committed write is broadcast on a
//     changebus.Bus as (name, old, new), after the store.
//
// The write path is the only way to change a cell. Cells hold no locks;
// wrap a cell in Locked when the host shares it between goroutines.
package property
