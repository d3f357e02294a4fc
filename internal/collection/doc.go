// Package collection defines the mutable collection capability and the
// delegation exemplars built on it.
//
// Ownership boundary:
// - typed Collection / MutableCollection interfaces and in-memory backings
// - the mutable-collection capability descriptor and its dynamic backing
// - CountingSet (dispatch-table delegation) and Counting (embedding)
// - bridges from collections to variance producer/consumer views
package collection
